package mobile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	appLog "tarumtcal/internal/log"
)

const (
	loginPath = "/studentLogin.jsp"
	classPath = "/services/AJAXStudentTimetable.jsp?act=get&week=all"
	examPath  = "/services/AJAXExamTimetable.jsp?act=list&mversion=1"

	// The service rejects requests that do not look like the mobile app.
	userAgent = "Mozilla/5.0 (Linux; Android 15) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/134.0.6998.39 Mobile Safari/537.36"
	origin    = "ionic://localhost"
)

// Options configures a mobile-service Client.
type Options struct {
	BaseURL   string
	Username  string
	Password  string
	AppSecret string

	DeviceID    string
	DeviceModel string
	AppVersion  string
	Platform    string
}

// Client talks to the institutional mobile-service API: signed login plus
// class and exam timetable fetches.
type Client struct {
	httpClient *http.Client
	opts       Options

	// now is replaceable for tests; request signatures embed a timestamp.
	now func() time.Time
}

// New creates a mobile-service Client.
func New(opts Options) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		opts: opts,
		now:  time.Now,
	}
}

// Login authenticates and returns the session token.
func (c *Client) Login(ctx context.Context) (string, error) {
	params := []param{
		{"username", c.opts.Username},
		{"password", c.opts.Password},
		{"deviceid", c.opts.DeviceID},
		{"devicemodel", c.opts.DeviceModel},
		{"appversion", c.opts.AppVersion},
		{"fplatform", c.opts.Platform},
	}

	form := url.Values{}
	for _, p := range params {
		form.Set(p.key, p.value)
	}

	raw, err := c.post(ctx, c.opts.BaseURL+loginPath, params, form.Encode(), "")
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	payload, err := extractJSONTail(raw)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	var resp loginResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return "", fmt.Errorf("login: decoding response: %w", err)
	}

	if resp.Msg != "success" || resp.Token == "" {
		desc := resp.MsgDesc
		if desc == "" {
			desc = "unknown error"
		}
		return "", fmt.Errorf("login failed: %s", desc)
	}

	appLog.Info("login successful")
	return resp.Token, nil
}

// ClassTimetable fetches the class timetable for all weeks.
func (c *Client) ClassTimetable(ctx context.Context, token string) (*ClassTimetable, error) {
	params := []param{{"act", "get"}, {"week", "all"}}

	raw, err := c.post(ctx, c.opts.BaseURL+classPath, params, "", token)
	if err != nil {
		return nil, fmt.Errorf("class timetable: %w", err)
	}

	payload, err := extractJSONBody(raw)
	if err != nil {
		return nil, fmt.Errorf("class timetable: %w", err)
	}

	var tt ClassTimetable
	if err := json.Unmarshal([]byte(payload), &tt); err != nil {
		return nil, fmt.Errorf("class timetable: decoding response: %w", err)
	}
	return &tt, nil
}

// ExamTimetable fetches the exam timetable.
func (c *Client) ExamTimetable(ctx context.Context, token string) (*ExamTimetable, error) {
	params := []param{{"act", "list"}, {"mversion", "1"}}

	raw, err := c.post(ctx, c.opts.BaseURL+examPath, params, "", token)
	if err != nil {
		return nil, fmt.Errorf("exam timetable: %w", err)
	}

	payload, err := extractJSONBody(raw)
	if err != nil {
		return nil, fmt.Errorf("exam timetable: %w", err)
	}

	var tt ExamTimetable
	if err := json.Unmarshal([]byte(payload), &tt); err != nil {
		return nil, fmt.Errorf("exam timetable: decoding response: %w", err)
	}
	return &tt, nil
}

// post issues a signed form POST and returns the raw response body. Network
// errors and 5xx responses are retried a bounded number of times; other
// HTTP errors fail immediately.
func (c *Client) post(ctx context.Context, endpoint string, params []param, body, token string) (string, error) {
	var raw string

	err := retry.Do(
		func() error {
			ts := c.now().Unix()
			sig := signParams(params, ts, c.opts.AppSecret)

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("User-Agent", userAgent)
			req.Header.Set("Origin", origin)
			req.Header.Set("Referer", "https://localhost/")
			req.Header.Set("X-Signature", sig)
			req.Header.Set("X-Timestamp", strconv.FormatInt(ts, 10))
			if token != "" {
				req.Header.Set("X-Auth", token)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			switch {
			case resp.StatusCode >= 500:
				return errors.New(resp.Status)
			case resp.StatusCode >= 400:
				return retry.Unrecoverable(errors.New(resp.Status))
			}

			raw = string(data)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			appLog.Error("request failed, retrying", err, "attempt", n+1, "endpoint", endpoint)
		}),
	)
	if err != nil {
		return "", err
	}
	return raw, nil
}
