package mobile

import (
	"bytes"
	"fmt"
	"strconv"
)

// FlexInt decodes integers that the mobile service serves inconsistently
// as either bare numbers or quoted strings (e.g. "dow":"3" vs "dow":3).
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("not an integer: %q", data)
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int { return int(f) }

// loginResponse is the JSON tail of the studentLogin response.
type loginResponse struct {
	Msg     string `json:"msg"`
	MsgDesc string `json:"msgdesc"`
	Token   string `json:"token"`
}

// ClassSession is one recurring teaching slot within a class day.
type ClassSession struct {
	SubjectCode string `json:"funits"`
	Description string `json:"fdesc"`
	ClassType   string `json:"fclasstype"`
	Room        string `json:"froom"`
	Lecturer    string `json:"fstaffname"`
	StartTime   string `json:"fstart"` // "h:mm AM/PM"
	EndTime     string `json:"fend"`
	WeekSpec    string `json:"fweedur"` // "all" or "1-3,5,7-9"
}

// ClassDay groups the sessions of one weekday (1=Mon .. 7=Sun).
type ClassDay struct {
	DayOfWeek FlexInt        `json:"dow"`
	Sessions  []ClassSession `json:"class"`
}

// ClassTimetable is the parsed class-timetable payload. An empty Duration
// or Rec is the valid "not yet scheduled" state, not an error.
type ClassTimetable struct {
	Msg      string     `json:"msg"`
	Duration string     `json:"duration"` // e.g. "26 Jan - 10 May 2026"
	Weeks    []string   `json:"weeks"`    // week labels, includes the "all" marker
	Rec      []ClassDay `json:"rec"`
}

// ExamRecord is one exam sitting.
type ExamRecord struct {
	SubjectCode string  `json:"funits"`
	Description string  `json:"fdesc"`
	Year        FlexInt `json:"fexyear"`
	Month       string  `json:"fexmonth"` // 3-letter abbreviation
	Day         FlexInt `json:"fexday"`
	StartTime   string  `json:"ftime"` // "h:mm AM/PM"
	Duration    FlexInt `json:"fhour"` // hours
	PaperType   string  `json:"fpaptype"`
	SeatCount   FlexInt `json:"ftosit"`
	Summary     string  `json:"fsummary"` // comma-delimited; second segment = venue
}

// ExamTimetable is the parsed exam-timetable payload.
type ExamTimetable struct {
	Msg string       `json:"msg"`
	Rec []ExamRecord `json:"rec"`
}
