package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"tarumtcal/internal/config"
	"tarumtcal/internal/ics"
	appLog "tarumtcal/internal/log"
	"tarumtcal/internal/mobile"
	"tarumtcal/internal/model"
	"tarumtcal/internal/timetable"
)

type flagConfig struct {
	configPath string
	output     string
	daemon     bool
	openAfter  bool
	strict     bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		// Exit 0 on every failure path: a non-zero status would fail the
		// scheduling environment that invokes this on a timer.
		return
	}

	if flags.output != "" {
		conf.OutputPath = flags.output
	}
	if flags.strict {
		conf.Strict = true
	}

	appLog.Init(conf.LogPath)
	defer appLog.Close()

	appLog.Info("tarumtcal starting",
		"output", conf.OutputPath,
		"timezone", conf.Timezone,
		"strict", conf.Strict,
		"daemon", flags.daemon,
	)

	if conf.Username == "" || conf.Password == "" {
		appLog.Error("missing credentials", errors.New("username or password unset"))
		fmt.Fprintln(os.Stderr, "ERROR: Missing credentials. Set TARUMT_USERNAME and TARUMT_PASSWORD.")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if !flags.daemon {
		if err := run(ctx, conf, flags.openAfter); err != nil {
			appLog.Error("run failed", err)
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(conf.RefreshCron, func() {
		if err := run(ctx, conf, false); err != nil {
			appLog.Error("scheduled run failed", err)
		}
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "cron", conf.RefreshCron)
		return
	}

	c.Start()
	appLog.Info("daemon started", "cron", conf.RefreshCron)
	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("tarumtcal exiting")
}

// run executes one full fetch → transform → serialize cycle.
func run(ctx context.Context, conf *config.Config, openAfter bool) error {
	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", conf.Timezone, err)
	}

	client := mobile.New(mobile.Options{
		BaseURL:     conf.BaseURL,
		Username:    conf.Username,
		Password:    conf.Password,
		AppSecret:   conf.AppSecret,
		DeviceID:    conf.DeviceID,
		DeviceModel: conf.DeviceModel,
		AppVersion:  conf.AppVersion,
		Platform:    conf.Platform,
	})

	token, err := client.Login(ctx)
	if err != nil {
		return err
	}

	// Failed fetches terminate the run: a calendar built from half the
	// data would silently drop someone's schedule.
	classTT, err := client.ClassTimetable(ctx, token)
	if err != nil {
		return err
	}
	examTT, err := client.ExamTimetable(ctx, token)
	if err != nil {
		return err
	}

	builder := timetable.NewBuilder(loc, conf.UIDDomain, conf.Strict)

	var events []model.Event

	classEvents, err := builder.ClassEvents(classTT)
	if err != nil {
		return fmt.Errorf("building class events: %w", err)
	}
	if len(classEvents) == 0 {
		appLog.Info("no class timetable data available yet")
		fmt.Println("No class timetable data available yet. The semester may not have started or no classes are scheduled.")
	} else {
		appLog.Info("added class events", "count", len(classEvents))
	}
	events = append(events, classEvents...)

	examEvents, err := builder.ExamEvents(examTT)
	if err != nil {
		return fmt.Errorf("building exam events: %w", err)
	}
	if len(examEvents) == 0 {
		appLog.Info("no exam timetable data available yet")
		fmt.Println("No exam timetable data available yet. Exams may not be scheduled.")
	} else {
		appLog.Info("added exam events", "count", len(examEvents))
		fmt.Printf("Added %d exam(s) to timetable\n", len(examEvents))
	}
	events = append(events, examEvents...)

	if len(events) == 0 {
		appLog.Info("no events; skipping ICS creation")
		fmt.Println("No timetable or exam data available. No ICS file generated.")
		return nil
	}

	doc, err := ics.Serialize(events, conf.Timezone, time.Now())
	if err != nil {
		return err
	}
	if err := ics.Write(conf.OutputPath, doc); err != nil {
		return fmt.Errorf("writing %s: %w", conf.OutputPath, err)
	}

	appLog.Info("ICS file generated", "path", conf.OutputPath, "events", len(events))
	fmt.Printf("Generated %s with %d event(s)\n", conf.OutputPath, len(events))

	if openAfter && runtime.GOOS == "darwin" && os.Getenv("CI") == "" {
		if err := exec.Command("open", conf.OutputPath).Start(); err != nil {
			appLog.Error("could not open generated file", err, "path", conf.OutputPath)
		}
	}
	return nil
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&cfg.output, "out", "", "Output ICS path (overrides config if set)")
	flag.BoolVar(&cfg.daemon, "daemon", false, "Keep running and regenerate on the refresh schedule")
	flag.BoolVar(&cfg.openAfter, "open", false, "Open the generated file with the OS handler (macOS, outside CI)")
	flag.BoolVar(&cfg.strict, "strict", false, "Abort on the first malformed timetable record instead of skipping it")

	flag.Parse()

	return cfg
}
