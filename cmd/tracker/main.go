package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/apiclient"
	"github.com/shenikar/ojt_tracker/internal/config"
	"github.com/shenikar/ojt_tracker/pkg/logger"
)

const usage = `usage: tracker <command> [flags]

commands:
  timein    time in at the current location
  timeout   time out
  watch     broadcast the current location until interrupted
  live      follow the live map of a company
  zone      draw, clear or search the safe zone of a company
`

// app - общие зависимости подкоманд
type app struct {
	cfg    *config.TrackerConfig
	log    *logrus.Logger
	client *apiclient.Client
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Загрузка конфигурации
	cfg, err := config.LoadTrackerConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Логгер пишет в stderr, stdout остается для вывода команд
	log := logger.NewCLI(cfg.LogLevel)

	a := &app{
		cfg:    cfg,
		log:    log,
		client: apiclient.New(cfg.APIBaseURL, cfg.APIToken, cfg.RequestTimeout, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "timein":
		err = a.runTimeIn(ctx, args)
	case "timeout":
		err = a.runTimeOut(ctx, args)
	case "watch":
		err = a.runWatch(ctx, args)
	case "live":
		err = a.runLive(ctx, args)
	case "zone":
		err = a.runZone(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	if err != nil {
		log.WithField("command", cmd).WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
