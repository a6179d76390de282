// Command trackseed seeds the local tracks database: it reads
// spotify_data_preprocessed_final.csv, adds a liked column set to 0 and
// replaces table "tracks" in app_data.db.
//
// With no flags, no environment overrides and no .env file the run does
// exactly that. A JSON pipeline file (-config) can point it elsewhere.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackseed/internal/config"
	"trackseed/internal/etl"
	"trackseed/internal/logging"
	"trackseed/internal/metrics"
	"trackseed/internal/metrics/prompush"

	// register all backends with the storage factory.
	_ "trackseed/internal/storage/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals. It returns the exit code.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trackseed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "pipeline config JSON path (default: built-in pipeline)")
	envPath := fs.String("env", ".env", "dotenv file loaded before reading the environment")
	validate := fs.Bool("validate", false, "validate the configuration and exit")
	verbose := fs.Bool("v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log.SetOutput(stderr)
	if err := config.LoadDotEnv(*envPath); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logging.SetLevel(logging.ParseLevel(getenv("LOG_LEVEL")))
	if *verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	p := config.Default()
	if *cfgPath != "" {
		var err error
		if p, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 1
		}
	}
	config.ApplyEnv(&p, getenv)

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		logging.Errorf("configuration is invalid")
		return 1
	}
	if *validate {
		logging.Infof("configuration is valid")
		return 0
	}

	if flush := setupMetrics(p); flush != nil {
		defer flush()
	}

	logging.Debugf("pipeline: source=%s:%s parser=%s storage=%s:%s table=%s",
		p.Source.Kind, p.Source.File.Path, p.Parser.Kind, p.Storage.Kind, p.Storage.DB.DSN, p.Storage.DB.Table)

	start := time.Now()
	if _, err := etl.Run(ctx, p, stdout); err != nil {
		logging.Errorf("%v", err)
		return 1
	}
	logging.Debugf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	return 0
}

// setupMetrics installs the configured metrics backend and returns the flush
// to run at exit, or nil when metrics are disabled. Metrics problems are
// logged and never fail the run.
func setupMetrics(p config.Pipeline) func() {
	switch p.Metrics.Backend {
	case "pushgateway":
		b, err := prompush.NewBackend(p.Job, p.Metrics.PushgatewayURL)
		if err != nil {
			logging.Errorf("metrics: failed to init prom push backend: %v; using nop", err)
			return nil
		}
		logging.Debugf("metrics: url=%v, backend=pushgateway, job_name=%v", p.Metrics.PushgatewayURL, p.Job)
		metrics.SetBackend(b)
		return func() {
			if err := metrics.Flush(); err != nil {
				logging.Errorf("metrics: flush error: %v", err)
			}
		}
	case "", "none":
		logging.Debugf("metrics: disabled")
		return nil
	default:
		logging.Errorf("metrics: unknown backend %q; metrics disabled", p.Metrics.Backend)
		return nil
	}
}
