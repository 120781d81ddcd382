// Command scribedev runs the development backend: an HTTP stand-in for
// the remote transcription/inference service, with a simulated session
// lifecycle and signed upload URLs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/scribe/config"
	"github.com/kbukum/scribe/devserver"
	"github.com/kbukum/scribe/logger"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	envFile := flag.String("env", "", "path to .env file")
	flag.Parse()

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	var cfg config.Config
	if err := config.Load(&cfg, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "scribedev: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger)
	logger.SetGlobalLogger(log)

	if err := run(cfg, log); err != nil {
		log.Error("scribedev exited", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := devserver.New(cfg.DevServer, log)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutting down")
	return srv.Stop(context.Background())
}
