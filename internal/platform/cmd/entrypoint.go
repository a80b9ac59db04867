// Package cmd holds the shared entrypoint plumbing for detrand commands:
// env-then-flags configuration, signal handling and telemetry lifecycle.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/louisbranch/detrand/internal/platform/config"
	apperrors "github.com/louisbranch/detrand/internal/platform/errors"
	"github.com/louisbranch/detrand/internal/platform/otel"
)

const otelShutdownTimeout = 5 * time.Second

// ServiceRandgen names the generator command in logs and telemetry.
const ServiceRandgen = "randgen"

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// Main runs a command with a prefixed logger and a context cancelled on
// SIGINT or SIGTERM. A returned error exits the process with status 1.
func Main(service string, run func(ctx context.Context, args []string) error) {
	log.SetPrefix(logPrefix(service))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		config.Exitf("%s", exitMessage(service, err))
	}
}

// exitMessage marks contract violations so they read as assertion failures
// rather than ordinary runtime errors.
func exitMessage(service string, err error) string {
	if code := apperrors.GetCode(err); code.Fatal() {
		return fmt.Sprintf("%sfatal %s: %v", logPrefix(service), code, err)
	}
	return fmt.Sprintf("%s%v", logPrefix(service), err)
}

func logPrefix(service string) string {
	return "[" + strings.ToUpper(strings.TrimSpace(service)) + "] "
}

// RunWithTelemetry configures tracing and executes a command run loop,
// flushing spans before it returns.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
