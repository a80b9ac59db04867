package main

import (
	"context"
	"flag"
	"os"

	randgencmd "github.com/louisbranch/detrand/internal/cmd/randgen"
	entrypoint "github.com/louisbranch/detrand/internal/platform/cmd"
	"github.com/louisbranch/detrand/internal/random"
)

func main() {
	entrypoint.Main(entrypoint.ServiceRandgen, func(ctx context.Context, args []string) error {
		// Built before anything else can draw from it so SEED_RANDOM applies.
		shared := random.MustLoadGlobal()

		cfg, err := randgencmd.ParseConfig(flag.CommandLine, args)
		if err != nil {
			return err
		}
		return randgencmd.Run(ctx, cfg, shared, os.Stdout)
	})
}
