package random

import (
	"fmt"
	"log"
	"strconv"

	"github.com/louisbranch/detrand/internal/platform/config"
	apperrors "github.com/louisbranch/detrand/internal/platform/errors"
)

// CanonicalFirstValue is the first Uint32 of an engine seeded with 0.
const CanonicalFirstValue uint32 = 3499211612

// SeedRandomEnv names the environment override for the shared generator.
const SeedRandomEnv = "SEED_RANDOM"

// Config holds environment configuration for the shared generator.
type Config struct {
	// SeedRandom reseeds the shared generator when non-zero. Values outside
	// the uint32 range wrap modulo 2^32.
	SeedRandom int64 `env:"SEED_RANDOM"`
}

// Seed returns the override as an engine seed.
func (c Config) Seed() uint32 {
	return uint32(c.SeedRandom)
}

// ReseedPristine reseeds r with seed, but only if r has not yet produced
// any output. A zero seed is a no-op.
//
// The check consumes one draw and compares it with CanonicalFirstValue, so
// it is only meaningful on an instance built with New(0). A mismatch means
// the instance was already used and returns a CodeInvariantViolation error.
func (r *Random) ReseedPristine(seed uint32) error {
	if seed == 0 {
		return nil
	}
	if first := r.Uint32(); first != CanonicalFirstValue {
		return apperrors.WithMetadata(
			apperrors.CodeInvariantViolation,
			fmt.Sprintf("random: %s applied after shared generator was used", SeedRandomEnv),
			map[string]string{
				"seed":  strconv.FormatUint(uint64(seed), 10),
				"first": strconv.FormatUint(uint64(first), 10),
			},
		)
	}
	r.Seed(seed)
	log.Printf("%s=%d used", SeedRandomEnv, seed)
	return nil
}

// NewGlobal builds the process-wide shared generator: an instance with the
// canonical default seed, reseeded from cfg when an override is set.
//
// The result is meant to be built once on the initialising goroutine and
// passed explicitly to its consumers before any concurrent use.
func NewGlobal(cfg Config) (*Random, error) {
	r := New(0)
	if err := r.ReseedPristine(cfg.Seed()); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadGlobal reads Config from the process environment and calls NewGlobal.
func LoadGlobal() (*Random, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, "random: read "+SeedRandomEnv, err)
	}
	return NewGlobal(cfg)
}

// MustLoadGlobal is like LoadGlobal but exits the process on failure.
func MustLoadGlobal() *Random {
	r, err := LoadGlobal()
	if err != nil {
		config.Exitf("shared random generator: %v", err)
	}
	return r
}
