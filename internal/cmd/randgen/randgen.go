// Package randgen parses generator command flags and writes reproducible
// random streams.
package randgen

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/louisbranch/detrand/internal/core/dice"
	entrypoint "github.com/louisbranch/detrand/internal/platform/cmd"
	"github.com/louisbranch/detrand/internal/platform/otel"
	"github.com/louisbranch/detrand/internal/random"
)

// Kind selects which sampler feeds the output stream.
type Kind string

// Supported -kind values, one per sampler.
const (
	KindUint32  Kind = "u32"
	KindUint64  Kind = "u64"
	KindUint    Kind = "uint"
	KindInt     Kind = "int"
	KindFloat32 Kind = "f32"
	KindFloat64 Kind = "f64"
	KindGauss32 Kind = "gauss32"
	KindGauss64 Kind = "gauss64"
	KindDice    Kind = "dice"
)

var kinds = []Kind{KindUint32, KindUint64, KindUint, KindInt, KindFloat32, KindFloat64, KindGauss32, KindGauss64, KindDice}

// chiSquareMaxBuckets caps the bucket table kept for -stats on int streams.
const chiSquareMaxBuckets = 1 << 16

// Config holds randgen command configuration.
type Config struct {
	Kind       string `env:"DETRAND_KIND" envDefault:"u32"`
	Count      int    `env:"DETRAND_COUNT" envDefault:"10"`
	Locale     string `env:"DETRAND_LOCALE" envDefault:"en"`
	Seed       uint
	SeedRandom bool
	Bound      uint
	Dice       string
	Discard    uint64
	Stats      bool
	Global     bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Kind, "kind", cfg.Kind, "sampler: "+joinKinds())
	fs.IntVar(&cfg.Count, "n", cfg.Count, "number of values to generate")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for the -stats summary")
	fs.UintVar(&cfg.Seed, "seed", 0, "engine seed (0 = canonical default)")
	fs.BoolVar(&cfg.SeedRandom, "seed-random", false, "pick an unpredictable seed and print it")
	fs.UintVar(&cfg.Bound, "bound", 0, "exclusive upper bound for -kind=int")
	fs.StringVar(&cfg.Dice, "dice", "", "dice notation for -kind=dice, e.g. 2d6,1d8")
	fs.Uint64Var(&cfg.Discard, "discard", 0, "raw draws to skip before generating")
	fs.BoolVar(&cfg.Stats, "stats", false, "print a summary after the stream")
	fs.BoolVar(&cfg.Global, "global", false, "use the shared generator (honours SEED_RANDOM)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !validKind(Kind(c.Kind)) {
		return fmt.Errorf("unknown kind %q (valid: %s)", c.Kind, joinKinds())
	}
	if c.Count < 0 {
		return errors.New("count must be non-negative")
	}
	if c.Seed > math.MaxUint32 {
		return fmt.Errorf("seed %d does not fit in 32 bits", c.Seed)
	}
	if c.Global && (c.Seed != 0 || c.SeedRandom) {
		return errors.New("-global cannot be combined with -seed or -seed-random")
	}
	switch Kind(c.Kind) {
	case KindInt:
		if c.Bound == 0 || c.Bound > math.MaxUint32 {
			return fmt.Errorf("-bound must be in [1, %d] for -kind=int", uint64(math.MaxUint32))
		}
	case KindDice:
		if _, err := dice.ParseNotation(c.Dice); err != nil {
			return fmt.Errorf("parse dice %q: %w", c.Dice, err)
		}
	}
	return nil
}

// Run writes the configured stream to out. The shared generator is only
// used with -global; it must come from random.MustLoadGlobal at startup.
func Run(ctx context.Context, cfg Config, shared *random.Random, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRandgen, func(ctx context.Context) error {
		return generate(ctx, cfg, shared, out)
	})
}

func generate(ctx context.Context, cfg Config, shared *random.Random, out io.Writer) (err error) {
	rng, seed, err := source(cfg, shared)
	if err != nil {
		return err
	}

	ctx, span := otel.Tracer().Start(ctx, "randgen.generate", trace.WithAttributes(
		attribute.String("randgen.kind", cfg.Kind),
		attribute.Int("randgen.count", cfg.Count),
		attribute.Int64("randgen.seed", int64(seed)),
		attribute.Bool("randgen.global", cfg.Global),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	rng.Discard(cfg.Discard)

	w := bufio.NewWriter(out)
	var specs []dice.Spec
	if Kind(cfg.Kind) == KindDice {
		if specs, err = dice.ParseNotation(cfg.Dice); err != nil {
			return err
		}
	}

	var summary random.Summary
	var buckets []float64
	if cfg.Stats && Kind(cfg.Kind) == KindInt && cfg.Bound <= chiSquareMaxBuckets {
		buckets = make([]float64, cfg.Bound)
	}

	for i := 0; i < cfg.Count; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line, value, err := next(rng, Kind(cfg.Kind), uint32(cfg.Bound), specs)
		if err != nil {
			return err
		}
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		summary.Add(value)
		if buckets != nil {
			buckets[int(value)]++
		}
	}

	if cfg.Stats {
		writeStats(w, cfg, &summary, buckets)
	}
	return w.Flush()
}

// source picks the generator for a run and reports the seed it used.
func source(cfg Config, shared *random.Random) (*random.Random, uint32, error) {
	if cfg.Global {
		if shared == nil {
			return nil, 0, errors.New("shared generator is required for -global")
		}
		return shared, 0, nil
	}
	seed := uint32(cfg.Seed)
	if cfg.SeedRandom {
		s, err := random.NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
		log.Printf("using seed %d", seed)
	}
	return random.New(seed), seed, nil
}

// next draws one value and returns its text form plus the number fed to
// the summary.
func next(rng *random.Random, kind Kind, bound uint32, specs []dice.Spec) (string, float64, error) {
	switch kind {
	case KindUint32:
		v := rng.Uint32()
		return strconv.FormatUint(uint64(v), 10), float64(v), nil
	case KindUint64:
		v := rng.Uint64()
		return strconv.FormatUint(v, 10), float64(v), nil
	case KindUint:
		v := rng.Uint()
		return strconv.FormatUint(uint64(v), 10), float64(v), nil
	case KindInt:
		v := rng.Uint32n(bound)
		return strconv.FormatUint(uint64(v), 10), float64(v), nil
	case KindFloat32:
		v := rng.Float32()
		return strconv.FormatFloat(float64(v), 'g', -1, 32), float64(v), nil
	case KindFloat64:
		v := rng.Float64()
		return strconv.FormatFloat(v, 'g', -1, 64), v, nil
	case KindGauss32:
		v := rng.NormFloat32()
		return strconv.FormatFloat(float64(v), 'g', -1, 32), float64(v), nil
	case KindGauss64:
		v := rng.NormFloat64()
		return strconv.FormatFloat(v, 'g', -1, 64), v, nil
	case KindDice:
		result, err := dice.RollWithRandom(rng, specs)
		if err != nil {
			return "", 0, err
		}
		return formatRoll(result), float64(result.Total), nil
	default:
		return "", 0, fmt.Errorf("unknown kind %q", kind)
	}
}

// formatRoll renders "3 5 | 2 = 10": one group per spec, then the total.
func formatRoll(result dice.Result) string {
	groups := make([]string, 0, len(result.Rolls))
	for _, roll := range result.Rolls {
		values := make([]string, len(roll.Results))
		for i, v := range roll.Results {
			values[i] = strconv.Itoa(v)
		}
		groups = append(groups, strings.Join(values, " "))
	}
	return strings.Join(groups, " | ") + " = " + strconv.Itoa(result.Total)
}

func writeStats(w io.Writer, cfg Config, summary *random.Summary, buckets []float64) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	p.Fprintf(w, "# count %d\n", summary.Count)
	p.Fprintf(w, "# mean %.6f\n", summary.Mean())
	p.Fprintf(w, "# variance %.6f\n", summary.Variance())
	if buckets != nil && summary.Count > 0 {
		expected := make([]float64, len(buckets))
		for i := range expected {
			expected[i] = float64(summary.Count) / float64(len(buckets))
		}
		p.Fprintf(w, "# chi-square %.3f (%d degrees of freedom)\n", stat.ChiSquare(buckets, expected), len(buckets)-1)
	}
}

func validKind(kind Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func joinKinds() string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
