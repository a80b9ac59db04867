package randgen

import (
	"bytes"
	"context"
	"flag"
	"strconv"
	"strings"
	"testing"

	"github.com/louisbranch/detrand/internal/core/dice"
	"github.com/louisbranch/detrand/internal/random"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("randgen", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Kind != string(KindUint32) {
		t.Fatalf("expected default kind u32, got %q", cfg.Kind)
	}
	if cfg.Count != 10 {
		t.Fatalf("expected default count 10, got %d", cfg.Count)
	}
	if cfg.Seed != 0 || cfg.Global || cfg.Stats {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvThenFlags(t *testing.T) {
	t.Setenv("DETRAND_KIND", "f64")
	t.Setenv("DETRAND_COUNT", "3")

	fs := flag.NewFlagSet("randgen", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-n", "7", "-seed", "42"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Kind != string(KindFloat64) {
		t.Fatalf("expected env kind f64, got %q", cfg.Kind)
	}
	if cfg.Count != 7 {
		t.Fatalf("expected flag count 7, got %d", cfg.Count)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Seed)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown kind", args: []string{"-kind", "poisson"}, want: "unknown kind"},
		{name: "negative count", args: []string{"-n", "-1"}, want: "count must be non-negative"},
		{name: "int without bound", args: []string{"-kind", "int"}, want: "-bound must be in"},
		{name: "bound too large", args: []string{"-kind", "int", "-bound", "4294967296"}, want: "-bound must be in"},
		{name: "seed too large", args: []string{"-seed", "4294967296"}, want: "does not fit in 32 bits"},
		{name: "bad dice", args: []string{"-kind", "dice", "-dice", "2x6"}, want: "parse dice"},
		{name: "too many dice", args: []string{"-kind", "dice", "-dice", "10000000000d6"}, want: "parse dice"},
		{name: "global with seed", args: []string{"-global", "-seed", "3"}, want: "-global cannot be combined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("randgen", flag.ContinueOnError)
			fs.SetOutput(&bytes.Buffer{})
			_, err := ParseConfig(fs, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func run(t *testing.T, cfg Config, shared *random.Random) []string {
	t.Helper()
	t.Setenv("DETRAND_OTEL_ENDPOINT", "")
	var out bytes.Buffer
	if err := Run(context.Background(), cfg, shared, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestRunGoldenStreams(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "u32",
			cfg:  Config{Kind: "u32", Count: 3, Seed: 42},
			want: []string{"4269938173", "2413553444", "246097641"},
		},
		{
			name: "u64",
			cfg:  Config{Kind: "u64", Count: 1, Seed: 42},
			want: []string{"10366133113398105597"},
		},
		{
			name: "int",
			cfg:  Config{Kind: "int", Count: 5, Seed: 42, Bound: 10},
			want: []string{"3", "4", "1", "9", "0"},
		},
		{
			name: "discard",
			cfg:  Config{Kind: "u32", Count: 2, Seed: 42, Discard: 2},
			want: []string{"246097641", "1049399899"},
		},
		{
			name: "default seed",
			cfg:  Config{Kind: "u32", Count: 1},
			want: []string{"3499211612"},
		},
		{
			name: "dice",
			cfg:  Config{Kind: "dice", Count: 1, Seed: 42, Dice: "2d6,1d8"},
			want: []string{"2 3 | 2 = 7"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.cfg, nil)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunFloatStreamsInUnitInterval(t *testing.T) {
	for _, kind := range []Kind{KindFloat32, KindFloat64} {
		lines := run(t, Config{Kind: string(kind), Count: 200, Seed: 9}, nil)
		if len(lines) != 200 {
			t.Fatalf("%s: got %d lines", kind, len(lines))
		}
		for _, line := range lines {
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				t.Fatalf("%s: parse %q: %v", kind, line, err)
			}
			if v <= 0 || v >= 1 {
				t.Fatalf("%s: value %v outside (0, 1)", kind, v)
			}
		}
	}
}

func TestRunGaussMatchesEngine(t *testing.T) {
	lines := run(t, Config{Kind: "gauss64", Count: 3, Seed: 5}, nil)
	ref := random.New(5)
	for i, line := range lines {
		want := strconv.FormatFloat(ref.NormFloat64(), 'g', -1, 64)
		if line != want {
			t.Fatalf("line %d = %q, want %q", i, line, want)
		}
	}
}

func TestRunUsesSharedGenerator(t *testing.T) {
	shared, err := random.NewGlobal(random.Config{SeedRandom: 42})
	if err != nil {
		t.Fatalf("new global: %v", err)
	}
	got := run(t, Config{Kind: "u32", Count: 1, Global: true}, shared)
	if got[0] != "4269938173" {
		t.Fatalf("got %v, want 4269938173", got)
	}
	// The stream continues on the shared instance.
	if next := shared.Uint32(); next != 2413553444 {
		t.Fatalf("shared next = %d, want 2413553444", next)
	}
}

func TestRunGlobalRequiresShared(t *testing.T) {
	t.Setenv("DETRAND_OTEL_ENDPOINT", "")
	err := Run(context.Background(), Config{Kind: "u32", Count: 1, Global: true}, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "shared generator is required") {
		t.Fatalf("expected shared generator error, got %v", err)
	}
}

func TestRunStats(t *testing.T) {
	lines := run(t, Config{Kind: "int", Count: 2000, Seed: 1, Bound: 4, Stats: true, Locale: "en"}, nil)
	tail := strings.Join(lines[2000:], "\n")
	for _, want := range []string{"# count 2,000", "# mean ", "# variance ", "# chi-square ", "(3 degrees of freedom)"} {
		if !strings.Contains(tail, want) {
			t.Fatalf("stats missing %q in %q", want, tail)
		}
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Setenv("DETRAND_OTEL_ENDPOINT", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, Config{Kind: "u32", Count: 10}, nil, nil); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRunSeedRandom(t *testing.T) {
	lines := run(t, Config{Kind: "u32", Count: 4, SeedRandom: true}, nil)
	if len(lines) != 4 {
		t.Fatalf("got %d lines", len(lines))
	}
}

func TestFormatRoll(t *testing.T) {
	got := formatRoll(dice.Result{
		Rolls: []dice.Roll{
			{Sides: 6, Results: []int{1, 2}, Total: 3},
			{Sides: 8, Results: []int{6}, Total: 6},
		},
		Total: 9,
	})
	if got != "1 2 | 6 = 9" {
		t.Fatalf("formatRoll = %q", got)
	}
}
