package dataset

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/pagesim/sim"
)

// IntRange is an inclusive integer range [Min, Max].
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// MaxRangeBound is the largest accepted upper bound of a synthesis range. It keeps
// range widths and page draws within rand.Intn's domain and bounds stream allocation.
const MaxRangeBound = 1 << 20

// Contains reports whether v lies within the range.
func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Config controls dataset synthesis. Loadable from YAML via LoadConfig.
type Config struct {
	Samples  int      `yaml:"samples"`
	Seed     int64    `yaml:"seed"`
	Capacity IntRange `yaml:"capacity"`
	Length   IntRange `yaml:"length"`
	MaxPage  IntRange `yaml:"max_page"`
	// Policies restricts the simulated policies. Empty means all registered policies.
	// Policies always run in canonical order regardless of listing order.
	Policies []string `yaml:"policies,omitempty"`
}

// DefaultConfig returns the synthesis ranges of the reference dataset:
// capacity in [2,6], stream length in [5,20], max page in [3,10].
func DefaultConfig() Config {
	return Config{
		Samples:  500,
		Seed:     42,
		Capacity: IntRange{Min: 2, Max: 6},
		Length:   IntRange{Min: 5, Max: 20},
		MaxPage:  IntRange{Min: 3, Max: 10},
	}
}

// Validate checks sample count, range ordering and bounds, and policy names.
func (c *Config) Validate() error {
	if c.Samples < 0 {
		return errors.Errorf("samples must be non-negative, got %d", c.Samples)
	}
	if c.Capacity.Min < 1 {
		return errors.Wrapf(sim.ErrInvalidCapacity, "capacity.min %d", c.Capacity.Min)
	}
	if c.Length.Min < 0 {
		return errors.Errorf("length.min must be non-negative, got %d", c.Length.Min)
	}
	if c.MaxPage.Min < 0 {
		return errors.Errorf("max_page.min must be non-negative, got %d", c.MaxPage.Min)
	}
	ranges := []struct {
		name string
		r    IntRange
	}{
		{"capacity", c.Capacity},
		{"length", c.Length},
		{"max_page", c.MaxPage},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			return errors.Errorf("%s range is empty: min %d > max %d", nr.name, nr.r.Min, nr.r.Max)
		}
		if nr.r.Max > MaxRangeBound {
			return errors.Errorf("%s.max %d exceeds %d", nr.name, nr.r.Max, MaxRangeBound)
		}
	}
	for _, p := range c.Policies {
		if !sim.ValidEvictionPolicies[p] {
			return errors.Wrapf(sim.ErrUnknownPolicy, "policy %q", p)
		}
	}
	return nil
}

// policies returns the configured policies in canonical order.
func (c *Config) policies() []string {
	if len(c.Policies) == 0 {
		return sim.PolicyNames()
	}
	want := make(map[string]bool, len(c.Policies))
	for _, p := range c.Policies {
		want[p] = true
	}
	var out []string
	for _, p := range sim.PolicyNames() {
		if want[p] {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig reads a YAML synthesis config. Fields absent from the file keep the
// DefaultConfig values; unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading synthesis config")
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parsing synthesis config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid synthesis config")
	}
	return &cfg, nil
}
