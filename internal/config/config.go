// Package config loads detector settings from a TOML file.
//
// Every field has a default, so an absent file or an absent key leaves the
// shipped behaviour in place. Two environment variables take precedence over
// the file: LINE_MCP_CONFIG names the file when no explicit path is given and
// LINE_MCP_LOG_LEVEL overrides [log] level.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/line-tools-mcp/internal/detection"
	"github.com/ironsheep/line-tools-mcp/internal/geometry"
	"github.com/ironsheep/line-tools-mcp/internal/segments"
)

const (
	EnvConfigPath = "LINE_MCP_CONFIG"
	EnvLogLevel   = "LINE_MCP_LOG_LEVEL"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the decoded configuration file.
type Config struct {
	Classification geometry.Tolerance `toml:"classification"`
	Dedup          Dedup              `toml:"dedup"`
	Extremes       Extremes           `toml:"extremes"`
	Filter         Filter             `toml:"filter"`
	Segments       segments.Options   `toml:"segments"`
	Frame          geometry.Frame     `toml:"frame"`
	Log            Log                `toml:"log"`
}

// Dedup configures redundancy elimination. Its tolerances are independent of
// [classification].
type Dedup struct {
	MinLineDistance     float64 `toml:"min_line_distance"`
	VerticalTolerance   float64 `toml:"vertical_tolerance"`
	HorizontalTolerance float64 `toml:"horizontal_tolerance"`
	SignedSlope         bool    `toml:"signed_slope"`
}

type Extremes struct {
	Margin            int  `toml:"margin"`
	LegacyBottommostX bool `toml:"legacy_bottommost_x"`
}

// Filter lists operator chains by name, e.g. [["x_extremes"], ["y_extremes"]].
type Filter struct {
	Chains   [][]string `toml:"chains"`
	Quantity int        `toml:"quantity"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := detection.DefaultConfig()
	chains := make([][]string, len(d.Chains))
	for i, c := range d.Chains {
		for _, op := range c {
			chains[i] = append(chains[i], string(op))
		}
	}
	return Config{
		Classification: d.Tolerance,
		Dedup: Dedup{
			MinLineDistance:     d.MinLineDistance,
			VerticalTolerance:   d.DedupTolerance.Vertical,
			HorizontalTolerance: d.DedupTolerance.Horizontal,
			SignedSlope:         d.DedupTolerance.Signed,
		},
		Extremes: Extremes{Margin: d.Margin},
		Filter:   Filter{Chains: chains, Quantity: d.Quantity},
		Segments: segments.DefaultOptions,
		Frame:    geometry.DefaultFrame,
		Log:      Log{Level: "info"},
	}
}

// Load reads path, falling back to $LINE_MCP_CONFIG and then to the
// defaults, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults. It does not validate.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, msg))
		}
	}

	// Signed slopes may legitimately be compared against negative thresholds.
	check(c.Classification.Signed || (c.Classification.Vertical >= 0 && c.Classification.Horizontal >= 0),
		"classification tolerances must not be negative")
	check(c.Dedup.SignedSlope || (c.Dedup.VerticalTolerance >= 0 && c.Dedup.HorizontalTolerance >= 0),
		"dedup tolerances must not be negative")
	check(c.Dedup.MinLineDistance >= 0, "dedup.min_line_distance must not be negative")
	check(c.Extremes.Margin >= 0, "extremes.margin must not be negative")
	check(c.Frame.Width > 0 && c.Frame.Height > 0, "frame must have positive width and height")
	check(c.Segments.MinLength >= 0, "segments.min_length must not be negative")
	check(c.Segments.MaxLines >= 0, "segments.max_lines must not be negative")
	check(c.Segments.Edges.BlurSigma >= 0, "segments.edges.blur_sigma must not be negative")

	if _, err := segments.ParseAlgorithm(string(c.Segments.Algorithm)); err != nil {
		errs = append(errs, fmt.Errorf("%w: segments.algorithm: %w", ErrInvalid, err))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %w", ErrInvalid, err))
	}
	if _, err := c.Detection(); err != nil {
		errs = append(errs, fmt.Errorf("%w: filter: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// Detection converts c into a detection.Config.
func (c Config) Detection() (detection.Config, error) {
	chains := make([]detection.Chain, 0, len(c.Filter.Chains))
	for i, names := range c.Filter.Chains {
		chain, err := detection.ParseChain(names)
		if err != nil {
			return detection.Config{}, fmt.Errorf("chain %d: %w", i, err)
		}
		chains = append(chains, chain)
	}
	if c.Filter.Quantity < 0 {
		return detection.Config{}, fmt.Errorf("%w: %d", detection.ErrNegativeQuantity, c.Filter.Quantity)
	}
	return detection.Config{
		Tolerance: c.Classification,
		DedupTolerance: geometry.Tolerance{
			Vertical:   c.Dedup.VerticalTolerance,
			Horizontal: c.Dedup.HorizontalTolerance,
			Signed:     c.Dedup.SignedSlope,
		},
		MinLineDistance:   c.Dedup.MinLineDistance,
		Margin:            c.Extremes.Margin,
		LegacyBottommostX: c.Extremes.LegacyBottommostX,
		Chains:            chains,
		Quantity:          c.Filter.Quantity,
	}, nil
}

// LogLevel returns the parsed [log] level, or info when it does not parse.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
