// Package project loads the hdrscan.toml manifest that pins a scan's
// configuration to a directory tree.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hdrscan/internal/driver"
)

// Config is the decoded manifest. Zero values mean "use the default";
// Load starts from Default so a partial manifest stays valid.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Output OutputConfig `toml:"output"`
	Limits LimitsConfig `toml:"limits"`
}

type ScanConfig struct {
	// Include and Exclude are filepath.Match patterns applied to the
	// slash-form path relative to the scanned directory, exclude wins.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	// Extensions lists the file suffixes treated as headers.
	Extensions []string `toml:"extensions"`
	// Jobs caps scan parallelism; 0 means one worker per CPU.
	Jobs int `toml:"jobs"`
}

type OutputConfig struct {
	// Format selects the report form: "pretty" or "json".
	Format string `toml:"format"`
	// Destination is a file path for reports; "" or "-" is stdout.
	Destination string `toml:"destination"`
}

type LimitsConfig struct {
	// MaxDiagnostics bounds the diagnostics kept per file; 0 means the
	// driver default.
	MaxDiagnostics int `toml:"max-diagnostics"`
}

// Manifest couples a decoded Config with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Extensions: append([]string(nil), driver.DefaultExtensions...),
		},
		Output: OutputConfig{
			Format: "pretty",
		},
		Limits: LimitsConfig{
			MaxDiagnostics: driver.DefaultMaxDiagnostics,
		},
	}
}

// Load decodes one manifest file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("scan", "extensions") && len(cfg.Scan.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [scan].extensions must not be empty", path)
	}
	for i, ext := range cfg.Scan.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return Config{}, fmt.Errorf("%s: [scan].extensions has an empty entry", path)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Scan.Extensions[i] = ext
	}
	if cfg.Scan.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [scan].jobs must not be negative", path)
	}
	switch cfg.Output.Format {
	case "pretty", "json":
	default:
		return Config{}, fmt.Errorf("%s: invalid [output].format %q (want \"pretty\" or \"json\")", path, cfg.Output.Format)
	}
	if cfg.Limits.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [limits].max-diagnostics must not be negative", path)
	}
	if cfg.Limits.MaxDiagnostics == 0 {
		cfg.Limits.MaxDiagnostics = driver.DefaultMaxDiagnostics
	}
	return cfg, nil
}

// LoadNearest finds the manifest above startDir and decodes it. A
// missing manifest is not an error: ok is false and the caller runs on
// defaults.
func LoadNearest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// ScanOptions maps the manifest onto driver options. Flag overrides
// are applied by the caller on top of the returned value.
func (c Config) ScanOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: c.Limits.MaxDiagnostics,
		Jobs:           c.Scan.Jobs,
		Extensions:     append([]string(nil), c.Scan.Extensions...),
		Include:        append([]string(nil), c.Scan.Include...),
		Exclude:        append([]string(nil), c.Scan.Exclude...),
	}
}

// Starter returns the manifest written by `hdrscan init`.
func Starter(name string) string {
	return fmt.Sprintf(`# %s scan manifest
[scan]
# include = ["include/*.h"]
exclude = ["build/*", "third_party/*"]
extensions = [".h", ".hh", ".hpp", ".hxx"]
jobs = 0

[output]
format = "pretty"

[limits]
max-diagnostics = %d
`, name, driver.DefaultMaxDiagnostics)
}
