package driver

import (
	"github.com/sirupsen/logrus"
)

// DefaultMaxDiagnostics bounds the diagnostic bag of one scan.
const DefaultMaxDiagnostics = 256

// DefaultExtensions lists the header suffixes a directory scan picks up.
var DefaultExtensions = []string{".h", ".hh", ".hpp", ".hxx"}

// Options configures scans. The zero value works; Validate fills the
// gaps with defaults.
type Options struct {
	// MaxDiagnostics caps the bag per file and the parser error budget.
	MaxDiagnostics int

	// Jobs bounds concurrent file scans in ScanDir. Zero or negative
	// means GOMAXPROCS.
	Jobs int

	// Extensions selects files during a directory walk. Entries must
	// carry the leading dot.
	Extensions []string

	// Include and Exclude filter walked files by filepath.Match
	// patterns, tried against the slash path relative to the scan root
	// and against the basename. An empty Include admits everything;
	// Exclude wins ties.
	Include []string
	Exclude []string

	// Cache, when set, lets scans skip files whose content digest was
	// seen before. Hits return a Result without a Tree.
	Cache *Cache

	// Timings appends an ObsTimings diagnostic with per-phase numbers.
	Timings bool

	// Events, when set, receives progress notifications from ScanDir.
	Events chan<- Event

	// Debug enables trace logging through Logger.
	Debug  bool
	Logger logrus.FieldLogger
}

// Validate populates missing Options entries with defaults.
func (o *Options) Validate() {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
}

// debugf logs only when Debug is set, so hot paths stay quiet.
func (o *Options) debugf(format string, args ...any) {
	if !o.Debug || o.Logger == nil {
		return
	}
	o.Logger.Debugf(format, args...)
}
