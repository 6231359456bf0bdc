package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // extra source lines shown above and below the primary line
	PathMode  PathMode
	Width     uint8 // maximum rendered line width, 0 for unlimited
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to every location
	PathMode         PathMode
	Max              int // output cap; the Bag itself is untouched
	IncludeNotes     bool
}

// TreeOpts configures symbol-tree output.
type TreeOpts struct {
	PathMode       PathMode
	ShowSpans      bool
	ShowDirectives bool
}
