package diagfmt

// PathMode specifies how file paths are displayed in rendered output.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures Pretty's rendering of a diagnostic bag.
type PrettyOpts struct {
	Color    bool
	Context  int8 // lines of source context shown above/below each span
	PathMode PathMode
}
