package features

// Stage describes how settled a feature flag is.
type Stage string

const (
	StageStable       Stage = "stable"
	StageBeta         Stage = "beta"
	StageExperimental Stage = "experimental"
	StageDeprecated   Stage = "deprecated"
)

const (
	// Dedup drops entries whose timestamp is already buffered after each merge.
	Dedup = "dedup"
	// Animations enables the spinner in the status line.
	Animations = "animations"
	// AltScreen runs the TUI in the terminal's alternate screen.
	AltScreen = "alt_screen"
	// Clipboard enables copying the focused pane with `y`.
	Clipboard = "clipboard"
)

// Spec describes a feature flag exposed by the CLI.
type Spec struct {
	Key            string
	Stage          Stage
	DefaultEnabled bool
}

// Specs lists every known feature flag.
var Specs = []Spec{
	{Key: Dedup, Stage: StageExperimental, DefaultEnabled: false},
	{Key: Animations, Stage: StageStable, DefaultEnabled: true},
	{Key: AltScreen, Stage: StageStable, DefaultEnabled: true},
	{Key: Clipboard, Stage: StageStable, DefaultEnabled: true},
}

var known = func() map[string]Spec {
	m := make(map[string]Spec, len(Specs))
	for _, spec := range Specs {
		m[spec.Key] = spec
	}
	return m
}()

// IsKnown reports whether the feature key is recognized.
func IsKnown(key string) bool {
	_, ok := known[key]
	return ok
}

// StageFor returns the lifecycle stage for a feature, defaulting to experimental.
func StageFor(key string) Stage {
	if spec, ok := known[key]; ok {
		return spec.Stage
	}
	return StageExperimental
}

// DefaultEnabled reports the default value for the given feature key.
func DefaultEnabled(key string) bool {
	if spec, ok := known[key]; ok {
		return spec.DefaultEnabled
	}
	return false
}

// Set holds resolved feature values; keys absent from the map use their default.
type Set map[string]bool

// Enabled reports whether key is on, falling back to the flag's default.
func (s Set) Enabled(key string) bool {
	if v, ok := s[key]; ok {
		return v
	}
	return DefaultEnabled(key)
}
