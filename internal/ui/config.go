package ui

// DisplayConfig holds configuration for UI rendering
type DisplayConfig struct {
	// CommitHashDisplayLength is the length of abbreviated commit hashes
	CommitHashDisplayLength int
	DefaultTerminalWidth    int
	// MaxMatchesWithoutWarning limits result file choices before warning
	MaxMatchesWithoutWarning int
}

// DefaultConfig returns the default display configuration
func DefaultConfig() DisplayConfig {
	return DisplayConfig{
		CommitHashDisplayLength:  10,
		DefaultTerminalWidth:     120,
		MaxMatchesWithoutWarning: 10,
	}
}

// Global display configuration (can be overridden)
var Display = DefaultConfig()

// SetDisplayConfig updates the global display configuration
func SetDisplayConfig(c DisplayConfig) {
	Display = c
}

// ShortHash abbreviates a commit hash to the configured display length
func ShortHash(hash string) string {
	if len(hash) > Display.CommitHashDisplayLength {
		return hash[:Display.CommitHashDisplayLength]
	}
	return hash
}
