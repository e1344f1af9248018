package config

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	Colors string `yaml:"colors"` // auto, always, never
}

// UseColors decides whether console output is colored, given whether the
// destination is a terminal.
func (l LoggingConfig) UseColors(isTerminal bool) bool {
	switch l.Colors {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal
	}
}
