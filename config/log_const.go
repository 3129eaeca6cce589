package config

// Color constants for logging
const (
	ColorBlue   = "\033[34m"
	ColorGreen  = "\033[32m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorYellow = "\033[33m"
	ColorReset  = "\033[0m"
)
