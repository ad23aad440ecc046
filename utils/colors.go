package utils

// ANSI colors used by the terminal output.
const (
	DefaultColor = "\x1b[39m"
	SuccessColor = "\x1b[92m"
	ErrorColor   = "\x1b[31m"
)
