package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxCommandSize is 256 bytes; operator commands are single words.
	DefaultMaxCommandSize = 256
	// EnvMaxCommandSize is the environment variable to override the default
	EnvMaxCommandSize = "SCENEFLOW_MAX_COMMAND_SIZE"
)

var (
	ErrCommandTooLarge = errors.New("command exceeds maximum allowed size")
	ErrInvalidUTF8     = errors.New("command contains invalid UTF-8 sequences")
)

// SanitizeCommand normalizes an operator command read from a line-based source.
// It rejects oversized or invalid UTF-8 input, drops control characters and
// returns the trimmed, lower-cased command.
func SanitizeCommand(input string) (string, error) {
	limit := getMaxCommandSize()
	if len(input) > limit {
		// Rejected rather than truncated: a truncated command could name another button.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrCommandTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Strips ANSI escapes, NULL, BEL and line endings.
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	return strings.ToLower(strings.TrimSpace(clean)), nil
}

func getMaxCommandSize() int {
	if val := os.Getenv(EnvMaxCommandSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxCommandSize
}
