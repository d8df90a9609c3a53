package leaderboard

import (
	"errors"
	"strings"
)

// MaxNameLength is the longest display name kept on the board.
const MaxNameLength = 12

// DefaultName is recorded by the service when a submitted name normalizes
// to nothing.
const DefaultName = "UNKNOWN"

// ErrEmptyName is returned when a name has no usable characters.
var ErrEmptyName = errors.New("leaderboard: name is empty after normalization")

func allowedNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '-':
		return true
	}
	return false
}

// FilterNameInput keeps only allowed characters, upper-cased, capped at
// MaxNameLength. It does not trim, so it is suitable for live input.
func FilterNameInput(raw string) string {
	var b strings.Builder
	n := 0
	for _, r := range raw {
		if n == MaxNameLength {
			break
		}
		if allowedNameRune(r) {
			b.WriteRune(r)
			n++
		}
	}
	return strings.ToUpper(b.String())
}

// NormalizeName strips disallowed characters, trims, upper-cases and
// truncates raw to MaxNameLength. The result is never empty.
func NormalizeName(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if allowedNameRune(r) {
			b.WriteRune(r)
		}
	}
	name := strings.ToUpper(strings.TrimSpace(b.String()))
	if len(name) > MaxNameLength {
		name = strings.TrimSpace(name[:MaxNameLength])
	}
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// NormalizeNameOrDefault is NormalizeName falling back to DefaultName.
func NormalizeNameOrDefault(raw string) string {
	name, err := NormalizeName(raw)
	if err != nil {
		return DefaultName
	}
	return name
}
