package promptsplit

import (
	"fmt"
	"strings"
)

// ValidateName checks that name and env are safe for file paths, URLs and cache keys.
// name must be non-empty; both may contain only ASCII letters, digits, '-' and '_'.
// '.' is reserved as the name/env separator in file names, ':' for cache keys.
func ValidateName(name, env string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if !validNamePart(name) {
		return fmt.Errorf("%w: name %q", ErrInvalidName, name)
	}
	if env != "" && !validNamePart(env) {
		return fmt.Errorf("%w: env %q", ErrInvalidName, env)
	}
	return nil
}

func validNamePart(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return false
		default:
			return true
		}
	}) < 0
}
