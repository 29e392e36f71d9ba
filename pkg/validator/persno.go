package validator

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPersNo indicates a malformed personnel number
var ErrInvalidPersNo = errors.New("personnel number must be 4-12 letters or digits")

var persNoRegex = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)

// NormalizePersNo trims and upper-cases a personnel number and checks its shape
func NormalizePersNo(raw string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(raw))
	if !persNoRegex.MatchString(p) {
		return "", ErrInvalidPersNo
	}
	return p, nil
}

// IsValidPersNo reports whether raw is a well-formed personnel number
func IsValidPersNo(raw string) bool {
	_, err := NormalizePersNo(raw)
	return err == nil
}
