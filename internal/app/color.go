package app

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// parseColor accepts a 6-hex-digit color with a leading '#' and returns it
// lowercased.
func parseColor(value string) (string, error) {
	// colorful.Hex scans with Sscanf, which tolerates spaces, short digit
	// runs and the 3-digit form.
	if !isHexColor(value) {
		return "", &domain.ColorError{Value: value}
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return "", &domain.ColorError{Value: value}
	}
	return c.Hex(), nil
}

func isHexColor(value string) bool {
	if len(value) != 7 || value[0] != '#' {
		return false
	}
	for i := 1; i < len(value); i++ {
		switch c := value[i]; {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
