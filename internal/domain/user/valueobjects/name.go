package valueobjects

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

const maxNameLength = 100

var namePolicy = bluemonday.StrictPolicy()

// Name is a display name with markup stripped and NFC normalization applied.
type Name struct {
	value string
}

// NewName creates a new Name value object with validation
func NewName(value string) (*Name, error) {
	normalized := norm.NFC.String(strings.TrimSpace(value))
	// the strict policy escapes entities; names are stored as plain text
	sanitized := strings.TrimSpace(html.UnescapeString(namePolicy.Sanitize(normalized)))

	if sanitized == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	if utf8.RuneCountInString(sanitized) > maxNameLength {
		return nil, fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}

	if strings.Contains(sanitized, "  ") {
		return nil, fmt.Errorf("name cannot contain consecutive spaces")
	}

	return &Name{value: sanitized}, nil
}

// String returns the string representation of the name
func (n *Name) String() string {
	return n.value
}
