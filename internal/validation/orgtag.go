package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var orgTagRegex = regexp.MustCompile(`^[A-Za-z0-9]{2,10}$`)

// Tags that would collide with routing or read as impersonation.
var reservedOrgTags = map[string]struct{}{
	"admin":  {},
	"api":    {},
	"staff":  {},
	"system": {},
	"mod":    {},
}

// ValidateOrgTag validates an organization tag: the short all-caps style
// identifier shown next to player names (e.g. "NAVI", "FUR").
func ValidateOrgTag(tag string) error {
	if !orgTagRegex.MatchString(tag) {
		return fmt.Errorf("tag must be 2-10 characters and contain only letters and numbers")
	}

	if _, exists := reservedOrgTags[strings.ToLower(tag)]; exists {
		return fmt.Errorf("tag is reserved")
	}

	return nil
}
