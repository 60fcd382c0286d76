package util

import (
	"fmt"
	"strings"
)

// CarSlug builds the URL slug for a car: lowercased make and model joined by
// a hyphen, with internal whitespace runs collapsed to single hyphens.
func CarSlug(make, model string) string {
	return Slugify(fmt.Sprintf("%s %s", make, model))
}

// Slugify lowercases the input and replaces every whitespace run with "-".
func Slugify(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, "-")
}
