// Package country resolves ISO 3166-1 alpha-2 codes to English country names.
package country

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var regionNames = display.English.Regions()

// Name returns the English name for a two-letter country code. Codes that are
// empty, malformed, or unknown are returned unchanged so the caller can still
// display the raw value.
func Name(code string) string {
	if len(code) != 2 {
		return code
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := regionNames.Name(region); name != "" {
		return name
	}
	return code
}
