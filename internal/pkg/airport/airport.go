package airport

import (
	"regexp"
	"strings"
)

// Airport is a static suggestion entry used by the search form autocomplete.
type Airport struct {
	City    string `json:"city"`
	Code    string `json:"code"`
	Country string `json:"country"`
}

// Label returns the display form used by the search inputs, e.g. "Delhi (DEL)".
func (a Airport) Label() string {
	return a.City + " (" + a.Code + ")"
}

// Airports is the built-in suggestion dataset.
var Airports = []Airport{
	{City: "Delhi", Code: "DEL", Country: "India"},
	{City: "Mumbai", Code: "BOM", Country: "India"},
	{City: "Bangalore", Code: "BLR", Country: "India"},
	{City: "Chennai", Code: "MAA", Country: "India"},
	{City: "Kolkata", Code: "CCU", Country: "India"},
	{City: "London", Code: "LHR", Country: "UK"},
	{City: "New York", Code: "JFK", Country: "USA"},
	{City: "Paris", Code: "CDG", Country: "France"},
	{City: "Dubai", Code: "DXB", Country: "UAE"},
	{City: "Singapore", Code: "SIN", Country: "Singapore"},
}

const maxSuggestions = 8

var codePattern = regexp.MustCompile(`\(([A-Za-z0-9]{2,4})\)`)

// ExtractCode derives an airport code from free-text input. A parenthesized
// 2-4 character alphanumeric code wins, e.g. "Delhi (DEL)" -> "DEL".
// Otherwise the trimmed input is returned as-is.
func ExtractCode(input string) string {
	if input == "" {
		return ""
	}

	m := codePattern.FindStringSubmatch(input)
	if len(m) == 2 {
		return strings.ToUpper(m[1])
	}

	return strings.TrimSpace(input)
}

// Suggest returns up to 8 airports whose city or code contains the query,
// case insensitive. An empty query returns nothing.
func Suggest(query string) []Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	matches := []Airport{}
	for _, a := range Airports {
		if strings.Contains(strings.ToLower(a.City), q) ||
			strings.Contains(strings.ToLower(a.Code), q) {
			matches = append(matches, a)
		}

		if len(matches) == maxSuggestions {
			break
		}
	}

	return matches
}
