package domain

import "strings"

// Location is the structured address shape captured by the conversational
// platform. Every field is optional.
type Location struct {
	Street    string
	City      string
	AdminArea string
	Country   string
}

// FormatAddress flattens a location into a single display string. Fields
// are taken in fixed order, empty ones are skipped, and the survivors are
// joined with ", ". A nil location yields the empty string.
func FormatAddress(loc *Location) string {
	if loc == nil {
		return ""
	}
	fields := []string{loc.Street, loc.City, loc.AdminArea, loc.Country}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, ", ")
}
