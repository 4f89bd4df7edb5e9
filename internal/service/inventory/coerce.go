package inventory

import (
	"strconv"
	"strings"
	"time"
)

// serialEpoch anchors spreadsheet date serials. Day 1 is 1899-12-31 under
// the convention shared by Excel and LibreOffice (with the phantom leap day
// folded in by using Dec 30 as day zero).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order when a cell arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"January 2, 2006",
}

// ParseFlexibleDate normalizes the three shapes a spreadsheet date cell can
// take: a textual date, a numeric date serial, or blank. It never fails;
// anything unparseable comes back as nil, which is the lenient import
// policy for dates.
func ParseFlexibleDate(cell string) *time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "-" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			t = t.UTC()
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		days := int(serial)
		frac := serial - float64(days)
		t := serialEpoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour)))
		return &t
	}

	return nil
}

// ParseFlexibleNumber coerces a numeric-looking cell. Thousands separators
// and a currency prefix are tolerated since price columns are usually
// formatted. Unparseable input yields 0 with ok=false so the import path can
// apply its default-to-zero policy while the caller still knows coercion
// failed.
func ParseFlexibleNumber(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "-" {
		return 0, false
	}

	cell = strings.TrimPrefix(cell, "Rp")
	cell = strings.TrimSpace(cell)
	cell = strings.ReplaceAll(cell, ",", "")

	n, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFlexibleInt is ParseFlexibleNumber truncated to an integer quantity.
func ParseFlexibleInt(cell string) (int, bool) {
	n, ok := ParseFlexibleNumber(cell)
	return int(n), ok
}
