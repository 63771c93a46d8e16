package numerical

import "strings"

// massToMg converts a mass unit to its milligram multiplier.
var massToMg = map[string]float64{
	"mg":  1,
	"mcg": 0.001,
	"µg":  0.001,
	"ug":  0.001,
	"g":   1000,
	"kg":  1_000_000,
}

// volumeToMl converts a volume unit to its milliliter multiplier.
var volumeToMl = map[string]float64{
	"ml": 1,
	"cc": 1,
	"dl": 100,
	"l":  1000,
}

// timeToDays converts a time unit to its day multiplier.
var timeToDays = map[string]float64{
	"day":    1,
	"days":   1,
	"week":   7,
	"weeks":  7,
	"month":  30,
	"months": 30,
	"year":   365,
	"years":  365,
	"hour":   1.0 / 24,
	"hours":  1.0 / 24,
	"minute": 1.0 / 1440,
	"minutes": 1.0 / 1440,
}

// multipliers converts a scalar multiplier word/suffix to its numeric
// factor. Consumed during extraction (spec.md §4.1 step 4): the trailing
// "unit" is actually a multiplier, so it is folded into value and cleared.
var multipliers = map[string]float64{
	"k":        1e3,
	"thousand": 1e3,
	"m":        1e6,
	"million":  1e6,
	"b":        1e9,
	"bn":       1e9,
	"billion":  1e9,
	"t":        1e12,
	"tn":       1e12,
	"trillion": 1e12,
}

// normalizeUnit lowercases, trims spaces and strips trailing "." before a
// unit-table lookup; NormalizeValue separately retries the lookup with a
// trailing "s" removed.
func normalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimRight(u, ".")
	return u
}

// NormalizeValue converts value in unit to the comparator's canonical unit
// for its category (mass→mg, volume→ml, time→days); percentages and
// unrecognized units pass through unchanged. Matches
// original_source/meerkat-numerical-verify/app/normalizer.py's
// normalize_value.
func NormalizeValue(value float64, unit string) (float64, string) {
	u := normalizeUnit(unit)
	stripped := strings.TrimSuffix(u, "s")

	if factor, ok := massToMg[u]; ok {
		return value * factor, "mg"
	}
	if factor, ok := massToMg[stripped]; ok {
		return value * factor, "mg"
	}
	if factor, ok := volumeToMl[u]; ok {
		return value * factor, "ml"
	}
	if factor, ok := volumeToMl[stripped]; ok {
		return value * factor, "ml"
	}
	if factor, ok := timeToDays[u]; ok {
		return value * factor, "days"
	}
	if u == "%" || u == "percent" || u == "percentage" {
		return value, "%"
	}
	return value, u
}
