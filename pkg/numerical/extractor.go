package numerical

import (
	"regexp"
	"strconv"
	"strings"
)

// Context classifier patterns, transcribed from
// original_source/meerkat-numerical-verify/app/extractor.py.
var (
	medicationPattern = regexp.MustCompile(`(?i)\b(?:mg|mcg|µg|ug|g|ml|units?|iu|meq)\b|\b(?:dose|dosage|dosing|tid|bid|qid|qd|daily|twice|prn|po|iv|im|sq|sl|pr)\b`)
	labValuePattern    = regexp.MustCompile(`(?i)\b(?:WBC|RBC|Hgb|Hb|Hct|PLT|BUN|Cr|creatinine|Na|K|Cl|CO2|glucose|troponin|BNP|procalcitonin|lactate|AST|ALT|ALP|GFR|eGFR|INR|PT|PTT|A1c|HbA1c|TSH|T3|T4|CRP|ESR|albumin|bilirubin|lipase|amylase|ferritin|iron|TIBC|folate|B12|magnesium|phosphorus|calcium|urate)\b`)
	vitalSignPattern   = regexp.MustCompile(`(?i)\b(?:HR|heart\s+rate|BP|blood\s+pressure|SBP|DBP|systolic|diastolic|SpO2|O2\s*sat|saturation|RR|resp(?:iratory)?\s+rate|temp(?:erature)?|BMI|weight|height|MAP)\b`)
	durationPattern    = regexp.MustCompile(`(?i)\b(?:day|days|week|weeks|month|months|year|years|hour|hours|minute|minutes|duration|period|term)\b`)
	monetaryPattern    = regexp.MustCompile(`(?i)(?:[$€£¥]|USD|EUR|GBP|CAD|revenue|cost|price|salary|fee|payment|amount|value|worth|damages|penalty|fine)\b`)
	percentagePattern  = regexp.MustCompile(`(?i)\b(?:%|percent|pct|margin|rate|ratio|yield|return|growth|efficacy|sensitivity|specificity|probability|p-value|CI)\b`)
	aeCountPattern     = regexp.MustCompile(`(?i)\b(?:adverse|event|events|case|cases|incident|incidents|occurrence|occurrences|patient|patients|subject|subjects|death|deaths|SAE|AE|TEAE)\b`)

	// numberPattern matches the number and an optional trailing unit,
	// without a Go-unsupported lookahead; boundary enforcement happens in
	// ExtractNumbers via isBoundaryChar. Because Go takes the first unit
	// alternative that matches, unit words starting with "m" (miles,
	// months, minutes, million, meq) are listed before the bare "m".
	numberPattern = regexp.MustCompile(`(?i)[$€£¥]?\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?|\.\d+)(?:\s*(%|mg|mcg|µg|ug|g|kg|ml|l|dl|cc|mm|cm|km|miles?|days?|weeks?|months?|years?|hours?|minutes?|billion|million|thousand|bn|tn|units?|iu|meq|m|[bmkt]))?`)

	yearPattern = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	bpPattern   = regexp.MustCompile(`\b(\d{2,3})\s*/\s*(\d{2,3})\b`)
)

// isBoundaryChar reports whether b is one of the characters
// numberPattern's original lookahead required immediately after a match
// (or end of string).
func isBoundaryChar(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ',', ';', '.', '-', ')', ']', ':', '/', 'F', 'f', 'M', 'm':
		return true
	default:
		return false
	}
}

// classifyContext reimplements extractor.py's classify_context: the
// immediate-context classification order is medication, lab value (checked
// against the preceding tokens first, then the combined context),
// adverse-event count, vital sign, monetary, percentage, duration, default.
func classifyContext(context, unit string) ContextType {
	combined := context + " " + unit

	if medicationPattern.MatchString(combined) {
		return ContextMedicationDose
	}

	preceding := context
	if loc := regexp.MustCompile(`[\d.,%]+`).FindStringIndex(context); loc != nil {
		preceding = strings.TrimSpace(context[:loc[0]])
	}
	if labValuePattern.MatchString(preceding) {
		return ContextLabValue
	}
	if labValuePattern.MatchString(combined) {
		return ContextLabValue
	}
	if aeCountPattern.MatchString(combined) {
		return ContextAdverseEventCount
	}
	if vitalSignPattern.MatchString(combined) {
		return ContextVitalSign
	}
	if monetaryPattern.MatchString(combined) {
		return ContextMonetaryValue
	}
	if percentagePattern.MatchString(combined) {
		return ContextPercentage
	}
	if durationPattern.MatchString(combined) {
		return ContextDuration
	}
	return ContextDefault
}

// contextWindow returns the text surrounding position, trimmed, matching
// extractor.py's get_context_window (default window of 30 characters).
func contextWindow(text string, position, window int) string {
	start := position - window
	if start < 0 {
		start = 0
	}
	end := position + window
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}

// nearAny reports whether position is within span of any value in seen.
func nearAny(seen map[int]bool, position, span int) bool {
	for p := range seen {
		if abs(p-position) < span {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func markRange(seen map[int]bool, start, length int) {
	for p := start; p < start+length; p++ {
		seen[p] = true
	}
}

// ExtractNumbers pulls numeric tokens with their surrounding context out of
// text, in three passes: blood-pressure pairs, bare 4-digit years, then all
// remaining numbers with optional unit and contextual classification.
// Grounded on extractor.py's extract_numbers.
func ExtractNumbers(text string) []ExtractedNumber {
	var results []ExtractedNumber
	seen := make(map[int]bool)

	for _, m := range bpPattern.FindAllStringSubmatchIndex(text, -1) {
		pos := m[0]
		if seen[pos] {
			continue
		}
		systolicRaw := text[m[2]:m[3]]
		diastolicRaw := text[m[4]:m[5]]
		systolic, errS := strconv.ParseFloat(systolicRaw, 64)
		diastolic, errD := strconv.ParseFloat(diastolicRaw, 64)
		if errS != nil || errD != nil {
			continue
		}
		context := contextWindow(text, pos, 30)
		results = append(results, ExtractedNumber{
			Value: systolic, Raw: systolicRaw, Unit: "mmHg",
			Context: context, ContextType: ContextVitalSign, Position: pos,
		})
		results = append(results, ExtractedNumber{
			Value: diastolic, Raw: diastolicRaw, Unit: "mmHg",
			Context: context, ContextType: ContextVitalSign, Position: m[4],
		})
		markRange(seen, pos, m[1]-m[0])
	}

	for _, m := range yearPattern.FindAllStringSubmatchIndex(text, -1) {
		pos := m[0]
		if nearAny(seen, pos, 5) {
			continue
		}
		raw := text[m[2]:m[3]]
		year, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		context := contextWindow(text, pos, 30)
		results = append(results, ExtractedNumber{
			Value: year, Raw: raw, Unit: "year",
			Context: context, ContextType: ContextDefault, Position: pos,
		})
		markRange(seen, pos, m[1]-m[0])
	}

	for _, m := range numberPattern.FindAllStringSubmatchIndex(text, -1) {
		matchStart, matchEnd := m[0], m[1]
		if nearAny(seen, matchStart, 3) {
			continue
		}
		if matchEnd < len(text) && !isBoundaryChar(text[matchEnd]) {
			continue
		}

		rawNumber := text[m[2]:m[3]]
		unit := ""
		if m[4] != -1 {
			unit = strings.TrimSpace(text[m[4]:m[5]])
		}

		value, err := strconv.ParseFloat(strings.ReplaceAll(rawNumber, ",", ""), 64)
		if err != nil {
			continue
		}

		if m[2] > 0 {
			preChar := text[m[2]-1]
			if isAlpha(preChar) && len(rawNumber) <= 1 {
				continue
			}
		}

		if factor, ok := multipliers[strings.ToLower(unit)]; ok {
			value *= factor
			unit = ""
		}

		context := contextWindow(text, matchStart, 30)

		immediateStart := matchStart - 15
		if immediateStart < 0 {
			immediateStart = 0
		}
		immediateEnd := matchEnd + 10
		if immediateEnd > len(text) {
			immediateEnd = len(text)
		}
		immediateContext := strings.TrimSpace(text[immediateStart:immediateEnd])

		preTextStart := matchStart - 3
		if preTextStart < 0 {
			preTextStart = 0
		}
		preText := text[preTextStart:matchStart]
		if unit == "" && strings.ContainsAny(preText, "$€£¥") {
			unit = "$"
		}

		contextType := classifyContext(immediateContext, unit)

		results = append(results, ExtractedNumber{
			Value: value, Raw: strings.TrimSpace(text[matchStart:matchEnd]), Unit: unit,
			Context: context, ContextType: contextType, Position: matchStart,
		})
		seen[matchStart] = true
	}

	return results
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
