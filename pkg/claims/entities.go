package claims

import (
	"regexp"
	"strings"
)

// Entity regexes stand in for the NER model entities.py/extractor.py use
// (spaCy's en_core_web_trf). Each pattern is tagged with the factual entity
// class it approximates from spec.md §4.3's FACTUAL_ENTITY_TYPES list.
var (
	moneyPattern      = regexp.MustCompile(`\$[\d,]+(?:\.\d+)?|\b\d+(?:\.\d+)?\s*(?:dollars?|USD|EUR|GBP)\b`)
	percentPattern    = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:%|percent)\b`)
	quantityPattern   = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:kg|mg|ml|km|miles?|months?|years?|days?|hours?|minutes?|weeks?|billion|million|thousand)\b`)
	datePattern       = regexp.MustCompile(`(?i)\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2}(?:,\s*\d{4})?\b|\b(?:19|20)\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	timePattern       = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`)
	ordinalPattern    = regexp.MustCompile(`(?i)\b\d+(?:st|nd|rd|th)\b|\b(?:first|second|third|fourth|fifth)\b`)
	cardinalPattern   = regexp.MustCompile(`\b\d+\b`)
	lawPattern        = regexp.MustCompile(`(?i)\b(?:Section|Clause|Article|Act|Regulation)\s+\d+(?:\.\d+)*\b`)
	orgSuffixPattern  = regexp.MustCompile(`\b[A-Z][A-Za-z&]*(?:\s+[A-Z][A-Za-z&]*)*\s+(?:Inc\.?|Corp\.?|LLC|Ltd\.?|Co\.?|Group|Partners|Holdings)\b`)
	personTitlePattern = regexp.MustCompile(`\b(?:Dr|Mr|Mrs|Ms|Prof)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`)
	capSequencePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}\b`)
	norpPattern       = regexp.MustCompile(`\b(?:American|British|Canadian|European|Chinese|Japanese|Republican|Democrat|Christian|Muslim|Jewish|Catholic)\b`)

	gpeTerms = []string{
		"north america", "united states", "canada", "british columbia",
		"vancouver", "europe", "asia", "california", "new york", "texas",
		"ontario", "quebec", "united kingdom", "washington",
	}

	// Medical-term closed lists, grounded on clinical_preprocessing.py's
	// abbreviation table and extractor.py's domain-assertion vocabulary.
	drugSuffixes = regexp.MustCompile(`(?i)\b\w+(?:cillin|mycin|azole|statin|pril|sartan|olol|azepam|prazole|oxacin|cycline|dipine)\b`)
	diseaseTerms = regexp.MustCompile(`(?i)\b(?:hypertension|diabetes|pneumonia|sepsis|stroke|myocardial infarction|atrial fibrillation|heart failure|renal failure|pulmonary embolism|deep vein thrombosis|cancer|carcinoma|lymphoma|leukemia|copd|asthma|cirrhosis|hepatitis)\b`)
	stagedConditionPattern = regexp.MustCompile(`(?i)\b(?:stage|grade|type)\s+(?:[ivx]+|\d+|[A-C])\b`)
)

// stopShortEntities are pseudo-NER matches too generic to count as
// hallucination candidates, matching entities.py's len(cleaned) < 2 guard
// plus a few sentence-leading false positives from capSequencePattern.
var stopShortEntities = map[string]bool{
	"the": true, "this": true, "however": true, "therefore": true,
}

// extractEntitySpans returns every entity-like substring in text,
// deduplicated case-insensitively; the spans carry no entity-class tag.
// Used both for the extraction gate (has-factual-entity) and as the entity
// list carried on each Claim.
func extractEntitySpans(text string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(matches []string) {
		for _, m := range matches {
			key := strings.ToLower(strings.TrimSpace(m))
			if key == "" || seen[key] || stopShortEntities[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(m))
		}
	}

	add(moneyPattern.FindAllString(text, -1))
	add(percentPattern.FindAllString(text, -1))
	add(quantityPattern.FindAllString(text, -1))
	add(datePattern.FindAllString(text, -1))
	add(timePattern.FindAllString(text, -1))
	add(lawPattern.FindAllString(text, -1))
	add(orgSuffixPattern.FindAllString(text, -1))
	add(personTitlePattern.FindAllString(text, -1))
	add(norpPattern.FindAllString(text, -1))
	add(ordinalPattern.FindAllString(text, -1))

	lower := strings.ToLower(text)
	for _, gpe := range gpeTerms {
		if strings.Contains(lower, gpe) {
			add([]string{gpe})
		}
	}

	add(capSequencePattern.FindAllString(text, -1))

	// CARDINAL is the weakest signal; only add bare numbers not already
	// captured by a more specific pattern above.
	for _, m := range cardinalPattern.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if !seen[key] {
			seen[key] = true
			out = append(out, m)
		}
	}

	return out
}

// hasFactualEntity reports whether text contains at least one NER hit from
// spec.md §4.3's factual-entity-class list (PERSON, ORG, GPE, DATE, TIME,
// MONEY, PERCENT, CARDINAL, ORDINAL, QUANTITY, LAW, PRODUCT, EVENT, NORP,
// FAC, LOC, WORK_OF_ART). The pseudo-NER patterns above cover the classes
// observable without a trained model; PRODUCT/EVENT/FAC/WORK_OF_ART ride
// along on the capitalized-sequence and org-suffix patterns.
func hasFactualEntity(text string) bool {
	return moneyPattern.MatchString(text) ||
		percentPattern.MatchString(text) ||
		quantityPattern.MatchString(text) ||
		datePattern.MatchString(text) ||
		timePattern.MatchString(text) ||
		lawPattern.MatchString(text) ||
		orgSuffixPattern.MatchString(text) ||
		personTitlePattern.MatchString(text) ||
		norpPattern.MatchString(text) ||
		ordinalPattern.MatchString(text) ||
		capSequencePattern.MatchString(text) ||
		containsGPE(text)
}

func containsGPE(text string) bool {
	lower := strings.ToLower(text)
	for _, gpe := range gpeTerms {
		if strings.Contains(lower, gpe) {
			return true
		}
	}
	return false
}

// hasMedicalFact reports whether text contains a domain-specific medical
// fact indicator: a drug name (by suffix), a disease/condition term, or a
// staged/graded condition ("Stage III", "Grade 2"). Grounded on
// clinical_preprocessing.py's condition vocabulary.
func hasMedicalFact(text string) bool {
	return drugSuffixes.MatchString(text) || diseaseTerms.MatchString(text) || stagedConditionPattern.MatchString(text)
}

// normalizeEntity lowercases and strips trailing punctuation, matching
// entities.py's find_hallucinated_entities normalization.
func normalizeEntity(s string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(s)), ".,;:")
}

// FindHallucinatedEntities returns AI-output entities that are not a
// substring match (in either direction) of any source-context entity.
// Grounded on entities.py's find_hallucinated_entities.
func FindHallucinatedEntities(aiOutput, sourceContext string) []string {
	if strings.TrimSpace(sourceContext) == "" {
		return nil
	}

	contextEntities := map[string]bool{}
	for _, e := range extractEntitySpans(sourceContext) {
		contextEntities[normalizeEntity(e)] = true
	}

	var hallucinated []string
	seen := map[string]bool{}
	for _, e := range extractEntitySpans(aiOutput) {
		normalized := normalizeEntity(e)
		if normalized == "" || len(normalized) < 2 || seen[normalized] {
			continue
		}
		if contextEntities[normalized] {
			continue
		}
		if fuzzyMatch(normalized, contextEntities) {
			continue
		}
		hallucinated = append(hallucinated, e)
		seen[normalized] = true
	}
	return hallucinated
}

// fuzzyMatch reports whether entity is a substring of any context entity,
// or vice versa.
func fuzzyMatch(entity string, contextEntities map[string]bool) bool {
	for ctx := range contextEntities {
		if strings.Contains(entity, ctx) || strings.Contains(ctx, entity) {
			return true
		}
	}
	return false
}
