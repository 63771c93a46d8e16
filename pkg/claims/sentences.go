package claims

import (
	"regexp"
	"strings"
)

// nonSentenceEndings lists abbreviations that end with a period but should
// not trigger a sentence split, transcribed from
// clinical_preprocessing.py's NON_SENTENCE_ENDINGS.
var nonSentenceEndings = regexp.MustCompile(`(?i)\b(?:` +
	`Dr|Mr|Mrs|Ms|Prof|Jr|Sr|` +
	`vs|etc|approx|est|` +
	`q\.\d+h|q\.h\.s|q\.d|` +
	`a\.m|p\.m|` +
	`e\.g|i\.e|` +
	`pt|wt|ht|` +
	`Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec` +
	`)\.\s*$`)

var trailingDecimalPattern = regexp.MustCompile(`\d+\.\d+\.$`)

// splitClinicalSentences splits text into sentences word-by-word, treating
// a trailing period as sentence-ending unless it looks like a protected
// abbreviation or the tail of a decimal ("14.2."). Grounded on
// clinical_preprocessing.py's split_clinical_sentences.
func splitClinicalSentences(text string) []string {
	var sentences []string
	var current []string
	words := strings.Fields(text)

	for i, word := range words {
		current = append(current, word)

		switch {
		case strings.HasSuffix(word, ".") && len(word) > 1:
			joined := strings.Join(current, " ")
			if nonSentenceEndings.MatchString(joined) {
				continue
			}
			if trailingDecimalPattern.MatchString(word) {
				if i+1 < len(words) && startsUpper(words[i+1]) {
					sentences = append(sentences, joined)
					current = nil
				}
				continue
			}
			sentences = append(sentences, joined)
			current = nil
		case strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?"):
			sentences = append(sentences, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, strings.Join(current, " "))
	}

	var out []string
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if len(trimmed) > 10 {
			out = append(out, trimmed)
		}
	}
	return out
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	r := s[0]
	return r >= 'A' && r <= 'Z'
}

var bulletPrefixPattern = regexp.MustCompile(`^[\s]*[-•*>]+\s*`)

// splitSourceLines splits source context into lines for claim-to-source
// matching: bullet/line-oriented first, falling back to clinical sentence
// splitting when a line runs past 40 words or the text has no newlines at
// all. Grounded on spec.md §4.3 step 1.
func splitSourceLines(source string) []string {
	rawLines := strings.Split(source, "\n")
	var lines []string
	for _, l := range rawLines {
		trimmed := strings.TrimSpace(bulletPrefixPattern.ReplaceAllString(l, ""))
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	needsSentenceSplit := !strings.Contains(source, "\n")
	if !needsSentenceSplit {
		for _, l := range lines {
			if len(strings.Fields(l)) > 40 {
				needsSentenceSplit = true
				break
			}
		}
	}

	if needsSentenceSplit {
		return splitClinicalSentences(source)
	}
	return lines
}
