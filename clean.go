package osm2sql

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// NoneValue is the sentinel a value is rewritten to when it can not be
// verified against the expected set for its category.
const NoneValue = "None"

type CleanStrategy uint16

const (
	STRATEGY_EXACT = CleanStrategy(iota + 1)
	STRATEGY_EXPECTED_ONLY
	STRATEGY_STREET
	STRATEGY_CITY
	STRATEGY_PHONE
)

func (iotaIdx CleanStrategy) String() string {
	return [...]string{"exact", "expected_only", "street", "city", "phone"}[iotaIdx-1]
}

// CleanRule is the correction table for a single attribute category.
// Mapping translates known-bad tokens to corrected ones, Expected lists
// the values (or value suffixes, depending on the strategy) considered
// already clean.
type CleanRule struct {
	Mapping  map[string]string
	Expected []string
	Strategy CleanStrategy
}

type suffixPattern struct {
	pattern     *regexp.Regexp
	replacement string
}

// Cleaner applies per-category correction rules to tag values. Rules
// are keyed by the full tag key, e.g. "addr:street". Cleaning is pure
// and idempotent: a value not covered by any table passes through, and
// re-cleaning an already clean value is a no-op.
type Cleaner struct {
	rules          map[string]CleanRule
	streetPatterns map[string][]suffixPattern
}

func NewCleaner(rules map[string]CleanRule) *Cleaner {
	cleaner := &Cleaner{
		rules:          rules,
		streetPatterns: make(map[string][]suffixPattern),
	}
	for key, rule := range rules {
		if rule.Strategy == STRATEGY_STREET {
			cleaner.streetPatterns[key] = compileSuffixPatterns(rule.Mapping)
		}
	}
	return cleaner
}

// compileSuffixPatterns prepares one word-boundary pattern per mapping
// key, longest keys first so that e.g. "St." wins over "St". Trailing
// punctuation on a key becomes an optional suffix of the pattern and is
// swallowed by the substitution.
func compileSuffixPatterns(mapping map[string]string) []suffixPattern {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	patterns := make([]suffixPattern, 0, len(keys))
	for _, key := range keys {
		base := strings.TrimRight(key, ".:`")
		if base == "" {
			continue
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(base) + `\b(?:[.:` + "`" + `])?`)
		patterns = append(patterns, suffixPattern{pattern: re, replacement: mapping[key]})
	}
	return patterns
}

// Clean corrects the value of the given tag. Keys without a configured
// rule pass through unmodified.
func (cleaner *Cleaner) Clean(key, value string) string {
	rule, ok := cleaner.rules[key]
	if !ok {
		return value
	}
	switch rule.Strategy {
	case STRATEGY_EXACT:
		return cleanValue(value, rule.Mapping)
	case STRATEGY_EXPECTED_ONLY:
		return cleanExpectedOnly(value, rule.Expected)
	case STRATEGY_STREET:
		return cleanStreetName(value, cleaner.streetPatterns[key], rule.Expected)
	case STRATEGY_CITY:
		return cleanCityName(value, rule.Mapping, rule.Expected)
	case STRATEGY_PHONE:
		return cleanPhone(value)
	}
	return value
}

// HasRule reports whether the given tag key routes through a rule.
func (cleaner *Cleaner) HasRule(key string) bool {
	_, ok := cleaner.rules[key]
	return ok
}

func cleanValue(value string, mapping map[string]string) string {
	if corrected, ok := mapping[value]; ok {
		return corrected
	}
	return value
}

func cleanExpectedOnly(value string, expected []string) string {
	for _, exp := range expected {
		if value == exp {
			return value
		}
	}
	return NoneValue
}

var englishStartRegExp = regexp.MustCompile(`^[a-zA-Z]+`)

// knownWrongCities are entries which look like valid English values but
// are not city names at all.
var knownWrongCities = map[string]struct{}{
	"town":          {},
	"ME-12":         {},
	"AE":            {},
	"San Diego, CA": {},
}

// cleanCityName normalizes a city value: entries containing one of the
// expected city names collapse to that name, known misspellings map
// through the correction table, other Latin-script values keep their
// capitalized form, everything else (Arabic script, numbers) becomes
// the None sentinel.
func cleanCityName(value string, mapping map[string]string, expected []string) string {
	capitalized := capWords(value)
	for _, city := range expected {
		if strings.Contains(capitalized, city) {
			return city
		}
	}
	if corrected, ok := mapping[value]; ok {
		return corrected
	}
	if englishStartRegExp.MatchString(value) {
		if _, wrong := knownWrongCities[value]; wrong {
			return NoneValue
		}
		return capitalized
	}
	return NoneValue
}

var phoneSeparatorRegExp = regexp.MustCompile(`[\s\-().]`)

// cleanPhone normalizes a phone number as a whole value: separators are
// stripped and the international 00 prefix becomes +.
func cleanPhone(value string) string {
	clean := phoneSeparatorRegExp.ReplaceAllString(value, "")
	if strings.HasPrefix(clean, "00") {
		clean = "+" + clean[2:]
	}
	return clean
}

// capWords capitalizes every whitespace-separated word: first character
// upper, the rest lower. Words are re-joined with single spaces.
func capWords(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
