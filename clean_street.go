package osm2sql

import (
	"regexp"
	"strings"
)

var (
	bracketOrdinalRegExp = regexp.MustCompile(`\(?(\d{1,2})(th|rd|st|TH|nd)\)?`)
	attachedLetterRegExp = regexp.MustCompile(`(\d{1,2})\s?-?([a-zA-Z]{1,2})\b`)
	letterDigitRegExp    = regexp.MustCompile(`\b([A-Z])(\d{1,2})\b`)
	hyphenLetterRegExp   = regexp.MustCompile(`([A-Z])[\-\s](\d{1,2})\b`)
	numberStreetRegExp   = regexp.MustCompile(`\b(\d{1,2}[A-Z]?)\s(Street)\b`)
	bareNumberRegExp     = regexp.MustCompile(`\b\d{1,2}[A-Z]\b`)
	onlyNumberRegExp     = regexp.MustCompile(`^\d{1,2}$`)

	plotNumberGuard    = regexp.MustCompile(`Plot No\. $`)
	twoDigitGuard      = regexp.MustCompile(`\d{2} $`)
	streetSuffixGuard  = regexp.MustCompile(`^ \d{2}`)
	prefixBeforeGuards = []*regexp.Regexp{
		regexp.MustCompile(`Street $`),
		regexp.MustCompile(`France $`),
		regexp.MustCompile(`Center $`),
		regexp.MustCompile(`strict $`),
	}
	prefixAfterGuards = []*regexp.Regexp{
		regexp.MustCompile(`^ Street`),
		regexp.MustCompile(`^ Sikka`),
	}
)

// cleanStreetName runs the street correction chain: abbreviation
// expansion, capitalization, ordinal/bracket removal, street-number
// normalization, then the expected-suffix filter. Names without any
// expected street type collapse to the None sentinel; compound names
// reduce to the part naming the street.
func cleanStreetName(value string, patterns []suffixPattern, expected []string) string {
	clean := expandStreetSuffix(value, patterns)
	clean = removeBracketOrdinals(capWords(clean))
	clean = upperAttachedLetter(clean)
	clean = switchLetterDigit(clean)
	clean = removeHyphenAndSwitch(clean)
	clean = putNumberAfterStreet(clean)
	clean = addStreetPrefix(clean)
	clean = dropNonStreet(clean, expected)
	if clean != NoneValue {
		clean = extractStreet(clean, expected)
	}
	return clean
}

// expandStreetSuffix substitutes known-bad street-type tokens with
// their corrected form on word boundaries, e.g. "Sibaytah St" becomes
// "Sibaytah Street". Tokens not in the table stay untouched.
func expandStreetSuffix(value string, patterns []suffixPattern) string {
	clean := value
	for _, sp := range patterns {
		clean = sp.pattern.ReplaceAllString(clean, sp.replacement)
	}
	return clean
}

// removeBracketOrdinals strips brackets and ordinal suffixes around
// street numbers: "Sa'ada Street (19th)" becomes "Sa'ada Street 19".
func removeBracketOrdinals(name string) string {
	return bracketOrdinalRegExp.ReplaceAllString(name, "$1")
}

// upperAttachedLetter uppercases a letter attached to a street number
// and removes the gap: "Street 6a" => "Street 6A", "11 B" => "11B".
func upperAttachedLetter(name string) string {
	return attachedLetterRegExp.ReplaceAllStringFunc(name, func(m string) string {
		parts := attachedLetterRegExp.FindStringSubmatch(m)
		return parts[1] + strings.ToUpper(parts[2])
	})
}

// switchLetterDigit moves a letter prefix behind the digits:
// "E11" => "11E".
func switchLetterDigit(name string) string {
	return letterDigitRegExp.ReplaceAllStringFunc(name, func(m string) string {
		parts := letterDigitRegExp.FindStringSubmatch(m)
		return parts[2] + strings.ToUpper(parts[1])
	})
}

// removeHyphenAndSwitch removes the hyphen or space between a letter
// and the digits and switches them: "M-26" => "26M". Plot numbers such
// as "Plot No. M-26" are left alone.
func removeHyphenAndSwitch(name string) string {
	return replaceAllGuarded(hyphenLetterRegExp, name, func(groups []string) string {
		return groups[2] + strings.ToUpper(groups[1])
	}, []*regexp.Regexp{plotNumberGuard}, nil)
}

// putNumberAfterStreet turns a "Street"-suffix form into the prefix
// form: "17 Street" => "Street 17". Enumerated sub-streets such as
// "1 Street 17" keep their order.
func putNumberAfterStreet(name string) string {
	return replaceAllGuarded(numberStreetRegExp, name, func(groups []string) string {
		return groups[2] + " " + groups[1]
	}, []*regexp.Regexp{twoDigitGuard}, []*regexp.Regexp{streetSuffixGuard})
}

// addStreetPrefix prefixes a bare street number with "Street":
// "11B" => "Street 11B". Numbers already qualified by "Street" (or
// part of known compound names) are left alone.
func addStreetPrefix(name string) string {
	clean := replaceAllGuarded(bareNumberRegExp, name, func(groups []string) string {
		return "Street " + groups[0]
	}, prefixBeforeGuards, prefixAfterGuards)
	if onlyNumberRegExp.MatchString(clean) {
		return "Street " + clean
	}
	return clean
}

// dropNonStreet collapses values carrying no expected street type to
// the None sentinel: POI names, raw coordinates, P.O. boxes.
func dropNonStreet(name string, expected []string) string {
	for _, streetType := range expected {
		if strings.Contains(name, streetType) {
			return name
		}
	}
	return NoneValue
}

// extractStreet reduces a compound value to the part naming the
// street: "Jumeirah Village Triangle, District 2, Street 5" becomes
// "Street 5".
func extractStreet(name string, expected []string) string {
	for _, sep := range []string{"-", ","} {
		if !strings.Contains(name, sep) {
			continue
		}
		for _, part := range strings.Split(name, sep) {
			for _, streetType := range expected {
				if strings.Contains(part, streetType) {
					return strings.TrimSpace(part)
				}
			}
		}
	}
	return name
}

// replaceAllGuarded is ReplaceAllStringFunc with context guards: a
// match is skipped when the text before it matches any of notBefore or
// the text after it matches any of notAfter. RE2 has no lookaround, so
// the guards are checked explicitly per match.
func replaceAllGuarded(re *regexp.Regexp, s string, repl func(groups []string) string, notBefore, notAfter []*regexp.Regexp) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		skip := false
		for _, guard := range notBefore {
			if guard.MatchString(s[:start]) {
				skip = true
				break
			}
		}
		if !skip {
			for _, guard := range notAfter {
				if guard.MatchString(s[end:]) {
					skip = true
					break
				}
			}
		}
		if skip {
			continue
		}
		groups := make([]string, 0, len(m)/2)
		for i := 0; i < len(m); i += 2 {
			if m[i] < 0 {
				groups = append(groups, "")
			} else {
				groups = append(groups, s[m[i]:m[i+1]])
			}
		}
		b.WriteString(s[last:start])
		b.WriteString(repl(groups))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}
