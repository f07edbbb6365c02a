package osm2sql

import (
	"regexp"
	"sort"

	"github.com/pkg/errors"
)

// AuditCheck describes a single named check: the tag key to inspect,
// the pattern a value is expected to match and the set of values which
// are accepted even though they don't match.
type AuditCheck struct {
	Exceptions map[string]struct{}
	Pattern    *regexp.Regexp
	Name       string
	Key        string
}

// AuditReport maps check name to the set of distinct failing values.
type AuditReport map[string]map[string]struct{}

// Failing returns sorted failing values for the given check name.
func (report AuditReport) Failing(checkName string) []string {
	values := make([]string, 0, len(report[checkName]))
	for value := range report[checkName] {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Auditor inspects elements against a set of checks. It never mutates
// the elements and keeps only distinct failing values per check.
type Auditor struct {
	report AuditReport
	checks []AuditCheck
}

func NewAuditor(checks ...AuditCheck) *Auditor {
	report := make(AuditReport, len(checks))
	for _, check := range checks {
		report[check.Name] = make(map[string]struct{})
	}
	return &Auditor{
		checks: checks,
		report: report,
	}
}

// Inspect runs every check against the element's tags. A key absent
// from the element is simply not audited for that element.
func (auditor *Auditor) Inspect(elem *Element) {
	for _, check := range auditor.checks {
		for _, tag := range elem.Tags {
			if tag.Key != check.Key {
				continue
			}
			if check.Pattern != nil && check.Pattern.MatchString(tag.Value) {
				continue
			}
			if _, ok := check.Exceptions[tag.Value]; ok {
				continue
			}
			auditor.report[check.Name][tag.Value] = struct{}{}
		}
	}
}

func (auditor *Auditor) Report() AuditReport {
	return auditor.report
}

// AuditFile streams the given OSM file through the set of checks and
// returns the report. Diagnostic side channel only: it opens its own
// scan and leaves the file untouched.
func AuditFile(filename string, checks ...AuditCheck) (AuditReport, error) {
	reader, err := NewElementReader(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare element reader")
	}
	defer reader.Close()
	auditor := NewAuditor(checks...)
	for reader.Next() {
		auditor.Inspect(reader.Element())
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't audit OSM data")
	}
	return auditor.Report(), nil
}

var streetTypeRegExp = regexp.MustCompile(`\S+\.?$`)

// AuditStreetTypes groups street names by their trailing street-type
// token and reports the groups whose type is not in the expected set.
// E.g. "Sibaytah St" is grouped under "St".
func AuditStreetTypes(filename string, key string, expected map[string]struct{}) (map[string]map[string]struct{}, error) {
	reader, err := NewElementReader(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare element reader")
	}
	defer reader.Close()
	streetTypes := make(map[string]map[string]struct{})
	for reader.Next() {
		for _, tag := range reader.Element().Tags {
			if tag.Key != key {
				continue
			}
			streetType := streetTypeRegExp.FindString(tag.Value)
			if streetType == "" {
				continue
			}
			if _, ok := expected[streetType]; ok {
				continue
			}
			if _, ok := streetTypes[streetType]; !ok {
				streetTypes[streetType] = make(map[string]struct{})
			}
			streetTypes[streetType][tag.Value] = struct{}{}
		}
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't audit street types")
	}
	return streetTypes, nil
}

// CountTagKeys counts occurrences of every tag key across the file.
// Used to decide which keys are worth auditing at all.
func CountTagKeys(filename string) (map[string]int, error) {
	reader, err := NewElementReader(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare element reader")
	}
	defer reader.Close()
	counts := make(map[string]int)
	for reader.Next() {
		for _, tag := range reader.Element().Tags {
			counts[tag.Key]++
		}
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrap(err, "Can't count tag keys")
	}
	return counts, nil
}
