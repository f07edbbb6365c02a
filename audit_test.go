package osm2sql

import (
	"regexp"
	"testing"

	"github.com/paulmach/osm"
)

func TestAuditPostalCode(t *testing.T) {
	auditor := NewAuditor(AuditCheck{
		Name:       "postal_code",
		Key:        "addr:postcode",
		Pattern:    regexp.MustCompile(`^[0-9]{5}$`),
		Exceptions: map[string]struct{}{},
	})
	auditor.Inspect(&Element{
		Kind: KIND_NODE,
		ID:   1,
		Tags: osm.Tags{{Key: "addr:postcode", Value: "DXB-12"}},
	})
	auditor.Inspect(&Element{
		Kind: KIND_NODE,
		ID:   2,
		Tags: osm.Tags{{Key: "addr:postcode", Value: "12345"}},
	})
	failing := auditor.Report().Failing("postal_code")
	if len(failing) != 1 || failing[0] != "DXB-12" {
		t.Errorf("Expected failing set [DXB-12], but got %v", failing)
	}
}

func TestAuditExceptions(t *testing.T) {
	auditor := NewAuditor(AuditCheck{
		Name:       "postal_code",
		Key:        "addr:postcode",
		Pattern:    regexp.MustCompile(`^[0-9]{5}$`),
		Exceptions: map[string]struct{}{"DXB-12": {}},
	})
	auditor.Inspect(&Element{
		Kind: KIND_NODE,
		ID:   1,
		Tags: osm.Tags{{Key: "addr:postcode", Value: "DXB-12"}},
	})
	if failing := auditor.Report().Failing("postal_code"); len(failing) != 0 {
		t.Errorf("Exempted value must not fail, but got %v", failing)
	}
}

func TestAuditAbsentKey(t *testing.T) {
	auditor := NewAuditor(DefaultAuditChecks()...)
	auditor.Inspect(&Element{
		Kind: KIND_NODE,
		ID:   1,
		Tags: osm.Tags{{Key: "name", Value: "Corner Shop"}},
	})
	report := auditor.Report()
	for name := range report {
		if len(report[name]) != 0 {
			t.Errorf("Check '%s' must not report an element without the audited key", name)
		}
	}
}

func TestAuditFile(t *testing.T) {
	report, err := AuditFile("./testdata/sample.osm", DefaultAuditChecks()...)
	if err != nil {
		t.Fatal(err)
	}
	if failing := report.Failing("postal_code"); len(failing) != 1 || failing[0] != "DXB-12" {
		t.Errorf("Expected postal_code failing set [DXB-12], but got %v", failing)
	}
	if failing := report.Failing("city"); len(failing) != 1 || failing[0] != "Duba" {
		t.Errorf("Expected city failing set [Duba], but got %v", failing)
	}
	if failing := report.Failing("oneway"); len(failing) != 1 || failing[0] != "Street 43" {
		t.Errorf("Expected oneway failing set [Street 43], but got %v", failing)
	}
}

func TestAuditStreetTypes(t *testing.T) {
	streetTypes, err := AuditStreetTypes("./testdata/sample.osm", "addr:street", stringSet(ExpectedStreetTypes))
	if err != nil {
		t.Fatal(err)
	}
	names, ok := streetTypes["St"]
	if !ok {
		t.Fatalf("Expected street type 'St' in report, but got %v", streetTypes)
	}
	if _, ok := names["123 Main St"]; !ok {
		t.Errorf("Expected street name '123 Main St' grouped under 'St', but got %v", names)
	}
}

func TestCountTagKeys(t *testing.T) {
	counts, err := CountTagKeys("./testdata/sample.osm")
	if err != nil {
		t.Fatal(err)
	}
	if counts["addr:street"] != 1 {
		t.Errorf("Expected 1 occurrence of 'addr:street', but got %d", counts["addr:street"])
	}
	if counts["surface"] != 1 {
		t.Errorf("Expected 1 occurrence of 'surface', but got %d", counts["surface"])
	}
}
