package osm2sql

import "regexp"

// Correction tables and expected-value sets for the Dubai / Abu Dhabi
// extract. Kept as explicit values so that components can be tested
// with alternate tables.

var (
	DefaultStreetMapping = map[string]string{
		"St.":         "Street",
		"St":          "Street",
		"st.":         "Street",
		"st":          "Street",
		"sweet":       "Street",
		"street":      "Street",
		"Rd.":         "Road",
		"Rd":          "Road",
		"rd":          "Road",
		"rd.":         "Road",
		"road":        "Road",
		"Roud":        "Road",
		"Streetrr":    "Street",
		"Street`":     "Street",
		"Street3":     "Street 3",
		"Street1":     "Street 1",
		"ROAD":        "Road",
		"Streeet":     "Street",
		"Steet":       "Street",
		"Sreet":       "Street",
		"STREET":      "Street",
		"Rounadabout": "Roundabout",
		"blvd":        "Boulevard",
		"exit":        "Exit",
		"track":       "Track",
		"Atreet":      "Street",
		"Road:":       "Road",
		"corniche":    "Corniche",
	}

	ExpectedStreetTypes = []string{
		"Street", "Avenue", "Boulevard", "Drive", "Court", "Place", "Square", "Lane", "Road",
		"Trail", "Parkway", "Commons", "Slipway", "Way", "Walk", "Highway", "Roundabout", "Exit",
		"Link", "Track", "Corniche",
	}

	DefaultCityMapping = map[string]string{
		"A Ain":                     "Al Ain",
		"Al AIn":                    "Al Ain",
		"sharja":                    "Sharjah",
		"Duba":                      "Dubai",
		"Mussafah M 45- Abu Dhabi":  "Mussafah",
		"Musaffah Industrial Area":  "Mussafah",
		"Duabi":                     "Dubai",
		"Al Safa 1":                 "Dubai",
		"Al Safa 2":                 "Dubai",
		"Jumeirah 1":                "Dubai",
		"Jumeirah 3":                "Dubai",
		"Jumeirah Village Circle":   "Dubai",
		"Sjarjah":                   "Sharjah",
		"samha":                     "Al Samha",
		"JVT":                       "Dubai",
		"Al Quoz Industrial Area 2": "Dubai",
		"Jumeirah Lakes Towers":     "Dubai",
		"JLT Cluster Y":             "Dubai",
		"Karama":                    "Al Karama",
	}

	ExpectedCities = []string{
		"Abu Dhabi", "Dubai", "Dibba Al-Fujairah", "Al Ain", "Fujairah", "Sharjah", "Al Nud",
		"Mussafah", "Ajman", "Saadiyat Island", "Al Reem Island", "Khalifa City A", "Khalifa City B",
		"Khalifa City C", "Al Towayya", "Hatta", "Al Khan", "Al Maryah Island", "Muhammad Bin Zayed City",
		"Al Karama", "Al Samha", "Umm Al Quwain", "Ras al Khaimah", "Yas Island",
	}

	DefaultSurfaceMapping = map[string]string{
		"running surface": "running_surface",
		"Elevated":        "elevated",
		"paving_stoness":  "paving_stones",
		"pavin":           "paving",
		"paving stones":   "paving_stones",
		"unpaveds":        "unpaved",
		"unpaved`":        "unpaved",
		"paving`":         "paving",
		"asphalt`":        "asphalt",
	}

	DefaultBuildingMapping = map[string]string{
		"Airport_terminal":    "terminal",
		"Office_And_entrance": "commercial",
		"MAJ Building":        "yes",
		"Complex_A_&_B":       "yes",
		"yes;mosque":          "mosque",
		"Tourist_Exhibition":  "yes",
		"Gate 3":              "yes",
		"Offices":             "commercial",
		"office":              "commercial",
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Key:oneway
	ExpectedOneway = []string{"yes", "no", "-1", "reversible", "alternating"}
)

// DefaultCleanRules wires the correction tables to their tag keys with
// the per-category cleaning strategy.
func DefaultCleanRules() map[string]CleanRule {
	return map[string]CleanRule{
		"addr:street": {
			Strategy: STRATEGY_STREET,
			Mapping:  DefaultStreetMapping,
			Expected: ExpectedStreetTypes,
		},
		"addr:city": {
			Strategy: STRATEGY_CITY,
			Mapping:  DefaultCityMapping,
			Expected: ExpectedCities,
		},
		"building": {
			Strategy: STRATEGY_EXACT,
			Mapping:  DefaultBuildingMapping,
		},
		"surface": {
			Strategy: STRATEGY_EXACT,
			Mapping:  DefaultSurfaceMapping,
		},
		"oneway": {
			Strategy: STRATEGY_EXPECTED_ONLY,
			Expected: ExpectedOneway,
		},
		"phone": {
			Strategy: STRATEGY_PHONE,
		},
	}
}

// DefaultAuditChecks covers the attribute categories worth reporting
// on before a conversion run. A check with a nil pattern accepts only
// the exception values.
func DefaultAuditChecks() []AuditCheck {
	return []AuditCheck{
		{
			Name:    "postal_code",
			Key:     "addr:postcode",
			Pattern: regexp.MustCompile(`^[0-9]{5}$`),
		},
		{
			Name:    "phone",
			Key:     "phone",
			Pattern: regexp.MustCompile(`^\+971[0-9]{8,9}$`),
		},
		{
			Name:       "city",
			Key:        "addr:city",
			Exceptions: stringSet(ExpectedCities),
		},
		{
			Name:       "oneway",
			Key:        "oneway",
			Exceptions: stringSet(ExpectedOneway),
		},
	}
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
