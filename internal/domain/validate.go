package domain

import (
	"fmt"
	"strings"
)

// Validate checks every candidate against the record invariants.
//
// It returns the settlements that passed, in input order, and one Issue per
// violated rule. A candidate with any issue is excluded from the result.
// Validate never drops a candidate without reporting it.
func Validate(candidates []Candidate) ([]Settlement, []Issue) {
	valid := make([]Settlement, 0, len(candidates))
	var issues []Issue

	seen := make(map[Identity]int, len(candidates))
	for i, c := range candidates {
		s, found := validateOne(i, c)
		if len(found) > 0 {
			issues = append(issues, found...)
			continue
		}

		// Identity is composite; two equal keys in one batch cannot both be addressed.
		if first, ok := seen[s.ID()]; ok {
			issues = append(issues, Issue{
				Index:     i,
				Candidate: c,
				Field:     "identity",
				Rule:      RuleDuplicateIdentity,
				Message:   fmt.Sprintf("same name and coordinates as candidate #%d", first),
			})
			continue
		}
		seen[s.ID()] = i
		valid = append(valid, s)
	}

	return valid, issues
}

// ValidateStrict is Validate with the strict policy applied: any issue fails the batch.
func ValidateStrict(candidates []Candidate) ([]Settlement, error) {
	valid, issues := Validate(candidates)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return valid, nil
}

func validateOne(index int, c Candidate) (Settlement, []Issue) {
	var issues []Issue
	add := func(field string, rule Rule, msg string) {
		issues = append(issues, Issue{Index: index, Candidate: c, Field: field, Rule: rule, Message: msg})
	}

	ancient := strings.TrimSpace(c.AncientName)
	if ancient == "" {
		add("ancient_name", RuleEmptyName, "must not be empty")
	}

	modern := strings.TrimSpace(c.ModernName)
	if modern == "" {
		add("modern_name", RuleEmptyName, "must not be empty")
	}

	tag := strings.TrimSpace(c.Type)
	if tag == "" {
		add("type", RuleEmptyType, "must not be empty")
	}

	lat, err := coordinate(c.Latitude)
	if err != nil {
		add("latitude", RuleInvalidCoordinate, err.Error())
	} else if !validLatitude(lat) {
		add("latitude", RuleLatitudeRange, fmt.Sprintf("%g is outside [-90, 90]", lat))
	}

	lng, err := coordinate(c.Longitude)
	if err != nil {
		add("longitude", RuleInvalidCoordinate, err.Error())
	} else if !validLongitude(lng) {
		add("longitude", RuleLongitudeRange, fmt.Sprintf("%g is outside [-180, 180]", lng))
	}

	if len(issues) > 0 {
		return Settlement{}, issues
	}

	return Settlement{
		AncientName: ancient,
		ModernName:  modern,
		Latitude:    lat,
		Longitude:   lng,
		Type:        tag,
	}, nil
}
