package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery is matched by both InvalidArgumentError and InvalidRangeError,
// letting callers tell a malformed query apart from an empty result.
var ErrInvalidQuery = errors.New("invalid query")

// Rule names the invariant a candidate violated.
type Rule string

const (
	RuleEmptyName         Rule = "empty_name"
	RuleEmptyType         Rule = "empty_type"
	RuleInvalidCoordinate Rule = "invalid_coordinate"
	RuleLatitudeRange     Rule = "latitude_out_of_range"
	RuleLongitudeRange    Rule = "longitude_out_of_range"
	RuleDuplicateIdentity Rule = "duplicate_identity"
)

// Issue is one validation finding against one candidate.
type Issue struct {
	Index     int
	Candidate Candidate
	Field     string
	Rule      Rule
	Message   string
}

func (i Issue) String() string {
	return fmt.Sprintf("candidate #%d (%q): %s: %s", i.Index, i.Candidate.AncientName, i.Field, i.Message)
}

// ValidationError reports every candidate that failed validation, in input order.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "validation failed: " + e.Issues[0].String()
	}

	lines := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		lines = append(lines, i.String())
	}
	return fmt.Sprintf("validation failed: %d issues: %s", len(e.Issues), strings.Join(lines, "; "))
}

// InvalidArgumentError is returned by a query given a malformed argument.
type InvalidArgumentError struct {
	Op     string
	Arg    string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument %s=%v: %s", e.Op, e.Arg, e.Value, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidQuery }

// InvalidRangeError is returned when a query range is inverted or out of bounds.
type InvalidRangeError struct {
	Op     string
	Axis   string
	Min    float64
	Max    float64
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: invalid %s range [%g, %g]: %s", e.Op, e.Axis, e.Min, e.Max, e.Reason)
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidQuery }
