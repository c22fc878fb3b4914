package wizard

import (
	"strings"

	"prakan/internal/scheme"
)

func trimmed(s string) string { return strings.TrimSpace(s) }

func present(s string) bool { return trimmed(s) != "" }

// missingInput is the form-level gate for leaving the input screen. It checks
// the same scheme-dependent fields the submit check does, minus the
// suggestion requirement, and returns a human-readable reason or "".
func (s *Session) missingInput() string {
	r := s.Respondent
	if !present(r.Age) || !present(r.Occupation) {
		return "age and occupation are required"
	}

	switch scheme.BucketOf(s.Scheme) {
	case scheme.BucketDualRegime:
		if !present(r.YearsSection33) || !present(r.MonthsSection33) || !present(r.MonthlySection33) ||
			!present(r.YearsSection39) || !present(r.MonthsSection39) {
			return "both contribution periods must be filled in"
		}
	case scheme.BucketSelfEmployed:
		if !present(r.YearsContributing) || r.MonthsContributing == nil || !present(r.MonthlyContribution) {
			return "years, months and monthly contribution are required"
		}
	default:
		if !present(r.YearsContributing) || !present(r.MonthlyContribution) {
			return "years and monthly contribution are required"
		}
	}
	return ""
}

// checkComplete is the submit-time required-field check, classified by scheme
// bucket. A non-empty reason means the submission must fail locally with
// FailureMissingFields and no network call may happen.
//
// The feedback service applies the same table on its side; the two checks are
// deliberately separate implementations.
func (s *Session) checkComplete() string {
	if scheme.BucketOf(s.Scheme) == scheme.BucketSentinel {
		if !s.Suggestions.AnyChosen() {
			return "pick at least one suggestion or write your own idea"
		}
		return ""
	}
	return s.missingInput()
}
