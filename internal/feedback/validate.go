package feedback

import (
	"strings"

	"prakan/internal/scheme"
	dErrors "prakan/pkg/domain-errors"
)

// Validation messages are part of the wire contract; the wizard shows them
// verbatim when the server rejects a submission.
const (
	msgMissingUserData      = "missing required user data"
	msgMissingSection39Data = "missing required section 39 data"
	msgMissingSection40Data = "missing required section 40 data"
	msgMissingContribution  = "missing required contribution data"
	msgMissingSuggestion    = "at least one suggested benefit is required"
)

// Validate applies the required-field table for the submission's scheme
// bucket. It must stay semantically identical to the wizard's pre-submit
// check; wizard tests cross-check the two implementations field by field.
func Validate(sub Submission) error {
	sc := sub.Scheme()
	if !sc.Valid() {
		return dErrors.New(dErrors.CodeBadRequest, "unknown section type: "+string(sc))
	}

	switch scheme.BucketOf(sc) {
	case scheme.BucketSentinel:
		if !sub.SuggestedBenefits.AnyChosen() {
			return dErrors.New(dErrors.CodeValidation, msgMissingSuggestion)
		}
		return nil

	case scheme.BucketDualRegime:
		if err := requireBasics(sub.UserData); err != nil {
			return err
		}
		if trimmed(sub.UserData.YearsSection33) == "" ||
			trimmed(sub.UserData.MonthsSection33) == "" ||
			trimmed(sub.UserData.MonthlySection33) == "" ||
			trimmed(sub.UserData.YearsSection39) == "" ||
			trimmed(sub.UserData.MonthsSection39) == "" {
			return dErrors.New(dErrors.CodeValidation, msgMissingSection39Data)
		}
		return nil

	case scheme.BucketSelfEmployed:
		if err := requireBasics(sub.UserData); err != nil {
			return err
		}
		// Months may be the literal zero; only an absent field is missing.
		if trimmed(sub.UserData.YearsContributing) == "" ||
			sub.UserData.MonthsContributing == nil ||
			trimmed(sub.UserData.MonthlyContribution) == "" {
			return dErrors.New(dErrors.CodeValidation, msgMissingSection40Data)
		}
		return nil

	default:
		if err := requireBasics(sub.UserData); err != nil {
			return err
		}
		if trimmed(sub.UserData.YearsContributing) == "" ||
			trimmed(sub.UserData.MonthlyContribution) == "" {
			return dErrors.New(dErrors.CodeValidation, msgMissingContribution)
		}
		return nil
	}
}

func requireBasics(u UserData) error {
	if trimmed(u.Age) == "" || trimmed(u.Occupation) == "" {
		return dErrors.New(dErrors.CodeValidation, msgMissingUserData)
	}
	return nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }
