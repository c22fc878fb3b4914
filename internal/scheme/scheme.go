// Package scheme models the social-insurance registration categories and the
// static benefit catalog attached to them.
package scheme

// Scheme identifies which social-insurance section the respondent belongs to.
// The identifiers mirror the legal section numbers; NotRegistered is the
// sentinel for respondents outside the system.
type Scheme string

const (
	// Section33 is the mandatory employee scheme.
	Section33 Scheme = "33"
	// Section39 is the voluntary continuation scheme for people who left
	// section 33 employment.
	Section39 Scheme = "39"
	// Section40 is the self-employed scheme before a sub-variant is chosen.
	Section40 Scheme = "40"
	// Section40 sub-variants differ by fixed monthly contribution and
	// benefit set.
	Section40Option1 Scheme = "40-1"
	Section40Option2 Scheme = "40-2"
	Section40Option3 Scheme = "40-3"
	// NotRegistered marks respondents who are not (yet) in any scheme.
	NotRegistered Scheme = "notRegYet"
)

// All lists every valid scheme value, in selection order.
func All() []Scheme {
	return []Scheme{
		Section33, Section39,
		Section40, Section40Option1, Section40Option2, Section40Option3,
		NotRegistered,
	}
}

// Valid reports whether s is a known scheme value.
func (s Scheme) Valid() bool {
	switch s {
	case Section33, Section39, Section40,
		Section40Option1, Section40Option2, Section40Option3,
		NotRegistered:
		return true
	}
	return false
}

// SelfEmployed reports whether s is section 40 or one of its sub-variants.
func (s Scheme) SelfEmployed() bool {
	switch s {
	case Section40, Section40Option1, Section40Option2, Section40Option3:
		return true
	}
	return false
}

// Bucket is the validation class a scheme falls into. The required-field
// rules depend only on the bucket, never on the individual scheme.
type Bucket int

const (
	// BucketSentinel covers unregistered respondents: only a suggestion is
	// required.
	BucketSentinel Bucket = iota
	// BucketDualRegime covers section 39, whose contribution history spans
	// the earlier section 33 period and the section 39 period.
	BucketDualRegime
	// BucketSelfEmployed covers section 40 and its sub-variants.
	BucketSelfEmployed
	// BucketDefault covers section 33 and any future scheme.
	BucketDefault
)

// BucketOf classifies a scheme for validation.
func BucketOf(s Scheme) Bucket {
	switch {
	case s == NotRegistered:
		return BucketSentinel
	case s == Section39:
		return BucketDualRegime
	case s.SelfEmployed():
		return BucketSelfEmployed
	default:
		return BucketDefault
	}
}

// DefaultMonthlyContribution returns the pre-filled monthly amount for a
// scheme, or "" when there is no sensible default. Section 33 assumes the
// salary cap; section 40 defaults to the middle option.
func DefaultMonthlyContribution(s Scheme) string {
	switch s {
	case Section33:
		return "750"
	case Section39:
		return "432"
	case Section40, Section40Option1, Section40Option2, Section40Option3:
		return "100"
	}
	return ""
}
