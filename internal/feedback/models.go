// Package feedback receives, validates, and persists completed survey
// submissions. It is the authoritative validation layer: the wizard performs
// the same checks before calling in, but nothing here trusts it.
package feedback

import (
	"time"

	"prakan/internal/scheme"
)

// UserData is the respondent snapshot as it arrives on the wire. Everything
// is a loosely typed string because the values come from free-text form
// fields; validation decides which ones must be present per scheme.
//
// MonthsContributing is a pointer because the self-employed rule
// distinguishes an absent field from the literal "0".
type UserData struct {
	Name                string   `json:"name,omitempty"`
	Age                 string   `json:"age,omitempty"`
	Occupation          string   `json:"occupation,omitempty"`
	YearsContributing   string   `json:"yearsContributing,omitempty"`
	MonthsContributing  *string  `json:"monthsContributing,omitempty"`
	MonthlyContribution string   `json:"monthlyContribution,omitempty"`
	UsedBenefits        []string `json:"usedBenefits"`

	// Dual-regime history, only populated for section 39.
	YearsSection33   string `json:"yearsSection33,omitempty"`
	MonthsSection33  string `json:"monthsSection33,omitempty"`
	MonthlySection33 string `json:"monthlySection33,omitempty"`
	YearsSection39   string `json:"yearsSection39,omitempty"`
	MonthsSection39  string `json:"monthsSection39,omitempty"`
}

// SuggestedBenefits carries the benefit-improvement wishlist: five
// predefined categories plus free text.
type SuggestedBenefits struct {
	Healthcare   bool   `json:"healthcare"`
	Retirement   bool   `json:"retirement"`
	Unemployment bool   `json:"unemployment"`
	Disability   bool   `json:"disability"`
	ChildSupport bool   `json:"childSupport"`
	Other        string `json:"other"`
	UserIdea     string `json:"userIdea,omitempty"`
}

// AnyChosen reports whether at least one category is ticked or any free text
// was written.
func (s SuggestedBenefits) AnyChosen() bool {
	return s.Healthcare || s.Retirement || s.Unemployment || s.Disability ||
		s.ChildSupport || trimmed(s.Other) != "" || trimmed(s.UserIdea) != ""
}

// Submission is the POST /feedback body. A null sectionType means the
// respondent is not registered; it normalizes to the sentinel scheme.
type Submission struct {
	SectionType       *scheme.Scheme    `json:"sectionType"`
	UserData          UserData          `json:"userData"`
	SuggestedBenefits SuggestedBenefits `json:"suggestedBenefits"`
}

// Scheme returns the normalized scheme for validation and persistence.
func (s Submission) Scheme() scheme.Scheme {
	if s.SectionType == nil {
		return scheme.NotRegistered
	}
	return *s.SectionType
}

// Record is the immutable persisted outcome of a completed run. It is created
// only here, never mutated or deleted.
type Record struct {
	ID                string            `json:"id"`
	SectionType       scheme.Scheme     `json:"sectionType"`
	UserData          UserData          `json:"userData"`
	SuggestedBenefits SuggestedBenefits `json:"suggestedBenefits"`
	CreatedAt         time.Time         `json:"createdAt"`
}
