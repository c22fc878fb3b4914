// Package wizard drives one interactive survey run: which screen is shown,
// what the respondent has entered so far, and the submission pipeline that
// hands a completed run to the feedback layer. It performs its own
// required-field check before any network call; the feedback layer
// re-validates independently.
package wizard

import (
	"time"

	"github.com/google/uuid"

	"prakan/internal/scheme"
)

// Screen is the active wizard step.
type Screen string

const (
	ScreenHome            Screen = "home"
	ScreenSelection       Screen = "selection"
	ScreenSchemeOptions   Screen = "schemeOptions"
	ScreenCurrentBenefits Screen = "currentBenefits"
	ScreenUserInput       Screen = "userInput"
	ScreenSuggestBenefits Screen = "suggestBenefits"
	ScreenEnd             Screen = "end"
)

// SubmissionState tracks the submission pipeline for a session.
type SubmissionState string

const (
	SubmissionIdle      SubmissionState = "idle"
	SubmissionInFlight  SubmissionState = "inFlight"
	SubmissionSucceeded SubmissionState = "succeeded"
	SubmissionFailed    SubmissionState = "failed"
)

// FailureKind classifies why a submission did not go through. Every kind is
// recoverable: entered data is retained and the respondent may correct and
// resubmit.
type FailureKind string

const (
	FailureMissingFields  FailureKind = "missing-required-fields"
	FailureNetwork        FailureKind = "network-or-server-error"
	FailureServerRejected FailureKind = "validation-rejected-by-server"
)

// Respondent is the data collected across the wizard screens. Values stay
// strings because they come from free-text form fields; which ones must be
// present depends on the selected scheme.
//
// MonthsContributing is a pointer so the self-employed rule can tell an
// untouched field from the literal "0".
type Respondent struct {
	Name                string   `json:"name,omitempty"`
	Age                 string   `json:"age,omitempty"`
	Occupation          string   `json:"occupation,omitempty"`
	YearsContributing   string   `json:"yearsContributing,omitempty"`
	MonthsContributing  *string  `json:"monthsContributing,omitempty"`
	MonthlyContribution string   `json:"monthlyContribution,omitempty"`
	UsedBenefits        []string `json:"usedBenefits"`

	// Dual-regime history, collected only for section 39.
	YearsSection33   string `json:"yearsSection33,omitempty"`
	MonthsSection33  string `json:"monthsSection33,omitempty"`
	MonthlySection33 string `json:"monthlySection33,omitempty"`
	YearsSection39   string `json:"yearsSection39,omitempty"`
	MonthsSection39  string `json:"monthsSection39,omitempty"`
}

// Suggestions is the benefit-improvement wishlist.
type Suggestions struct {
	Healthcare   bool   `json:"healthcare"`
	Retirement   bool   `json:"retirement"`
	Unemployment bool   `json:"unemployment"`
	Disability   bool   `json:"disability"`
	ChildSupport bool   `json:"childSupport"`
	Other        string `json:"other"`
	UserIdea     string `json:"userIdea,omitempty"`
}

// SubmissionStatus is the session-visible outcome of the submission pipeline.
// Attempt increments on every submission start so a late result from an
// abandoned attempt can be recognized and discarded.
type SubmissionStatus struct {
	State    SubmissionState `json:"state"`
	Attempt  int             `json:"attempt"`
	Failure  FailureKind     `json:"failure,omitempty"`
	Message  string          `json:"message,omitempty"`
	RecordID string          `json:"recordId,omitempty"`
}

// Session is the full state of one wizard run. It is owned by a single
// respondent and mutated only through the transition methods; the server
// keeps it in a Store so a stateless client can drive it across requests.
type Session struct {
	ID          string           `json:"id"`
	Screen      Screen           `json:"screen"`
	Scheme      scheme.Scheme    `json:"scheme,omitempty"`
	Respondent  Respondent       `json:"respondent"`
	Suggestions Suggestions      `json:"suggestions"`
	Submission  SubmissionStatus `json:"submission"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewSession creates a fresh run on the home screen.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Screen:     ScreenHome,
		Respondent: Respondent{UsedBenefits: []string{}},
		Submission: SubmissionStatus{State: SubmissionIdle},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// RespondentPatch is a partial update of respondent data. Only non-nil fields
// are applied; everything else is preserved.
type RespondentPatch struct {
	Name                *string `json:"name,omitempty"`
	Age                 *string `json:"age,omitempty"`
	Occupation          *string `json:"occupation,omitempty"`
	YearsContributing   *string `json:"yearsContributing,omitempty"`
	MonthsContributing  *string `json:"monthsContributing,omitempty"`
	MonthlyContribution *string `json:"monthlyContribution,omitempty"`
	YearsSection33      *string `json:"yearsSection33,omitempty"`
	MonthsSection33     *string `json:"monthsSection33,omitempty"`
	MonthlySection33    *string `json:"monthlySection33,omitempty"`
	YearsSection39      *string `json:"yearsSection39,omitempty"`
	MonthsSection39     *string `json:"monthsSection39,omitempty"`
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Apply merges the patch into the respondent.
func (r *Respondent) Apply(p RespondentPatch) {
	applyString(&r.Name, p.Name)
	applyString(&r.Age, p.Age)
	applyString(&r.Occupation, p.Occupation)
	applyString(&r.YearsContributing, p.YearsContributing)
	applyString(&r.MonthlyContribution, p.MonthlyContribution)
	applyString(&r.YearsSection33, p.YearsSection33)
	applyString(&r.MonthsSection33, p.MonthsSection33)
	applyString(&r.MonthlySection33, p.MonthlySection33)
	applyString(&r.YearsSection39, p.YearsSection39)
	applyString(&r.MonthsSection39, p.MonthsSection39)
	if p.MonthsContributing != nil {
		v := *p.MonthsContributing
		r.MonthsContributing = &v
	}
}

// SuggestionsPatch is a partial update of the wishlist.
type SuggestionsPatch struct {
	Healthcare   *bool   `json:"healthcare,omitempty"`
	Retirement   *bool   `json:"retirement,omitempty"`
	Unemployment *bool   `json:"unemployment,omitempty"`
	Disability   *bool   `json:"disability,omitempty"`
	ChildSupport *bool   `json:"childSupport,omitempty"`
	Other        *string `json:"other,omitempty"`
	UserIdea     *string `json:"userIdea,omitempty"`
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Apply merges the patch into the suggestions.
func (s *Suggestions) Apply(p SuggestionsPatch) {
	applyBool(&s.Healthcare, p.Healthcare)
	applyBool(&s.Retirement, p.Retirement)
	applyBool(&s.Unemployment, p.Unemployment)
	applyBool(&s.Disability, p.Disability)
	applyBool(&s.ChildSupport, p.ChildSupport)
	applyString(&s.Other, p.Other)
	applyString(&s.UserIdea, p.UserIdea)
}

// AnyChosen reports whether at least one category is ticked or any free text
// was written. This is the only requirement for unregistered respondents.
func (s Suggestions) AnyChosen() bool {
	return s.Healthcare || s.Retirement || s.Unemployment || s.Disability ||
		s.ChildSupport || trimmed(s.Other) != "" || trimmed(s.UserIdea) != ""
}
