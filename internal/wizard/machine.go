package wizard

import (
	"slices"

	"prakan/internal/scheme"
	dErrors "prakan/pkg/domain-errors"
)

// SelectScheme records the respondent's scheme choice and routes to the next
// screen. From the selection screen it accepts the top-level choices; picking
// the self-employed scheme detours through the sub-option screen, the
// sentinel skips straight to the suggestion screen. From the sub-option
// screen it accepts only the three sub-variants.
//
// Selecting a scheme pre-fills the monthly contribution when the respondent
// has not typed one yet.
func (s *Session) SelectScheme(choice scheme.Scheme) error {
	switch s.Screen {
	case ScreenSelection:
		switch choice {
		case scheme.Section33, scheme.Section39:
			s.Scheme = choice
			s.Screen = ScreenCurrentBenefits
		case scheme.Section40:
			s.Scheme = choice
			s.Screen = ScreenSchemeOptions
		case scheme.NotRegistered:
			s.Scheme = choice
			s.Screen = ScreenSuggestBenefits
		default:
			return dErrors.New(dErrors.CodeBadRequest, "unknown scheme "+string(choice))
		}
	case ScreenSchemeOptions:
		switch choice {
		case scheme.Section40Option1, scheme.Section40Option2, scheme.Section40Option3:
			s.Scheme = choice
			s.Screen = ScreenCurrentBenefits
		default:
			return dErrors.New(dErrors.CodeBadRequest, "unknown sub-variant "+string(choice))
		}
	default:
		return dErrors.New(dErrors.CodeConflict, "cannot select a scheme from screen "+string(s.Screen))
	}

	if s.Respondent.MonthlyContribution == "" {
		s.Respondent.MonthlyContribution = scheme.DefaultMonthlyContribution(choice)
	}
	return nil
}

// Advance moves to the next screen on an unconditional button press. The
// only gated step is leaving the input screen, which requires the
// scheme-appropriate fields to be present; the authoritative check still
// happens at submit time.
func (s *Session) Advance() error {
	switch s.Screen {
	case ScreenHome:
		s.Screen = ScreenSelection
	case ScreenCurrentBenefits:
		s.Screen = ScreenUserInput
	case ScreenUserInput:
		if msg := s.missingInput(); msg != "" {
			return dErrors.New(dErrors.CodeValidation, msg)
		}
		s.Screen = ScreenSuggestBenefits
	case ScreenEnd:
		// Returning home keeps entered data; selecting again overwrites it.
		s.Screen = ScreenHome
	case ScreenSelection, ScreenSchemeOptions:
		return dErrors.New(dErrors.CodeConflict, "select a scheme to continue")
	default:
		return dErrors.New(dErrors.CodeConflict, "cannot advance from screen "+string(s.Screen))
	}
	return nil
}

// Back moves to the previous screen. Always legal on interior screens and
// never discards entered data. Going back while a submission is in flight
// abandons the attempt; its result will be discarded when it lands.
func (s *Session) Back() error {
	switch s.Screen {
	case ScreenSelection:
		s.Screen = ScreenHome
	case ScreenSchemeOptions:
		s.Screen = ScreenSelection
	case ScreenCurrentBenefits:
		if s.Scheme.SelfEmployed() && s.Scheme != scheme.Section40 {
			s.Screen = ScreenSchemeOptions
		} else {
			s.Screen = ScreenSelection
		}
	case ScreenUserInput:
		s.Screen = ScreenCurrentBenefits
	case ScreenSuggestBenefits:
		if s.Submission.State == SubmissionInFlight {
			s.Submission.State = SubmissionIdle
		}
		if s.Scheme == scheme.NotRegistered {
			s.Screen = ScreenSelection
		} else {
			s.Screen = ScreenUserInput
		}
	default:
		return dErrors.New(dErrors.CodeConflict, "cannot go back from screen "+string(s.Screen))
	}
	return nil
}

// ToggleUsedBenefit flips whether the respondent has already claimed the
// named benefit. Toggling twice restores the original set.
func (s *Session) ToggleUsedBenefit(name string) error {
	if s.Screen != ScreenCurrentBenefits {
		return dErrors.New(dErrors.CodeConflict, "benefits can only be toggled on the benefits screen")
	}
	if name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "benefit name is required")
	}
	if i := slices.Index(s.Respondent.UsedBenefits, name); i >= 0 {
		s.Respondent.UsedBenefits = slices.Delete(s.Respondent.UsedBenefits, i, i+1)
	} else {
		s.Respondent.UsedBenefits = append(s.Respondent.UsedBenefits, name)
	}
	return nil
}
