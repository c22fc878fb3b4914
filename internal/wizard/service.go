package wizard

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"prakan/internal/feedback"
	"prakan/internal/platform/metrics"
	"prakan/internal/scheme"
	dErrors "prakan/pkg/domain-errors"
)

// Service owns wizard sessions: it loads them from the store, applies one
// transition, and writes them back. All mutation goes through here so the
// state machine invariants hold regardless of which instance serves the
// request.
type Service struct {
	store     Store
	submitter Submitter
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

func NewService(store Store, submitter Submitter, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		submitter: submitter,
		metrics:   m,
		logger:    logger,
		tracer:    otel.Tracer("wizard"),
		now:       time.Now,
	}
}

// Create starts a fresh run on the home screen.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	session := NewSession(s.now().UTC())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}
	s.metrics.IncSessionStarted()
	s.logger.InfoContext(ctx, "session created", "session_id", session.ID)
	return session, nil
}

// Get loads a session without mutating it.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// Delete discards a run, for clients that want a clean start instead of
// reusing the session after the end screen.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// mutate loads the session, applies fn, stamps and saves. fn errors abort
// without saving.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}
	return session, nil
}

// SelectScheme applies a scheme choice; the session's screen decides whether
// it is the top-level selection or the sub-variant pick.
func (s *Service) SelectScheme(ctx context.Context, id string, choice scheme.Scheme) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		return session.SelectScheme(choice)
	})
}

// Advance moves the session one screen forward.
func (s *Service) Advance(ctx context.Context, id string) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		return session.Advance()
	})
}

// Back moves the session one screen backward, keeping all entered data.
func (s *Service) Back(ctx context.Context, id string) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		return session.Back()
	})
}

// ToggleBenefit flips a used-benefit checkbox.
func (s *Service) ToggleBenefit(ctx context.Context, id, benefit string) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		return session.ToggleUsedBenefit(benefit)
	})
}

// PatchRespondent merges a partial respondent update.
func (s *Service) PatchRespondent(ctx context.Context, id string, patch RespondentPatch) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		session.Respondent.Apply(patch)
		return nil
	})
}

// PatchSuggestions merges a partial wishlist update.
func (s *Service) PatchSuggestions(ctx context.Context, id string, patch SuggestionsPatch) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		session.Suggestions.Apply(patch)
		return nil
	})
}

// Submit runs the submission pipeline for a session on the suggestion
// screen. Local validation failures never reach the submitter. The outcome
// lands in the session's SubmissionStatus; pipeline failures are state, not
// errors, so the caller always gets the session back.
//
// At most one submission is in flight per session. A result that arrives
// after the session moved on (another attempt started, or the attempt was
// abandoned by navigating away) is discarded.
func (s *Service) Submit(ctx context.Context, id string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.Submit")
	defer span.End()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("scheme", string(session.Scheme)))

	if session.Screen != ScreenSuggestBenefits {
		return nil, dErrors.New(dErrors.CodeConflict, "can only submit from the suggestion screen")
	}
	if session.Submission.State == SubmissionInFlight {
		return nil, dErrors.New(dErrors.CodeConflict, "a submission is already in flight")
	}

	if reason := session.checkComplete(); reason != "" {
		session.Submission = SubmissionStatus{
			State:   SubmissionFailed,
			Attempt: session.Submission.Attempt,
			Failure: FailureMissingFields,
			Message: reason,
		}
		session.UpdatedAt = s.now().UTC()
		if err := s.store.Save(ctx, session); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
		}
		return session, nil
	}

	attempt := session.Submission.Attempt + 1
	session.Submission = SubmissionStatus{State: SubmissionInFlight, Attempt: attempt}
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}

	start := s.now()
	result := s.submitter.Submit(ctx, buildSubmission(session))
	s.metrics.ObserveSubmit(s.now().Sub(start))

	// Reload before applying: the session may have moved on while the call
	// was out.
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Submission.State != SubmissionInFlight || current.Submission.Attempt != attempt {
		s.logger.InfoContext(ctx, "discarding stale submission result",
			"session_id", id,
			"attempt", attempt,
		)
		return current, nil
	}

	if result.OK {
		current.Screen = ScreenEnd
		current.Submission = SubmissionStatus{
			State:    SubmissionSucceeded,
			Attempt:  attempt,
			RecordID: result.RecordID,
		}
	} else {
		current.Submission = SubmissionStatus{
			State:   SubmissionFailed,
			Attempt: attempt,
			Failure: result.Failure,
			Message: result.Message,
		}
	}
	current.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, current); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}

	if result.OK {
		s.logger.InfoContext(ctx, "submission accepted",
			"session_id", id,
			"record_id", result.RecordID,
		)
	} else {
		s.logger.WarnContext(ctx, "submission failed",
			"session_id", id,
			"failure", result.Failure,
			"message", result.Message,
		)
	}
	return current, nil
}

// buildSubmission snapshots the session into the wire payload. The sentinel
// scheme goes out explicitly rather than as a null sectionType.
func buildSubmission(session *Session) feedback.Submission {
	sc := session.Scheme
	used := make([]string, len(session.Respondent.UsedBenefits))
	copy(used, session.Respondent.UsedBenefits)

	var months *string
	if session.Respondent.MonthsContributing != nil {
		v := *session.Respondent.MonthsContributing
		months = &v
	}

	return feedback.Submission{
		SectionType: &sc,
		UserData: feedback.UserData{
			Name:                session.Respondent.Name,
			Age:                 session.Respondent.Age,
			Occupation:          session.Respondent.Occupation,
			YearsContributing:   session.Respondent.YearsContributing,
			MonthsContributing:  months,
			MonthlyContribution: session.Respondent.MonthlyContribution,
			UsedBenefits:        used,
			YearsSection33:      session.Respondent.YearsSection33,
			MonthsSection33:     session.Respondent.MonthsSection33,
			MonthlySection33:    session.Respondent.MonthlySection33,
			YearsSection39:      session.Respondent.YearsSection39,
			MonthsSection39:     session.Respondent.MonthsSection39,
		},
		SuggestedBenefits: feedback.SuggestedBenefits{
			Healthcare:   session.Suggestions.Healthcare,
			Retirement:   session.Suggestions.Retirement,
			Unemployment: session.Suggestions.Unemployment,
			Disability:   session.Suggestions.Disability,
			ChildSupport: session.Suggestions.ChildSupport,
			Other:        session.Suggestions.Other,
			UserIdea:     session.Suggestions.UserIdea,
		},
	}
}
