package wizard

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prakan/internal/contribution"
	"prakan/internal/feedback"
	"prakan/internal/scheme"
	dErrors "prakan/pkg/domain-errors"
)

type stubSubmitter struct {
	result Result
	calls  int
	got    feedback.Submission

	// beforeReturn runs after recording the call, before the result is
	// returned. Lets tests mutate the store mid-flight.
	beforeReturn func()
}

func (s *stubSubmitter) Submit(_ context.Context, sub feedback.Submission) Result {
	s.calls++
	s.got = sub
	if s.beforeReturn != nil {
		s.beforeReturn()
	}
	return s.result
}

func newTestService(submitter Submitter) (*Service, *InMemoryStore) {
	store := NewInMemoryStore()
	svc := NewService(store, submitter, nil, slog.New(slog.DiscardHandler))
	return svc, store
}

func strp(s string) *string { return &s }

func boolp(b bool) *bool { return &b }

// driveToSuggestions walks a fresh session to the suggestion screen for the
// given scheme using only the public operations.
func driveToSuggestions(t *testing.T, svc *Service, sc scheme.Scheme) *Session {
	t.Helper()
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)

	if sc == scheme.NotRegistered {
		session, err = svc.SelectScheme(ctx, session.ID, sc)
		require.NoError(t, err)
		require.Equal(t, ScreenSuggestBenefits, session.Screen)
		return session
	}

	if sc.SelfEmployed() && sc != scheme.Section40 {
		_, err = svc.SelectScheme(ctx, session.ID, scheme.Section40)
		require.NoError(t, err)
	}
	_, err = svc.SelectScheme(ctx, session.ID, sc)
	require.NoError(t, err)

	patch := RespondentPatch{
		Age:        strp("30"),
		Occupation: strp("clerk"),
	}
	if scheme.BucketOf(sc) == scheme.BucketDualRegime {
		patch.YearsSection33 = strp("10")
		patch.MonthsSection33 = strp("2")
		patch.MonthlySection33 = strp("750")
		patch.YearsSection39 = strp("4")
		patch.MonthsSection39 = strp("6")
	} else {
		patch.YearsContributing = strp("5")
		patch.MonthsContributing = strp("0")
	}
	_, err = svc.PatchRespondent(ctx, session.ID, patch)
	require.NoError(t, err)

	_, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	session, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, ScreenSuggestBenefits, session.Screen)
	return session
}

func TestServiceCreate(t *testing.T) {
	svc, store := newTestService(&stubSubmitter{})
	session, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScreenHome, session.Screen)
	assert.Equal(t, SubmissionIdle, session.Submission.State)

	stored, err := store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, stored.ID)
}

func TestServiceGetUnknownSession(t *testing.T) {
	svc, _ := newTestService(&stubSubmitter{})
	_, err := svc.Get(context.Background(), "nope")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestSubmitSentinelFailsLocallyWithoutNetworkCall(t *testing.T) {
	sub := &stubSubmitter{}
	svc, _ := newTestService(sub)
	session := driveToSuggestions(t, svc, scheme.NotRegistered)

	session, err := svc.Submit(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, SubmissionFailed, session.Submission.State)
	assert.Equal(t, FailureMissingFields, session.Submission.Failure)
	assert.Equal(t, ScreenSuggestBenefits, session.Screen)
	assert.Zero(t, sub.calls)
}

func TestSubmitSentinelOneFlagReachesSubmitter(t *testing.T) {
	sub := &stubSubmitter{result: Result{OK: true, RecordID: "abc"}}
	svc, _ := newTestService(sub)
	session := driveToSuggestions(t, svc, scheme.NotRegistered)

	_, err := svc.PatchSuggestions(context.Background(), session.ID, SuggestionsPatch{Retirement: boolp(true)})
	require.NoError(t, err)

	session, err = svc.Submit(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, SubmissionSucceeded, session.Submission.State)
	assert.Equal(t, "abc", session.Submission.RecordID)
	assert.Equal(t, ScreenEnd, session.Screen)
}

func TestSubmitDualRegimeMonthsZero(t *testing.T) {
	sub := &stubSubmitter{result: Result{OK: true, RecordID: "abc"}}
	svc, _ := newTestService(sub)
	session := driveToSuggestions(t, svc, scheme.Section39)
	ctx := context.Background()

	// Clearing the second regime's month count fails locally.
	_, err := svc.PatchRespondent(ctx, session.ID, RespondentPatch{MonthsSection39: strp("")})
	require.NoError(t, err)
	session, err = svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, SubmissionFailed, session.Submission.State)
	assert.Equal(t, FailureMissingFields, session.Submission.Failure)
	assert.Zero(t, sub.calls)

	// The literal zero is a value and passes.
	_, err = svc.PatchRespondent(ctx, session.ID, RespondentPatch{MonthsSection39: strp("0")})
	require.NoError(t, err)
	session, err = svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, SubmissionSucceeded, session.Submission.State)
}

func TestSubmitEndToEndMandatoryEmployee(t *testing.T) {
	sub := &stubSubmitter{result: Result{OK: true, RecordID: "abc"}}
	svc, _ := newTestService(sub)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	_, err = svc.SelectScheme(ctx, session.ID, scheme.Section33)
	require.NoError(t, err)
	_, err = svc.PatchRespondent(ctx, session.ID, RespondentPatch{
		Age:               strp("30"),
		Occupation:        strp("clerk"),
		YearsContributing: strp("5"),
	})
	require.NoError(t, err)
	_, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	_, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	_, err = svc.PatchSuggestions(ctx, session.ID, SuggestionsPatch{Other: strp("more coverage")})
	require.NoError(t, err)

	session, err = svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, ScreenEnd, session.Screen)
	assert.Equal(t, "abc", session.Submission.RecordID)

	require.NotNil(t, sub.got.SectionType)
	assert.Equal(t, scheme.Section33, *sub.got.SectionType)
	assert.Equal(t, "more coverage", sub.got.SuggestedBenefits.Other)

	// The scheme default fills the monthly amount; the inputs work out to a
	// 45000 total.
	assert.Equal(t, "750", sub.got.UserData.MonthlyContribution)
	total := contribution.Total(
		sub.got.UserData.YearsContributing,
		"",
		sub.got.UserData.MonthlyContribution,
	)
	assert.Equal(t, float64(45000), total)
}

func TestSubmitPayloadAgreesWithServerValidation(t *testing.T) {
	for _, sc := range []scheme.Scheme{
		scheme.Section33, scheme.Section39,
		scheme.Section40Option1, scheme.Section40Option2, scheme.Section40Option3,
	} {
		sub := &stubSubmitter{result: Result{OK: true, RecordID: "abc"}}
		svc, _ := newTestService(sub)
		session := driveToSuggestions(t, svc, sc)

		_, err := svc.Submit(context.Background(), session.ID)
		require.NoError(t, err)
		require.Equal(t, 1, sub.calls, "scheme %q", sc)
		assert.NoError(t, feedback.Validate(sub.got), "scheme %q", sc)
	}
}

func TestSubmitServerRejectionKeepsData(t *testing.T) {
	sub := &stubSubmitter{result: Result{Failure: FailureServerRejected, Message: "missing required user data"}}
	svc, _ := newTestService(sub)
	session := driveToSuggestions(t, svc, scheme.Section33)
	ctx := context.Background()

	_, err := svc.PatchSuggestions(ctx, session.ID, SuggestionsPatch{Healthcare: boolp(true)})
	require.NoError(t, err)

	session, err = svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, SubmissionFailed, session.Submission.State)
	assert.Equal(t, FailureServerRejected, session.Submission.Failure)
	assert.Equal(t, "missing required user data", session.Submission.Message)
	assert.Equal(t, ScreenSuggestBenefits, session.Screen)
	assert.Equal(t, "30", session.Respondent.Age)

	// The failure is recoverable; a second attempt goes out again.
	sub.result = Result{OK: true, RecordID: "abc"}
	session, err = svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.calls)
	assert.Equal(t, SubmissionSucceeded, session.Submission.State)
	assert.Equal(t, 2, session.Submission.Attempt)
}

func TestSubmitRejectsConcurrentAttempt(t *testing.T) {
	sub := &stubSubmitter{}
	svc, store := newTestService(sub)
	session := driveToSuggestions(t, svc, scheme.NotRegistered)
	ctx := context.Background()

	stored, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	stored.Submission = SubmissionStatus{State: SubmissionInFlight, Attempt: 1}
	require.NoError(t, store.Save(ctx, stored))

	_, err = svc.Submit(ctx, session.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Zero(t, sub.calls)
}

func TestSubmitFromWrongScreen(t *testing.T) {
	svc, _ := newTestService(&stubSubmitter{})
	session, err := svc.Create(context.Background())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), session.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestSubmitDiscardsStaleResult(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	sub := &stubSubmitter{result: Result{OK: true, RecordID: "late"}}
	svc.submitter = sub

	session := driveToSuggestions(t, svc, scheme.NotRegistered)
	_, err := svc.PatchSuggestions(ctx, session.ID, SuggestionsPatch{Healthcare: boolp(true)})
	require.NoError(t, err)

	// While the call is out, the respondent navigates away, abandoning the
	// attempt.
	sub.beforeReturn = func() {
		stored, err := store.Get(ctx, session.ID)
		require.NoError(t, err)
		require.NoError(t, stored.Back())
		require.NoError(t, store.Save(ctx, stored))
	}

	result, err := svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, ScreenSelection, result.Screen)
	assert.Equal(t, SubmissionIdle, result.Submission.State)
	assert.Empty(t, result.Submission.RecordID)
}
