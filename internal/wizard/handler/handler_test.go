package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prakan/internal/feedback"
	"prakan/internal/wizard"
	"prakan/pkg/testutil"
)

type stubSubmitter struct {
	result wizard.Result
	calls  int
}

func (s *stubSubmitter) Submit(context.Context, feedback.Submission) wizard.Result {
	s.calls++
	return s.result
}

func newTestRouter(submitter wizard.Submitter) http.Handler {
	svc := wizard.NewService(wizard.NewInMemoryStore(), submitter, nil, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	New(svc, slog.New(slog.DiscardHandler)).Register(r)
	return r
}

type viewResponse struct {
	ID     string `json:"id"`
	Screen string `json:"screen"`
	Scheme string `json:"scheme"`

	Respondent struct {
		Age                 string   `json:"age"`
		MonthlyContribution string   `json:"monthlyContribution"`
		UsedBenefits        []string `json:"usedBenefits"`
	} `json:"respondent"`

	Submission struct {
		State    string `json:"state"`
		Failure  string `json:"failure"`
		Message  string `json:"message"`
		RecordID string `json:"recordId"`
	} `json:"submission"`

	Benefits          []string `json:"benefits"`
	TotalContribution string   `json:"totalContribution"`
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/sessions", nil))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	view := testutil.UnmarshalResponse[viewResponse](t, rr)
	require.NotEmpty(t, view.ID)
	require.Equal(t, "home", view.Screen)
	return view.ID
}

func post(t *testing.T, router http.Handler, path string, body any) *viewResponse {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, path, body))
	testutil.AssertStatusOK(t, rr)
	return testutil.UnmarshalResponse[viewResponse](t, rr)
}

func TestFullRunOverHTTP(t *testing.T) {
	submitter := &stubSubmitter{result: wizard.Result{OK: true, RecordID: "abc"}}
	router := newTestRouter(submitter)
	id := createSession(t, router)
	base := "/sessions/" + id

	view := post(t, router, base+"/advance", nil)
	assert.Equal(t, "selection", view.Screen)

	view = post(t, router, base+"/scheme", map[string]string{"scheme": "33"})
	assert.Equal(t, "currentBenefits", view.Screen)
	assert.Equal(t, "33", view.Scheme)
	assert.Equal(t, "750", view.Respondent.MonthlyContribution)
	assert.NotEmpty(t, view.Benefits)

	view = post(t, router, base+"/benefits/toggle", map[string]string{"benefit": view.Benefits[0]})
	assert.Len(t, view.Respondent.UsedBenefits, 1)

	view = post(t, router, base+"/respondent", map[string]string{
		"age":               "30",
		"occupation":        "clerk",
		"yearsContributing": "5",
	})
	assert.Equal(t, "30", view.Respondent.Age)
	assert.Equal(t, "45,000", view.TotalContribution)

	post(t, router, base+"/advance", nil)
	view = post(t, router, base+"/advance", nil)
	assert.Equal(t, "suggestBenefits", view.Screen)

	post(t, router, base+"/suggestions", map[string]string{"other": "more coverage"})

	view = post(t, router, base+"/submit", nil)
	assert.Equal(t, "end", view.Screen)
	assert.Equal(t, "succeeded", view.Submission.State)
	assert.Equal(t, "abc", view.Submission.RecordID)
	assert.Equal(t, 1, submitter.calls)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, base))
	testutil.AssertStatusOK(t, rr)
	got := testutil.UnmarshalResponse[viewResponse](t, rr)
	assert.Equal(t, "end", got.Screen)
}

func TestLocalValidationFailureReturnsSession(t *testing.T) {
	submitter := &stubSubmitter{}
	router := newTestRouter(submitter)
	id := createSession(t, router)
	base := "/sessions/" + id

	post(t, router, base+"/advance", nil)
	view := post(t, router, base+"/scheme", map[string]string{"scheme": "notRegYet"})
	assert.Equal(t, "suggestBenefits", view.Screen)

	view = post(t, router, base+"/submit", nil)
	assert.Equal(t, "failed", view.Submission.State)
	assert.Equal(t, "missing-required-fields", view.Submission.Failure)
	assert.Equal(t, "suggestBenefits", view.Screen)
	assert.Zero(t, submitter.calls)
}

func TestDeleteSession(t *testing.T) {
	router := newTestRouter(&stubSubmitter{})
	id := createSession(t, router)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/sessions/"+id))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/sessions/"+id))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestUnknownSessionNotFound(t *testing.T) {
	router := newTestRouter(&stubSubmitter{})
	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/sessions/nope"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func TestInvalidSchemeBody(t *testing.T) {
	router := newTestRouter(&stubSubmitter{})
	id := createSession(t, router)

	rr := testutil.DoRequest(router,
		testutil.NewRequestWithBody(t, http.MethodPost, "/sessions/"+id+"/scheme", `{"scheme":`))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestSubmitFromWrongScreenConflicts(t *testing.T) {
	router := newTestRouter(&stubSubmitter{})
	id := createSession(t, router)

	rr := testutil.DoRequest(router,
		testutil.NewJSONRequest(t, http.MethodPost, "/sessions/"+id+"/submit", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
}

func TestToggleOffBenefitsScreenConflicts(t *testing.T) {
	router := newTestRouter(&stubSubmitter{})
	id := createSession(t, router)

	rr := testutil.DoRequest(router,
		testutil.NewJSONRequest(t, http.MethodPost, "/sessions/"+id+"/benefits/toggle",
			map[string]string{"benefit": "sickness"}))
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
}
