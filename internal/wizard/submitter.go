package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"prakan/internal/feedback"
	dErrors "prakan/pkg/domain-errors"
)

// Result is the outcome of handing a submission to the feedback layer.
// Failures are values, not errors: every outcome leaves the session usable.
type Result struct {
	OK       bool
	RecordID string
	Failure  FailureKind
	Message  string
}

// Submitter delivers a completed submission to the feedback layer.
type Submitter interface {
	Submit(ctx context.Context, sub feedback.Submission) Result
}

type feedbackService interface {
	Submit(ctx context.Context, sub feedback.Submission) (*feedback.Record, error)
}

// ServiceSubmitter calls the feedback service in process. Used when both
// layers run in the same binary.
type ServiceSubmitter struct {
	service feedbackService
}

func NewServiceSubmitter(service feedbackService) *ServiceSubmitter {
	return &ServiceSubmitter{service: service}
}

func (s *ServiceSubmitter) Submit(ctx context.Context, sub feedback.Submission) Result {
	record, err := s.service.Submit(ctx, sub)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeBadRequest) {
			return Result{Failure: FailureServerRejected, Message: messageOf(err)}
		}
		return Result{Failure: FailureNetwork, Message: "submission could not be saved"}
	}
	return Result{OK: true, RecordID: record.ID}
}

func messageOf(err error) string {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// HTTPSubmitter posts submissions to a remote feedback endpoint, for
// deployments that run the two layers as separate services. It understands
// the endpoint's envelope: 201 {success,id}, 400 {error}, 5xx {error,message}.
type HTTPSubmitter struct {
	client   *http.Client
	endpoint string
}

func NewHTTPSubmitter(endpoint string, timeout time.Duration) *HTTPSubmitter {
	return &HTTPSubmitter{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, sub feedback.Submission) Result {
	body, err := json.Marshal(sub)
	if err != nil {
		return Result{Failure: FailureNetwork, Message: "could not encode submission"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Failure: FailureNetwork, Message: "could not build request"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{Failure: FailureNetwork, Message: "feedback service unreachable"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{Failure: FailureNetwork, Message: "could not read response"}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var ok struct {
			Success bool   `json:"success"`
			ID      string `json:"id"`
		}
		if err := json.Unmarshal(raw, &ok); err != nil || !ok.Success {
			return Result{Failure: FailureNetwork, Message: "unexpected response from feedback service"}
		}
		return Result{OK: true, RecordID: ok.ID}

	case resp.StatusCode == http.StatusBadRequest:
		return Result{Failure: FailureServerRejected, Message: errorMessage(raw, "submission rejected")}

	default:
		return Result{
			Failure: FailureNetwork,
			Message: errorMessage(raw, fmt.Sprintf("feedback service returned status %d", resp.StatusCode)),
		}
	}
}

func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}
