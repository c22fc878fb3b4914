package feedback

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"prakan/internal/platform/events"
	"prakan/internal/platform/metrics"
	dErrors "prakan/pkg/domain-errors"
)

// Service validates submissions and turns them into persisted records.
type Service struct {
	store     Store
	metrics   *metrics.Metrics
	publisher events.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

func NewService(store Store, m *metrics.Metrics, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		store:     store,
		metrics:   m,
		publisher: publisher,
		logger:    logger,
		tracer:    otel.Tracer("feedback"),
		now:       time.Now,
	}
}

// submittedEvent is the payload published for downstream consumers. It
// deliberately carries no respondent data, only the pointer to it.
type submittedEvent struct {
	RecordID    string    `json:"recordId"`
	SectionType string    `json:"sectionType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Submit re-validates the submission, persists an immutable record, and
// returns it. Validation failures come back coded so the handler can put the
// reason on the wire.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Record, error) {
	ctx, span := s.tracer.Start(ctx, "feedback.Submit",
		trace.WithAttributes(attribute.String("scheme", string(sub.Scheme()))))
	defer span.End()

	if err := Validate(sub); err != nil {
		s.metrics.IncRejected(string(dErrors.CodeOf(err)))
		return nil, err
	}

	record := &Record{
		ID:                uuid.NewString(),
		SectionType:       sub.Scheme(),
		UserData:          sub.UserData,
		SuggestedBenefits: sub.SuggestedBenefits,
		CreatedAt:         s.now().UTC(),
	}
	if record.UserData.UsedBenefits == nil {
		record.UserData.UsedBenefits = []string{}
	}

	if err := s.store.Save(ctx, record); err != nil {
		s.metrics.IncRejected(string(dErrors.CodeInternal))
		s.logger.ErrorContext(ctx, "failed to save feedback record",
			"error", err,
			"scheme", record.SectionType,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save feedback")
	}

	s.metrics.IncAccepted()
	s.publishSubmitted(ctx, record)

	s.logger.InfoContext(ctx, "feedback recorded",
		"record_id", record.ID,
		"scheme", record.SectionType,
	)
	return record, nil
}

func (s *Service) publishSubmitted(ctx context.Context, record *Record) {
	payload, err := json.Marshal(submittedEvent{
		RecordID:    record.ID,
		SectionType: string(record.SectionType),
		CreatedAt:   record.CreatedAt,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to marshal submitted event", "error", err)
		return
	}
	s.publisher.Publish(ctx, record.ID, payload)
}
