package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"prakan/internal/scheme"
)

// PostgresStore persists records as JSONB documents. The payload column keeps
// the loosely typed respondent shape intact instead of exploding it into
// columns that would drift every time a scheme adds a field.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the feedback table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS feedback_records (
			id UUID PRIMARY KEY,
			section_type TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure feedback schema: %w", err)
	}
	return nil
}

type recordPayload struct {
	UserData          UserData          `json:"userData"`
	SuggestedBenefits SuggestedBenefits `json:"suggestedBenefits"`
}

func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	payload, err := json.Marshal(recordPayload{
		UserData:          record.UserData,
		SuggestedBenefits: record.SuggestedBenefits,
	})
	if err != nil {
		return fmt.Errorf("marshal feedback payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO feedback_records (id, section_type, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, record.ID, string(record.SectionType), payload, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback record: %w", err)
	}
	return nil
}

// GetByID loads a single record; used by integration tests and ops tooling.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, section_type, payload, created_at
		FROM feedback_records WHERE id = $1
	`, id)

	var (
		record  Record
		section string
		payload []byte
	)
	if err := row.Scan(&record.ID, &section, &payload, &record.CreatedAt); err != nil {
		return nil, fmt.Errorf("select feedback record: %w", err)
	}

	var body recordPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("unmarshal feedback payload: %w", err)
	}
	record.SectionType = scheme.Scheme(section)
	record.UserData = body.UserData
	record.SuggestedBenefits = body.SuggestedBenefits
	return &record, nil
}
