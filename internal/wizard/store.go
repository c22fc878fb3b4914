package wizard

import (
	"context"

	dErrors "prakan/pkg/domain-errors"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "session not found")

// Store keeps wizard sessions between requests.
type Store interface {
	// Save writes the full session state, overwriting any previous version.
	Save(ctx context.Context, session *Session) error
	// Get loads a session by id; ErrNotFound when it does not exist.
	Get(ctx context.Context, id string) (*Session, error)
	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
