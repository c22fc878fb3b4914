package feedback

import "context"

// Store persists submission records. Records are append-only; nothing in the
// service reads them back except tests and offline analysis.
type Store interface {
	Save(ctx context.Context, record *Record) error
}
