package mockapi

import (
	"context"
	"errors"

	domain "rest-user-client/internal/domain/user"
)

// ErrNotFound reports that no user exists under the requested id.
var ErrNotFound = errors.New("user not found")

// Store keeps the fixture's user records. Payloads are stored raw; the store
// assigns ids and injects them into everything it returns.
type Store interface {
	List(ctx context.Context) ([]domain.Record, error)
	Get(ctx context.Context, id int64) (domain.Record, error)
	Create(ctx context.Context, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, id int64, rec domain.Record) (domain.Record, error)
	Delete(ctx context.Context, id int64) error
}

// scrubID copies a record without its "id" key. The store owns ids; a
// client-sent id never overrides them.
func scrubID(rec domain.Record) domain.Record {
	out := make(domain.Record, len(rec))
	for k, v := range rec {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}
