package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dvloznov/polarix/internal/store"
)

// translate maps driver errors onto the store sentinels and wraps
// everything with op for context.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, store.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// insertManyCount returns how many documents of an unordered batch of size
// n were written, given the error InsertMany returned. Duplicate-key
// failures are reported as store.ErrDuplicate alongside the count; any
// other failure is returned as-is.
func insertManyCount(op string, n int, err error) (int, error) {
	if err == nil {
		return n, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != duplicateKeyCode {
			return n - len(bwe.WriteErrors), fmt.Errorf("%s: %w", op, err)
		}
	}
	if bwe.WriteConcernError != nil {
		return n - len(bwe.WriteErrors), fmt.Errorf("%s: %w", op, err)
	}
	return n - len(bwe.WriteErrors), fmt.Errorf("%s: %d duplicate(s): %w", op, len(bwe.WriteErrors), store.ErrDuplicate)
}

const duplicateKeyCode = 11000
