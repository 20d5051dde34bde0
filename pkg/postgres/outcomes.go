package postgres

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/sekolahku/ppdb/pkg/db"
)

// pathLockKey derives the advisory lock key for an admission path.
// The classifier constant keeps these keys out of the range other
// advisory-lock users of the same database might pick.
func pathLockKey(path string) int64 {
	const classifier = int64(0x70706462) // "ppdb"
	h := fnv.New32a()
	h.Write([]byte(path))
	return classifier<<32 | int64(h.Sum32())
}

// UpdateOutcomes applies an allocation atomically: every accepted id is
// set to accepted and every rejected id to rejected, in one transaction.
// Before writing it takes a transaction-scoped advisory lock per affected
// path, so two selection runs touching the same path serialize while runs
// on disjoint paths proceed in parallel. The writes are absolute status
// assignments, so re-applying the same allocation is a no-op.
func (d *DB) UpdateOutcomes(ctx context.Context, accepted, rejected []string, paths []string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, path := range paths {
		var acquired bool
		if err := tx.QueryRow(ctx, `SELECT pg_try_advisory_xact_lock($1)`, pathLockKey(path)).Scan(&acquired); err != nil {
			return fmt.Errorf("failed to acquire path lock for %s: %w", path, err)
		}
		if !acquired {
			return fmt.Errorf("path %s: %w", path, db.ErrConcurrencyConflict)
		}
	}

	if len(accepted) > 0 {
		if _, err := tx.Exec(ctx, `UPDATE student SET outcome = 'accepted' WHERE id = ANY($1)`, accepted); err != nil {
			return fmt.Errorf("failed to write accepted outcomes: %w", err)
		}
	}
	if len(rejected) > 0 {
		if _, err := tx.Exec(ctx, `UPDATE student SET outcome = 'rejected' WHERE id = ANY($1)`, rejected); err != nil {
			return fmt.Errorf("failed to write rejected outcomes: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
