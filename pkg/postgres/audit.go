package postgres

import (
	"context"
	"fmt"

	"github.com/sekolahku/ppdb/pkg/db"
)

// InsertAuditEntry writes one audit trail row
func (d *DB) InsertAuditEntry(ctx context.Context, entry db.AuditEntry) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO audit_log (id, action, entity_type, entity_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.Action, entry.EntityType, entry.EntityID, entry.Details)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}
