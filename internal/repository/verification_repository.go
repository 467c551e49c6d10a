package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/northwoods-housing/compass/api/internal/database"
	"github.com/northwoods-housing/compass/api/internal/models"
)

// VerificationRepository defines data access for the append-only
// verification event log.
type VerificationRepository interface {
	// Append inserts a verification event and, in the same transaction,
	// refreshes the owning resource's summary fields (last_verified_date,
	// verification_confidence, verification_source) in a single-row
	// update. Returns false if the resource does not exist or is
	// inactive; the event is not written in that case.
	Append(ctx context.Context, ev *models.VerificationEvent, newConfidence int, source *string) (bool, error)

	// ListByResource returns a resource's full event history, most
	// recent first.
	ListByResource(ctx context.Context, resourceID int64) ([]models.VerificationEvent, error)

	// ListSince returns, for each requested resource, its events
	// verified after the cutoff. Resources with no qualifying events
	// have no map entry.
	ListSince(ctx context.Context, resourceIDs []int64, since time.Time) (map[int64][]models.VerificationEvent, error)
}

type verificationRepository struct {
	db *database.Database
}

// NewVerificationRepository creates a new VerificationRepository.
func NewVerificationRepository(db *database.Database) VerificationRepository {
	return &verificationRepository{
		db: db,
	}
}

const verificationColumns = `
	id,
	resource_id,
	verified_by,
	verification_method,
	verified_at,
	notes,
	confidence_score,
	prior_snapshot`

// Append writes the event and summary refresh atomically. The update is
// guarded on is_active so verifications can never resurrect a
// soft-deleted resource's summary.
func (repo *verificationRepository) Append(ctx context.Context, ev *models.VerificationEvent, newConfidence int, source *string) (bool, error) {
	tx, err := repo.db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin verification transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `
		UPDATE resources
		SET last_verified_date = now(),
		    verification_confidence = $2,
		    verification_source = COALESCE($3, verification_source),
		    updated_at = now()
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := tx.Exec(ctx, updateQuery, ev.ResourceID, newConfidence, source)
	if err != nil {
		return false, fmt.Errorf("failed to update verification summary for resource %d: %w", ev.ResourceID, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	insertQuery := `
		INSERT INTO verification_logs (
			resource_id, verified_by, verification_method, notes,
			confidence_score, prior_snapshot
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, verified_at
	`

	err = tx.QueryRow(ctx, insertQuery,
		ev.ResourceID, ev.VerifiedBy, ev.Method, ev.Notes,
		ev.ConfidenceScore, ev.PriorSnapshot,
	).Scan(&ev.ID, &ev.VerifiedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert verification event for resource %d: %w", ev.ResourceID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit verification transaction: %w", err)
	}

	return true, nil
}

// ListByResource returns the event history for one resource.
func (repo *verificationRepository) ListByResource(ctx context.Context, resourceID int64) ([]models.VerificationEvent, error) {
	query := `SELECT ` + verificationColumns + `
		FROM verification_logs
		WHERE resource_id = $1
		ORDER BY verified_at DESC, id DESC
	`

	rows, err := repo.db.Pool.Query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list verification events for resource %d: %w", resourceID, err)
	}
	defer rows.Close()

	events := []models.VerificationEvent{}
	for rows.Next() {
		var ev models.VerificationEvent
		err := rows.Scan(
			&ev.ID, &ev.ResourceID, &ev.VerifiedBy, &ev.Method,
			&ev.VerifiedAt, &ev.Notes, &ev.ConfidenceScore, &ev.PriorSnapshot,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verification event row: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating verification event rows: %w", err)
	}

	return events, nil
}

// ListSince batch-loads in-horizon events for the discovery engine's
// annotation stage.
func (repo *verificationRepository) ListSince(ctx context.Context, resourceIDs []int64, since time.Time) (map[int64][]models.VerificationEvent, error) {
	result := make(map[int64][]models.VerificationEvent, len(resourceIDs))
	if len(resourceIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + verificationColumns + `
		FROM verification_logs
		WHERE resource_id = ANY($1) AND verified_at > $2
		ORDER BY resource_id, verified_at DESC
	`

	rows, err := repo.db.Pool.Query(ctx, query, resourceIDs, since)
	if err != nil {
		return nil, fmt.Errorf("failed to batch-load verification events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev models.VerificationEvent
		err := rows.Scan(
			&ev.ID, &ev.ResourceID, &ev.VerifiedBy, &ev.Method,
			&ev.VerifiedAt, &ev.Notes, &ev.ConfidenceScore, &ev.PriorSnapshot,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verification event row: %w", err)
		}
		result[ev.ResourceID] = append(result[ev.ResourceID], ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating verification event rows: %w", err)
	}

	return result, nil
}
