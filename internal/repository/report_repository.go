package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/northwoods-housing/compass/api/internal/database"
	"github.com/northwoods-housing/compass/api/internal/models"
)

// ReportRepository defines data access for community reports.
type ReportRepository interface {
	// Create inserts a new pending report and fills in its generated id,
	// creation timestamp, and status.
	Create(ctx context.Context, r *models.CommunityReport) error

	// GetByID fetches a report. Returns nil, nil if absent.
	GetByID(ctx context.Context, id int64) (*models.CommunityReport, error)

	// ListByResource returns a resource's reports, most recent first.
	ListByResource(ctx context.Context, resourceID int64) ([]models.CommunityReport, error)

	// ListPending returns the review queue, oldest first.
	ListPending(ctx context.Context, limit, offset int) ([]models.CommunityReport, error)

	// ListPendingSince batch-loads recent pending reports for the
	// discovery engine's concern annotation. Resources with no
	// qualifying reports have no map entry.
	ListPendingSince(ctx context.Context, resourceIDs []int64, since time.Time) (map[int64][]models.CommunityReport, error)

	// Transition applies a guarded status change: the row is updated
	// only if its current status equals from. Returns false when zero
	// rows matched, which means the report is missing or was not in the
	// expected state. The precondition check and the write are one
	// atomic statement; there is no read-then-write window.
	Transition(ctx context.Context, id int64, from, to models.ReportStatus, reviewerID int64, notes *string) (bool, error)
}

type reportRepository struct {
	db *database.Database
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *database.Database) ReportRepository {
	return &reportRepository{
		db: db,
	}
}

const reportColumns = `
	id,
	resource_id,
	reported_by,
	report_type,
	details,
	created_at,
	status,
	reviewed_by,
	reviewed_at,
	admin_notes`

func scanReport(row rowScanner) (*models.CommunityReport, error) {
	var r models.CommunityReport
	err := row.Scan(
		&r.ID, &r.ResourceID, &r.ReportedBy, &r.Kind, &r.Details,
		&r.CreatedAt, &r.Status, &r.ReviewedBy, &r.ReviewedAt, &r.AdminNotes,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a pending report.
func (repo *reportRepository) Create(ctx context.Context, r *models.CommunityReport) error {
	query := `
		INSERT INTO community_reports (
			resource_id, reported_by, report_type, details, status
		) VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, created_at, status
	`

	err := repo.db.Pool.QueryRow(ctx, query,
		r.ResourceID, r.ReportedBy, r.Kind, r.Details,
	).Scan(&r.ID, &r.CreatedAt, &r.Status)
	if err != nil {
		return fmt.Errorf("failed to insert community report for resource %d: %w", r.ResourceID, err)
	}

	return nil
}

// GetByID fetches one report.
func (repo *reportRepository) GetByID(ctx context.Context, id int64) (*models.CommunityReport, error) {
	query := `SELECT ` + reportColumns + `
		FROM community_reports
		WHERE id = $1`

	r, err := scanReport(repo.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query community report %d: %w", id, err)
	}

	return r, nil
}

// ListByResource returns a resource's reports, most recent first.
func (repo *reportRepository) ListByResource(ctx context.Context, resourceID int64) ([]models.CommunityReport, error) {
	query := `SELECT ` + reportColumns + `
		FROM community_reports
		WHERE resource_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := repo.db.Pool.Query(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for resource %d: %w", resourceID, err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// ListPending returns pending reports, oldest first so the review queue
// is worked in arrival order.
func (repo *reportRepository) ListPending(ctx context.Context, limit, offset int) ([]models.CommunityReport, error) {
	query := `SELECT ` + reportColumns + `
		FROM community_reports
		WHERE status = 'pending'
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := repo.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// ListPendingSince batch-loads recent pending reports per resource.
func (repo *reportRepository) ListPendingSince(ctx context.Context, resourceIDs []int64, since time.Time) (map[int64][]models.CommunityReport, error) {
	result := make(map[int64][]models.CommunityReport, len(resourceIDs))
	if len(resourceIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + reportColumns + `
		FROM community_reports
		WHERE resource_id = ANY($1) AND status = 'pending' AND created_at > $2
		ORDER BY resource_id, created_at DESC
	`

	rows, err := repo.db.Pool.Query(ctx, query, resourceIDs, since)
	if err != nil {
		return nil, fmt.Errorf("failed to batch-load pending reports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		result[r.ResourceID] = append(result[r.ResourceID], *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return result, nil
}

// Transition performs the guarded single-row status update.
func (repo *reportRepository) Transition(ctx context.Context, id int64, from, to models.ReportStatus, reviewerID int64, notes *string) (bool, error) {
	query := `
		UPDATE community_reports
		SET status = $3,
		    reviewed_by = $4,
		    reviewed_at = now(),
		    admin_notes = COALESCE($5, admin_notes)
		WHERE id = $1 AND status = $2
	`

	tag, err := repo.db.Pool.Exec(ctx, query, id, from, to, reviewerID, notes)
	if err != nil {
		return false, fmt.Errorf("failed to transition report %d from %s to %s: %w", id, from, to, err)
	}

	return tag.RowsAffected() > 0, nil
}

// collectReports drains a reportColumns row set.
func collectReports(rows pgx.Rows) ([]models.CommunityReport, error) {
	reports := []models.CommunityReport{}

	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}
