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

// MetersPerMile converts the API's mile-based radii to the meters that
// PostGIS geography functions operate in.
const MetersPerMile = 1609.344

// Maximum candidate set returned by a radius query. Bounds the work the
// discovery engine does per request.
const maxCandidates = 1000

// ResourceWithDistance represents a resource with its distance from a
// reference point, in miles.
type ResourceWithDistance struct {
	Resource      models.Resource
	DistanceMiles float64
}

// ResourceQuery carries the indexed attribute filters that are pushed
// down to the database. The discovery engine re-applies them as pure
// stages; the push-down only narrows the candidate set.
type ResourceQuery struct {
	Category *models.Category
	County   *string
}

// ResourceRepository defines the interface for resource data access.
// Read methods only ever see active resources; soft-deleted rows are
// retained for audit but invisible here.
type ResourceRepository interface {
	// Create inserts a new resource and fills in its generated id and
	// timestamps.
	Create(ctx context.Context, r *models.Resource) error

	// GetByID fetches an active resource by id.
	// Returns nil, nil if no active resource exists (not an error).
	GetByID(ctx context.Context, id int64) (*models.Resource, error)

	// Update writes the resource's mutable fields. Returns false if no
	// active resource row was updated.
	Update(ctx context.Context, r *models.Resource) (bool, error)

	// SoftDelete marks a resource inactive. Returns false if no active
	// resource row was affected.
	SoftDelete(ctx context.Context, id int64) (bool, error)

	// FindWithin finds active resources with a location inside the given
	// radius of the center point, ordered by ascending distance with id
	// as tie-break. Distances are spherical (geography), never planar.
	FindWithin(ctx context.Context, lat, lng, radiusMiles float64, q ResourceQuery) ([]ResourceWithDistance, error)

	// ListActive lists active resources matching the query, ordered by
	// id for determinism.
	ListActive(ctx context.Context, q ResourceQuery) ([]models.Resource, error)

	// ListStale lists active resources last verified before the cutoff,
	// never-verified first, oldest next. This is the reverification
	// remediation queue.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]models.Resource, error)

	// ListCounties returns the distinct counties of active resources.
	ListCounties(ctx context.Context) ([]string, error)

	// ListCategories returns the distinct categories of active resources.
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// resourceRepository is the concrete implementation of ResourceRepository.
type resourceRepository struct {
	db *database.Database
}

// NewResourceRepository creates a new instance of ResourceRepository.
func NewResourceRepository(db *database.Database) ResourceRepository {
	return &resourceRepository{
		db: db,
	}
}

// resourceColumns is the canonical select list. Location is read through
// ST_AsGeoJSON so the Point scanner can parse it.
const resourceColumns = `
	id,
	resource_type,
	name,
	description,
	address,
	ST_AsGeoJSON(location) as location,
	county,
	town,
	phone,
	email,
	website,
	hours_of_operation,
	seasonal_availability_summer,
	seasonal_availability_winter,
	restrictions,
	access_tier,
	last_verified_date,
	verification_source,
	verification_confidence,
	capacity,
	cost_info,
	languages_supported,
	dump_station_fee,
	propane_price_per_gallon,
	camping_nightly_rate,
	created_by,
	created_at,
	updated_at,
	is_active`

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanResource reads one row of resourceColumns into a Resource.
// extra receives any trailing columns appended after the canonical list.
func scanResource(row rowScanner, extra ...any) (*models.Resource, error) {
	var r models.Resource
	var geomJSON []byte

	dest := []any{
		&r.ID,
		&r.Category,
		&r.Name,
		&r.Description,
		&r.Address,
		&geomJSON,
		&r.County,
		&r.Town,
		&r.Phone,
		&r.Email,
		&r.Website,
		&r.HoursOfOperation,
		&r.SeasonalSummer,
		&r.SeasonalWinter,
		&r.Restrictions,
		&r.AccessTier,
		&r.LastVerifiedAt,
		&r.VerificationSource,
		&r.VerificationConfidence,
		&r.Capacity,
		&r.CostInfo,
		&r.LanguagesSupported,
		&r.DumpStationFee,
		&r.PropanePricePerGallon,
		&r.CampingNightlyRate,
		&r.CreatedBy,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.IsActive,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if geomJSON != nil {
		var p models.Point
		if err := p.Scan(geomJSON); err != nil {
			return nil, fmt.Errorf("failed to parse location for resource %d: %w", r.ID, err)
		}
		r.Location = &p
	}

	return &r, nil
}

// Create inserts a new resource row. The location, when present, is
// written with ST_SetSRID(ST_MakePoint(lng, lat), 4326)::geography so
// all stored points share the geography distance semantics.
func (repo *resourceRepository) Create(ctx context.Context, r *models.Resource) error {
	query := `
		INSERT INTO resources (
			resource_type, name, description, address,
			location,
			county, town, phone, email, website,
			hours_of_operation,
			seasonal_availability_summer, seasonal_availability_winter,
			restrictions, access_tier,
			verification_confidence,
			capacity, cost_info, languages_supported,
			dump_station_fee, propane_price_per_gallon, camping_nightly_rate,
			created_by, is_active
		) VALUES (
			$1, $2, $3, $4,
			CASE WHEN $5::float8 IS NULL THEN NULL
			     ELSE ST_SetSRID(ST_MakePoint($6::float8, $5::float8), 4326)::geography END,
			$7, $8, $9, $10, $11,
			$12,
			$13, $14,
			$15, $16,
			$17,
			$18, $19, $20,
			$21, $22, $23,
			$24, TRUE
		)
		RETURNING id, created_at, updated_at
	`

	var lat, lng *float64
	if r.Location != nil {
		lat, lng = &r.Location.Lat, &r.Location.Lng
	}

	err := repo.db.Pool.QueryRow(ctx, query,
		r.Category, r.Name, r.Description, r.Address,
		lat, lng,
		r.County, r.Town, r.Phone, r.Email, r.Website,
		r.HoursOfOperation,
		r.SeasonalSummer, r.SeasonalWinter,
		r.Restrictions, r.AccessTier,
		r.VerificationConfidence,
		r.Capacity, r.CostInfo, r.LanguagesSupported,
		r.DumpStationFee, r.PropanePricePerGallon, r.CampingNightlyRate,
		r.CreatedBy,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert resource %q: %w", r.Name, err)
	}

	r.IsActive = true
	return nil
}

// GetByID fetches one active resource.
func (repo *resourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	query := `SELECT ` + resourceColumns + `
		FROM resources
		WHERE id = $1 AND is_active = TRUE`

	r, err := scanResource(repo.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query resource %d: %w", id, err)
	}

	return r, nil
}

// Update rewrites the mutable fields of an active resource in a single
// row write. Verification summary fields are deliberately excluded; they
// are only touched by verification appends.
func (repo *resourceRepository) Update(ctx context.Context, r *models.Resource) (bool, error) {
	query := `
		UPDATE resources SET
			name = $2,
			description = $3,
			address = $4,
			location = CASE WHEN $5::float8 IS NULL THEN NULL
			                ELSE ST_SetSRID(ST_MakePoint($6::float8, $5::float8), 4326)::geography END,
			town = $7,
			phone = $8,
			email = $9,
			website = $10,
			hours_of_operation = $11,
			seasonal_availability_summer = $12,
			seasonal_availability_winter = $13,
			restrictions = $14,
			capacity = $15,
			cost_info = $16,
			languages_supported = $17,
			dump_station_fee = $18,
			propane_price_per_gallon = $19,
			camping_nightly_rate = $20,
			updated_at = now()
		WHERE id = $1 AND is_active = TRUE
	`

	var lat, lng *float64
	if r.Location != nil {
		lat, lng = &r.Location.Lat, &r.Location.Lng
	}

	tag, err := repo.db.Pool.Exec(ctx, query,
		r.ID,
		r.Name, r.Description, r.Address,
		lat, lng,
		r.Town, r.Phone, r.Email, r.Website,
		r.HoursOfOperation,
		r.SeasonalSummer, r.SeasonalWinter,
		r.Restrictions,
		r.Capacity, r.CostInfo, r.LanguagesSupported,
		r.DumpStationFee, r.PropanePricePerGallon, r.CampingNightlyRate,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update resource %d: %w", r.ID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// SoftDelete marks a resource inactive. The row and its event history
// are retained for audit.
func (repo *resourceRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE resources
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := repo.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to soft-delete resource %d: %w", id, err)
	}

	return tag.RowsAffected() > 0, nil
}

// FindWithin runs the geography radius query. ST_DWithin and ST_Distance
// both operate on geography casts so distance semantics are spherical
// end to end.
//
// Note: PostGIS functions expect (longitude, latitude) order, not (lat, lng).
func (repo *resourceRepository) FindWithin(ctx context.Context, lat, lng, radiusMiles float64, q ResourceQuery) ([]ResourceWithDistance, error) {
	query := `SELECT ` + resourceColumns + `,
			ST_Distance(
				location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
			) / $3 as distance_miles
		FROM resources
		WHERE is_active = TRUE
		  AND location IS NOT NULL
		  AND ST_DWithin(
			location,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$4
		  )
		  AND ($5::text IS NULL OR resource_type = $5::resource_category)
		  AND ($6::text IS NULL OR county ILIKE '%' || $6 || '%')
		ORDER BY distance_miles, id
		LIMIT $7
	`

	rows, err := repo.db.Pool.Query(ctx, query,
		lng, lat, MetersPerMile, radiusMiles*MetersPerMile,
		q.Category, q.County, maxCandidates,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources within radius (lat=%f, lng=%f, radius=%f): %w",
			lat, lng, radiusMiles, err)
	}
	defer rows.Close()

	var results []ResourceWithDistance

	for rows.Next() {
		var distance float64
		r, err := scanResource(rows, &distance)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}

		results = append(results, ResourceWithDistance{
			Resource:      *r,
			DistanceMiles: distance,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}

	// Return empty slice if no resources found (not an error)
	if results == nil {
		results = []ResourceWithDistance{}
	}

	return results, nil
}

// ListActive lists active resources matching the pushed-down filters.
func (repo *resourceRepository) ListActive(ctx context.Context, q ResourceQuery) ([]models.Resource, error) {
	query := `SELECT ` + resourceColumns + `
		FROM resources
		WHERE is_active = TRUE
		  AND ($1::text IS NULL OR resource_type = $1::resource_category)
		  AND ($2::text IS NULL OR county ILIKE '%' || $2 || '%')
		ORDER BY id
	`

	rows, err := repo.db.Pool.Query(ctx, query, q.Category, q.County)
	if err != nil {
		return nil, fmt.Errorf("failed to list active resources: %w", err)
	}
	defer rows.Close()

	return collectResources(rows)
}

// ListStale returns the reverification queue: never-verified resources
// first, then oldest verifications, id as tie-break.
func (repo *resourceRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]models.Resource, error) {
	query := `SELECT ` + resourceColumns + `
		FROM resources
		WHERE is_active = TRUE
		  AND (last_verified_date IS NULL OR last_verified_date < $1)
		ORDER BY last_verified_date ASC NULLS FIRST, id ASC
		LIMIT $2
	`

	rows, err := repo.db.Pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale resources: %w", err)
	}
	defer rows.Close()

	return collectResources(rows)
}

// collectResources drains a resourceColumns row set.
func collectResources(rows pgx.Rows) ([]models.Resource, error) {
	var results []models.Resource

	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource row: %w", err)
		}
		results = append(results, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}

	if results == nil {
		results = []models.Resource{}
	}

	return results, nil
}

// ListCounties returns the distinct counties of active resources,
// ordered alphabetically. Derived from live data at query time so the
// lookup can never drift from the resource table.
func (repo *resourceRepository) ListCounties(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT county
		FROM resources
		WHERE is_active = TRUE
		ORDER BY county
	`

	rows, err := repo.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list counties: %w", err)
	}
	defer rows.Close()

	counties := []string{}
	for rows.Next() {
		var county string
		if err := rows.Scan(&county); err != nil {
			return nil, fmt.Errorf("failed to scan county row: %w", err)
		}
		counties = append(counties, county)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating county rows: %w", err)
	}

	return counties, nil
}

// ListCategories returns the distinct categories present in active
// resources, in enum declaration order.
func (repo *resourceRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT DISTINCT resource_type
		FROM resources
		WHERE is_active = TRUE
		ORDER BY resource_type
	`

	rows, err := repo.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}
