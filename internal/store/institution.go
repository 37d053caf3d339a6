package store

import (
	"context"
	"fmt"
	"time"

	"edureg/internal/utils"
	"edureg/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const institutionTableName = "edureg.institutions"

var institutionColumns = utils.StructTagValues(types.InstitutionProfile{})

// columns left untouched when an existing row is upserted
var institutionInsertOnly = []string{"id", "status", "verified_at", "created_at"}

type InstitutionRepository struct {
	pool *pgxpool.Pool
}

func NewInstitutionRepository(pool *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{pool: pool}
}

func (r *InstitutionRepository) Institution(ctx context.Context, id string) (*types.InstitutionProfile, error) {
	query, args, err := psql().
		Select(institutionColumns...).
		From(institutionTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate institution query: %w", err)
	}

	var profile types.InstitutionProfile
	err = pgxscan.Get(ctx, r.pool, &profile, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to fetch institution: %w", err)
	}

	return &profile, nil
}

// Upsert writes profile keyed by its id. When the upsert is rejected by a
// constraint error it is retried once as a plain insert.
func (r *InstitutionRepository) Upsert(ctx context.Context, profile *types.InstitutionProfile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	if profile.Status == "" {
		profile.Status = types.InstitutionStatusPendingReview
	}

	query, args, err := institutionUpsertQuery(profile)
	if err != nil {
		return fmt.Errorf("failed to generate upsert institution query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err == nil {
		return nil
	}
	if !upsertRejected(err) {
		return fmt.Errorf("failed to upsert institution: %w", err)
	}

	query, args, err = psql().
		Insert(institutionTableName).
		SetMap(utils.StructToMap(profile)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert institution query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert institution: %w", err)
	}

	return nil
}

func institutionUpsertQuery(profile *types.InstitutionProfile) (string, []any, error) {
	return psql().
		Insert(institutionTableName).
		SetMap(utils.StructToMap(profile)).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + utils.ExcludedAssignments(institutionColumns, institutionInsertOnly...)).
		ToSql()
}
