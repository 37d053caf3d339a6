package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"edureg/internal/utils"
	"edureg/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const enrollmentTableName = "edureg.enrollments"

var enrollmentColumns = utils.StructTagValues(types.Enrollment{})

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create inserts an enrollment. An institution enrolling its own account is
// rejected with types.ErrSelfEnrollment before anything is written.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *types.Enrollment) error {
	if err := checkEnrollment(enrollment); err != nil {
		return err
	}

	now := time.Now()
	enrollment.ID = utils.NanoID()
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now
	if enrollment.Status == "" {
		enrollment.Status = types.EnrollmentStatusPending
	}

	query, args, err := psql().
		Insert(enrollmentTableName).
		SetMap(utils.StructToMap(enrollment)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create enrollment query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	switch pgErrorCode(err) {
	case "":
	case pgUniqueViolation:
		return types.ErrDuplicateEnrollment
	case pgCheckViolation:
		return types.ErrSelfEnrollment
	default:
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) ByInstitution(ctx context.Context, institutionID string) ([]*types.Enrollment, error) {
	query, args, err := psql().
		Select(enrollmentColumns...).
		From(enrollmentTableName).
		Where(sq.Eq{"institution_id": institutionID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate enrollments query: %w", err)
	}

	out := make([]*types.Enrollment, 0)
	if err := pgxscan.Select(ctx, r.pool, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch enrollments: %w", err)
	}

	return out, nil
}

func (r *EnrollmentRepository) CountByInstitution(ctx context.Context, institutionID string) (int, error) {
	query, args, err := psql().
		Select("count(*)").
		From(enrollmentTableName).
		Where(sq.Eq{"institution_id": institutionID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate enrollment count query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	return count, nil
}

func checkEnrollment(e *types.Enrollment) error {
	e.CourseName = strings.TrimSpace(e.CourseName)
	e.StudentID = strings.TrimSpace(e.StudentID)
	e.StudentName = strings.TrimSpace(e.StudentName)

	if e.InstitutionID == "" || e.StudentID == "" || e.CourseName == "" {
		return types.ErrInvalidEnrollment
	}
	if e.StudentID == e.InstitutionID {
		return types.ErrSelfEnrollment
	}
	return nil
}
