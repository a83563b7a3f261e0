package apilog

import (
	"context"
	"errors"
	"time"

	apilogerrors "go-firme/internal/apilog/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=apilog_repo.go -destination=mock/apilog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, log *APILog) error
	FindRecent(ctx context.Context, limit int) ([]APILog, error)
	FindByCUI(ctx context.Context, cui string) ([]APILog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*APILog, error)
	List(ctx context.Context, q ListQuery) ([]APILog, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func byCUI(cui string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cui == "" {
			return db
		}
		return db.Where("cui = ?", cui)
	}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func (r *repository) Create(ctx context.Context, log *APILog) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(log).Error)
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]APILog, error) {
	var logs []APILog
	err := r.db.WithContext(ctx).
		Scopes(newestFirst).
		Limit(limit).
		Find(&logs).Error
	return logs, mapRepositoryError(err)
}

func (r *repository) FindByCUI(ctx context.Context, cui string) ([]APILog, error) {
	var logs []APILog
	err := r.db.WithContext(ctx).
		Scopes(byCUI(cui), newestFirst).
		Find(&logs).Error
	return logs, mapRepositoryError(err)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*APILog, error) {
	var log APILog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &log, nil
}

func (r *repository) List(ctx context.Context, q ListQuery) ([]APILog, int64, error) {
	query := r.db.WithContext(ctx).Model(&APILog{}).Scopes(byCUI(q.CUI))
	if q.Status > 0 {
		query = query.Where("response_status = ?", q.Status)
	}
	if q.Failed != nil {
		if *q.Failed {
			query = query.Where("error_message IS NOT NULL")
		} else {
			query = query.Where("error_message IS NULL")
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, mapRepositoryError(err)
	}

	var logs []APILog
	err := query.
		Scopes(newestFirst).
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}

	return logs, total, nil
}

// DeleteOlderThan removes rows created strictly before cutoff.
func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&APILog{})
	if res.Error != nil {
		return 0, mapRepositoryError(res.Error)
	}
	return res.RowsAffected, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apilogerrors.ErrAPILogNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// undefined_table: migrations have not run
		case "42P01":
			return apilogerrors.ErrStoreUnavailable.WithCause(err)
		}
	}

	return err
}
