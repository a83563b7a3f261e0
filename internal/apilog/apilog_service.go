package apilog

import (
	"context"
	"time"

	apilogerrors "go-firme/internal/apilog/errors"
	"go-firme/internal/audit"
	"go-firme/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRecent = 500

//go:generate mockgen -source=apilog_service.go -destination=mock/apilog_service_mock.go -package=mock
type Service interface {
	audit.Sink

	Recent(ctx context.Context, limit int) ([]APILogResponse, error)
	FilterByCUI(ctx context.Context, cui string) ([]APILogResponse, error)
	List(ctx context.Context, q ListQuery) ([]APILogResponse, int64, error)
	GetByID(ctx context.Context, id string) (*APILogResponse, error)
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("apilog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("apilog.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

// Record persists entry. A failed insert is logged and dropped so the
// lookup that produced it is unaffected.
func (s *service) Record(ctx context.Context, entry audit.Entry) {
	row := FromEntry(entry)
	if err := s.repo.Create(ctx, row); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to persist api log",
			zap.String("cui", entry.CUI),
			zap.Int("status", entry.ResponseStatus),
			zap.Error(err),
		)
	}
}

func (s *service) Recent(ctx context.Context, limit int) ([]APILogResponse, error) {
	if limit <= 0 {
		limit = defaultRecent
	}
	if limit > maxRecent {
		limit = maxRecent
	}

	logs, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

func (s *service) FilterByCUI(ctx context.Context, cui string) ([]APILogResponse, error) {
	logs, err := s.repo.FindByCUI(ctx, cui)
	if err != nil {
		return nil, err
	}
	return toResponses(logs), nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]APILogResponse, int64, error) {
	q.Normalize()

	logs, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(logs), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*APILogResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apilogerrors.ErrInvalidAPILogID
	}

	log, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	resp := toResponse(*log)
	return &resp, nil
}

// PurgeOlderThan deletes entries created more than days ago and returns how
// many were removed.
func (s *service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		return 0, apilogerrors.ErrInvalidRetention
	}

	cutoff := s.now().UTC().AddDate(0, 0, -days)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("api logs purged",
		zap.Int("older_than_days", days),
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}
