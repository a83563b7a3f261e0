package company

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	companyerrors "go-firme/internal/company/errors"
	"go-firme/internal/config"
	"go-firme/internal/listafirme"
	"go-firme/internal/shared/contextutil"

	"go.uber.org/zap"
)

const stackLines = 20

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Fetcher interface {
	Fetch(ctx context.Context, cui string) (listafirme.RawResponse, error)
}

type Service interface {
	Lookup(ctx context.Context, cui string) (*CompanyRecord, error)
	IsDemo(cui string) bool
}

type service struct {
	fetcher Fetcher
	cfg     config.ListaFirmeConfig
	logger  *zap.Logger
}

func NewService(fetcher Fetcher, cfg config.ListaFirmeConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{fetcher: fetcher, cfg: cfg, logger: l}
}

// IsDemo reports whether cui would be answered with demo data.
func (s *service) IsDemo(cui string) bool {
	return s.cfg.DemoMode && s.cfg.APIKey == "" && cui != "" && cui == s.cfg.TestCUI
}

// Lookup never panics. Provider failures of any kind are reported as
// ErrCompanyNotFound, with the cause attached.
func (s *service) Lookup(ctx context.Context, cui string) (rec *CompanyRecord, err error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("cui", cui))

	defer func() {
		if r := recover(); r != nil {
			log.Error("company lookup panicked",
				zap.String("panic", fmt.Sprint(r)),
				zap.String("stack", truncatedStack()),
			)
			rec = nil
			err = companyerrors.ErrLookupFailed
		}
	}()

	cui = strings.TrimSpace(cui)
	if !isDigits(cui) {
		return nil, companyerrors.ErrInvalidCUI
	}

	if s.IsDemo(cui) {
		log.Info("serving demo company record")
		return DemoRecord(cui), nil
	}

	if s.cfg.APIKey == "" {
		log.Warn("lista firme api key is not configured")
		return nil, companyerrors.ErrNotConfigured
	}

	raw, err := s.fetcher.Fetch(ctx, cui)
	if err != nil {
		log.Info("company fetch failed",
			zap.String("kind", string(listafirme.KindOf(err))),
			zap.Error(err),
		)
		return nil, companyerrors.ErrCompanyNotFound.WithCause(err)
	}

	rec = Normalize(raw)
	if rec == nil {
		log.Info("provider payload has no company data")
		return nil, companyerrors.ErrCompanyNotFound
	}

	return rec, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncatedStack() string {
	lines := strings.Split(string(debug.Stack()), "\n")
	if len(lines) > stackLines {
		lines = lines[:stackLines]
	}
	return strings.Join(lines, "\n")
}
