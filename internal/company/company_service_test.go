package company_test

import (
	"context"
	"errors"
	"testing"

	"go-firme/internal/company"
	companyerrors "go-firme/internal/company/errors"
	companyMock "go-firme/internal/company/mock"
	"go-firme/internal/config"
	"go-firme/internal/listafirme"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func lookupConfig(apiKey string, demo bool) config.ListaFirmeConfig {
	return config.ListaFirmeConfig{
		APIKey:   apiKey,
		TestCUI:  "14837428",
		DemoMode: demo,
	}
}

func TestService_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("demo mode serves mock without fetching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)
		fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Times(0)

		svc := company.NewService(fetcher, lookupConfig("", true), zap.NewNop())
		rec, err := svc.Lookup(ctx, "14837428")

		assert.NoError(t, err)
		assert.Equal(t, company.DemoRecord("14837428"), rec)
		assert.Equal(t, "3.708.712 RON", rec.Turnover)
		assert.True(t, svc.IsDemo("14837428"))
	})

	t.Run("test cui without demo mode is not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)

		svc := company.NewService(fetcher, lookupConfig("", false), zap.NewNop())
		rec, err := svc.Lookup(ctx, "14837428")

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, companyerrors.ErrNotConfigured)
	})

	t.Run("other cui without key is not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)

		svc := company.NewService(fetcher, lookupConfig("", true), zap.NewNop())
		rec, err := svc.Lookup(ctx, "123")

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, companyerrors.ErrNotConfigured)
		assert.False(t, svc.IsDemo("123"))
	})

	t.Run("configured key always fetches, even for the test cui", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)
		fetcher.EXPECT().
			Fetch(ctx, "14837428").
			Return(listafirme.RawResponse{"TaxCode": "14837428", "Name": "REAL SRL"}, nil)

		svc := company.NewService(fetcher, lookupConfig("secret-key-123", true), zap.NewNop())
		rec, err := svc.Lookup(ctx, "14837428")

		assert.NoError(t, err)
		assert.Equal(t, "REAL SRL", rec.CompanyName)
		assert.False(t, svc.IsDemo("14837428"))
	})

	t.Run("fetch failure becomes not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)
		fetchErr := &listafirme.Error{Kind: listafirme.KindTimeout, Message: "request timed out after 30s"}
		fetcher.EXPECT().Fetch(ctx, "123").Return(nil, fetchErr)

		svc := company.NewService(fetcher, lookupConfig("secret-key-123", false), zap.NewNop())
		rec, err := svc.Lookup(ctx, "123")

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
		assert.Equal(t, listafirme.KindTimeout, listafirme.KindOf(err))
	})

	t.Run("payload without company data becomes not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)
		fetcher.EXPECT().Fetch(ctx, "123").Return(listafirme.RawResponse{"Name": "no tax code"}, nil)

		svc := company.NewService(fetcher, lookupConfig("secret-key-123", false), zap.NewNop())
		rec, err := svc.Lookup(ctx, "123")

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)
		fetcher.EXPECT().Fetch(ctx, "123").DoAndReturn(func(context.Context, string) (listafirme.RawResponse, error) {
			panic(errors.New("boom"))
		})

		svc := company.NewService(fetcher, lookupConfig("secret-key-123", false), zap.NewNop())

		var (
			rec *company.CompanyRecord
			err error
		)
		assert.NotPanics(t, func() { rec, err = svc.Lookup(ctx, "123") })
		assert.Nil(t, rec)
		assert.ErrorIs(t, err, companyerrors.ErrLookupFailed)
	})

	t.Run("non digit cui is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := companyMock.NewMockFetcher(ctrl)

		svc := company.NewService(fetcher, lookupConfig("secret-key-123", false), zap.NewNop())

		for _, cui := range []string{"", "RO123", "12 34", "-1"} {
			rec, err := svc.Lookup(ctx, cui)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, companyerrors.ErrInvalidCUI, cui)
		}
	})
}
