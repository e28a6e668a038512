package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/pricing"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// MockPresenter is a mock for the Presenter interface
type MockPresenter struct {
	mock.Mock
}

func (m *MockPresenter) Heading(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func (m *MockPresenter) Message(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func (m *MockPresenter) Table(ctx context.Context, t exporter.Table) error {
	return m.Called(ctx, t).Error(0)
}

func presenterResult(variant domain.Variant, unknown int) *domain.AnalysisResult {
	res := &domain.AnalysisResult{Variant: variant, TotalListings: 4, UnknownCount: unknown}
	for _, b := range pricing.All() {
		res.Bands = append(res.Bands, pricing.SummaryRow(b, 0))
	}
	for _, c := range []domain.QualityCheck{domain.CheckMissingEngineHours, domain.CheckInvalidHIN, domain.CheckMissingDisplayPrice} {
		res.Quality = append(res.Quality, domain.QualitySubset{Check: c, Listings: []domain.MakeModel{}})
	}
	if variant.Extended() {
		res.Quality = append(res.Quality, domain.QualitySubset{Check: domain.CheckLowImages, Listings: []domain.MakeModel{}})
		res.Totals = &domain.RevenueTotals{BT: decimal.RequireFromString("93.75"), YW: decimal.NewFromInt(375)}
	}
	return res
}

func TestPresent_Extended(t *testing.T) {
	ctx := context.Background()
	p := new(MockPresenter)

	var headings []string
	p.On("Heading", ctx, mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		headings = append(headings, args.String(1))
	}).Return(nil)
	p.On("Message", ctx, "Total listings: 4").Return(nil).Once()
	p.On("Message", ctx, "Total BT revenue: $93.75").Return(nil).Once()
	p.On("Message", ctx, "Total YW revenue: $375.00").Return(nil).Once()
	p.On("Message", ctx, "1 listings have no usable display price (Unknown band)").Return(nil).Once()
	p.On("Table", ctx, mock.AnythingOfType("exporter.Table")).Return(nil).Times(5)

	err := Present(ctx, p, presenterResult(domain.VariantExtended, 1))
	assert.NoError(t, err)
	p.AssertExpectations(t)

	assert.Equal(t, []string{
		"Boat Inventory Analysis",
		"Price Band Summary",
		"Boats with Missing Engine Hours",
		"Boats with Invalid HIN Numbers",
		"Boats with Missing Display Price",
		"Boats with Fewer Than 10 Images",
	}, headings)
}

func TestPresent_BasicOmitsTotals(t *testing.T) {
	ctx := context.Background()
	p := new(MockPresenter)
	p.On("Heading", ctx, mock.Anything).Return(nil)
	p.On("Message", ctx, "Total listings: 4").Return(nil).Once()
	p.On("Table", ctx, mock.Anything).Return(nil).Times(4)

	assert.NoError(t, Present(ctx, p, presenterResult(domain.VariantBasic, 0)))
	p.AssertExpectations(t)
	p.AssertNotCalled(t, "Message", ctx, "Total BT revenue: $93.75")
}

func TestPresent_StopsOnError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("terminal closed")
	p := new(MockPresenter)
	p.On("Heading", ctx, mock.Anything).Return(nil)
	p.On("Message", ctx, mock.Anything).Return(nil)
	p.On("Table", ctx, mock.Anything).Return(boom).Once()

	assert.ErrorIs(t, Present(ctx, p, presenterResult(domain.VariantExtended, 0)), boom)
	p.AssertNumberOfCalls(t, "Table", 1)
}
