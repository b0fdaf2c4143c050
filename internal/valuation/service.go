package valuation

import (
	"context"
	"time"

	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// PositionValue is one portfolio line priced against the market. When the
// quote lookup for the symbol fails, the purchase price stands in for the
// current price and the line is marked stale; one bad symbol never fails
// the whole valuation.
type PositionValue struct {
	Symbol   string          `json:"symbol"`
	Quantity int64           `json:"quantity"`
	AvgPrice decimal.Decimal `json:"purchase_price"`

	CurrentPrice      decimal.Decimal `json:"current_price"`
	CurrentValue      decimal.Decimal `json:"current_value"`
	InvestmentValue   decimal.Decimal `json:"investment_value"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percentage"`

	PriceStale bool `json:"price_stale,omitempty"`

	FirstPurchasedAt time.Time `json:"first_purchased_at"`
	LotCount         int64     `json:"lot_count"`
}

type Summary struct {
	TotalInvestment        decimal.Decimal `json:"total_investment"`
	CurrentValue           decimal.Decimal `json:"current_value"`
	TotalProfitLoss        decimal.Decimal `json:"total_profit_loss"`
	TotalProfitLossPercent decimal.Decimal `json:"total_profit_loss_percentage"`
}

type Report struct {
	Positions []*PositionValue `json:"portfolio"`
	Summary   Summary          `json:"summary"`
}

type Service struct {
	positions domain.PositionsRepository
	prices    domain.PriceLookup
}

func NewService(positions domain.PositionsRepository, prices domain.PriceLookup) *Service {
	return &Service{
		positions: positions,
		prices:    prices,
	}
}

func (s *Service) Valuate(ctx context.Context, ownerID int64) (*Report, error) {
	positions, err := s.positions.GetPositions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Positions: make([]*PositionValue, 0, len(positions)),
		Summary: Summary{
			TotalInvestment:        decimal.Zero,
			CurrentValue:           decimal.Zero,
			TotalProfitLoss:        decimal.Zero,
			TotalProfitLossPercent: decimal.Zero,
		},
	}

	for _, position := range positions {
		value := s.valuatePosition(ctx, position)

		report.Summary.TotalInvestment = report.Summary.TotalInvestment.Add(value.InvestmentValue)
		report.Summary.CurrentValue = report.Summary.CurrentValue.Add(value.CurrentValue)

		report.Positions = append(report.Positions, value)
	}

	report.Summary.TotalProfitLoss = report.Summary.CurrentValue.Sub(report.Summary.TotalInvestment)
	if report.Summary.TotalInvestment.IsPositive() {
		report.Summary.TotalProfitLossPercent = report.Summary.TotalProfitLoss.
			Div(report.Summary.TotalInvestment).
			Mul(hundred)
	}

	return report, nil
}

func (s *Service) valuatePosition(ctx context.Context, position *domain.Position) *PositionValue {
	currentPrice, err := s.prices.GetPrice(ctx, position.Symbol)
	stale := err != nil
	if stale {
		// Degraded mode: price the line at cost, zero profit/loss.
		currentPrice = position.AvgPrice

		log.Warn("price lookup failed, falling back to purchase price",
			zap.String("symbol", position.Symbol),
			zap.Error(err),
		)
	}

	quantity := decimal.NewFromInt(position.Quantity)
	currentValue := currentPrice.Mul(quantity)
	investmentValue := position.AvgPrice.Mul(quantity)
	profitLoss := currentValue.Sub(investmentValue)

	profitLossPercent := decimal.Zero
	if investmentValue.IsPositive() {
		profitLossPercent = profitLoss.Div(investmentValue).Mul(hundred)
	}

	return &PositionValue{
		Symbol:            position.Symbol,
		Quantity:          position.Quantity,
		AvgPrice:          position.AvgPrice,
		CurrentPrice:      currentPrice,
		CurrentValue:      currentValue,
		InvestmentValue:   investmentValue,
		ProfitLoss:        profitLoss,
		ProfitLossPercent: profitLossPercent,
		PriceStale:        stale,
		FirstPurchasedAt:  position.FirstPurchasedAt,
		LotCount:          position.LotCount,
	}
}
