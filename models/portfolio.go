package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Holding is a position as recorded in the seed: what was bought and at what
// average price. Everything else about a PortfolioAsset is derived.
type Holding struct {
	ID           string  `yaml:"id"`
	Symbol       string  `yaml:"symbol"`
	Quantity     float64 `yaml:"quantity"`
	AveragePrice float64 `yaml:"average_price"`
}

type PortfolioAsset struct {
	ID                 string  `json:"id"`
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	Quantity           float64 `json:"quantity"`
	AveragePrice       float64 `json:"averagePrice"`
	CurrentPrice       float64 `json:"currentPrice"`
	TotalValue         float64 `json:"totalValue"`
	TotalChange        float64 `json:"totalChange"`
	TotalChangePercent float64 `json:"totalChangePercent"`
}

type Portfolio struct {
	ID                 string           `json:"id"`
	TotalValue         float64          `json:"totalValue"`
	TotalChange        float64          `json:"totalChange"`
	TotalChangePercent float64          `json:"totalChangePercent"`
	Assets             []PortfolioAsset `json:"assets"`
}

// Allocation is one holding's share of the portfolio value.
type Allocation struct {
	Symbol  string  `json:"symbol"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

var hundred = decimal.NewFromInt(100)

// NewPortfolioAsset values a holding at the asset's current price. Money is
// rounded to cents.
func NewPortfolioAsset(h Holding, a Asset) PortfolioAsset {
	qty := decimal.NewFromFloat(h.Quantity)
	avg := decimal.NewFromFloat(h.AveragePrice)
	cur := decimal.NewFromFloat(a.Price)

	diff := cur.Sub(avg)
	pct := decimal.Zero
	if !avg.IsZero() {
		pct = diff.Div(avg).Mul(hundred)
	}

	return PortfolioAsset{
		ID:                 h.ID,
		Symbol:             a.Symbol,
		Name:               a.Name,
		Quantity:           h.Quantity,
		AveragePrice:       h.AveragePrice,
		CurrentPrice:       a.Price,
		TotalValue:         qty.Mul(cur).Round(2).InexactFloat64(),
		TotalChange:        qty.Mul(diff).Round(2).InexactFloat64(),
		TotalChangePercent: pct.Round(2).InexactFloat64(),
	}
}

// NewPortfolio aggregates holdings. The overall change percent is measured
// against the cost basis (value minus change).
func NewPortfolio(id string, assets []PortfolioAsset) Portfolio {
	value, change := decimal.Zero, decimal.Zero
	for _, a := range assets {
		value = value.Add(decimal.NewFromFloat(a.TotalValue))
		change = change.Add(decimal.NewFromFloat(a.TotalChange))
	}

	pct := decimal.Zero
	if basis := value.Sub(change); !basis.IsZero() {
		pct = change.Div(basis).Mul(hundred)
	}

	return Portfolio{
		ID:                 id,
		TotalValue:         value.Round(2).InexactFloat64(),
		TotalChange:        change.Round(2).InexactFloat64(),
		TotalChangePercent: pct.Round(2).InexactFloat64(),
		Assets:             append(make([]PortfolioAsset, 0, len(assets)), assets...),
	}
}

// Clone returns a copy whose holdings slice is independent of p.
func (p Portfolio) Clone() Portfolio {
	out := p
	out.Assets = slices.Clone(p.Assets)
	return out
}

// Allocation reports each holding's share of TotalValue, in holding order.
func (p Portfolio) Allocation() []Allocation {
	total := decimal.NewFromFloat(p.TotalValue)
	out := make([]Allocation, 0, len(p.Assets))
	for _, a := range p.Assets {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = decimal.NewFromFloat(a.TotalValue).Div(total).Mul(hundred)
		}
		out = append(out, Allocation{
			Symbol:  a.Symbol,
			Value:   a.TotalValue,
			Percent: pct.Round(2).InexactFloat64(),
		})
	}
	return out
}
