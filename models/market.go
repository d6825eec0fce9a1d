package models

import "slices"

// MarketIndex is the level of a benchmark index.
type MarketIndex struct {
	Value         float64 `json:"value" yaml:"value"`
	Change        float64 `json:"change" yaml:"change"`
	ChangePercent float64 `json:"changePercent" yaml:"change_percent"`
}

// MarketIndices groups the three indices shown on the dashboard.
type MarketIndices struct {
	SP500    MarketIndex `json:"sp500" yaml:"sp500"`
	Nasdaq   MarketIndex `json:"nasdaq" yaml:"nasdaq"`
	DowJones MarketIndex `json:"dowJones" yaml:"dow_jones"`
}

type MarketOverview struct {
	MarketIndex    MarketIndices `json:"marketIndex"`
	TrendingAssets []Asset       `json:"trendingAssets"`
	TopGainers     []Asset       `json:"topGainers"`
	TopLosers      []Asset       `json:"topLosers"`
}

// Clone returns a copy whose asset slices are independent of o.
func (o MarketOverview) Clone() MarketOverview {
	out := o
	out.TrendingAssets = slices.Clone(o.TrendingAssets)
	out.TopGainers = slices.Clone(o.TopGainers)
	out.TopLosers = slices.Clone(o.TopLosers)
	return out
}
