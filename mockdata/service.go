package mockdata

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"market-dashboard/models"

	"github.com/sirupsen/logrus"
)

const (
	trendingCount = 4
	moversCount   = 3
)

// Delays is the artificial latency of each accessor.
type Delays struct {
	Assets         time.Duration
	AssetDetail    time.Duration
	Portfolio      time.Duration
	MarketOverview time.Duration
	Chart          time.Duration
	MultipleCharts time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Assets:         500 * time.Millisecond,
		AssetDetail:    400 * time.Millisecond,
		Portfolio:      600 * time.Millisecond,
		MarketOverview: 500 * time.Millisecond,
		Chart:          300 * time.Millisecond,
		MultipleCharts: 500 * time.Millisecond,
	}
}

// Scale multiplies every delay by f. Zero disables latency.
func (d Delays) Scale(f float64) Delays {
	s := func(v time.Duration) time.Duration { return time.Duration(float64(v) * f) }
	return Delays{
		Assets:         s(d.Assets),
		AssetDetail:    s(d.AssetDetail),
		Portfolio:      s(d.Portfolio),
		MarketOverview: s(d.MarketOverview),
		Chart:          s(d.Chart),
		MultipleCharts: s(d.MultipleCharts),
	}
}

// Service serves the mock datasets. Everything is computed in New and never
// written again, so a Service is safe for concurrent use. Accessors return
// copies.
type Service struct {
	assets    []models.Asset
	bySymbol  map[string]int
	portfolio models.Portfolio
	overview  models.MarketOverview
	charts    map[string]models.ChartData
	delays    Delays
	log       *logrus.Entry
}

// New builds every dataset from the catalog, generating one chart per asset.
func New(cat *Catalog, gen *Generator, delays Delays, log *logrus.Logger) (*Service, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Service{
		assets:   append([]models.Asset(nil), cat.Assets...),
		bySymbol: make(map[string]int, len(cat.Assets)),
		charts:   make(map[string]models.ChartData, len(cat.Assets)),
		delays:   delays,
		log:      log.WithField("component", "mockdata"),
	}

	for i, a := range s.assets {
		s.bySymbol[a.Symbol] = i
		s.charts[a.Symbol] = gen.Chart(a)
	}

	holdings := make([]models.PortfolioAsset, 0, len(cat.Portfolio.Holdings))
	for _, h := range cat.Portfolio.Holdings {
		holdings = append(holdings, models.NewPortfolioAsset(h, s.assets[s.bySymbol[h.Symbol]]))
	}
	s.portfolio = models.NewPortfolio(cat.Portfolio.ID, holdings)
	s.overview = buildOverview(cat.Indices, s.assets)

	s.log.WithFields(logrus.Fields{
		"assets":   len(s.assets),
		"holdings": len(holdings),
		"points":   gen.Points,
	}).Info("Mock market data generated")

	return s, nil
}

func buildOverview(indices models.MarketIndices, assets []models.Asset) models.MarketOverview {
	trending := assets[:min(trendingCount, len(assets))]

	gainers, losers := []models.Asset{}, []models.Asset{}
	for _, a := range assets {
		switch {
		case a.ChangePercent > 0:
			gainers = append(gainers, a)
		case a.ChangePercent < 0:
			losers = append(losers, a)
		}
	}
	slices.SortStableFunc(gainers, func(a, b models.Asset) int {
		return cmp.Compare(b.ChangePercent, a.ChangePercent)
	})
	slices.SortStableFunc(losers, func(a, b models.Asset) int {
		return cmp.Compare(a.ChangePercent, b.ChangePercent)
	})

	return models.MarketOverview{
		MarketIndex:    indices,
		TrendingAssets: append([]models.Asset(nil), trending...),
		TopGainers:     gainers[:min(moversCount, len(gainers))],
		TopLosers:      losers[:min(moversCount, len(losers))],
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Assets returns the full asset list.
func (s *Service) Assets(ctx context.Context) ([]models.Asset, error) {
	if err := wait(ctx, s.delays.Assets); err != nil {
		return nil, err
	}
	return append([]models.Asset(nil), s.assets...), nil
}

// AssetDetail looks up an asset by exact symbol. ok is false when the symbol
// is not in the catalog.
func (s *Service) AssetDetail(ctx context.Context, symbol string) (asset models.Asset, ok bool, err error) {
	if err := wait(ctx, s.delays.AssetDetail); err != nil {
		return models.Asset{}, false, err
	}
	i, ok := s.bySymbol[symbol]
	if !ok {
		return models.Asset{}, false, nil
	}
	return s.assets[i], true, nil
}

func (s *Service) Portfolio(ctx context.Context) (models.Portfolio, error) {
	if err := wait(ctx, s.delays.Portfolio); err != nil {
		return models.Portfolio{}, err
	}
	return s.portfolio.Clone(), nil
}

func (s *Service) MarketOverview(ctx context.Context) (models.MarketOverview, error) {
	if err := wait(ctx, s.delays.MarketOverview); err != nil {
		return models.MarketOverview{}, err
	}
	return s.overview.Clone(), nil
}

// ChartData returns the generated series for symbol. ok is false when the
// symbol is unknown.
func (s *Service) ChartData(ctx context.Context, symbol string) (chart models.ChartData, ok bool, err error) {
	if err := wait(ctx, s.delays.Chart); err != nil {
		return models.ChartData{}, false, err
	}
	c, ok := s.charts[symbol]
	if !ok {
		return models.ChartData{}, false, nil
	}
	return c.Clone(), true, nil
}

// MultipleChartData returns the series of every known symbol in symbols.
// Unknown symbols are left out of the result.
func (s *Service) MultipleChartData(ctx context.Context, symbols []string) (map[string]models.ChartData, error) {
	if err := wait(ctx, s.delays.MultipleCharts); err != nil {
		return nil, err
	}
	out := make(map[string]models.ChartData, len(symbols))
	for _, sym := range symbols {
		if c, ok := s.charts[sym]; ok {
			out[sym] = c.Clone()
		}
	}
	return out, nil
}
