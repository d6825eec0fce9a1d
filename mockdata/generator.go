package mockdata

import (
	"math/rand"
	"time"

	"market-dashboard/models"
)

const (
	DefaultPoints   = 150
	DefaultLookback = 24 * time.Hour

	// PriceFloor is the lowest price a generated series may reach.
	PriceFloor = 0.01

	startRatio      = 0.95
	volatilityRatio = 0.01
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Generator synthesises random-walk price histories.
type Generator struct {
	Source   Source
	Points   int
	Lookback time.Duration
	Now      func() time.Time
}

// NewGenerator returns a generator with the default shape, seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Source:   rand.New(rand.NewSource(seed)),
		Points:   DefaultPoints,
		Lookback: DefaultLookback,
		Now:      time.Now,
	}
}

// Series walks from basePrice, moving each step by a uniform delta in
// ±volatility/2. Timestamps end one step before now.
func (g *Generator) Series(basePrice, volatility float64) []models.PricePoint {
	n := g.Points
	if n <= 0 {
		return nil
	}

	end := g.Now().UnixMilli()
	step := g.Lookback.Milliseconds() / int64(n)
	if step <= 0 {
		step = 1
	}

	data := make([]models.PricePoint, 0, n)
	price := basePrice
	for i := 0; i < n; i++ {
		delta := (g.Source.Float64() - 0.5) * volatility
		price = max(price+delta, PriceFloor)

		data = append(data, models.PricePoint{
			Timestamp: end - int64(n-i)*step,
			Price:     price,
		})
	}
	return data
}

// Chart builds the chart for an asset: the walk starts at 95% of the listed
// price with a volatility of 1% of it.
func (g *Generator) Chart(a models.Asset) models.ChartData {
	data := g.Series(a.Price*startRatio, a.Price*volatilityRatio)
	return Summarize(a, data)
}

// Summarize derives open, current, extrema and change from a series.
func Summarize(a models.Asset, data []models.PricePoint) models.ChartData {
	c := models.ChartData{
		Symbol: a.Symbol,
		Name:   a.Name,
		Data:   data,
		Volume: a.Volume,
	}
	if len(data) == 0 {
		return c
	}

	c.Open = data[0].Price
	c.Current = data[len(data)-1].Price
	c.High, c.Low = c.Open, c.Open
	for _, p := range data[1:] {
		c.High = max(c.High, p.Price)
		c.Low = min(c.Low, p.Price)
	}
	c.Change = c.Current - c.Open
	c.ChangePercent = c.Change / c.Open * 100
	return c
}
