package models

// AssetKind is the instrument class of an Asset.
type AssetKind string

const (
	KindStock  AssetKind = "stock"
	KindCrypto AssetKind = "crypto"
)

// Asset is a tradable instrument with its latest quote.
type Asset struct {
	ID            string    `json:"id" yaml:"id"`
	Symbol        string    `json:"symbol" yaml:"symbol"`
	Name          string    `json:"name" yaml:"name"`
	Price         float64   `json:"price" yaml:"price"`
	Change        float64   `json:"change" yaml:"change"`
	ChangePercent float64   `json:"changePercent" yaml:"change_percent"`
	Volume        float64   `json:"volume" yaml:"volume"`
	MarketCap     float64   `json:"marketCap" yaml:"market_cap"`
	High24h       float64   `json:"high24h" yaml:"high_24h"`
	Low24h        float64   `json:"low24h" yaml:"low_24h"`
	Type          AssetKind `json:"type" yaml:"type"`
}

// PricePoint is one sample of a price series. Timestamp is Unix milliseconds.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// ChartData is a price series for one symbol plus its summary.
type ChartData struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Data          []PricePoint `json:"data"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	Current       float64      `json:"current"`
	High          float64      `json:"high"`
	Low           float64      `json:"low"`
	Open          float64      `json:"open"`
	Volume        float64      `json:"volume"`
}

// Clone returns a copy that shares no memory with c.
func (c ChartData) Clone() ChartData {
	out := c
	out.Data = make([]PricePoint, len(c.Data))
	copy(out.Data, c.Data)
	return out
}
