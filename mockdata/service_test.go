package mockdata

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestService(t *testing.T, delays Delays) *Service {
	t.Helper()
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc, err := New(cat, NewGenerator(7), delays, log)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAssets(t *testing.T) {
	svc := newTestService(t, Delays{})
	assets, err := svc.Assets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assets) != 8 {
		t.Fatalf("expected 8 assets, got %d", len(assets))
	}
	if assets[0].Symbol != "AAPL" || assets[7].Symbol != "NVDA" {
		t.Errorf("unexpected order: first %s last %s", assets[0].Symbol, assets[7].Symbol)
	}

	assets[0].Price = -1
	again, _ := svc.Assets(context.Background())
	if again[0].Price != 182.63 {
		t.Error("mutating a returned asset list leaked into the service")
	}
}

func TestAssetDetail(t *testing.T) {
	svc := newTestService(t, Delays{})
	ctx := context.Background()

	all, _ := svc.Assets(ctx)
	for _, want := range all {
		got, ok, err := svc.AssetDetail(ctx, want.Symbol)
		if err != nil || !ok {
			t.Fatalf("%s: expected found, got ok=%v err=%v", want.Symbol, ok, err)
		}
		if got != want {
			t.Errorf("%s: expected %+v, got %+v", want.Symbol, want, got)
		}
	}

	tests := []string{"ZZZZ", "aapl", ""}
	for _, sym := range tests {
		t.Run("absent "+sym, func(t *testing.T) {
			_, ok, err := svc.AssetDetail(ctx, sym)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok {
				t.Errorf("expected %q to be absent", sym)
			}
		})
	}
}

func TestChartData(t *testing.T) {
	svc := newTestService(t, Delays{})
	ctx := context.Background()

	c, ok, err := svc.ChartData(ctx, "AAPL")
	if err != nil || !ok {
		t.Fatalf("expected AAPL chart, got ok=%v err=%v", ok, err)
	}
	if len(c.Data) != DefaultPoints {
		t.Errorf("expected %d points, got %d", DefaultPoints, len(c.Data))
	}
	if c.Name != "Apple Inc." || c.Volume != 62345678 {
		t.Errorf("unexpected chart header: %s %v", c.Name, c.Volume)
	}

	c.Data[0].Price = -1
	again, _, _ := svc.ChartData(ctx, "AAPL")
	if again.Data[0].Price <= 0 {
		t.Error("mutating a returned chart leaked into the service")
	}

	if _, ok, _ := svc.ChartData(ctx, "ZZZZ"); ok {
		t.Error("expected ZZZZ chart to be absent")
	}
}

func TestMultipleChartData(t *testing.T) {
	svc := newTestService(t, Delays{})
	ctx := context.Background()

	got, err := svc.MultipleChartData(ctx, []string{"AAPL", "ZZZZ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if _, ok := got["AAPL"]; !ok {
		t.Error("expected AAPL in result")
	}

	empty, err := svc.MultipleChartData(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty map, got %v (err %v)", empty, err)
	}

	single, _, _ := svc.ChartData(ctx, "BTC")
	multi, _ := svc.MultipleChartData(ctx, []string{"BTC", "ETH"})
	if !reflect.DeepEqual(single, multi["BTC"]) {
		t.Error("batch and single lookups disagree for BTC")
	}
}

func TestMarketOverview(t *testing.T) {
	svc := newTestService(t, Delays{})
	o, err := svc.MarketOverview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.MarketIndex.SP500.Value != 5218.21 || o.MarketIndex.DowJones.ChangePercent != 0.31 {
		t.Errorf("unexpected indices: %+v", o.MarketIndex)
	}

	if len(o.TrendingAssets) != 4 || o.TrendingAssets[3].Symbol != "GOOGL" {
		t.Errorf("expected the first four assets as trending, got %+v", o.TrendingAssets)
	}

	wantGainers := []string{"NVDA", "BTC", "AAPL"}
	wantLosers := []string{"TSLA", "ETH", "AMZN"}
	for i, a := range o.TopGainers {
		if a.Symbol != wantGainers[i] {
			t.Errorf("gainer %d: expected %s, got %s", i, wantGainers[i], a.Symbol)
		}
		if a.ChangePercent <= 0 {
			t.Errorf("gainer %s has non-positive change", a.Symbol)
		}
		if i > 0 && a.ChangePercent > o.TopGainers[i-1].ChangePercent {
			t.Error("gainers not sorted descending")
		}
	}
	for i, a := range o.TopLosers {
		if a.Symbol != wantLosers[i] {
			t.Errorf("loser %d: expected %s, got %s", i, wantLosers[i], a.Symbol)
		}
		if a.ChangePercent >= 0 {
			t.Errorf("loser %s has non-negative change", a.Symbol)
		}
		if i > 0 && a.ChangePercent < o.TopLosers[i-1].ChangePercent {
			t.Error("losers not sorted ascending")
		}
	}
}

func TestBuildOverview_ExcludesFlatAssets(t *testing.T) {
	cat, _ := DefaultCatalog()
	assets := cat.Assets[:2]
	assets[0].ChangePercent = 0
	assets[1].ChangePercent = 0

	o := buildOverview(cat.Indices, assets)
	if len(o.TopGainers) != 0 || len(o.TopLosers) != 0 {
		t.Errorf("flat assets should be neither gainers nor losers: %+v %+v", o.TopGainers, o.TopLosers)
	}
	if o.TopGainers == nil || o.TopLosers == nil {
		t.Error("empty movers should be empty slices, not nil")
	}
	if len(o.TrendingAssets) != 2 {
		t.Errorf("expected trending capped at asset count, got %d", len(o.TrendingAssets))
	}
}

func TestPortfolio(t *testing.T) {
	svc := newTestService(t, Delays{})
	ctx := context.Background()

	first, err := svc.Portfolio(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Assets) != 4 {
		t.Fatalf("expected 4 holdings, got %d", len(first.Assets))
	}
	if first.TotalValue != 125170.64 {
		t.Errorf("expected total value 125170.64, got %v", first.TotalValue)
	}
	if first.TotalChange != 5867.49 {
		t.Errorf("expected total change 5867.49, got %v", first.TotalChange)
	}
	if first.Assets[2].Symbol != "BTC" || first.Assets[2].Name != "Bitcoin" {
		t.Errorf("holding not joined with catalog: %+v", first.Assets[2])
	}

	first.Assets[0].Quantity = 0
	first.TotalValue = 0

	second, _ := svc.Portfolio(ctx)
	third, _ := svc.Portfolio(ctx)
	if !reflect.DeepEqual(second, third) {
		t.Error("repeated portfolio calls differ")
	}
	if second.Assets[0].Quantity != 150 {
		t.Error("mutating a returned portfolio leaked into the service")
	}
}

func TestAccessors_HonorDelay(t *testing.T) {
	svc := newTestService(t, Delays{Assets: 30 * time.Millisecond})

	start := time.Now()
	if _, err := svc.Assets(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected at least 30ms delay, got %v", elapsed)
	}
}

func TestAccessors_Cancelled(t *testing.T) {
	svc := newTestService(t, DefaultDelays())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Portfolio(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled call still waited %v", elapsed)
	}

	done, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	if _, _, err := newTestService(t, Delays{}).AssetDetail(done, "AAPL"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected canceled error with zero delay, got %v", err)
	}
}

func TestDelays_Scale(t *testing.T) {
	d := DefaultDelays().Scale(0.5)
	if d.Portfolio != 300*time.Millisecond || d.Chart != 150*time.Millisecond {
		t.Errorf("unexpected scaled delays: %+v", d)
	}
	if z := DefaultDelays().Scale(0); z != (Delays{}) {
		t.Errorf("expected zero delays, got %+v", z)
	}
}

func TestNew_InvalidCatalog(t *testing.T) {
	if _, err := New(&Catalog{}, NewGenerator(1), Delays{}, nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog, got %v", err)
	}
}
