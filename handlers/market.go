package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// GetAssets handles GET /api/assets
func (h *Handler) GetAssets(c *gin.Context) {
	assets, err := h.market.Assets(c.Request.Context())
	if err != nil {
		h.respondError(c, "assets", err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// GetAssetDetail handles GET /api/assets/:symbol
func (h *Handler) GetAssetDetail(c *gin.Context) {
	symbol := normalizeSymbol(c.Param("symbol"))

	asset, ok, err := h.market.AssetDetail(c.Request.Context(), symbol)
	if err != nil {
		h.respondError(c, "asset_detail", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found", "symbol": symbol})
		return
	}
	c.JSON(http.StatusOK, asset)
}

// GetMarketOverview handles GET /api/market/overview
func (h *Handler) GetMarketOverview(c *gin.Context) {
	overview, err := h.market.MarketOverview(c.Request.Context())
	if err != nil {
		h.respondError(c, "market_overview", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetChart handles GET /api/charts/:symbol
func (h *Handler) GetChart(c *gin.Context) {
	symbol := normalizeSymbol(c.Param("symbol"))

	chart, ok, err := h.market.ChartData(c.Request.Context(), symbol)
	if err != nil {
		h.respondError(c, "chart", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chart not found", "symbol": symbol})
		return
	}
	c.JSON(http.StatusOK, chart)
}

// GetMultipleCharts handles GET /api/charts?symbols=AAPL,MSFT
// Unknown symbols are omitted from the response.
func (h *Handler) GetMultipleCharts(c *gin.Context) {
	var symbols []string
	for _, s := range strings.Split(c.Query("symbols"), ",") {
		if s = normalizeSymbol(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols query parameter is required"})
		return
	}

	charts, err := h.market.MultipleChartData(c.Request.Context(), symbols)
	if err != nil {
		h.respondError(c, "multiple_charts", err)
		return
	}
	c.JSON(http.StatusOK, charts)
}
