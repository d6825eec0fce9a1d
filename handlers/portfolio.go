package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPortfolio handles GET /api/portfolio
func (h *Handler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.market.Portfolio(c.Request.Context())
	if err != nil {
		h.respondError(c, "portfolio", err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// GetAllocation handles GET /api/portfolio/allocation
// Shares are computed against the portfolio's own total value.
func (h *Handler) GetAllocation(c *gin.Context) {
	portfolio, err := h.market.Portfolio(c.Request.Context())
	if err != nil {
		h.respondError(c, "allocation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalValue":  portfolio.TotalValue,
		"allocations": portfolio.Allocation(),
	})
}
