package handlers

import (
	"context"
	"errors"
	"net/http"

	"market-dashboard/auth"
	"market-dashboard/middleware"
	"market-dashboard/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MarketData is the read-only dataset the dashboard is served from.
type MarketData interface {
	Assets(ctx context.Context) ([]models.Asset, error)
	AssetDetail(ctx context.Context, symbol string) (models.Asset, bool, error)
	Portfolio(ctx context.Context) (models.Portfolio, error)
	MarketOverview(ctx context.Context) (models.MarketOverview, error)
	ChartData(ctx context.Context, symbol string) (models.ChartData, bool, error)
	MultipleChartData(ctx context.Context, symbols []string) (map[string]models.ChartData, error)
}

// Accounts is the sign-in backend.
type Accounts interface {
	middleware.Authenticator
	Signup(ctx context.Context, in auth.SignupInput) (models.User, error)
	Login(ctx context.Context, email, password string) (auth.Tokens, error)
	SocialLogin(ctx context.Context, provider string) (auth.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (auth.Tokens, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	User(id string) (models.User, bool)
}

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	market   MarketData
	accounts Accounts
	log      *logrus.Logger
}

func NewHandler(market MarketData, accounts Accounts, log *logrus.Logger) *Handler {
	return &Handler{
		market:   market,
		accounts: accounts,
		log:      log,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/assets", h.GetAssets)
		api.GET("/assets/:symbol", h.GetAssetDetail)
		api.GET("/portfolio", h.GetPortfolio)
		api.GET("/portfolio/allocation", h.GetAllocation)
		api.GET("/market/overview", h.GetMarketOverview)
		api.GET("/charts", h.GetMultipleCharts)
		api.GET("/charts/:symbol", h.GetChart)
	}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/social/:provider", h.SocialLogin)
		authGroup.POST("/refresh", h.Refresh)
	}

	account := r.Group("/account")
	account.Use(middleware.JWTAuth(h.accounts))
	{
		account.GET("/me", h.Me)
		account.POST("/logout", h.Logout)
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "market-dashboard",
	})
}

// respondError maps service errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusServiceUnavailable, "Request cancelled"
	case errors.Is(err, auth.ErrEmailTaken):
		status, msg = http.StatusConflict, "Email already exists"
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken):
		status, msg = http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, auth.ErrUnknownProvider):
		status, msg = http.StatusNotFound, "Unknown provider"
	case errors.Is(err, auth.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	}

	entry := h.log.WithFields(logrus.Fields{"operation": op, "error": err})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}
	c.JSON(status, gin.H{"error": msg})
}
