package handlers

import (
	"net/http"

	"market-dashboard/auth"
	"market-dashboard/middleware"

	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Signup handles POST /auth/signup
func (h *Handler) Signup(c *gin.Context) {
	var input SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Signup(c.Request.Context(), auth.SignupInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		h.respondError(c, "signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// SocialLogin handles POST /auth/social/:provider
func (h *Handler) SocialLogin(c *gin.Context) {
	tokens, err := h.accounts.SocialLogin(c.Request.Context(), c.Param("provider"))
	if err != nil {
		h.respondError(c, "social_login", err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var input RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.accounts.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		h.respondError(c, "refresh", err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// Me handles GET /account/me
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	user, ok := h.accounts.User(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout handles POST /account/logout
func (h *Handler) Logout(c *gin.Context) {
	var input RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.Logout(c.Request.Context(), c.GetString(middleware.UserIDKey), input.RefreshToken); err != nil {
		h.respondError(c, "logout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
