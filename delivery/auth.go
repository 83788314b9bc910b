package delivery

import (
	"net/http"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/middleware"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
)

const (
	refreshCookieName   = "refresh_token"
	refreshCookieMaxAge = 60 * 60 * 24 * 7
	tokenCookieMaxAge   = 60 * 60
)

type AuthHandler struct {
	authUC domain.AuthUseCase
}

func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase, auth *middleware.Authenticator) {
	handler := &AuthHandler{authUC: authUC}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/otp", handler.SendOTP)
		v1.POST("/otp-validate", handler.ValidateOTP)
		v1.POST("/register", handler.Register)
	}

	public := r.Group("/v1/auth")
	{
		public.POST("/login", handler.Login)
		public.POST("/refresh", handler.Refresh)
		public.POST("/logout", handler.Logout)
		public.POST("/forgot-password", handler.ForgotPassword)
		public.POST("/reset-password", handler.ResetPassword)
	}

	protected := r.Group("/v1/auth")
	protected.Use(auth.BearerToken())
	{
		protected.GET("/me", handler.Me)
		protected.POST("/change-password", handler.ChangePassword)
	}
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "SendOTP", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.SendOTP(c.Request.Context(), req.Email, c.ClientIP()); err != nil {
		respondError(c, &req.Email, "SendOTP", "Failed to send OTP", err)
		return
	}

	// The code itself never appears in the response.
	utils.PrintLogInfo(&req.Email, 200, "SendOTP", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent to your email",
	})
}

type ValidateOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,otpcode"`
}

func (h *AuthHandler) ValidateOTP(c *gin.Context) {
	var req ValidateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "ValidateOTP", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ValidateOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondError(c, &req.Email, "ValidateOTP", "Failed to validate OTP", err)
		return
	}

	utils.PrintLogInfo(&req.Email, 200, "ValidateOTP", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified",
	})
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Role     string `json:"role" binding:"required,oneof=student tutor institution donor"`
	Bio      string `json:"bio" binding:"max=2000"`
	Website  string `json:"website" binding:"max=200"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "Register", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Failed to register",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Bio:      req.Bio,
		Website:  req.Website,
	})
	if err != nil {
		respondError(c, &req.Email, "Register", "Failed to register", err)
		return
	}

	message := "Account created"
	if domain.InitialStatus(req.Role) == domain.StatusPending {
		message = "Account created, awaiting admin approval"
	}

	utils.PrintLogInfo(&req.Email, 201, "Register", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "Login", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	tokens, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, &req.Email, "Login", "Login failed", err)
		return
	}

	// Browser clients authenticate follow-up requests with these cookies;
	// API clients use the bearer token from the body.
	c.SetCookie(refreshCookieName, tokens.RefreshToken, refreshCookieMaxAge, "/", "", false, true)
	c.SetCookie(middleware.TokenCookieName, tokens.AccessToken, tokenCookieMaxAge, "/", "", false, true)

	utils.PrintLogInfo(&req.Email, 200, "Login", nil)
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Login successful",
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.RefreshToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "No refresh token provided",
			})
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, err := h.authUC.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
		respondError(c, nil, "Refresh", "Failed to refresh token", err)
		return
	}

	c.SetCookie(refreshCookieName, tokens.RefreshToken, refreshCookieMaxAge, "/", "", false, true)
	c.SetCookie(middleware.TokenCookieName, tokens.AccessToken, tokenCookieMaxAge, "/", "", false, true)

	utils.PrintLogInfo(nil, 200, "Refresh", nil)
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Token refreshed",
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "ForgotPassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, &req.Email, "ForgotPassword", "Failed to process request", err)
		return
	}

	// Same response whether or not the email exists.
	utils.PrintLogInfo(&req.Email, 200, "ForgotPassword", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the email is registered, a reset link has been sent",
	})
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "ResetPassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		respondError(c, &req.Email, "ResetPassword", "Failed to reset password", err)
		return
	}

	utils.PrintLogInfo(&req.Email, 200, "ResetPassword", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successfully",
	})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=8,max=64"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Missing identity",
		})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "ChangePassword", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.authUC.ChangePassword(c.Request.Context(), identity.UUID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, &identity.Name, "ChangePassword", "Failed to change password", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "ChangePassword", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Missing identity",
		})
		return
	}

	user, err := h.authUC.Me(c.Request.Context(), identity.UUID)
	if err != nil {
		respondError(c, &identity.Name, "Me", "Failed to load profile", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "Me", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
