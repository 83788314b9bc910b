package delivery

import (
	"net/http"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/dto"
	"github.com/sadeeshasathsara/nexa-sub000/middleware"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
)

const adminSessionMaxAge = 8 * 60 * 60

type AdminHandler struct {
	authUC  domain.AuthUseCase
	adminUC domain.AdminUseCase
}

func NewAdminHandler(r *gin.Engine, authUC domain.AuthUseCase, adminUC domain.AdminUseCase, auth *middleware.Authenticator) {
	handler := &AdminHandler{authUC: authUC, adminUC: adminUC}

	r.POST("/v1/admin/login", handler.Login)

	admin := r.Group("/v1/admin")
	admin.Use(auth.ServerSession(), middleware.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/logout", handler.Logout)

		admin.GET("/users", handler.ListUsers)
		admin.GET("/users/:uuid", handler.GetUser)
		admin.POST("/users/:uuid/approve", handler.ApproveUser)
		admin.POST("/users/:uuid/reject", handler.RejectUser)
		admin.POST("/users/:uuid/suspend", handler.SuspendUser)
		admin.POST("/users/:uuid/reactivate", handler.ReactivateUser)
		admin.DELETE("/users/:uuid", handler.DeleteUser)

		admin.GET("/analytics", handler.Analytics)
		admin.GET("/reports/users.csv", handler.UserReportCSV)
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(nil, 400, "AdminLogin", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	sessionID, err := h.authUC.AdminLogin(c.Request.Context(), req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, &req.Email, "AdminLogin", "Login failed", err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, sessionID, adminSessionMaxAge, "/", "", false, true)

	utils.PrintLogInfo(&req.Email, 200, "AdminLogin", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in",
	})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	sessionID, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && sessionID != "" {
		if err := h.authUC.AdminLogout(c.Request.Context(), sessionID); err != nil {
			respondError(c, &identity.Name, "AdminLogout", "Logout failed", err)
			return
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	utils.PrintLogInfo(&identity.Name, 200, "AdminLogout", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "ListUsers", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid query",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	users, err := h.adminUC.ListUsers(c.Request.Context(), query.Role, query.Status)
	if err != nil {
		respondError(c, &identity.Name, "ListUsers", "Failed to list users", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "ListUsers", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	user, err := h.adminUC.GetUser(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, &identity.Name, "GetUser", "Failed to get user", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "GetUser", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

func (h *AdminHandler) setStatus(c *gin.Context, functionName, message string, apply func(c *gin.Context) error) {
	identity, _ := middleware.IdentityFrom(c)

	if err := apply(c); err != nil {
		respondError(c, &identity.Name, functionName, "Failed to update user", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, functionName, nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

func (h *AdminHandler) ApproveUser(c *gin.Context) {
	h.setStatus(c, "ApproveUser", "User approved", func(c *gin.Context) error {
		return h.adminUC.ApproveUser(c.Request.Context(), c.Param("uuid"))
	})
}

func (h *AdminHandler) RejectUser(c *gin.Context) {
	h.setStatus(c, "RejectUser", "User rejected", func(c *gin.Context) error {
		return h.adminUC.RejectUser(c.Request.Context(), c.Param("uuid"))
	})
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	h.setStatus(c, "SuspendUser", "User suspended", func(c *gin.Context) error {
		return h.adminUC.SuspendUser(c.Request.Context(), c.Param("uuid"))
	})
}

func (h *AdminHandler) ReactivateUser(c *gin.Context) {
	h.setStatus(c, "ReactivateUser", "User reactivated", func(c *gin.Context) error {
		return h.adminUC.ReactivateUser(c.Request.Context(), c.Param("uuid"))
	})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	h.setStatus(c, "DeleteUser", "User deleted", func(c *gin.Context) error {
		return h.adminUC.DeleteUser(c.Request.Context(), c.Param("uuid"))
	})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	analytics, err := h.adminUC.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, &identity.Name, "Analytics", "Failed to load analytics", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "Analytics", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    analytics,
	})
}

func (h *AdminHandler) UserReportCSV(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	report, err := h.adminUC.UserReportCSV(c.Request.Context())
	if err != nil {
		respondError(c, &identity.Name, "UserReportCSV", "Failed to build report", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "UserReportCSV", nil)
	c.Header("Content-Disposition", `attachment; filename="users.csv"`)
	c.Data(http.StatusOK, "text/csv", report)
}
