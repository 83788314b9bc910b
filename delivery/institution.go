package delivery

import (
	"net/http"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/dto"
	"github.com/sadeeshasathsara/nexa-sub000/middleware"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
)

type InstitutionHandler struct {
	courseUC domain.CourseUseCase
}

func NewInstitutionHandler(r *gin.Engine, courseUC domain.CourseUseCase, auth *middleware.Authenticator) {
	handler := &InstitutionHandler{courseUC: courseUC}

	institution := r.Group("/v1/institution")
	institution.Use(auth.BearerToken(), middleware.RequireRole(domain.RoleInstitution))
	{
		institution.GET("/courses", handler.ListCourses)
		institution.GET("/tutors", handler.ListTutors)
		institution.POST("/courses/:course_uuid/review", handler.ReviewCourse)
	}
}

func (h *InstitutionHandler) ListCourses(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	courses, err := h.courseUC.ListInstitutionCourses(c.Request.Context(), identity.UUID)
	if err != nil {
		respondError(c, &identity.Name, "ListCourses", "Failed to list courses", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "ListCourses", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    courses,
	})
}

func (h *InstitutionHandler) ListTutors(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	tutors, err := h.courseUC.ListInstitutionTutors(c.Request.Context(), identity.UUID)
	if err != nil {
		respondError(c, &identity.Name, "ListTutors", "Failed to list tutors", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "ListTutors", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tutors,
	})
}

func (h *InstitutionHandler) ReviewCourse(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.ReviewCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "ReviewCourse", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.courseUC.ReviewCourse(c.Request.Context(), identity.UUID, c.Param("course_uuid"), req.Decision); err != nil {
		respondError(c, &identity.Name, "ReviewCourse", "Failed to review course", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "ReviewCourse", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Course " + req.Decision,
	})
}
