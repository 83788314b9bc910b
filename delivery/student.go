package delivery

import (
	"net/http"
	"strconv"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/dto"
	"github.com/sadeeshasathsara/nexa-sub000/middleware"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	courseUC   domain.CourseUseCase
	progressUC domain.ProgressUseCase
}

func NewStudentHandler(r *gin.Engine, courseUC domain.CourseUseCase, progressUC domain.ProgressUseCase, auth *middleware.Authenticator) {
	handler := &StudentHandler{courseUC: courseUC, progressUC: progressUC}

	// Published catalog is public.
	r.GET("/v1/courses", handler.ListPublishedCourses)

	student := r.Group("/v1/student")
	student.Use(auth.BearerToken(), middleware.RequireRole(domain.RoleStudent))
	{
		student.POST("/enroll", handler.Enroll)
		student.GET("/enrollments", handler.ListEnrollments)
		student.POST("/courses/:course_uuid/lessons/:lesson_id/complete", handler.CompleteLesson)
		student.POST("/courses/:course_uuid/quizzes/:quiz_id/submit", handler.SubmitQuiz)
		student.GET("/courses/:course_uuid/progress", handler.CourseProgress)
	}
}

func (h *StudentHandler) ListPublishedCourses(c *gin.Context) {
	courses, err := h.courseUC.ListPublishedCourses(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, callerName(c), "ListPublishedCourses", "Failed to list courses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    courses,
	})
}

func (h *StudentHandler) Enroll(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "Enroll", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	if err := h.progressUC.Enroll(c.Request.Context(), identity.UUID, req.CourseUUID); err != nil {
		respondError(c, &identity.Name, "Enroll", "Failed to enroll", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 201, "Enroll", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Enrolled successfully",
	})
}

func (h *StudentHandler) ListEnrollments(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	enrollments, err := h.progressUC.ListMyEnrollments(c.Request.Context(), identity.UUID)
	if err != nil {
		respondError(c, &identity.Name, "ListEnrollments", "Failed to list enrollments", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "ListEnrollments", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    enrollments,
	})
}

func (h *StudentHandler) CompleteLesson(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	lessonID, err := strconv.Atoi(c.Param("lesson_id"))
	if err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "CompleteLesson", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid lesson id",
		})
		return
	}

	if err := h.progressUC.CompleteLesson(c.Request.Context(), identity.UUID, c.Param("course_uuid"), lessonID); err != nil {
		respondError(c, &identity.Name, "CompleteLesson", "Failed to complete lesson", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "CompleteLesson", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lesson marked complete",
	})
}

func (h *StudentHandler) SubmitQuiz(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	quizID, err := strconv.Atoi(c.Param("quiz_id"))
	if err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "SubmitQuiz", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid quiz id",
		})
		return
	}

	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "SubmitQuiz", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	attempt, err := h.progressUC.SubmitQuiz(c.Request.Context(), identity.UUID, c.Param("course_uuid"), quizID, req.Answers)
	if err != nil {
		respondError(c, &identity.Name, "SubmitQuiz", "Failed to submit quiz", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "SubmitQuiz", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    attempt,
	})
}

func (h *StudentHandler) CourseProgress(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	summary, err := h.progressUC.CourseSummary(c.Request.Context(), identity.UUID, c.Param("course_uuid"))
	if err != nil {
		respondError(c, &identity.Name, "CourseProgress", "Failed to load progress", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "CourseProgress", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}
