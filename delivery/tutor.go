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

type TutorHandler struct {
	courseUC domain.CourseUseCase
}

func NewTutorHandler(r *gin.Engine, courseUC domain.CourseUseCase, auth *middleware.Authenticator) {
	handler := &TutorHandler{courseUC: courseUC}

	tutor := r.Group("/v1/tutor")
	tutor.Use(auth.BearerToken(), middleware.RequireRole(domain.RoleTutor))
	{
		tutor.POST("/courses", handler.CreateCourse)
		tutor.GET("/courses", handler.ListCourses)
		tutor.GET("/courses/:course_uuid", handler.GetCourse)
		tutor.PUT("/courses/:course_uuid", handler.UpdateCourse)
		tutor.DELETE("/courses/:course_uuid", handler.DeleteCourse)
		tutor.POST("/courses/:course_uuid/publish", handler.PublishCourse)
		tutor.GET("/courses/:course_uuid/enrollments", handler.EnrollmentCount)

		tutor.POST("/courses/:course_uuid/lessons", handler.AddLesson)
		tutor.PUT("/lessons/:lesson_id", handler.UpdateLesson)
		tutor.DELETE("/lessons/:lesson_id", handler.DeleteLesson)

		tutor.POST("/courses/:course_uuid/quizzes", handler.AddQuiz)
		tutor.DELETE("/quizzes/:quiz_id", handler.DeleteQuiz)
	}
}

func (h *TutorHandler) CreateCourse(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "CreateCourse", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	course := &domain.Course{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		InstitutionUUID: req.InstitutionUUID,
	}
	if err := h.courseUC.CreateCourse(c.Request.Context(), identity.UUID, course); err != nil {
		respondError(c, &identity.Name, "CreateCourse", "Failed to create course", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 201, "CreateCourse", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    course,
	})
}

func (h *TutorHandler) ListCourses(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	courses, err := h.courseUC.ListOwnCourses(c.Request.Context(), identity.UUID)
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

func (h *TutorHandler) GetCourse(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	course, err := h.courseUC.GetOwnCourse(c.Request.Context(), identity.UUID, c.Param("course_uuid"))
	if err != nil {
		respondError(c, &identity.Name, "GetCourse", "Failed to get course", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "GetCourse", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    course,
	})
}

func (h *TutorHandler) UpdateCourse(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "UpdateCourse", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	course := &domain.Course{
		UUID:            c.Param("course_uuid"),
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Price:           req.Price,
		InstitutionUUID: req.InstitutionUUID,
	}
	if err := h.courseUC.UpdateCourse(c.Request.Context(), identity.UUID, course); err != nil {
		respondError(c, &identity.Name, "UpdateCourse", "Failed to update course", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "UpdateCourse", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Course updated",
	})
}

func (h *TutorHandler) DeleteCourse(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.courseUC.DeleteCourse(c.Request.Context(), identity.UUID, c.Param("course_uuid")); err != nil {
		respondError(c, &identity.Name, "DeleteCourse", "Failed to delete course", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "DeleteCourse", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Course deleted",
	})
}

func (h *TutorHandler) PublishCourse(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	if err := h.courseUC.PublishCourse(c.Request.Context(), identity.UUID, c.Param("course_uuid")); err != nil {
		respondError(c, &identity.Name, "PublishCourse", "Failed to publish course", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "PublishCourse", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Course published",
	})
}

func (h *TutorHandler) EnrollmentCount(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	count, err := h.courseUC.CourseEnrollmentCount(c.Request.Context(), identity.UUID, c.Param("course_uuid"))
	if err != nil {
		respondError(c, &identity.Name, "EnrollmentCount", "Failed to count enrollments", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "EnrollmentCount", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"enrollments": count},
	})
}

func (h *TutorHandler) AddLesson(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.AddLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "AddLesson", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	lesson := &domain.Lesson{
		CourseUUID:  c.Param("course_uuid"),
		Title:       req.Title,
		ContentURL:  req.ContentURL,
		Position:    req.Position,
		DurationMin: req.DurationMin,
	}
	if err := h.courseUC.AddLesson(c.Request.Context(), identity.UUID, lesson); err != nil {
		respondError(c, &identity.Name, "AddLesson", "Failed to add lesson", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 201, "AddLesson", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    lesson,
	})
}

func (h *TutorHandler) UpdateLesson(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	lessonID, err := strconv.Atoi(c.Param("lesson_id"))
	if err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "UpdateLesson", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid lesson id",
		})
		return
	}

	var req dto.AddLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "UpdateLesson", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	lesson := &domain.Lesson{
		ID:          lessonID,
		Title:       req.Title,
		ContentURL:  req.ContentURL,
		Position:    req.Position,
		DurationMin: req.DurationMin,
	}
	if err := h.courseUC.UpdateLesson(c.Request.Context(), identity.UUID, lesson); err != nil {
		respondError(c, &identity.Name, "UpdateLesson", "Failed to update lesson", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "UpdateLesson", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lesson updated",
	})
}

func (h *TutorHandler) DeleteLesson(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	lessonID, err := strconv.Atoi(c.Param("lesson_id"))
	if err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "DeleteLesson", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid lesson id",
		})
		return
	}

	if err := h.courseUC.DeleteLesson(c.Request.Context(), identity.UUID, lessonID); err != nil {
		respondError(c, &identity.Name, "DeleteLesson", "Failed to delete lesson", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "DeleteLesson", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lesson deleted",
	})
}

func (h *TutorHandler) AddQuiz(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.AddQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "AddQuiz", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	quiz := &domain.Quiz{
		CourseUUID: c.Param("course_uuid"),
		Title:      req.Title,
	}
	for _, q := range req.Questions {
		quiz.Questions = append(quiz.Questions, domain.QuizQuestion{
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Points:       q.Points,
		})
	}

	if err := h.courseUC.AddQuiz(c.Request.Context(), identity.UUID, quiz); err != nil {
		respondError(c, &identity.Name, "AddQuiz", "Failed to add quiz", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 201, "AddQuiz", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    quiz,
	})
}

func (h *TutorHandler) DeleteQuiz(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	quizID, err := strconv.Atoi(c.Param("quiz_id"))
	if err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "DeleteQuiz", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid quiz id",
		})
		return
	}

	if err := h.courseUC.DeleteQuiz(c.Request.Context(), identity.UUID, quizID); err != nil {
		respondError(c, &identity.Name, "DeleteQuiz", "Failed to delete quiz", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "DeleteQuiz", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quiz deleted",
	})
}
