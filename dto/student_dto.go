package dto

type EnrollRequest struct {
	CourseUUID string `json:"course_uuid" binding:"required,uuid"`
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required,min=1"`
}
