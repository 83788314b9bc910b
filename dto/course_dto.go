package dto

type CreateCourseRequest struct {
	Title           string  `json:"title" binding:"required,min=3,max=150"`
	Description     string  `json:"description" binding:"max=5000"`
	Category        string  `json:"category" binding:"max=50"`
	Price           float64 `json:"price" binding:"gte=0"`
	InstitutionUUID *string `json:"institution_uuid" binding:"omitempty,uuid"`
}

type UpdateCourseRequest struct {
	Title           string  `json:"title" binding:"required,min=3,max=150"`
	Description     string  `json:"description" binding:"max=5000"`
	Category        string  `json:"category" binding:"max=50"`
	Price           float64 `json:"price" binding:"gte=0"`
	InstitutionUUID *string `json:"institution_uuid" binding:"omitempty,uuid"`
}

type AddLessonRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=150"`
	ContentURL  string `json:"content_url" binding:"max=2000"`
	Position    int    `json:"position" binding:"gte=0"`
	DurationMin int    `json:"duration_min" binding:"gte=0"`
}

type QuizQuestionRequest struct {
	Prompt       string   `json:"prompt" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2,max=10"`
	CorrectIndex int      `json:"correct_index" binding:"gte=0"`
	Points       int      `json:"points" binding:"gte=1"`
}

type AddQuizRequest struct {
	Title     string                `json:"title" binding:"required,min=3,max=150"`
	Questions []QuizQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type ReviewCourseRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}
