package dto

type CreateDonationRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"omitempty,oneof=LKR USD EUR"`
	Message  string  `json:"message" binding:"max=500"`
}
