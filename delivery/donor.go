package delivery

import (
	"net/http"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/dto"
	"github.com/sadeeshasathsara/nexa-sub000/middleware"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"github.com/gin-gonic/gin"
)

type DonorHandler struct {
	donationUC domain.DonationUseCase
}

func NewDonorHandler(r *gin.Engine, donationUC domain.DonationUseCase, auth *middleware.Authenticator) {
	handler := &DonorHandler{donationUC: donationUC}

	// Gateway callback carries its own signature, no session.
	r.POST("/v1/payments/payhere/notify", handler.PaymentNotify)

	donor := r.Group("/v1/donor")
	donor.Use(auth.SignedCookie(), middleware.RequireRole(domain.RoleDonor))
	{
		donor.POST("/donations", handler.CreateDonation)
		donor.GET("/donations", handler.ListDonations)
	}
}

func (h *DonorHandler) CreateDonation(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req dto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&identity.Name, 400, "CreateDonation", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request",
			"error":   utils.TranslateValidationError(err),
		})
		return
	}

	payload, err := h.donationUC.CreateDonation(c.Request.Context(), identity.UUID, req.Amount, req.Currency, req.Message)
	if err != nil {
		respondError(c, &identity.Name, "CreateDonation", "Failed to create donation", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 201, "CreateDonation", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    payload,
	})
}

func (h *DonorHandler) ListDonations(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	donations, err := h.donationUC.ListMyDonations(c.Request.Context(), identity.UUID)
	if err != nil {
		respondError(c, &identity.Name, "ListDonations", "Failed to list donations", err)
		return
	}

	utils.PrintLogInfo(&identity.Name, 200, "ListDonations", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    donations,
	})
}

// PaymentNotify receives the gateway's form-encoded server-to-server callback.
// It always answers 200 once the payload parses; signature failures are logged
// but not leaked back to the caller.
func (h *DonorHandler) PaymentNotify(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		utils.PrintLogInfo(nil, 400, "PaymentNotify", &err)
		c.Status(http.StatusBadRequest)
		return
	}

	params := make(map[string]string, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		params[key] = c.Request.PostForm.Get(key)
	}

	if err := h.donationUC.HandleGatewayNotify(c.Request.Context(), params); err != nil {
		utils.PrintLogInfo(nil, statusFor(err), "PaymentNotify", &err)
		c.Status(http.StatusOK)
		return
	}

	utils.PrintLogInfo(nil, 200, "PaymentNotify", nil)
	c.Status(http.StatusOK)
}
