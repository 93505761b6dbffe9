package api

import (
	"net/http" // HTTP status codes
	"time"     // Date parsing

	"invest_backoffice/internal/mail" // Outbound notifications

	"github.com/gin-gonic/gin" // Gin web framework
)

// ROINotificationRequest is the accrual event posted by the platform's
// ROI scheduler once a daily return has been credited
type ROINotificationRequest struct {
	Email         string  `json:"email" binding:"required,email"`     // Recipient address
	PlanName      string  `json:"planName" binding:"required"`        // Investment plan name
	ROIAmount     float64 `json:"roiAmount" binding:"required,gt=0"`  // Credited amount
	TransactionID string  `json:"transactionId" binding:"required"`   // Transaction reference
	InvestmentID  string  `json:"investmentId" binding:"required"`    // Investment reference
	Date          string  `json:"date"`                               // RFC 3339 credit date, defaults to now
}

// NotifyROIHandler renders and sends the ROI credit email for one accrual
// event. Exactly one send is attempted; callers own idempotency.
func NotifyROIHandler(notifier *mail.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ROINotificationRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, CodeValidationError, "Invalid ROI notification payload")
			return
		}
		// Parse the optional credit date, defaulting to now
		date := time.Now()
		if req.Date != "" {
			parsed, err := time.Parse(time.RFC3339, req.Date)
			if err != nil {
				respondError(c, http.StatusBadRequest, CodeValidationError, "Date must be RFC 3339")
				return
			}
			date = parsed
		}
		// Render and send; the notifier logs the underlying cause itself
		err := notifier.SendROICredit(mail.ROICreditEvent{
			Email:         req.Email,         // Recipient
			PlanName:      req.PlanName,      // Plan name
			ROIAmount:     req.ROIAmount,     // Credited amount
			TransactionID: req.TransactionID, // Transaction reference
			InvestmentID:  req.InvestmentID,  // Investment reference
			Date:          date,              // Credit date
		})
		if err != nil {
			// Surface only the generic failure to the caller
			respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to send ROI notification")
			return
		}
		respondOK(c, http.StatusOK, "ROI notification sent", nil)
	}
}
