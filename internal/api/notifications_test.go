package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"invest_backoffice/internal/mail"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifyRouter(notifier *mail.Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/internal/roi-notifications", NotifyROIHandler(notifier))
	return r
}

func validROIPayload() gin.H {
	return gin.H{
		"email":         "investor@example.com",
		"planName":      "Gold Plan",
		"roiAmount":     12.5,
		"transactionId": "TXN-2049",
		"investmentId":  "INV-77",
		"date":          "2026-08-31T10:00:00Z",
	}
}

func TestNotifyROI(t *testing.T) {
	sender := &fakeSender{}
	r := newNotifyRouter(mail.NewNotifier(sender, "noreply@investbackoffice.com"))

	rec, env := doRequest(t, r, http.MethodPost, "/internal/roi-notifications", validROIPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "ROI notification sent", env.Message)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "investor@example.com", msg.To)
	// Amount embedded twice: summary sentence and detail row
	assert.Equal(t, 2, strings.Count(msg.HTML, "12.50 USD"))
	assert.Contains(t, msg.HTML, "August 31, 2026")
}

func TestNotifyROIValidation(t *testing.T) {
	sender := &fakeSender{}
	r := newNotifyRouter(mail.NewNotifier(sender, "noreply@investbackoffice.com"))

	for name, mutate := range map[string]func(gin.H){
		"missing email":   func(p gin.H) { delete(p, "email") },
		"bad email":       func(p gin.H) { p["email"] = "not-an-address" },
		"zero amount":     func(p gin.H) { p["roiAmount"] = 0 },
		"missing plan":    func(p gin.H) { delete(p, "planName") },
		"malformed date":  func(p gin.H) { p["date"] = "31/08/2026" },
		"missing tx id":   func(p gin.H) { delete(p, "transactionId") },
	} {
		t.Run(name, func(t *testing.T) {
			payload := validROIPayload()
			mutate(payload)
			rec, env := doRequest(t, r, http.MethodPost, "/internal/roi-notifications", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, CodeValidationError, env.Error.Code)
		})
	}
	// No email leaves the building on validation failure
	assert.Empty(t, sender.sent)
}

func TestNotifyROITransportFailure(t *testing.T) {
	sender := &fakeSender{err: fmt.Errorf("smtp: timeout")}
	r := newNotifyRouter(mail.NewNotifier(sender, "noreply@investbackoffice.com"))

	rec, env := doRequest(t, r, http.MethodPost, "/internal/roi-notifications", validROIPayload())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeInternalError, env.Error.Code)
	// The underlying transport detail is not leaked to the caller
	assert.NotContains(t, env.Error.Message, "timeout")
}
