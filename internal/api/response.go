package api

import "github.com/gin-gonic/gin" // Gin web framework

// Error codes used inside the response envelope
const (
	CodeValidationError   = "VALIDATION_ERROR"   // Bad or missing input (400)
	CodeNotFound          = "NOT_FOUND"          // Unknown identifier (404)
	CodeInvalidTransition = "INVALID_TRANSITION" // State-machine guard violated (400)
	CodeInternalError     = "INTERNAL_ERROR"     // Store or unexpected fault (500)
)

// respondOK writes the shared success envelope {success, message, data}
func respondOK(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{
		"success": true,    // Request succeeded
		"message": message, // Human-readable summary
	}
	if data != nil {
		body["data"] = data // Payload, omitted when absent
	}
	c.JSON(status, body)
}

// respondError writes the shared failure envelope {success, message, error}
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,   // Request failed
		"message": message, // Human-readable summary
		"error": gin.H{
			"code":    code,    // Machine-readable error code
			"message": message, // Same summary for API clients
		},
	})
}
