package mail

import (
	"fmt"           // Amount formatting
	"html/template" // HTML template rendering
	"strings"       // Template output buffer
	"time"          // Footer year

	"github.com/sirupsen/logrus" // Logging library
)

// WithdrawalStatusEvent carries the fields of a withdrawal status update
// notification sent to the owning user after an admin decision
type WithdrawalStatusEvent struct {
	Email         string  // Recipient address
	Username      string  // Recipient display name
	TransactionID string  // Platform transaction reference
	Amount        float64 // Withdrawal amount
	Status        string  // New withdrawal status
	AdminNotes    string  // Optional admin comment
	Refunded      bool    // Whether the amount was returned to the balance
}

type withdrawalEmailData struct {
	Username      string // Recipient display name
	TransactionID string // Transaction reference
	Amount        string // Amount with two decimal places
	Status        string // New status
	AdminNotes    string // Optional admin comment
	Refunded      bool   // Refund notice toggle
	Year          int    // Footer year
}

var withdrawalStatusTmpl = template.Must(template.New("withdrawal_status").Parse(withdrawalStatusHTML))

const withdrawalStatusHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Withdrawal Update</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f6f8;padding:24px 0;">
<tr><td align="center">
<table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
<tr><td style="background-color:#1a2b4c;padding:24px;text-align:center;">
<h1 style="color:#ffffff;margin:0;font-size:22px;">Withdrawal Status Update</h1>
</td></tr>
<tr><td style="padding:28px;">
<p style="font-size:15px;color:#333333;">Hi {{.Username}}, your withdrawal request <strong>{{.TransactionID}}</strong> for <strong>{{.Amount}} USD</strong> is now <strong>{{.Status}}</strong>.</p>
{{if .Refunded}}<p style="font-size:14px;color:#333333;">The amount of <strong>{{.Amount}} USD</strong> has been returned to your account balance.</p>{{end}}
{{if .AdminNotes}}<p style="font-size:13px;color:#555555;border-left:3px solid #e2e6ea;padding-left:12px;">{{.AdminNotes}}</p>{{end}}
<p style="font-size:13px;color:#777777;">If you have questions about this decision, please contact support.</p>
</td></tr>
<tr><td style="background-color:#f8f9fb;padding:16px;text-align:center;font-size:12px;color:#999999;">
&copy; {{.Year}} Invest Back Office. All rights reserved.
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

// SendWithdrawalStatus renders and sends the status update email. It is
// best-effort: failures are logged and returned, and the caller decides
// whether to propagate (the transition handler never does).
func (n *Notifier) SendWithdrawalStatus(ev WithdrawalStatusEvent) error {
	data := withdrawalEmailData{
		Username:      ev.Username,                     // Display name
		TransactionID: ev.TransactionID,                // Transaction reference
		Amount:        fmt.Sprintf("%.2f", ev.Amount),  // Two decimal places
		Status:        ev.Status,                       // New status
		AdminNotes:    ev.AdminNotes,                   // Optional comment
		Refunded:      ev.Refunded,                     // Refund notice toggle
		Year:          time.Now().Year(),               // Footer year
	}
	var buf strings.Builder
	if err := withdrawalStatusTmpl.Execute(&buf, data); err != nil {
		logrus.WithFields(logrus.Fields{
			"email": ev.Email,    // Recipient
			"error": err.Error(), // Underlying cause
		}).Error("Failed to render withdrawal status email")
		return ErrFailedToSend
	}
	msg := Message{
		From:    n.from,   // Configured sender address
		To:      ev.Email, // Recipient
		Subject: "Your Withdrawal Request Was Updated",
		HTML:    buf.String(),
	}
	if err := n.sender.Send(msg); err != nil {
		logrus.WithFields(logrus.Fields{
			"email":          ev.Email,         // Recipient
			"transaction_id": ev.TransactionID, // Transaction reference
			"error":          err.Error(),      // Underlying cause
		}).Error("Failed to send withdrawal status email")
		return ErrFailedToSend
	}
	return nil
}
