package mail

import (
	"fmt"           // Amount formatting
	"html/template" // HTML template rendering
	"strings"       // Template output buffer
	"time"          // Date formatting and footer year

	"github.com/sirupsen/logrus" // Logging library
)

// ROICreditEvent carries the fields of a daily ROI credit notification
type ROICreditEvent struct {
	Email         string    // Recipient address
	PlanName      string    // Investment plan name
	ROIAmount     float64   // Credited return amount
	TransactionID string    // Platform transaction reference
	InvestmentID  string    // Investment reference
	Date          time.Time // Credit date
}

// roiEmailData is the pre-formatted view passed to the template
type roiEmailData struct {
	PlanName      string // Investment plan name
	Amount        string // Amount with exactly two decimal places
	TransactionID string // Platform transaction reference
	InvestmentID  string // Investment reference
	Date          string // Locale-formatted credit date
	Year          int    // Current year for the footer
}

var roiCreditTmpl = template.Must(template.New("roi_credit").Parse(roiCreditHTML))

const roiCreditHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ROI Credited</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f6f8;font-family:Arial,Helvetica,sans-serif;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f6f8;padding:24px 0;">
<tr><td align="center">
<table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
<tr><td style="background-color:#1a2b4c;padding:24px;text-align:center;">
<h1 style="color:#ffffff;margin:0;font-size:22px;">Daily ROI Credited</h1>
</td></tr>
<tr><td style="padding:28px;">
<p style="font-size:15px;color:#333333;">Good news! Your daily return of <strong>{{.Amount}} USD</strong> from the <strong>{{.PlanName}}</strong> plan has been credited to your account balance.</p>
<table width="100%" cellpadding="8" cellspacing="0" style="border:1px solid #e2e6ea;border-radius:4px;margin:16px 0;font-size:14px;color:#333333;">
<tr style="background-color:#f8f9fb;"><td>Plan</td><td align="right">{{.PlanName}}</td></tr>
<tr><td>ROI Amount</td><td align="right"><strong>{{.Amount}} USD</strong></td></tr>
<tr style="background-color:#f8f9fb;"><td>Transaction ID</td><td align="right">{{.TransactionID}}</td></tr>
<tr><td>Investment ID</td><td align="right">{{.InvestmentID}}</td></tr>
<tr style="background-color:#f8f9fb;"><td>Date</td><td align="right">{{.Date}}</td></tr>
</table>
<p style="font-size:13px;color:#777777;">Returns are credited automatically each day for the duration of your plan. You can review your full earning history from your dashboard.</p>
</td></tr>
<tr><td style="background-color:#f8f9fb;padding:16px;text-align:center;font-size:12px;color:#999999;">
&copy; {{.Year}} Invest Back Office. All rights reserved.
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

// RenderROICreditEmail renders the complete HTML document for an ROI
// credit notification. Amount is fixed to two decimal places and the
// date uses a long locale format.
func RenderROICreditEmail(ev ROICreditEvent) (string, error) {
	data := roiEmailData{
		PlanName:      ev.PlanName,                        // Plan name as-is
		Amount:        fmt.Sprintf("%.2f", ev.ROIAmount),  // Two decimal places
		TransactionID: ev.TransactionID,                   // Transaction reference
		InvestmentID:  ev.InvestmentID,                    // Investment reference
		Date:          ev.Date.Format("January 2, 2006"),  // Locale date
		Year:          time.Now().Year(),                  // Footer year
	}
	var buf strings.Builder
	if err := roiCreditTmpl.Execute(&buf, data); err != nil {
		return "", err // Template fault
	}
	return buf.String(), nil
}

// Notifier renders and sends back-office notification emails through
// an injected transport
type Notifier struct {
	sender Sender // Injected mail transport
	from   string // Configured sender address
}

// NewNotifier builds a notifier for the given transport and sender address
func NewNotifier(sender Sender, from string) *Notifier {
	return &Notifier{sender: sender, from: from}
}

// SendROICredit renders the ROI credit email and hands it to the mail
// transport. A transport failure is logged with its cause and surfaced
// as the generic ErrFailedToSend; there is no retry, and exactly one
// send is attempted per call.
func (n *Notifier) SendROICredit(ev ROICreditEvent) error {
	html, err := RenderROICreditEmail(ev)
	if err != nil {
		// Template faults are unexpected; log and surface the generic error
		logrus.WithFields(logrus.Fields{
			"email": ev.Email,    // Recipient
			"error": err.Error(), // Underlying cause
		}).Error("Failed to render ROI credit email")
		return ErrFailedToSend
	}
	msg := Message{
		From:    n.from,             // Configured sender address
		To:      ev.Email,           // Recipient
		Subject: "Daily ROI Credited to Your Account",
		HTML:    html,               // Rendered document
	}
	if err := n.sender.Send(msg); err != nil {
		// Log the underlying cause, return only the generic error
		logrus.WithFields(logrus.Fields{
			"email":          ev.Email,         // Recipient
			"transaction_id": ev.TransactionID, // Transaction reference
			"error":          err.Error(),      // Underlying cause
		}).Error("Failed to send ROI credit email")
		return ErrFailedToSend
	}
	return nil
}
