package domain

import "time"

// WithdrawalStatus is the lifecycle status of a withdrawal request
type WithdrawalStatus string

// Withdrawal statuses; completed, failed and rejected are terminal
const (
	StatusPending   WithdrawalStatus = "pending"   // Awaiting admin review
	StatusConfirmed WithdrawalStatus = "confirmed" // Approved, payout in progress
	StatusCompleted WithdrawalStatus = "completed" // Payout done (terminal)
	StatusFailed    WithdrawalStatus = "failed"    // Payout failed, amount refunded (terminal)
	StatusRejected  WithdrawalStatus = "rejected"  // Declined by admin, amount refunded (terminal)
)

// Valid reports whether s is one of the five known statuses
func (s WithdrawalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusFailed, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions
func (s WithdrawalStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRejected
}

// Refundable reports whether reaching s returns the amount to the user's balance
func (s WithdrawalStatus) Refundable() bool {
	return s == StatusFailed || s == StatusRejected
}

// Withdrawal Model
type Withdrawal struct {
	ID            uint             `gorm:"primaryKey" json:"id"`                              // Primary key
	TransactionID string           `gorm:"size:64;uniqueIndex;not null" json:"transactionId"` // Platform-wide transaction reference
	Amount        float64          `gorm:"not null" json:"amount"`                            // Requested amount
	Method        string           `gorm:"size:32" json:"method"`                             // Withdrawal method (e.g. bitcoin, bank)
	WalletAddress string           `gorm:"size:128" json:"walletAddress"`                     // Destination wallet address
	Status        WithdrawalStatus `gorm:"type:varchar(16);default:pending;index" json:"status"`
	UserID        uint             `gorm:"index;not null" json:"userId"` // Owning user
	User          User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CreatedAt     time.Time        `json:"createdAt"`              // Request time
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`  // Set when an admin acts on the request
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`  // Set only when status becomes completed
	AdminNotes    string           `gorm:"size:512" json:"adminNotes,omitempty"`
	ProcessedBy   *uint            `json:"processedBy,omitempty"` // Acting admin's user ID
}
