package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`              // Primary key
	Email    string  `gorm:"unique;not null" json:"email"`      // Unique email, notification target
	Username string  `gorm:"unique;not null" json:"username"`   // Unique username
	Password string  `gorm:"not null" json:"-"`                 // Hashed password
	Role     string  `gorm:"default:user" json:"role"`          // Role: user or admin
	Balance  float64 `gorm:"not null;default:0" json:"balance"` // Wallet balance, refund target on failed/rejected withdrawals
}
