package api

import (
	"context" // Context for Redis operations
	"errors"  // Sentinel error comparison
	"net/http"
	"strconv" // String conversion
	"time"    // Timestamps and cache TTLs

	"invest_backoffice/internal/domain" // Importing domain models
	"invest_backoffice/internal/mail"   // Outbound notifications
	"invest_backoffice/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
	"gorm.io/gorm/clause"          // Row locking clause
)

// Cache keys for the admin withdrawal endpoints; a status transition
// invalidates everything under withdrawalCachePrefix
const (
	withdrawalCachePrefix = "admin:withdrawals:"              // Common prefix for invalidation
	withdrawalListPrefix  = withdrawalCachePrefix + "list:"   // List endpoint keys
	withdrawalStatsKey    = withdrawalCachePrefix + "stats"   // Statistics endpoint key
	withdrawalCacheTTL    = 60 * time.Second                  // Read cache TTL
)

// errInvalidTransition marks an attempt to update a terminal withdrawal
var errInvalidTransition = errors.New("withdrawal is not in an updatable state")

// UserSummary is the minimal owning-user projection returned with a withdrawal
type UserSummary struct {
	ID       uint   `json:"id"`       // User ID
	Email    string `json:"email"`    // User email
	Username string `json:"username"` // Username
}

// WithdrawalResponse is the withdrawal record as returned to admins
type WithdrawalResponse struct {
	ID            uint        `json:"id"`            // Withdrawal ID
	TransactionID string      `json:"transactionId"` // Transaction reference
	Amount        float64     `json:"amount"`        // Requested amount
	Method        string      `json:"method"`        // Withdrawal method
	WalletAddress string      `json:"walletAddress"` // Destination address
	Status        string      `json:"status"`        // Current status
	UserID        uint        `json:"userId"`        // Owning user ID
	User          UserSummary `json:"user"`          // Owning user projection
	CreatedAt     time.Time   `json:"createdAt"`     // Request time
	ProcessedAt   *time.Time  `json:"processedAt"`   // Admin action time
	CompletedAt   *time.Time  `json:"completedAt"`   // Completion time
	AdminNotes    string      `json:"adminNotes,omitempty"`
	ProcessedBy   *uint       `json:"processedBy,omitempty"` // Acting admin ID
}

// toWithdrawalResponse maps a withdrawal and its preloaded user to the admin view
func toWithdrawalResponse(w domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:            w.ID,             // Withdrawal ID
		TransactionID: w.TransactionID,  // Transaction reference
		Amount:        w.Amount,         // Requested amount
		Method:        w.Method,         // Withdrawal method
		WalletAddress: w.WalletAddress,  // Destination address
		Status:        string(w.Status), // Current status
		UserID:        w.UserID,         // Owning user ID
		User: UserSummary{
			ID:       w.User.ID,       // User ID
			Email:    w.User.Email,    // User email
			Username: w.User.Username, // Username
		},
		CreatedAt:   w.CreatedAt,   // Request time
		ProcessedAt: w.ProcessedAt, // Admin action time
		CompletedAt: w.CompletedAt, // Completion time
		AdminNotes:  w.AdminNotes,  // Admin comment
		ProcessedBy: w.ProcessedBy, // Acting admin ID
	}
}

// ListWithdrawalsHandler returns all withdrawals with their owning user,
// optionally filtered by status and user ID, newest first
func ListWithdrawalsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Validate the optional status filter against the enum
		status := c.Query("status")
		if status != "" && !domain.WithdrawalStatus(status).Valid() {
			respondError(c, http.StatusBadRequest, CodeValidationError, "Invalid status filter")
			return
		}
		// Validate the optional userId filter
		userID := c.Query("userId")
		if userID != "" {
			if _, err := strconv.Atoi(userID); err != nil {
				respondError(c, http.StatusBadRequest, CodeValidationError, "Invalid userId filter")
				return
			}
		}
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on the filter parameters
		cacheKey := withdrawalListPrefix + "status=" + status + ":user=" + userID
		var cached struct {
			Withdrawals []WithdrawalResponse `json:"withdrawals"` // Matching withdrawals
			Total       int64                `json:"total"`       // Match count
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			respondOK(c, http.StatusOK, listMessage(cached.Total), gin.H{
				"withdrawals": cached.Withdrawals, // Matching withdrawals
				"total":       cached.Total,       // Match count
			})
			return
		}
		// Build the query with optional filters, newest first
		query := db.Preload("User")
		if status != "" {
			query = query.Where("status = ?", status) // Filter by status
		}
		if userID != "" {
			query = query.Where("user_id = ?", userID) // Filter by owning user
		}
		var withdrawals []domain.Withdrawal
		if err := query.Order("created_at desc").Find(&withdrawals).Error; err != nil {
			// Log the store fault, return a generic 500
			logrus.WithFields(logrus.Fields{
				"status_filter": status,      // Requested status filter
				"user_filter":   userID,      // Requested user filter
				"error":         err.Error(), // Error message
			}).Error("Failed to fetch withdrawals")
			respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to fetch withdrawals")
			return
		}
		// Map records to the admin view
		resp := make([]WithdrawalResponse, len(withdrawals))
		for i, w := range withdrawals {
			resp[i] = toWithdrawalResponse(w)
		}
		total := int64(len(resp)) // Match count
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, gin.H{"withdrawals": resp, "total": total}, withdrawalCacheTTL)
		respondOK(c, http.StatusOK, listMessage(total), gin.H{
			"withdrawals": resp,  // Matching withdrawals
			"total":       total, // Match count
		})
	}
}

// listMessage distinguishes an empty result by message only, not status code
func listMessage(total int64) string {
	if total == 0 {
		return "No withdrawals found"
	}
	return "Withdrawals retrieved successfully"
}

// UpdateWithdrawalStatusRequest is the admin decision payload; status must
// be a valid transition target (pending is not one)
type UpdateWithdrawalStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=confirmed completed failed rejected"` // Target status
	AdminNotes string `json:"adminNotes"`                                                          // Optional admin comment
}

// UpdateWithdrawalStatusHandler applies an admin decision to a withdrawal.
// The load, the guard, the status write and the conditional refund all run
// inside one database transaction; the notification email is sent only
// after a successful commit and never affects the outcome.
func UpdateWithdrawalStatusHandler(db *gorm.DB, rdb *redis.Client, notifier *mail.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, exists := c.Get("userID") // Acting admin from the JWT middleware
		// Check if userID exists in context
		if !exists {
			respondError(c, http.StatusUnauthorized, CodeValidationError, "Unauthorized")
			return
		}
		// Validate the path parameter before touching the store
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, CodeValidationError, "Invalid withdrawal id")
			return
		}
		var req UpdateWithdrawalStatusRequest // Bind JSON request to struct
		// Validate request shape and the status enum
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, CodeValidationError, "Status must be one of confirmed, completed, failed, rejected")
			return
		}
		newStatus := domain.WithdrawalStatus(req.Status)
		var updated domain.Withdrawal // Record after the transition
		// Atomic transition: guard, update and conditional refund in one transaction
		txErr := db.Transaction(func(tx *gorm.DB) error {
			var w domain.Withdrawal
			// Lock the withdrawal row so concurrent transitions serialize here.
			// SQLite has no FOR UPDATE; its writes serialize on the database lock
			q := tx.Preload("User")
			if tx.Dialector.Name() == "mysql" {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if err := q.First(&w, id).Error; err != nil {
				return err // gorm.ErrRecordNotFound maps to 404 below
			}
			// Terminal statuses are immutable; only pending/confirmed may move
			if w.Status.Terminal() {
				return errInvalidTransition
			}
			now := time.Now() // Single timestamp for the whole decision
			updates := map[string]any{
				"status":       newStatus,        // Target status
				"processed_at": now,              // Admin action time
				"processed_by": adminID.(uint),   // Acting admin ID
			}
			if req.AdminNotes != "" {
				updates["admin_notes"] = req.AdminNotes // Optional comment
			}
			if newStatus == domain.StatusCompleted {
				updates["completed_at"] = now // Completion time, completed only
			}
			// Refund the amount to the user's balance for failed/rejected,
			// in the same transaction as the status write
			if newStatus.Refundable() {
				if err := tx.Model(&domain.User{}).
					Where("id = ?", w.UserID).
					Update("balance", gorm.Expr("balance + ?", w.Amount)).Error; err != nil {
					return err // Return error to rollback
				}
			}
			// Write the status update
			if err := tx.Model(&w).Updates(updates).Error; err != nil {
				return err // Return error to rollback
			}
			// Re-read the committed shape with its user for the response
			if err := tx.Preload("User").First(&updated, w.ID).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusNotFound, CodeNotFound, "Withdrawal not found")
				return
			}
			if errors.Is(txErr, errInvalidTransition) {
				respondError(c, http.StatusBadRequest, CodeInvalidTransition, "Only pending or confirmed withdrawals can be updated")
				return
			}
			// Log the store fault, return a generic 500
			logrus.WithFields(logrus.Fields{
				"withdrawal_id": id,            // Target withdrawal
				"new_status":    req.Status,    // Requested status
				"admin_id":      adminID,       // Acting admin
				"error":         txErr.Error(), // Error message
			}).Error("Withdrawal status update failed")
			respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to update withdrawal status")
			return
		}
		// Log the committed transition
		logrus.WithFields(logrus.Fields{
			"withdrawal_id": updated.ID,                      // Target withdrawal
			"new_status":    string(updated.Status),          // Committed status
			"admin_id":      adminID,                         // Acting admin
			"refunded":      newStatus.Refundable(),          // Whether a refund was applied
			"timestamp":     time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Withdrawal status updated")
		// Invalidate cached list and statistics responses
		ctx := context.Background()
		_ = utils.DeleteCacheByPrefix(ctx, rdb, withdrawalCachePrefix)
		// Best-effort notification after commit; failures are logged inside
		// the notifier and never propagated to the HTTP caller
		if notifier != nil {
			_ = notifier.SendWithdrawalStatus(mail.WithdrawalStatusEvent{
				Email:         updated.User.Email,     // Owning user email
				Username:      updated.User.Username,  // Owning user name
				TransactionID: updated.TransactionID,  // Transaction reference
				Amount:        updated.Amount,         // Withdrawal amount
				Status:        string(updated.Status), // Committed status
				AdminNotes:    updated.AdminNotes,     // Admin comment
				Refunded:      newStatus.Refundable(), // Refund notice toggle
			})
		}
		respondOK(c, http.StatusOK, "Withdrawal status updated successfully", gin.H{
			"withdrawal": toWithdrawalResponse(updated), // Updated record
		})
	}
}

// StatusStat is one per-status aggregation row
type StatusStat struct {
	Status      string  `json:"status"`      // Withdrawal status
	Count       int64   `json:"count"`       // Withdrawals in this status
	TotalAmount float64 `json:"totalAmount"` // Summed amount in this status
}

// WithdrawalStatsHandler returns per-status counts and amounts plus grand totals
func WithdrawalStatsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached struct {
			Stats            []StatusStat `json:"stats"`            // Per-status aggregation
			TotalWithdrawals int64        `json:"totalWithdrawals"` // Grand total count
			TotalAmount      float64      `json:"totalAmount"`      // Grand total amount
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, withdrawalStatsKey, &cached)
		if err == nil && found {
			respondOK(c, http.StatusOK, "Withdrawal statistics retrieved successfully", gin.H{
				"stats":            cached.Stats,            // Per-status aggregation
				"totalWithdrawals": cached.TotalWithdrawals, // Grand total count
				"totalAmount":      cached.TotalAmount,      // Grand total amount
			})
			return
		}
		var stats []StatusStat
		// Aggregate count and summed amount per status
		if err := db.Model(&domain.Withdrawal{}).
			Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
			Group("status").
			Order("status").
			Scan(&stats).Error; err != nil {
			// Log the store fault, return a generic 500
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Failed to aggregate withdrawal statistics")
			respondError(c, http.StatusInternalServerError, CodeInternalError, "Failed to fetch withdrawal statistics")
			return
		}
		// Grand totals fold over the per-status rows; zero when there are none
		var totalWithdrawals int64
		var totalAmount float64
		for _, s := range stats {
			totalWithdrawals += s.Count  // Sum of per-status counts
			totalAmount += s.TotalAmount // Sum of per-status amounts
		}
		if stats == nil {
			stats = []StatusStat{} // Empty array, not null, in the response
		}
		respData := gin.H{
			"stats":            stats,            // Per-status aggregation
			"totalWithdrawals": totalWithdrawals, // Grand total count
			"totalAmount":      totalAmount,      // Grand total amount
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, withdrawalStatsKey, respData, withdrawalCacheTTL)
		respondOK(c, http.StatusOK, "Withdrawal statistics retrieved successfully", respData)
	}
}
