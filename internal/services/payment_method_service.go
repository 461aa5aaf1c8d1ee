package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"

	"github.com/playvault/backend/internal/models"
)

const paymentMethodsCacheKey = "cache:payment_methods"

// PaymentMethodService serves the payment method reference data. The active
// list changes rarely, so reads go through a short-lived Redis cache when a
// client is available; a nil client degrades to direct database reads.
type PaymentMethodService struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewPaymentMethodService(db *sql.DB, redisClient *redis.Client) *PaymentMethodService {
	return &PaymentMethodService{
		db:       db,
		redis:    redisClient,
		cacheTTL: 5 * time.Minute,
	}
}

// ListActive returns active payment methods, cache-first.
func (ps *PaymentMethodService) ListActive(ctx context.Context) ([]models.PaymentMethod, error) {
	if ps.redis != nil {
		cached, err := ps.redis.Get(ctx, paymentMethodsCacheKey).Result()
		if err == nil {
			var methods []models.PaymentMethod
			if err := json.Unmarshal([]byte(cached), &methods); err == nil {
				return methods, nil
			}
		}
	}

	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, name, type, is_active, min_amount, max_amount, fee_percentage, fixed_fee, processing_time_minutes, created_at
		FROM payment_methods WHERE is_active = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var m models.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.IsActive, &m.MinAmount, &m.MaxAmount,
			&m.FeePercentage, &m.FixedFee, &m.ProcessingTimeMinutes, &m.CreatedAt); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ps.redis != nil {
		if payload, err := json.Marshal(methods); err == nil {
			if err := ps.redis.Set(ctx, paymentMethodsCacheKey, payload, ps.cacheTTL).Err(); err != nil {
				log.Printf("[PAYMENT_METHOD] Cache write failed: %v", err)
			}
		}
	}

	return methods, nil
}

// Get returns one payment method by id.
func (ps *PaymentMethodService) Get(ctx context.Context, methodID string) (*models.PaymentMethod, error) {
	m := &models.PaymentMethod{}
	err := ps.db.QueryRowContext(ctx, `
		SELECT id, name, type, is_active, min_amount, max_amount, fee_percentage, fixed_fee, processing_time_minutes, created_at
		FROM payment_methods WHERE id = $1`, methodID).
		Scan(&m.ID, &m.Name, &m.Type, &m.IsActive, &m.MinAmount, &m.MaxAmount,
			&m.FeePercentage, &m.FixedFee, &m.ProcessingTimeMinutes, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: payment method %s", ErrNotFound, methodID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching payment method: %w", err)
	}
	return m, nil
}

// ListPaymentMethods retrieves active payment methods
// @Summary List active payment methods
// @Tags payment-methods
// @Produce json
// @Success 200 {object} object{paymentMethods=[]models.PaymentMethod,count=int}
// @Router /payment-methods [get]
func (ps *PaymentMethodService) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := ps.ListActive(r.Context())
	if err != nil {
		log.Printf("[PAYMENT_METHOD] Failed to list payment methods: %v", err)
		SendErrorResponse(w, "Failed to fetch payment methods", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"paymentMethods": methods,
		"count":          len(methods),
	})
}

// GetPaymentMethod retrieves one payment method
// @Summary Get payment method by ID
// @Tags payment-methods
// @Produce json
// @Param methodId path string true "Payment method ID"
// @Success 200 {object} models.PaymentMethod
// @Failure 404 {object} ErrorResponse
// @Router /payment-methods/{methodId} [get]
func (ps *PaymentMethodService) GetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	methodID := chi.URLParam(r, "methodId")

	method, err := ps.Get(r.Context(), methodID)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(method)
}
