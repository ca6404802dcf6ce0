package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/outfit-finder/internal/models"
	"github.com/go-chi/chi/v5"
)

// couponTable is the interface for retailer coupon lookup
type couponTable interface {
	Lookup(retailer string) *models.Coupon
	GetStats() map[string]interface{}
}

// CouponHandler handles HTTP requests for retailer coupons
type CouponHandler struct {
	coupons couponTable
	log     *slog.Logger
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(coupons couponTable, log *slog.Logger) *CouponHandler {
	return &CouponHandler{
		coupons: coupons,
		log:     log,
	}
}

// LookupCoupon handles GET /api/coupon/{retailer}.
// The retailer name is matched exactly, including case.
func (h *CouponHandler) LookupCoupon(w http.ResponseWriter, r *http.Request) {
	retailer := chi.URLParam(r, "retailer")

	if c := h.coupons.Lookup(retailer); c != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"retailer": retailer,
			"coupon":   c,
		}, h.log)
		return
	}

	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"retailer": retailer,
		"coupon":   nil,
		"message":  "No coupon known for this retailer",
	}, h.log)
}

// GetStats handles GET /api/coupon/stats
func (h *CouponHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.coupons.GetStats(), h.log)
}
