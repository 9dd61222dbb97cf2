package handlers

import (
	"errors"
	"net/http"
	"time"

	"smartfood-api/apierror"
	"smartfood-api/middleware"
	"smartfood-api/models"
	"smartfood-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CapturePaymentRequest struct {
	CardNumber string `json:"card_number"`
	UPIID      string `json:"upi_id"`
}

// maskReference reduces payment details to something safe to store. Card
// numbers keep their last four digits only.
func maskReference(method models.PaymentMethod, req *CapturePaymentRequest) string {
	switch method {
	case models.PaymentCard:
		n := req.CardNumber
		if len(n) > 4 {
			n = n[len(n)-4:]
		}
		return "card ****" + n
	case models.PaymentUPI:
		return "upi " + req.UPIID
	default:
		return "cash on delivery"
	}
}

// CapturePayment is the sandbox capture stub: any well-formed details are
// treated as a successful payment, since no real gateway sits behind it.
// It fails only when the order is missing, not the caller's, or already
// terminal.
func (h *Handler) CapturePayment(c *gin.Context) {
	if !h.Cfg.SandboxPayments {
		c.AbortWithStatusJSON(http.StatusNotImplemented, gin.H{
			"error": &apierror.Error{
				Kind:    apierror.KindInternal,
				Message: "payment capture is disabled: no gateway configured",
			},
		})
		return
	}

	customerID := middleware.GetUserID(c)

	// Any payload is accepted; cash orders send no body at all.
	var req CapturePaymentRequest
	_ = c.ShouldBindJSON(&req)

	var order models.Order
	var payment models.Payment
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("order %s not found", c.Param("id"))
			}
			return apierror.Internal("failed to load order: %v", err)
		}
		if order.CustomerID != customerID {
			return apierror.Forbidden("this order does not belong to you")
		}
		if order.Terminal() {
			return apierror.TerminalState("order is already %s and cannot be paid", order.Status)
		}

		now := time.Now()
		prev := order.Status
		updates := map[string]interface{}{"paid": true, "paid_at": &now}
		if order.Status == models.StatusPendingPayment {
			if err := statemachine.CanTransition(order.Status, models.StatusConfirmed, "system"); err != nil {
				return err
			}
			updates["status"] = models.StatusConfirmed
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return apierror.Internal("failed to mark order paid: %v", err)
		}

		if prev == models.StatusPendingPayment {
			history := models.OrderStatusHistory{
				OrderID:    order.ID,
				FromStatus: prev,
				ToStatus:   models.StatusConfirmed,
				ChangedBy:  customerID,
				Note:       "Payment captured",
			}
			if err := tx.Create(&history).Error; err != nil {
				return apierror.Internal("failed to record status history: %v", err)
			}
			order.Status = models.StatusConfirmed
		}
		order.Paid = true
		order.PaidAt = &now

		payment = models.Payment{
			OrderID:   order.ID,
			Method:    order.PaymentMethod,
			Reference: maskReference(order.PaymentMethod, &req),
			Amount:    order.Total,
			Status:    "captured",
		}
		if err := tx.Create(&payment).Error; err != nil {
			return apierror.Internal("failed to record payment: %v", err)
		}
		return nil
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	h.notifyStatusChange(&order)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"order_id":   order.ID,
		"status":     order.Status,
		"payment_id": payment.ID,
		"reference":  payment.Reference,
	})
}
