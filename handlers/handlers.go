package handlers

import (
	"errors"

	"smartfood-api/apierror"
	"smartfood-api/config"
	"smartfood-api/models"
	"smartfood-api/notify"
	"smartfood-api/statemachine"

	"gorm.io/gorm"
)

// Handler owns the dependencies every endpoint needs. Built once in main,
// no package-level DB or config.
type Handler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Notifier notify.Notifier
}

func New(db *gorm.DB, cfg *config.Config, notifier notify.Notifier) *Handler {
	return &Handler{DB: db, Cfg: cfg, Notifier: notifier}
}

// transitionOrder moves an order to a new status inside a single write
// transaction. SQLite allows one writer at a time, so two concurrent requests
// cannot interleave and skip a state. extra carries additional column updates
// applied together with the status (e.g. driver assignment on pickup). guard
// runs inside the transaction, for ownership checks against the fresh row.
func (h *Handler) transitionOrder(
	orderID string,
	to models.OrderStatus,
	actor string,
	changedBy uint,
	note string,
	guard func(*models.Order) error,
	extra map[string]interface{},
) (*models.Order, error) {
	var order models.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("order %s not found", orderID)
			}
			return apierror.Internal("failed to load order: %v", err)
		}
		if guard != nil {
			if err := guard(&order); err != nil {
				return err
			}
		}
		if err := statemachine.CanTransition(order.Status, to, actor); err != nil {
			return err
		}

		prev := order.Status
		updates := map[string]interface{}{"status": to}
		for k, v := range extra {
			updates[k] = v
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return apierror.Internal("failed to update order status: %v", err)
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prev,
			ToStatus:   to,
			ChangedBy:  changedBy,
			Note:       note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return apierror.Internal("failed to record status history: %v", err)
		}
		order.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	h.notifyStatusChange(&order)
	return &order, nil
}

// notifyStatusChange emails the customer about the new status, best effort.
func (h *Handler) notifyStatusChange(order *models.Order) {
	var customer models.User
	if err := h.DB.First(&customer, order.CustomerID).Error; err != nil {
		return
	}
	h.Notifier.StatusUpdate(customer.Email, order)
}

// findOrder loads an order or maps the miss to a not_found error.
func (h *Handler) findOrder(orderID string, preloads ...string) (*models.Order, error) {
	query := h.DB
	for _, p := range preloads {
		query = query.Preload(p)
	}
	var order models.Order
	if err := query.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("order %s not found", orderID)
		}
		return nil, apierror.Internal("failed to load order: %v", err)
	}
	return &order, nil
}
