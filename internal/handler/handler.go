package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"salon-booking-api/internal/store"
)

type Handler struct {
	store   store.Store
	secret  string
	timeout time.Duration
}

func New(st store.Store, secret string, timeout time.Duration) *Handler {
	return &Handler{store: st, secret: secret, timeout: timeout}
}

// storeCtx bounds every store interaction with the configured timeout.
func (h *Handler) storeCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// storeErr maps ledger failures to client-visible outcomes. Timeouts are the
// only class where the caller should retry.
func storeErr(err error) error {
	switch {
	case errors.Is(err, store.ErrSlotTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusServiceUnavailable, "store unavailable, retry later")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "internal error")
}
