package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	u, err := h.store.UserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "user does not exist")
	}
	if err != nil {
		return storeErr(err)
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "incorrect password")
	}

	tok, err := auth.MakeToken(u, h.secret)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	return c.JSON(fiber.Map{"token": tok, "role": u.Role})
}
