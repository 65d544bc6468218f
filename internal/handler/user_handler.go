package handler

import (
	"github.com/gofiber/fiber/v2"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/model"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser provisions a staff account. Admin only; the unauthenticated
// seeding routes of the previous system are gone.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name, email and password required")
	}
	if len(req.Password) < 8 {
		return fiber.NewError(fiber.StatusBadRequest, "password too short")
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	u := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.store.CreateUser(ctx, u); err != nil {
		return storeErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	users, err := h.store.ListUsers(ctx)
	if err != nil {
		return storeErr(err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(users)
}
