package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"salon-booking-api/internal/model"
)

func (h *Handler) ListAppointments(c *fiber.Ctx) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	appts, err := h.store.ListAppointments(ctx)
	if err != nil {
		return storeErr(err)
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	return c.JSON(appts)
}

func (h *Handler) CreateAppointment(c *fiber.Ctx) error {
	var draft model.AppointmentDraft
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := draft.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	id, err := h.store.CreateAppointment(ctx, &draft)
	if err != nil {
		return storeErr(err)
	}
	return c.JSON(fiber.Map{"id": id})
}

func (h *Handler) UpdateAppointment(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid appointment id")
	}

	var draft model.AppointmentDraft
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := draft.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.store.UpdateAppointment(ctx, id, &draft); err != nil {
		return storeErr(err)
	}
	return c.JSON(fiber.Map{"updated": true})
}

// DeleteAppointment removes permanently and reports success whether or not
// the id existed.
func (h *Handler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid appointment id")
	}

	ctx, cancel := h.storeCtx(c)
	defer cancel()

	if err := h.store.DeleteAppointment(ctx, id); err != nil {
		return storeErr(err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
