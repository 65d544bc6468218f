// Package store owns the appointment ledger and the credential records.
// The Postgres implementation is the production store; Memory backs tests.
package store

import (
	"context"
	"errors"

	"salon-booking-api/internal/model"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrSlotTaken  = errors.New("an appointment already exists for that employee at that time")
	ErrEmailTaken = errors.New("email already in use")
)

// Store is the persistence surface used by the handlers. No other component
// mutates appointments.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	CreateAppointment(ctx context.Context, d *model.AppointmentDraft) (int64, error)
	UpdateAppointment(ctx context.Context, id int64, d *model.AppointmentDraft) error
	DeleteAppointment(ctx context.Context, id int64) error
}
