package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-booking-api/internal/model"
)

func draft(date, timeOfDay, employee string) *model.AppointmentDraft {
	return &model.AppointmentDraft{
		Client:   "Marta",
		Service:  "corte",
		Date:     date,
		Time:     timeOfDay,
		Employee: employee,
	}
}

func TestCreateConflict(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateAppointment(ctx, draft("2025-11-03", "14:00", "Ariela"))
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = m.CreateAppointment(ctx, draft("2025-11-03", "14:00", "Ariela"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// same slot, different employee is fine
	_, err = m.CreateAppointment(ctx, draft("2025-11-03", "14:00", "Sofia"))
	assert.NoError(t, err)

	appts, err := m.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, appts, 2)
}

func TestCreateNormalizesDate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateAppointment(ctx, draft("2025-11-03T00:00:00.000Z", "10:00", "Ariela"))
	require.NoError(t, err)

	// the normalized slot conflicts with the canonical form
	_, err = m.CreateAppointment(ctx, draft("2025-11-03", "10:00", "Ariela"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	appts, err := m.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "2025-11-03", appts[0].Date)
}

func TestListOrdering(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, d := range []*model.AppointmentDraft{
		draft("2025-11-04", "09:00", "Ariela"),
		draft("2025-11-03", "10:00", "Ariela"),
		draft("2025-11-03", "09:00", "Ariela"),
		draft("2025-11-04", "10:00", "Ariela"),
	} {
		_, err := m.CreateAppointment(ctx, d)
		require.NoError(t, err)
	}

	appts, err := m.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 4)

	var got []string
	for _, a := range appts {
		got = append(got, a.Date+" "+a.Time)
	}
	assert.Equal(t, []string{
		"2025-11-03 09:00",
		"2025-11-03 10:00",
		"2025-11-04 09:00",
		"2025-11-04 10:00",
	}, got)
}

func TestUpdate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateAppointment(ctx, draft("2025-11-03", "14:00", "Ariela"))
	require.NoError(t, err)
	_, err = m.CreateAppointment(ctx, draft("2025-11-03", "15:00", "Ariela"))
	require.NoError(t, err)

	// keeping its own slot passes the check
	d := draft("2025-11-03", "14:00", "Ariela")
	d.Notes = "tinte incluido"
	require.NoError(t, m.UpdateAppointment(ctx, id, d))

	// moving onto another appointment's slot is rejected
	err = m.UpdateAppointment(ctx, id, draft("2025-11-03", "15:00", "Ariela"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// unknown id
	err = m.UpdateAppointment(ctx, 9999, draft("2025-12-01", "09:00", "Ariela"))
	assert.ErrorIs(t, err, ErrNotFound)

	appts, _ := m.ListAppointments(ctx)
	require.Len(t, appts, 2)
	assert.Equal(t, "tinte incluido", appts[0].Notes)
}

func TestDeleteIdempotent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.CreateAppointment(ctx, draft("2025-11-03", "14:00", "Ariela"))
	require.NoError(t, err)
	keep, err := m.CreateAppointment(ctx, draft("2025-11-03", "15:00", "Ariela"))
	require.NoError(t, err)

	require.NoError(t, m.DeleteAppointment(ctx, id))
	require.NoError(t, m.DeleteAppointment(ctx, id)) // second delete is a no-op

	appts, err := m.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, keep, appts[0].ID)

	// the freed slot can be booked again
	_, err = m.CreateAppointment(ctx, draft("2025-11-03", "14:00", "Ariela"))
	assert.NoError(t, err)
}

func TestConcurrentCreateRace(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	start := make(chan struct{})

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = m.CreateAppointment(ctx, draft("2025-11-03", "14:00", "Ariela"))
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrSlotTaken):
			conflict++
		}
	}
	assert.Equal(t, 1, ok, "exactly one create must win the slot")
	assert.Equal(t, n-1, conflict)

	appts, err := m.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, appts, 1)
}

func TestUsers(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u := &model.User{Name: "Ariela", Email: "ariela@salon.test", PasswordHash: "x", Role: model.RoleAdmin}
	require.NoError(t, m.CreateUser(ctx, u))
	assert.Positive(t, u.ID)

	dup := &model.User{Name: "Other", Email: "ariela@salon.test", PasswordHash: "y", Role: model.RoleEmployee}
	assert.ErrorIs(t, m.CreateUser(ctx, dup), ErrEmailTaken)

	got, err := m.UserByEmail(ctx, "ariela@salon.test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = m.UserByEmail(ctx, "nobody@salon.test")
	assert.ErrorIs(t, err, ErrNotFound)

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
