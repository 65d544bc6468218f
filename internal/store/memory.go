package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"salon-booking-api/internal/model"
)

// Memory is an in-process Store used by tests. The single mutex makes the
// check-then-insert sequence atomic, mirroring what the unique slot index
// guarantees in Postgres.
type Memory struct {
	mu         sync.Mutex
	nextUserID int64
	nextApptID int64
	users      map[int64]model.User
	appts      map[int64]model.Appointment
}

func NewMemory() *Memory {
	return &Memory{
		users: make(map[int64]model.User),
		appts: make(map[int64]model.Appointment),
	}
}

func (m *Memory) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Email == u.Email {
			return ErrEmailTaken
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateAppointment(_ context.Context, d *model.AppointmentDraft) (int64, error) {
	date, err := model.NormalizeDate(d.Date)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slotTaken(date, d.Time, d.Employee, 0) {
		return 0, ErrSlotTaken
	}
	m.nextApptID++
	now := time.Now()
	a := model.Appointment{
		ID:        m.nextApptID,
		Client:    d.Client,
		Phone:     d.Phone,
		Service:   d.Service,
		Date:      date,
		Time:      d.Time,
		Employee:  d.Employee,
		Notes:     d.Notes,
		Price:     d.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.appts[a.ID] = a
	return a.ID, nil
}

func (m *Memory) ListAppointments(_ context.Context) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Appointment, 0, len(m.appts))
	for _, a := range m.appts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) UpdateAppointment(_ context.Context, id int64, d *model.AppointmentDraft) error {
	date, err := model.NormalizeDate(d.Date)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return ErrNotFound
	}
	if m.slotTaken(date, d.Time, d.Employee, id) {
		return ErrSlotTaken
	}
	a.Client = d.Client
	a.Phone = d.Phone
	a.Service = d.Service
	a.Date = date
	a.Time = d.Time
	a.Employee = d.Employee
	a.Notes = d.Notes
	a.Price = d.Price
	a.UpdatedAt = time.Now()
	m.appts[id] = a
	return nil
}

func (m *Memory) DeleteAppointment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.appts, id)
	return nil
}

// callers hold m.mu
func (m *Memory) slotTaken(date, timeOfDay, employee string, excludeID int64) bool {
	for _, a := range m.appts {
		if a.ID != excludeID && a.Date == date && a.Time == timeOfDay && a.Employee == employee {
			return true
		}
	}
	return false
}
