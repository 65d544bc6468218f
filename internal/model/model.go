package model

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEmployee:
		return RoleEmployee, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Appointment struct {
	ID        int64     `json:"id"`
	Client    string    `json:"client"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Employee  string    `json:"employee"`
	Notes     string    `json:"notes"`
	Price     *float64  `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentDraft is an appointment payload without an assigned id,
// used as create/update input.
type AppointmentDraft struct {
	Client   string   `json:"client"`
	Phone    string   `json:"phone"`
	Service  string   `json:"service"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Employee string   `json:"employee"`
	Notes    string   `json:"notes"`
	Price    *float64 `json:"price"`
}

// Validate checks required fields and rewrites Date and Time into their
// canonical forms (YYYY-MM-DD, HH:MM).
func (d *AppointmentDraft) Validate() error {
	if strings.TrimSpace(d.Client) == "" {
		return fmt.Errorf("client is required")
	}
	if strings.TrimSpace(d.Employee) == "" {
		return fmt.Errorf("employee is required")
	}
	date, err := NormalizeDate(d.Date)
	if err != nil {
		return err
	}
	d.Date = date
	tm, err := NormalizeTime(d.Time)
	if err != nil {
		return err
	}
	d.Time = tm
	if d.Price != nil && *d.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// NormalizeDate reduces a calendar date to its canonical YYYY-MM-DD form.
// Inputs carrying a timestamp suffix ("2025-11-03T00:00:00.000Z") are
// truncated to the calendar part rather than rejected.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t.Format("2006-01-02"), nil
}

// NormalizeTime validates a time-of-day slot and zero-pads it to HH:MM.
// Slots are compared by exact value, never parsed as durations.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return t.Format("15:04"), nil
}
