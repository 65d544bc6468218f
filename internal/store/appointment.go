package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"salon-booking-api/internal/model"
)

type Postgres struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// slotTaken reports whether any appointment other than excludeID already
// occupies (date, time, employee). Point lookup on the composite slot index.
func (s *Postgres) slotTaken(ctx context.Context, date, timeOfDay, employee string, excludeID int64) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE date = $1 AND time = $2 AND employee = $3`

	args := []any{date, timeOfDay, employee}

	if excludeID != 0 {
		q += ` AND id != $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.pool.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, err
}

func (s *Postgres) CreateAppointment(ctx context.Context, d *model.AppointmentDraft) (int64, error) {
	// app-level slot check
	if taken, err := s.slotTaken(ctx, d.Date, d.Time, d.Employee, 0); err != nil {
		return 0, err
	} else if taken {
		return 0, ErrSlotTaken
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (client, phone, service, date, time, employee, notes, price)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING id`,
		d.Client, d.Phone, d.Service, d.Date, d.Time, d.Employee, d.Notes, d.Price,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			// unique slot index caught a race
			return 0, ErrSlotTaken
		}
		return 0, err
	}
	return id, nil
}

// ListAppointments returns the full ledger ordered by date ascending, then
// time ascending. Dates come back in the canonical YYYY-MM-DD form.
func (s *Postgres) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, client, phone, service, to_char(date, 'YYYY-MM-DD'),
		        time, employee, notes, price, created_at, updated_at
		 FROM appointments
		 ORDER BY date ASC, time ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.Client, &a.Phone, &a.Service, &a.Date,
			&a.Time, &a.Employee, &a.Notes, &a.Price, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Postgres) UpdateAppointment(ctx context.Context, id int64, d *model.AppointmentDraft) error {
	// exclude self from the slot check so an edit that keeps its slot passes
	if taken, err := s.slotTaken(ctx, d.Date, d.Time, d.Employee, id); err != nil {
		return err
	} else if taken {
		return ErrSlotTaken
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET client=$1, phone=$2, service=$3, date=$4, time=$5, employee=$6,
		     notes=$7, price=$8, updated_at=NOW()
		 WHERE id=$9`,
		d.Client, d.Phone, d.Service, d.Date, d.Time, d.Employee, d.Notes, d.Price, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAppointment removes the row permanently. Deleting an id that does
// not exist is not an error.
func (s *Postgres) DeleteAppointment(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id=$1`, id)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
