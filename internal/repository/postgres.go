package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const eventColumns = `id, name, description, date, location, category,
	max_attendees, current_attendees, price::text, image_url, is_active`

// PostgresStore persists events and registrations in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// List returns all events ordered by id.
func (r *PostgresStore) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Book performs a concurrency-safe registration inside a transaction.
//
// SELECT … FOR UPDATE takes a row-level lock on the event, so concurrent
// bookings for the same event queue behind each other and each one sees the
// count written by the previous commit. Without the lock two transactions
// can both read a count of capacity-1 and overbook the event.
func (r *PostgresStore) Book(ctx context.Context, eventID int, contact string, now time.Time) (*model.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// No-op once the transaction is committed.
	defer func() { _ = tx.Rollback(ctx) }()

	event, err := scanEvent(tx.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	if err := CheckBookable(&event, now); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE events SET current_attendees = current_attendees + 1 WHERE id = $1`,
		eventID,
	); err != nil {
		return nil, fmt.Errorf("increment current_attendees: %w", err)
	}

	reg := &model.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Contact:   strings.TrimSpace(contact),
		CreatedAt: now.UTC(),
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, attendee_contact, created_at)
		 VALUES ($1, $2, $3, $4)`,
		reg.ID, reg.EventID, reg.Contact, reg.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

// ListRegistrations returns all registrations for a given event.
func (r *PostgresStore) ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, attendee_contact, created_at
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY created_at ASC, id ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	regs := []model.Registration{}
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.Contact, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// Insert writes events with their ids as given. Existing ids are left untouched.
func (r *PostgresStore) Insert(ctx context.Context, events []model.Event) error {
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(
			`INSERT INTO events (id, name, description, date, location, category,
				max_attendees, current_attendees, price, image_url, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CAST($9::text AS numeric), $10, $11)
			 ON CONFLICT (id) DO NOTHING`,
			e.ID, e.Name, e.Description, e.Date, e.Location, e.Category,
			e.MaxAttendees, e.CurrentAttendees, e.Price.String(), e.ImageURL, e.IsActive,
		)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts events only when the events table has no rows.
// It reports whether anything was written.
func (r *PostgresStore) SeedIfEmpty(ctx context.Context, events []model.Event) (bool, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return false, fmt.Errorf("count events: %w", err)
	}
	if count > 0 || len(events) == 0 {
		return false, nil
	}
	if err := r.Insert(ctx, events); err != nil {
		return false, err
	}
	return true, nil
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var (
		e     model.Event
		price string
	)
	if err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Date, &e.Location, &e.Category,
		&e.MaxAttendees, &e.CurrentAttendees, &price, &e.ImageURL, &e.IsActive,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, err
		}
		return model.Event{}, fmt.Errorf("scan event: %w", err)
	}

	d, err := decimal.NewFromString(price)
	if err != nil {
		return model.Event{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	e.Price = d
	e.Date = e.Date.UTC()
	return e, nil
}
