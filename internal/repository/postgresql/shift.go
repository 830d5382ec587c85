package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `
	id, user_id, pattern_id, date, scheduled_start, scheduled_end,
	actual_start, actual_end, break_minutes, title, rate_tag, status,
	created_at, updated_at
`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var status string

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.PatternID,
		&s.Date,
		&s.ScheduledStart,
		&s.ScheduledEnd,
		&s.ActualStart,
		&s.ActualEnd,
		&s.BreakMinutes,
		&s.Title,
		&s.RateTag,
		&status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}

	s.Status = shift.Status(status)
	return s, nil
}

// Create implements shift.Repository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			user_id, pattern_id, date, scheduled_start, scheduled_end,
			actual_start, actual_end, break_minutes, title, rate_tag, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID,
		s.PatternID,
		s.Date,
		s.ScheduledStart,
		s.ScheduledEnd,
		s.ActualStart,
		s.ActualEnd,
		s.BreakMinutes,
		s.Title,
		s.RateTag,
		string(s.Status),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, err
	}

	return s, nil
}

// CreateBatch implements shift.Repository. All rows land in one
// transaction; a generation run is either fully persisted or not at all.
func (r *shiftRepositoryImpl) CreateBatch(ctx context.Context, shifts []shift.Shift) ([]shift.Shift, error) {
	if len(shifts) == 0 {
		return nil, nil
	}

	created := make([]shift.Shift, 0, len(shifts))
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)
		for _, s := range shifts {
			row, err := r.Create(txCtx, s)
			if err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID implements shift.Repository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE id = $1 AND user_id = $2
	`

	s, err := scanShift(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, err
	}
	return s, nil
}

// ListInRange implements shift.Repository.
func (r *shiftRepositoryImpl) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY scheduled_start
	`

	return r.list(ctx, q, query, userID, from, to)
}

// ListByPattern implements shift.Repository.
func (r *shiftRepositoryImpl) ListByPattern(ctx context.Context, userID string, patternID string, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE user_id = $1 AND pattern_id = $2 AND date >= $3 AND date <= $4
		ORDER BY scheduled_start
	`

	return r.list(ctx, q, query, userID, patternID, from, to)
}

func (r *shiftRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]shift.Shift, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// Update implements shift.Repository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET actual_start = $1, actual_end = $2, break_minutes = $3,
			title = $4, rate_tag = $5, status = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`

	tag, err := q.Exec(ctx, query,
		s.ActualStart,
		s.ActualEnd,
		s.BreakMinutes,
		s.Title,
		s.RateTag,
		string(s.Status),
		s.ID,
		s.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// Delete implements shift.Repository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}
