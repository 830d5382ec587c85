package postgresql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/database"
)

type patternRepositoryImpl struct {
	db *database.DB
}

func NewPatternRepository(db *database.DB) pattern.Repository {
	return &patternRepositoryImpl{db: db}
}

// rotationDayRecord is the jsonb shape of one rotation slot. Slice order in
// the column is the cycle order.
type rotationDayRecord struct {
	Index            int    `json:"index"`
	IsWorkDay        bool   `json:"is_work_day"`
	Label            string `json:"label,omitempty"`
	StartMinuteOfDay *int   `json:"start_minute_of_day,omitempty"`
	DurationMinutes  *int   `json:"duration_minutes,omitempty"`
}

func encodePatternColumns(p pattern.Pattern) (weekdays []byte, rotationDays []byte, cycleStart *time.Time, err error) {
	days := make([]int, 0, len(p.Weekdays))
	for _, wd := range p.Weekdays {
		days = append(days, int(wd))
	}
	weekdays, err = json.Marshal(days)
	if err != nil {
		return nil, nil, nil, err
	}

	records := make([]rotationDayRecord, 0, len(p.RotationDays))
	for _, rd := range p.RotationDays {
		records = append(records, rotationDayRecord(rd))
	}
	rotationDays, err = json.Marshal(records)
	if err != nil {
		return nil, nil, nil, err
	}

	if !p.CycleStartDate.IsZero() {
		cycleStart = &p.CycleStartDate
	}
	return weekdays, rotationDays, cycleStart, nil
}

func decodePatternColumns(p *pattern.Pattern, weekdays, rotationDays []byte, cycleStart *time.Time) error {
	var days []int
	if err := json.Unmarshal(weekdays, &days); err != nil {
		return err
	}
	for _, wd := range days {
		p.Weekdays = append(p.Weekdays, time.Weekday(wd))
	}

	var records []rotationDayRecord
	if err := json.Unmarshal(rotationDays, &records); err != nil {
		return err
	}
	for _, rd := range records {
		p.RotationDays = append(p.RotationDays, pattern.RotationDay(rd))
	}

	if cycleStart != nil {
		p.CycleStartDate = *cycleStart
	}
	return nil
}

// Create implements pattern.Repository.
func (r *patternRepositoryImpl) Create(ctx context.Context, p pattern.Pattern) (pattern.Pattern, error) {
	q := GetQuerier(ctx, r.db)

	weekdays, rotationDays, cycleStart, err := encodePatternColumns(p)
	if err != nil {
		return pattern.Pattern{}, err
	}

	query := `
		INSERT INTO patterns (
			user_id, name, kind, start_minute_of_day, duration_minutes,
			weekdays, rotation_days, cycle_start_date, timezone, auto_extend
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		p.UserID,
		p.Name,
		string(p.Kind),
		p.StartMinuteOfDay,
		p.DurationMinutes,
		weekdays,
		rotationDays,
		cycleStart,
		p.Timezone,
		p.AutoExtend,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return pattern.Pattern{}, err
	}

	return p, nil
}

const patternColumns = `
	id, user_id, name, kind, start_minute_of_day, duration_minutes,
	weekdays, rotation_days, cycle_start_date, timezone, auto_extend,
	created_at, updated_at, deleted_at
`

func scanPattern(row pgx.Row) (pattern.Pattern, error) {
	var p pattern.Pattern
	var kind string
	var weekdays, rotationDays []byte
	var cycleStart *time.Time

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&kind,
		&p.StartMinuteOfDay,
		&p.DurationMinutes,
		&weekdays,
		&rotationDays,
		&cycleStart,
		&p.Timezone,
		&p.AutoExtend,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return pattern.Pattern{}, err
	}

	p.Kind = pattern.Kind(kind)
	if err := decodePatternColumns(&p, weekdays, rotationDays, cycleStart); err != nil {
		return pattern.Pattern{}, err
	}
	return p, nil
}

// GetByID implements pattern.Repository.
func (r *patternRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (pattern.Pattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + patternColumns + `
		FROM patterns
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	p, err := scanPattern(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return pattern.Pattern{}, pattern.ErrPatternNotFound
		}
		return pattern.Pattern{}, err
	}
	return p, nil
}

// ListByUser implements pattern.Repository.
func (r *patternRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]pattern.Pattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + patternColumns + `
		FROM patterns
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []pattern.Pattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// ListAutoExtend implements pattern.Repository. This crosses user
// boundaries on purpose: the horizon job serves every account.
func (r *patternRepositoryImpl) ListAutoExtend(ctx context.Context) ([]pattern.Pattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + patternColumns + `
		FROM patterns
		WHERE auto_extend AND deleted_at IS NULL
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []pattern.Pattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// Update implements pattern.Repository.
func (r *patternRepositoryImpl) Update(ctx context.Context, p pattern.Pattern) error {
	q := GetQuerier(ctx, r.db)

	weekdays, rotationDays, cycleStart, err := encodePatternColumns(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE patterns
		SET name = $1, start_minute_of_day = $2, duration_minutes = $3,
			weekdays = $4, rotation_days = $5, cycle_start_date = $6,
			auto_extend = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		p.Name,
		p.StartMinuteOfDay,
		p.DurationMinutes,
		weekdays,
		rotationDays,
		cycleStart,
		p.AutoExtend,
		p.ID,
		p.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pattern.ErrPatternNotFound
	}

	return nil
}

// Delete implements pattern.Repository. Soft delete: generated shifts keep
// their pattern back-pointer and stay untouched.
func (r *patternRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE patterns
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pattern.ErrPatternAlreadyDeleted
	}

	return nil
}
