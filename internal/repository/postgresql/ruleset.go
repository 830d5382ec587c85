package postgresql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pay"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type rulesetRepositoryImpl struct {
	db *database.DB
}

func NewRulesetRepository(db *database.DB) pay.RulesetRepository {
	return &rulesetRepositoryImpl{db: db}
}

// rateRuleRecord is the jsonb shape of one rate rule. Slice order in the
// column is the evaluation order, so round-tripping preserves first-match
// semantics.
type rateRuleRecord struct {
	Label            string  `json:"label"`
	Multiplier       string  `json:"multiplier"`
	Tag              *string `json:"tag,omitempty"`
	Weekdays         []int   `json:"weekdays,omitempty"`
	StartMinuteOfDay *int    `json:"start_minute_of_day,omitempty"`
	EndMinuteOfDay   *int    `json:"end_minute_of_day,omitempty"`
}

func encodeRules(rules []pay.RateRule) ([]byte, error) {
	records := make([]rateRuleRecord, 0, len(rules))
	for _, rule := range rules {
		record := rateRuleRecord{
			Label:            rule.Label,
			Multiplier:       rule.Multiplier.String(),
			Tag:              rule.Tag,
			StartMinuteOfDay: rule.StartMinuteOfDay,
			EndMinuteOfDay:   rule.EndMinuteOfDay,
		}
		for _, wd := range rule.Weekdays {
			record.Weekdays = append(record.Weekdays, int(wd))
		}
		records = append(records, record)
	}
	return json.Marshal(records)
}

func decodeRules(data []byte) ([]pay.RateRule, error) {
	var records []rateRuleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	var rules []pay.RateRule
	for _, record := range records {
		mult, err := decimal.NewFromString(record.Multiplier)
		if err != nil {
			return nil, err
		}
		rule := pay.RateRule{
			Label:            record.Label,
			Multiplier:       mult,
			Tag:              record.Tag,
			StartMinuteOfDay: record.StartMinuteOfDay,
			EndMinuteOfDay:   record.EndMinuteOfDay,
		}
		for _, wd := range record.Weekdays {
			rule.Weekdays = append(rule.Weekdays, time.Weekday(wd))
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Create implements pay.RulesetRepository.
func (r *rulesetRepositoryImpl) Create(ctx context.Context, rs pay.Ruleset) (pay.Ruleset, error) {
	q := GetQuerier(ctx, r.db)

	rules, err := encodeRules(rs.Rules)
	if err != nil {
		return pay.Ruleset{}, err
	}

	query := `
		INSERT INTO rulesets (
			user_id, name, base_rate_cents, unpaid_break_minutes, rules, period_anchor_date
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rs.UserID,
		rs.Name,
		rs.BaseRateCents,
		rs.UnpaidBreakMinutes,
		rules,
		rs.PeriodAnchorDate,
	).Scan(&rs.ID, &rs.CreatedAt, &rs.UpdatedAt)
	if err != nil {
		return pay.Ruleset{}, err
	}

	return rs, nil
}

const rulesetColumns = `
	id, user_id, name, base_rate_cents, unpaid_break_minutes, rules,
	period_anchor_date, created_at, updated_at
`

func scanRuleset(row pgx.Row) (pay.Ruleset, error) {
	var rs pay.Ruleset
	var rules []byte

	err := row.Scan(
		&rs.ID,
		&rs.UserID,
		&rs.Name,
		&rs.BaseRateCents,
		&rs.UnpaidBreakMinutes,
		&rules,
		&rs.PeriodAnchorDate,
		&rs.CreatedAt,
		&rs.UpdatedAt,
	)
	if err != nil {
		return pay.Ruleset{}, err
	}

	rs.Rules, err = decodeRules(rules)
	if err != nil {
		return pay.Ruleset{}, err
	}
	return rs, nil
}

// GetByID implements pay.RulesetRepository.
func (r *rulesetRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (pay.Ruleset, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rulesetColumns + `
		FROM rulesets
		WHERE id = $1 AND user_id = $2
	`

	rs, err := scanRuleset(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return pay.Ruleset{}, pay.ErrRulesetNotFound
		}
		return pay.Ruleset{}, err
	}
	return rs, nil
}

// ListByUser implements pay.RulesetRepository.
func (r *rulesetRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]pay.Ruleset, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rulesetColumns + `
		FROM rulesets
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rulesets []pay.Ruleset
	for rows.Next() {
		rs, err := scanRuleset(rows)
		if err != nil {
			return nil, err
		}
		rulesets = append(rulesets, rs)
	}
	return rulesets, rows.Err()
}

// Update implements pay.RulesetRepository.
func (r *rulesetRepositoryImpl) Update(ctx context.Context, rs pay.Ruleset) error {
	q := GetQuerier(ctx, r.db)

	rules, err := encodeRules(rs.Rules)
	if err != nil {
		return err
	}

	query := `
		UPDATE rulesets
		SET name = $1, base_rate_cents = $2, unpaid_break_minutes = $3,
			rules = $4, period_anchor_date = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`

	tag, err := q.Exec(ctx, query,
		rs.Name,
		rs.BaseRateCents,
		rs.UnpaidBreakMinutes,
		rules,
		rs.PeriodAnchorDate,
		rs.ID,
		rs.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pay.ErrRulesetNotFound
	}

	return nil
}

// Delete implements pay.RulesetRepository.
func (r *rulesetRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rulesets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pay.ErrRulesetNotFound
	}

	return nil
}
