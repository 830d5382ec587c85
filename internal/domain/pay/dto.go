package pay

import (
	"strings"
	"time"

	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RateRulePayload struct {
	Label            string  `json:"label"`
	Multiplier       string  `json:"multiplier"` // decimal string, e.g. "1.5"
	Tag              *string `json:"tag,omitempty"`
	Weekdays         []int   `json:"weekdays,omitempty"` // 0=Sunday ... 6=Saturday
	StartMinuteOfDay *int    `json:"start_minute_of_day,omitempty"`
	EndMinuteOfDay   *int    `json:"end_minute_of_day,omitempty"`
}

type CreateRulesetRequest struct {
	Name               string            `json:"name"`
	BaseRateCents      *int64            `json:"base_rate_cents"`
	UnpaidBreakMinutes *int              `json:"unpaid_break_minutes"`
	Rules              []RateRulePayload `json:"rules,omitempty"`
	PeriodAnchorDate   *string           `json:"period_anchor_date,omitempty"` // YYYY-MM-DD
}

func (r *CreateRulesetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.BaseRateCents == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "base_rate_cents",
			Message: "base_rate_cents is required",
		})
	} else if *r.BaseRateCents < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_rate_cents",
			Message: "base_rate_cents must be a non-negative number",
		})
	}
	if r.UnpaidBreakMinutes != nil && *r.UnpaidBreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "unpaid_break_minutes",
			Message: "unpaid_break_minutes must be a non-negative number",
		})
	}
	if r.PeriodAnchorDate != nil {
		if _, ok := validator.IsValidDate(*r.PeriodAnchorDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period_anchor_date",
				Message: "period_anchor_date must use YYYY-MM-DD format",
			})
		}
	}
	errs = append(errs, validateRules(r.Rules)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateRules checks the per-rule fields shared by create and update.
func validateRules(rules []RateRulePayload) validator.ValidationErrors {
	var errs validator.ValidationErrors

	for _, rule := range rules {
		if validator.IsEmpty(rule.Label) {
			errs = append(errs, validator.ValidationError{
				Field:   "rules",
				Message: "rule labels must not be empty",
			})
			break
		}
		mult, err := decimal.NewFromString(rule.Multiplier)
		if err != nil || !mult.IsPositive() {
			errs = append(errs, validator.ValidationError{
				Field:   "rules",
				Message: "rule multipliers must be positive decimal numbers",
			})
			break
		}
		if (rule.StartMinuteOfDay == nil) != (rule.EndMinuteOfDay == nil) {
			errs = append(errs, validator.ValidationError{
				Field:   "rules",
				Message: "time-of-day windows need both start_minute_of_day and end_minute_of_day",
			})
			break
		}
		if rule.StartMinuteOfDay != nil {
			if !validator.IsMinuteOfDay(*rule.StartMinuteOfDay) || !validator.IsMinuteOfDay(*rule.EndMinuteOfDay) {
				errs = append(errs, validator.ValidationError{
					Field:   "rules",
					Message: "time-of-day window minutes must be in [0, 1440)",
				})
				break
			}
		}
		for _, wd := range rule.Weekdays {
			if wd < 0 || wd > 6 {
				errs = append(errs, validator.ValidationError{
					Field:   "rules",
					Message: "rule weekdays must be between 0 (Sunday) and 6 (Saturday)",
				})
				break
			}
		}
	}

	return errs
}

// ToRuleset builds the domain value, preserving rule declaration order.
func (r *CreateRulesetRequest) ToRuleset(userID string) Ruleset {
	rs := Ruleset{
		UserID: userID,
		Name:   r.Name,
	}
	if r.BaseRateCents != nil {
		rs.BaseRateCents = *r.BaseRateCents
	}
	if r.UnpaidBreakMinutes != nil {
		rs.UnpaidBreakMinutes = *r.UnpaidBreakMinutes
	}
	if r.PeriodAnchorDate != nil {
		if date, ok := validator.IsValidDate(*r.PeriodAnchorDate); ok {
			rs.PeriodAnchorDate = &date
		}
	}
	for _, rule := range r.Rules {
		mult, err := decimal.NewFromString(rule.Multiplier)
		if err != nil {
			continue
		}
		domainRule := RateRule{
			Label:            rule.Label,
			Multiplier:       mult,
			Tag:              rule.Tag,
			StartMinuteOfDay: rule.StartMinuteOfDay,
			EndMinuteOfDay:   rule.EndMinuteOfDay,
		}
		for _, wd := range rule.Weekdays {
			domainRule.Weekdays = append(domainRule.Weekdays, time.Weekday(wd))
		}
		rs.Rules = append(rs.Rules, domainRule)
	}
	return rs
}

type UpdateRulesetRequest struct {
	ID                 string            `json:"-"`
	Name               *string           `json:"name,omitempty"`
	BaseRateCents      *int64            `json:"base_rate_cents,omitempty"`
	UnpaidBreakMinutes *int              `json:"unpaid_break_minutes,omitempty"`
	Rules              []RateRulePayload `json:"rules,omitempty"`
	PeriodAnchorDate   *string           `json:"period_anchor_date,omitempty"`
}

func (r *UpdateRulesetRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.BaseRateCents != nil && *r.BaseRateCents < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_rate_cents",
			Message: "base_rate_cents must be a non-negative number",
		})
	}
	if r.UnpaidBreakMinutes != nil && *r.UnpaidBreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "unpaid_break_minutes",
			Message: "unpaid_break_minutes must be a non-negative number",
		})
	}
	if r.PeriodAnchorDate != nil {
		if _, ok := validator.IsValidDate(*r.PeriodAnchorDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period_anchor_date",
				Message: "period_anchor_date must use YYYY-MM-DD format",
			})
		}
	}
	errs = append(errs, validateRules(r.Rules)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AggregateRangeRequest struct {
	RulesetID string `json:"ruleset_id"`
	StartDate string `json:"start_date"` // inclusive, YYYY-MM-DD
	EndDate   string `json:"end_date"`   // exclusive, YYYY-MM-DD
}

func (r *AggregateRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.RulesetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "ruleset_id",
			Message: "ruleset_id must be a valid UUID",
		})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must use YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must use YYYY-MM-DD format",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be after start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AggregatePeriodRequest struct {
	RulesetID string `json:"ruleset_id"`
	Kind      string `json:"kind"` // weekly | biweekly | monthly
	Date      string `json:"date"` // any day inside the wanted period
	// Anchor overrides the ruleset's period_anchor_date for biweekly math.
	Anchor *string `json:"anchor,omitempty"`
}

func (r *AggregatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.RulesetID) {
		errs = append(errs, validator.ValidationError{
			Field:   "ruleset_id",
			Message: "ruleset_id must be a valid UUID",
		})
	}
	if !validator.IsInSlice(r.Kind, PeriodKindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: " + strings.Join(PeriodKindValues, ", "),
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must use YYYY-MM-DD format",
		})
	}
	if r.Anchor != nil {
		if _, ok := validator.IsValidDate(*r.Anchor); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "anchor",
				Message: "anchor must use YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RateRuleResponse struct {
	Label            string  `json:"label"`
	Multiplier       string  `json:"multiplier"`
	Tag              *string `json:"tag,omitempty"`
	Weekdays         []int   `json:"weekdays,omitempty"`
	StartMinuteOfDay *int    `json:"start_minute_of_day,omitempty"`
	EndMinuteOfDay   *int    `json:"end_minute_of_day,omitempty"`
}

type RulesetResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	BaseRateCents      int64              `json:"base_rate_cents"`
	UnpaidBreakMinutes int                `json:"unpaid_break_minutes"`
	Rules              []RateRuleResponse `json:"rules"`
	PeriodAnchorDate   *string            `json:"period_anchor_date,omitempty"`
	CreatedAt          string             `json:"created_at"`
	UpdatedAt          string             `json:"updated_at"`
}

type ExcludedShiftResponse struct {
	ShiftID string `json:"shift_id"`
	Reason  string `json:"reason"`
}

type PeriodResponse struct {
	StartDate             string                  `json:"start_date"`
	EndDate               string                  `json:"end_date"`
	PaidMinutes           int                     `json:"paid_minutes"`
	PremiumMinutesByLabel map[string]int          `json:"premium_minutes_by_label"`
	EstimatedPayCents     int64                   `json:"estimated_pay_cents"`
	ExcludedShifts        []ExcludedShiftResponse `json:"excluded_shifts,omitempty"`
	ShiftCount            int                     `json:"shift_count"`
}

func NewRulesetResponse(rs Ruleset) RulesetResponse {
	resp := RulesetResponse{
		ID:                 rs.ID,
		Name:               rs.Name,
		BaseRateCents:      rs.BaseRateCents,
		UnpaidBreakMinutes: rs.UnpaidBreakMinutes,
		Rules:              make([]RateRuleResponse, 0, len(rs.Rules)),
		CreatedAt:          rs.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          rs.UpdatedAt.Format(time.RFC3339),
	}
	if rs.PeriodAnchorDate != nil {
		v := rs.PeriodAnchorDate.Format("2006-01-02")
		resp.PeriodAnchorDate = &v
	}
	for _, rule := range rs.Rules {
		ruleResp := RateRuleResponse{
			Label:            rule.Label,
			Multiplier:       rule.Multiplier.String(),
			Tag:              rule.Tag,
			StartMinuteOfDay: rule.StartMinuteOfDay,
			EndMinuteOfDay:   rule.EndMinuteOfDay,
		}
		for _, wd := range rule.Weekdays {
			ruleResp.Weekdays = append(ruleResp.Weekdays, int(wd))
		}
		resp.Rules = append(resp.Rules, ruleResp)
	}
	return resp
}
