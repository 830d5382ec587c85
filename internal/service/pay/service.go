package pay

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pay"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type payServiceImpl struct {
	rulesetRepo pay.RulesetRepository
	shiftRepo   shift.Repository
}

func NewPayService(rulesetRepo pay.RulesetRepository, shiftRepo shift.Repository) pay.Service {
	return &payServiceImpl{
		rulesetRepo: rulesetRepo,
		shiftRepo:   shiftRepo,
	}
}

// Helper to get user_id from JWT context
func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// CreateRuleset implements pay.Service.
func (s *payServiceImpl) CreateRuleset(ctx context.Context, req pay.CreateRulesetRequest) (pay.RulesetResponse, error) {
	if err := req.Validate(); err != nil {
		return pay.RulesetResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pay.RulesetResponse{}, err
	}

	created, err := s.rulesetRepo.Create(ctx, req.ToRuleset(userID))
	if err != nil {
		return pay.RulesetResponse{}, err
	}

	return pay.NewRulesetResponse(created), nil
}

// GetRuleset implements pay.Service.
func (s *payServiceImpl) GetRuleset(ctx context.Context, id string) (pay.RulesetResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pay.RulesetResponse{}, err
	}

	rs, err := s.rulesetRepo.GetByID(ctx, id, userID)
	if err != nil {
		return pay.RulesetResponse{}, err
	}

	return pay.NewRulesetResponse(rs), nil
}

// ListRulesets implements pay.Service.
func (s *payServiceImpl) ListRulesets(ctx context.Context) ([]pay.RulesetResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rulesets, err := s.rulesetRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]pay.RulesetResponse, 0, len(rulesets))
	for _, rs := range rulesets {
		responses = append(responses, pay.NewRulesetResponse(rs))
	}
	return responses, nil
}

// UpdateRuleset implements pay.Service. Replacing the rule list replaces
// it wholesale; declaration order of the incoming rules is preserved.
func (s *payServiceImpl) UpdateRuleset(ctx context.Context, req pay.UpdateRulesetRequest) (pay.RulesetResponse, error) {
	if err := req.Validate(); err != nil {
		return pay.RulesetResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pay.RulesetResponse{}, err
	}

	current, err := s.rulesetRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return pay.RulesetResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.BaseRateCents != nil {
		current.BaseRateCents = *req.BaseRateCents
	}
	if req.UnpaidBreakMinutes != nil {
		current.UnpaidBreakMinutes = *req.UnpaidBreakMinutes
	}
	if req.PeriodAnchorDate != nil {
		if date, ok := validator.IsValidDate(*req.PeriodAnchorDate); ok {
			current.PeriodAnchorDate = &date
		}
	}
	if req.Rules != nil {
		current.Rules = nil
		for _, rule := range req.Rules {
			mult, err := decimal.NewFromString(rule.Multiplier)
			if err != nil || !mult.IsPositive() {
				return pay.RulesetResponse{}, validator.ValidationErrors{{
					Field:   "rules",
					Message: "rule multipliers must be positive decimal numbers",
				}}
			}
			domainRule := pay.RateRule{
				Label:            rule.Label,
				Multiplier:       mult,
				Tag:              rule.Tag,
				StartMinuteOfDay: rule.StartMinuteOfDay,
				EndMinuteOfDay:   rule.EndMinuteOfDay,
			}
			for _, wd := range rule.Weekdays {
				domainRule.Weekdays = append(domainRule.Weekdays, time.Weekday(wd))
			}
			current.Rules = append(current.Rules, domainRule)
		}
	}

	if err := s.rulesetRepo.Update(ctx, current); err != nil {
		return pay.RulesetResponse{}, err
	}

	return pay.NewRulesetResponse(current), nil
}

// DeleteRuleset implements pay.Service.
func (s *payServiceImpl) DeleteRuleset(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.rulesetRepo.Delete(ctx, id, userID)
}

// AggregateRange implements pay.Service.
func (s *payServiceImpl) AggregateRange(ctx context.Context, req pay.AggregateRangeRequest) (pay.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return pay.PeriodResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pay.PeriodResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	return s.aggregate(ctx, userID, req.RulesetID, start, end)
}

// AggregatePeriod implements pay.Service.
func (s *payServiceImpl) AggregatePeriod(ctx context.Context, req pay.AggregatePeriodRequest) (pay.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return pay.PeriodResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pay.PeriodResponse{}, err
	}

	rs, err := s.rulesetRepo.GetByID(ctx, req.RulesetID, userID)
	if err != nil {
		return pay.PeriodResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	anchor := rs.PeriodAnchorDate
	if req.Anchor != nil {
		if a, ok := validator.IsValidDate(*req.Anchor); ok {
			anchor = &a
		}
	}

	start, end, err := PeriodBounds(pay.PeriodKind(req.Kind), date, anchor)
	if err != nil {
		return pay.PeriodResponse{}, err
	}

	return s.aggregate(ctx, userID, req.RulesetID, start, end)
}

// aggregate loads the shift set and fully re-derives the period. Shifts
// are fetched one day beyond each bound so effective starts that drifted
// across a period edge (late clock-ins, overnight spans) are still seen;
// the half-open window inside Aggregate does the authoritative filtering.
func (s *payServiceImpl) aggregate(ctx context.Context, userID, rulesetID string, start, end time.Time) (pay.PeriodResponse, error) {
	rs, err := s.rulesetRepo.GetByID(ctx, rulesetID, userID)
	if err != nil {
		return pay.PeriodResponse{}, err
	}

	shifts, err := s.shiftRepo.ListInRange(ctx, userID, start.AddDate(0, 0, -1), end.AddDate(0, 0, 1))
	if err != nil {
		return pay.PeriodResponse{}, err
	}

	period := Aggregate(shifts, start, end, rs)

	response := pay.PeriodResponse{
		StartDate:             period.StartDate.Format("2006-01-02"),
		EndDate:               period.EndDate.Format("2006-01-02"),
		PaidMinutes:           period.PaidMinutes,
		PremiumMinutesByLabel: period.PremiumMinutesByLabel,
		EstimatedPayCents:     period.EstimatedPayCents,
	}
	response.ShiftCount = period.IncludedShifts
	for _, excluded := range period.ExcludedShifts {
		response.ExcludedShifts = append(response.ExcludedShifts, pay.ExcludedShiftResponse{
			ShiftID: excluded.ShiftID,
			Reason:  excluded.Reason,
		})
	}

	return response, nil
}
