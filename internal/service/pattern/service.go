package pattern

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
)

type patternServiceImpl struct {
	patternRepo pattern.Repository
}

func NewPatternService(patternRepo pattern.Repository) pattern.Service {
	return &patternServiceImpl{
		patternRepo: patternRepo,
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

// Create implements pattern.Service.
func (s *patternServiceImpl) Create(ctx context.Context, req pattern.CreatePatternRequest) (pattern.PatternResponse, error) {
	if err := req.Validate(); err != nil {
		return pattern.PatternResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pattern.PatternResponse{}, err
	}

	p := req.ToPattern(userID)
	if err := p.Validate(); err != nil {
		return pattern.PatternResponse{}, err
	}

	created, err := s.patternRepo.Create(ctx, p)
	if err != nil {
		return pattern.PatternResponse{}, err
	}

	return newPatternResponse(created), nil
}

// Get implements pattern.Service.
func (s *patternServiceImpl) Get(ctx context.Context, id string) (pattern.PatternResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pattern.PatternResponse{}, err
	}

	p, err := s.patternRepo.GetByID(ctx, id, userID)
	if err != nil {
		return pattern.PatternResponse{}, err
	}

	return newPatternResponse(p), nil
}

// List implements pattern.Service.
func (s *patternServiceImpl) List(ctx context.Context) ([]pattern.PatternResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patterns, err := s.patternRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]pattern.PatternResponse, 0, len(patterns))
	for _, p := range patterns {
		responses = append(responses, newPatternResponse(p))
	}
	return responses, nil
}

// Update implements pattern.Service. Updating a definition never touches
// shifts that were already generated from it; instances are snapshots.
func (s *patternServiceImpl) Update(ctx context.Context, req pattern.UpdatePatternRequest) (pattern.PatternResponse, error) {
	if err := req.Validate(); err != nil {
		return pattern.PatternResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pattern.PatternResponse{}, err
	}

	current, err := s.patternRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return pattern.PatternResponse{}, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.StartMinuteOfDay != nil {
		current.StartMinuteOfDay = *req.StartMinuteOfDay
	}
	if req.DurationMinutes != nil {
		current.DurationMinutes = *req.DurationMinutes
	}
	if len(req.Weekdays) > 0 {
		current.Weekdays = nil
		for _, wd := range req.Weekdays {
			current.Weekdays = append(current.Weekdays, time.Weekday(wd))
		}
	}
	if len(req.RotationDays) > 0 {
		current.RotationDays = nil
		for i, rd := range req.RotationDays {
			current.RotationDays = append(current.RotationDays, pattern.RotationDay{
				Index:            i,
				IsWorkDay:        rd.IsWorkDay,
				Label:            rd.Label,
				StartMinuteOfDay: rd.StartMinuteOfDay,
				DurationMinutes:  rd.DurationMinutes,
			})
		}
	}
	if req.CycleStartDate != nil {
		if date, ok := validator.IsValidDate(*req.CycleStartDate); ok {
			current.CycleStartDate = date
		}
	}
	if req.AutoExtend != nil {
		current.AutoExtend = *req.AutoExtend
	}

	if err := current.Validate(); err != nil {
		return pattern.PatternResponse{}, err
	}

	if err := s.patternRepo.Update(ctx, current); err != nil {
		return pattern.PatternResponse{}, err
	}

	return newPatternResponse(current), nil
}

// Delete implements pattern.Service.
func (s *patternServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.patternRepo.Delete(ctx, id, userID)
}

// Preview implements pattern.Service. The expansion itself cannot fail on
// a stored (already validated) pattern; only lookup and input parsing can.
func (s *patternServiceImpl) Preview(ctx context.Context, req pattern.PreviewRequest) (pattern.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return pattern.PreviewResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return pattern.PreviewResponse{}, err
	}

	p, err := s.patternRepo.GetByID(ctx, req.PatternID, userID)
	if err != nil {
		return pattern.PreviewResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	occurrences := Preview(p, startDate, req.Months)

	endDate := startDate.AddDate(0, req.Months, 0).AddDate(0, 0, -1)
	response := pattern.PreviewResponse{
		PatternID:   p.ID,
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
		Occurrences: make([]pattern.OccurrenceResponse, 0, len(occurrences)),
	}
	for _, occ := range occurrences {
		response.Occurrences = append(response.Occurrences, pattern.OccurrenceResponse{
			Date:           occ.Date.Format("2006-01-02"),
			ScheduledStart: occ.Start.Format(time.RFC3339),
			ScheduledEnd:   occ.End.Format(time.RFC3339),
			Title:          occ.Title,
		})
	}
	return response, nil
}

func newPatternResponse(p pattern.Pattern) pattern.PatternResponse {
	resp := pattern.PatternResponse{
		ID:               p.ID,
		Name:             p.Name,
		Kind:             string(p.Kind),
		StartMinuteOfDay: p.StartMinuteOfDay,
		DurationMinutes:  p.DurationMinutes,
		Timezone:         p.Timezone,
		AutoExtend:       p.AutoExtend,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
	for _, wd := range p.Weekdays {
		resp.Weekdays = append(resp.Weekdays, int(wd))
	}
	for _, rd := range p.RotationDays {
		resp.RotationDays = append(resp.RotationDays, pattern.RotationDayResponse{
			Index:            rd.Index,
			IsWorkDay:        rd.IsWorkDay,
			Label:            rd.Label,
			StartMinuteOfDay: rd.StartMinuteOfDay,
			DurationMinutes:  rd.DurationMinutes,
		})
	}
	if p.Kind == pattern.KindRotating && !p.CycleStartDate.IsZero() {
		v := p.CycleStartDate.Format("2006-01-02")
		resp.CycleStartDate = &v
	}
	return resp
}
