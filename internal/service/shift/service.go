package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
	patternsvc "github.com/shiftclock/shiftclock-backend-go/internal/service/pattern"
)

type shiftServiceImpl struct {
	shiftRepo   shift.Repository
	patternRepo pattern.Repository
}

func NewShiftService(shiftRepo shift.Repository, patternRepo pattern.Repository) shift.Service {
	return &shiftServiceImpl{
		shiftRepo:   shiftRepo,
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

// Create implements shift.Service for manual entry.
func (s *shiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	start, _ := validator.IsValidDateTime(req.ScheduledStart)
	end, _ := validator.IsValidDateTime(req.ScheduledEnd)

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		UserID:         userID,
		Date:           date,
		ScheduledStart: start,
		ScheduledEnd:   end,
		BreakMinutes:   req.BreakMinutes,
		Title:          req.Title,
		RateTag:        req.RateTag,
		Status:         shift.StatusScheduled,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(created), nil
}

// Get implements shift.Service.
func (s *shiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, id, userID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(sh), nil
}

// List implements shift.Service.
func (s *shiftServiceImpl) List(ctx context.Context, req shift.ListRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	from, _ := validator.IsValidDate(req.FromDate)
	to, _ := validator.IsValidDate(req.ToDate)

	shifts, err := s.shiftRepo.ListInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.NewShiftResponse(sh))
	}
	return responses, nil
}

// Update implements shift.Service: actual times, break, title and tag.
// Scheduled times of generated shifts are snapshots and stay untouched.
func (s *shiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.ActualStart != nil {
		if t, ok := validator.IsValidDateTime(*req.ActualStart); ok {
			current.ActualStart = &t
		}
	}
	if req.ActualEnd != nil {
		if t, ok := validator.IsValidDateTime(*req.ActualEnd); ok {
			current.ActualEnd = &t
		}
	}
	if req.BreakMinutes != nil {
		current.BreakMinutes = req.BreakMinutes
	}
	if req.RateTag != nil {
		current.RateTag = req.RateTag
	}

	if err := s.shiftRepo.Update(ctx, current); err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(current), nil
}

// Transition implements shift.Service.
func (s *shiftServiceImpl) Transition(ctx context.Context, req shift.TransitionRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ID, userID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	next := shift.Status(req.Status)
	if !current.CanTransitionTo(next) {
		return shift.ShiftResponse{}, shift.ErrInvalidTransition
	}

	current.Status = next
	if err := s.shiftRepo.Update(ctx, current); err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(current), nil
}

// Delete implements shift.Service.
func (s *shiftServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.shiftRepo.Delete(ctx, id, userID)
}

// Generate implements shift.Service. Expansion is deterministic, so the
// same window can be generated repeatedly: occurrences that already exist
// with identical identity (date, start, end, title) are skipped, and
// previously stored shifts are never modified by a regeneration.
func (s *shiftServiceImpl) Generate(ctx context.Context, req shift.GenerateRequest) (shift.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.GenerateResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return shift.GenerateResponse{}, err
	}

	p, err := s.patternRepo.GetByID(ctx, req.PatternID, userID)
	if err != nil {
		return shift.GenerateResponse{}, shift.ErrPatternNotFound
	}

	from, _ := validator.IsValidDate(req.FromDate)
	to, _ := validator.IsValidDate(req.ToDate)

	created, skipped, err := s.materialize(ctx, p, userID, from, to)
	if err != nil {
		return shift.GenerateResponse{}, err
	}

	response := shift.GenerateResponse{
		PatternID: p.ID,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Skipped:   skipped,
		Created:   make([]shift.ShiftResponse, 0, len(created)),
	}
	for _, sh := range created {
		response.Created = append(response.Created, shift.NewShiftResponse(sh))
	}
	return response, nil
}

// MaterializePattern expands a pattern over [from, to] and persists the
// occurrences that are not already stored. It is the shared path for the
// generate endpoint and the rolling-horizon job.
func (s *shiftServiceImpl) MaterializePattern(ctx context.Context, p pattern.Pattern, from, to time.Time) (int, error) {
	created, _, err := s.materialize(ctx, p, p.UserID, from, to)
	return len(created), err
}

func (s *shiftServiceImpl) materialize(ctx context.Context, p pattern.Pattern, userID string, from, to time.Time) ([]shift.Shift, int, error) {
	occurrences := patternsvc.Expand(p, from, to)
	if len(occurrences) == 0 {
		return nil, 0, nil
	}

	existing, err := s.shiftRepo.ListByPattern(ctx, userID, p.ID, from, to)
	if err != nil {
		return nil, 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, sh := range existing {
		seen[shiftIdentity(sh.Date, sh.ScheduledStart, sh.ScheduledEnd, sh.Title)] = true
	}

	toCreate := make([]shift.Shift, 0, len(occurrences))
	skipped := 0
	for _, occ := range occurrences {
		if seen[shiftIdentity(occ.Date, occ.Start, occ.End, occ.Title)] {
			skipped++
			continue
		}
		patternID := p.ID
		toCreate = append(toCreate, shift.Shift{
			UserID:         userID,
			PatternID:      &patternID,
			Date:           occ.Date,
			ScheduledStart: occ.Start,
			ScheduledEnd:   occ.End,
			Title:          occ.Title,
			Status:         shift.StatusScheduled,
		})
	}

	if len(toCreate) == 0 {
		return nil, skipped, nil
	}

	created, err := s.shiftRepo.CreateBatch(ctx, toCreate)
	if err != nil {
		return nil, 0, err
	}
	return created, skipped, nil
}

// shiftIdentity is the structural equality key callers deduplicate on.
func shiftIdentity(date, start, end time.Time, title string) string {
	return fmt.Sprintf("%s|%d|%d|%s", date.Format("2006-01-02"), start.Unix(), end.Unix(), title)
}
