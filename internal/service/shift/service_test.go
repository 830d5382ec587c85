package shift

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/pattern"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID    = "0198c2f3-2f37-7d91-a2c5-17b02a01f1cd"
	testPatternID = "0198c2f3-4a61-7e02-b911-5a3f9cd4e210"
)

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
}

func (r *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	s.ID = uuid.NewString()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.shifts[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) CreateBatch(ctx context.Context, shifts []shift.Shift) ([]shift.Shift, error) {
	created := make([]shift.Shift, 0, len(shifts))
	for _, s := range shifts {
		row, err := r.Create(ctx, s)
		if err != nil {
			return nil, err
		}
		created = append(created, row)
	}
	return created, nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id string, userID string) (shift.Shift, error) {
	s, ok := r.shifts[id]
	if !ok || s.UserID != userID {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.UserID == userID && !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) ListByPattern(ctx context.Context, userID string, patternID string, from, to time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.UserID != userID || s.PatternID == nil || *s.PatternID != patternID {
			continue
		}
		if !s.Date.Before(from) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) error {
	if _, ok := r.shifts[s.ID]; !ok {
		return shift.ErrShiftNotFound
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *fakeShiftRepo) Delete(ctx context.Context, id string, userID string) error {
	s, ok := r.shifts[id]
	if !ok || s.UserID != userID {
		return shift.ErrShiftNotFound
	}
	delete(r.shifts, id)
	return nil
}

type fakePatternRepo struct {
	patterns map[string]pattern.Pattern
}

func (r *fakePatternRepo) Create(ctx context.Context, p pattern.Pattern) (pattern.Pattern, error) {
	r.patterns[p.ID] = p
	return p, nil
}

func (r *fakePatternRepo) GetByID(ctx context.Context, id string, userID string) (pattern.Pattern, error) {
	p, ok := r.patterns[id]
	if !ok || p.UserID != userID {
		return pattern.Pattern{}, pattern.ErrPatternNotFound
	}
	return p, nil
}

func (r *fakePatternRepo) ListByUser(ctx context.Context, userID string) ([]pattern.Pattern, error) {
	var out []pattern.Pattern
	for _, p := range r.patterns {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePatternRepo) ListAutoExtend(ctx context.Context) ([]pattern.Pattern, error) {
	var out []pattern.Pattern
	for _, p := range r.patterns {
		if p.AutoExtend {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePatternRepo) Update(ctx context.Context, p pattern.Pattern) error {
	r.patterns[p.ID] = p
	return nil
}

func (r *fakePatternRepo) Delete(ctx context.Context, id string, userID string) error {
	delete(r.patterns, id)
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func weeklyMonWedPattern() pattern.Pattern {
	return pattern.Pattern{
		ID:               testPatternID,
		UserID:           testUserID,
		Name:             "Office days",
		Kind:             pattern.KindWeekly,
		StartMinuteOfDay: 540, // 09:00
		DurationMinutes:  480,
		Weekdays:         []time.Weekday{time.Monday, time.Wednesday},
		Timezone:         "UTC",
	}
}

func newTestService(p pattern.Pattern) (shift.Service, *fakeShiftRepo) {
	shiftRepo := newFakeShiftRepo()
	patternRepo := &fakePatternRepo{patterns: map[string]pattern.Pattern{p.ID: p}}
	return NewShiftService(shiftRepo, patternRepo), shiftRepo
}

func TestGenerateMaterializesPatternOccurrences(t *testing.T) {
	svc, repo := newTestService(weeklyMonWedPattern())
	ctx := authedContext(t, testUserID)

	// 2026-01-05 is a Monday; two full weeks hold 2 Mondays and 2 Wednesdays.
	resp, err := svc.Generate(ctx, shift.GenerateRequest{
		PatternID: testPatternID,
		FromDate:  "2026-01-05",
		ToDate:    "2026-01-18",
	})
	require.NoError(t, err)

	assert.Len(t, resp.Created, 4)
	assert.Equal(t, 0, resp.Skipped)
	assert.Len(t, repo.shifts, 4)
	for _, created := range resp.Created {
		require.NotNil(t, created.PatternID)
		assert.Equal(t, testPatternID, *created.PatternID)
		assert.Equal(t, string(shift.StatusScheduled), created.Status)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	svc, repo := newTestService(weeklyMonWedPattern())
	ctx := authedContext(t, testUserID)

	req := shift.GenerateRequest{
		PatternID: testPatternID,
		FromDate:  "2026-01-05",
		ToDate:    "2026-01-18",
	}

	first, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	require.Len(t, first.Created, 4)

	second, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, 4, second.Skipped)
	assert.Len(t, repo.shifts, 4)
}

func TestGenerateOverlappingWindowAddsOnlyTheTail(t *testing.T) {
	svc, repo := newTestService(weeklyMonWedPattern())
	ctx := authedContext(t, testUserID)

	_, err := svc.Generate(ctx, shift.GenerateRequest{
		PatternID: testPatternID,
		FromDate:  "2026-01-05",
		ToDate:    "2026-01-11",
	})
	require.NoError(t, err)
	require.Len(t, repo.shifts, 2)

	resp, err := svc.Generate(ctx, shift.GenerateRequest{
		PatternID: testPatternID,
		FromDate:  "2026-01-05",
		ToDate:    "2026-01-18",
	})
	require.NoError(t, err)

	assert.Len(t, resp.Created, 2)
	assert.Equal(t, 2, resp.Skipped)
	assert.Len(t, repo.shifts, 4)
}

func TestGenerateRejectsForeignPattern(t *testing.T) {
	svc, _ := newTestService(weeklyMonWedPattern())
	ctx := authedContext(t, "0198c2f3-9999-7aaa-b111-5a3f9cd4e210")

	_, err := svc.Generate(ctx, shift.GenerateRequest{
		PatternID: testPatternID,
		FromDate:  "2026-01-05",
		ToDate:    "2026-01-18",
	})
	assert.ErrorIs(t, err, shift.ErrPatternNotFound)
}

func TestTransitionFollowsStatusRules(t *testing.T) {
	svc, repo := newTestService(weeklyMonWedPattern())
	ctx := authedContext(t, testUserID)

	created, err := repo.Create(ctx, shift.Shift{
		UserID:         testUserID,
		Date:           time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		ScheduledStart: time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		ScheduledEnd:   time.Date(2026, time.January, 5, 17, 0, 0, 0, time.UTC),
		Title:          "Office days",
		Status:         shift.StatusScheduled,
	})
	require.NoError(t, err)

	// scheduled -> completed is allowed.
	resp, err := svc.Transition(ctx, shift.TransitionRequest{ID: created.ID, Status: string(shift.StatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, string(shift.StatusCompleted), resp.Status)

	// completed is terminal.
	_, err = svc.Transition(ctx, shift.TransitionRequest{ID: created.ID, Status: string(shift.StatusInProgress)})
	assert.ErrorIs(t, err, shift.ErrInvalidTransition)
}

func TestUpdateRecordsActualTimes(t *testing.T) {
	svc, repo := newTestService(weeklyMonWedPattern())
	ctx := authedContext(t, testUserID)

	created, err := repo.Create(ctx, shift.Shift{
		UserID:         testUserID,
		Date:           time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		ScheduledStart: time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		ScheduledEnd:   time.Date(2026, time.January, 5, 17, 0, 0, 0, time.UTC),
		Title:          "Office days",
		Status:         shift.StatusScheduled,
	})
	require.NoError(t, err)

	actualStart := "2026-01-05T09:12:00Z"
	actualEnd := "2026-01-05T17:31:00Z"
	breakMinutes := 45
	resp, err := svc.Update(ctx, shift.UpdateShiftRequest{
		ID:           created.ID,
		ActualStart:  &actualStart,
		ActualEnd:    &actualEnd,
		BreakMinutes: &breakMinutes,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ActualStart)
	assert.Equal(t, actualStart, *resp.ActualStart)
	require.NotNil(t, resp.ActualEnd)
	assert.Equal(t, actualEnd, *resp.ActualEnd)
	require.NotNil(t, resp.BreakMinutes)
	assert.Equal(t, 45, *resp.BreakMinutes)

	// Scheduled span stays untouched.
	stored := repo.shifts[created.ID]
	assert.Equal(t, created.ScheduledStart, stored.ScheduledStart)
	assert.Equal(t, created.ScheduledEnd, stored.ScheduledEnd)
}
