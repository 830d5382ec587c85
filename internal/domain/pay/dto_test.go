package pay

import (
	"testing"

	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func ruleFields(t *testing.T, err error) []string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestCreateRulesetRequestValidatesRules(t *testing.T) {
	cases := []struct {
		name string
		rule RateRulePayload
	}{
		{"empty label", RateRulePayload{Label: "", Multiplier: "1.5"}},
		{"zero multiplier", RateRulePayload{Label: "Night", Multiplier: "0"}},
		{"garbage multiplier", RateRulePayload{Label: "Night", Multiplier: "fast"}},
		{"half window", RateRulePayload{Label: "Night", Multiplier: "1.3", StartMinuteOfDay: intPtr(1320)}},
		{"window out of range", RateRulePayload{Label: "Night", Multiplier: "1.3", StartMinuteOfDay: intPtr(1320), EndMinuteOfDay: intPtr(1440)}},
		{"bad weekday", RateRulePayload{Label: "Weekend", Multiplier: "1.5", Weekdays: []int{7}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := CreateRulesetRequest{
				Name:          "Default",
				BaseRateCents: int64Ptr(2000),
				Rules:         []RateRulePayload{tc.rule},
			}
			assert.Contains(t, ruleFields(t, req.Validate()), "rules")
		})
	}
}

func TestUpdateRulesetRequestValidatesRules(t *testing.T) {
	req := UpdateRulesetRequest{
		ID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Name:  strPtr("Updated"),
		Rules: []RateRulePayload{{Label: "Night", Multiplier: "-1"}},
	}
	assert.Contains(t, ruleFields(t, req.Validate()), "rules")

	req.Rules = []RateRulePayload{{Label: "Night", Multiplier: "1.3", EndMinuteOfDay: intPtr(360)}}
	assert.Contains(t, ruleFields(t, req.Validate()), "rules")

	req.Rules = []RateRulePayload{{Label: "Night", Multiplier: "1.3", StartMinuteOfDay: intPtr(1320), EndMinuteOfDay: intPtr(360)}}
	assert.NoError(t, req.Validate())
}
