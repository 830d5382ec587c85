package pay

import "errors"

var (
	ErrRulesetNotFound    = errors.New("pay ruleset not found")
	ErrRulesetNameExists  = errors.New("pay ruleset with this name already exists")
	ErrMissingAnchorDate  = errors.New("biweekly periods require an anchor date")
	ErrInvalidRequestData = errors.New("invalid request data")
)
