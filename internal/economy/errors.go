package economy

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrTargetTooPoor     = errors.New("target_too_poor")
	ErrSelfTarget        = errors.New("self_target")
)

// CooldownError reports a claim attempted before its window elapsed.
type CooldownError struct {
	Op        string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown_active: %s ready in %s", e.Op, e.Remaining.Round(time.Second))
}

// IsCooldown extracts a CooldownError from err if present.
func IsCooldown(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
