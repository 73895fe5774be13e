// Package password implements the client-side strength check and the
// pre-submit validation shared by the change-password and reset-confirm
// flows. It is a UX aid only: the server remains the authority and may
// reject passwords this check accepts.
package password

import (
	"strings"
	"unicode"
)

// Strength is the coarse label derived from the violation count.
type Strength string

const (
	StrengthStrong Strength = "strong"
	StrengthMedium Strength = "medium"
	StrengthWeak   Strength = "weak"
)

// symbols is the fixed punctuation set the symbol predicate accepts.
const symbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Violation messages, one per predicate, in evaluation order.
const (
	msgLength = "Password must be at least 8 characters long"
	msgUpper  = "Password must contain an uppercase letter"
	msgLower  = "Password must contain a lowercase letter"
	msgDigit  = "Password must contain a digit"
	msgSymbol = "Password must contain a symbol"
)

// CheckResult is the outcome of evaluating a candidate password.
type CheckResult struct {
	Valid      bool
	Strength   Strength
	Violations []string
}

// Check evaluates the five strength predicates in fixed order: length >= 8,
// uppercase, lowercase, digit, symbol. Strength is strong with zero
// violations, medium with one or two, weak with three or more.
func Check(candidate string) CheckResult {
	var violations []string

	if len(candidate) < 8 {
		violations = append(violations, msgLength)
	}
	if !containsFunc(candidate, unicode.IsUpper) {
		violations = append(violations, msgUpper)
	}
	if !containsFunc(candidate, unicode.IsLower) {
		violations = append(violations, msgLower)
	}
	if !containsFunc(candidate, unicode.IsDigit) {
		violations = append(violations, msgDigit)
	}
	if !strings.ContainsAny(candidate, symbols) {
		violations = append(violations, msgSymbol)
	}

	strength := StrengthStrong
	switch {
	case len(violations) >= 3:
		strength = StrengthWeak
	case len(violations) >= 1:
		strength = StrengthMedium
	}

	return CheckResult{
		Valid:      len(violations) == 0,
		Strength:   strength,
		Violations: violations,
	}
}

func containsFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if f(r) {
			return true
		}
	}
	return false
}

// FieldErrors maps a field name to its validation message. Keys use the
// API's wire names so errors render beside the offending input.
type FieldErrors map[string]string

// ChangeRequest is the change-password form: all checks run client-side
// before any network call.
type ChangeRequest struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Validate returns the field-scoped violations, or an empty map when the
// request may be submitted.
func (r ChangeRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.CurrentPassword == "" {
		errs["current_password"] = "Current password is required"
	}

	switch {
	case r.NewPassword == "":
		errs["new_password"] = "New password is required"
	default:
		if result := Check(r.NewPassword); !result.Valid {
			errs["new_password"] = result.Violations[0]
		}
	}

	switch {
	case r.ConfirmPassword == "":
		errs["confirm_password"] = "Please confirm your new password"
	case r.NewPassword != r.ConfirmPassword:
		errs["confirm_password"] = "Passwords do not match"
	}

	// The "must differ" rule wins over a strength violation on the same field.
	if r.CurrentPassword != "" && r.NewPassword != "" && r.CurrentPassword == r.NewPassword {
		errs["new_password"] = "New password must be different from current password"
	}

	return errs
}

// ResetConfirm is the reset-confirmation form: the same rules as
// ChangeRequest minus the current-password check, since there is none.
type ResetConfirm struct {
	NewPassword     string
	ConfirmPassword string
}

// Validate returns the field-scoped violations, or an empty map when the
// request may be submitted.
func (r ResetConfirm) Validate() FieldErrors {
	errs := FieldErrors{}

	switch {
	case r.NewPassword == "":
		errs["new_password"] = "New password is required"
	default:
		if result := Check(r.NewPassword); !result.Valid {
			errs["new_password"] = result.Violations[0]
		}
	}

	switch {
	case r.ConfirmPassword == "":
		errs["confirm_password"] = "Please confirm your new password"
	case r.NewPassword != r.ConfirmPassword:
		errs["confirm_password"] = "Passwords do not match"
	}

	return errs
}

// Err joins field errors into a single error-like message, current first,
// for surfaces that cannot render per-field.
func (f FieldErrors) Err() string {
	order := []string{"current_password", "new_password", "confirm_password"}
	var parts []string
	for _, name := range order {
		if msg, ok := f[name]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}
