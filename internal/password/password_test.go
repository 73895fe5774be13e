package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	t.Run("strong password passes every predicate", func(t *testing.T) {
		result := Check("Abcdef1!")
		assert.True(t, result.Valid)
		assert.Equal(t, StrengthStrong, result.Strength)
		assert.Empty(t, result.Violations)
	})

	t.Run("short password without digits", func(t *testing.T) {
		result := Check("Abcde!")
		assert.False(t, result.Valid)
		assert.Equal(t, StrengthMedium, result.Strength)
		// Exactly the failing predicates, in fixed order.
		assert.Equal(t, []string{
			"Password must be at least 8 characters long",
			"Password must contain a digit",
		}, result.Violations)
	})

	t.Run("violations follow the fixed predicate order", func(t *testing.T) {
		result := Check("abc")
		assert.False(t, result.Valid)
		assert.Equal(t, StrengthWeak, result.Strength)
		assert.Equal(t, []string{
			"Password must be at least 8 characters long",
			"Password must contain an uppercase letter",
			"Password must contain a digit",
			"Password must contain a symbol",
		}, result.Violations)
	})

	t.Run("one or two violations is medium", func(t *testing.T) {
		result := Check("abcdefg1!") // missing uppercase only
		assert.False(t, result.Valid)
		assert.Equal(t, StrengthMedium, result.Strength)
		assert.Equal(t, []string{"Password must contain an uppercase letter"}, result.Violations)

		result = Check("abcdefgh!") // missing uppercase and digit
		assert.Equal(t, StrengthMedium, result.Strength)
		assert.Len(t, result.Violations, 2)
	})

	t.Run("empty password fails everything", func(t *testing.T) {
		result := Check("")
		assert.False(t, result.Valid)
		assert.Equal(t, StrengthWeak, result.Strength)
		assert.Len(t, result.Violations, 5)
	})

	t.Run("every punctuation character counts as a symbol", func(t *testing.T) {
		for _, sym := range []string{"!", "@", "#", "~", "`", "\\", "\""} {
			result := Check("Abcdef1" + sym)
			assert.True(t, result.Valid, "symbol %q should satisfy the symbol predicate", sym)
		}
	})
}

func TestChangeRequest_Validate(t *testing.T) {
	t.Run("valid request has no field errors", func(t *testing.T) {
		errs := ChangeRequest{
			CurrentPassword: "OldPass1!",
			NewPassword:     "NewPass1!",
			ConfirmPassword: "NewPass1!",
		}.Validate()
		assert.Empty(t, errs)
	})

	t.Run("missing current password", func(t *testing.T) {
		errs := ChangeRequest{
			NewPassword:     "NewPass1!",
			ConfirmPassword: "NewPass1!",
		}.Validate()
		assert.Equal(t, "Current password is required", errs["current_password"])
	})

	t.Run("weak new password surfaces the first violation", func(t *testing.T) {
		errs := ChangeRequest{
			CurrentPassword: "OldPass1!",
			NewPassword:     "short",
			ConfirmPassword: "short",
		}.Validate()
		assert.Equal(t, "Password must be at least 8 characters long", errs["new_password"])
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		errs := ChangeRequest{
			CurrentPassword: "OldPass1!",
			NewPassword:     "NewPass1!",
			ConfirmPassword: "Different1!",
		}.Validate()
		assert.Equal(t, "Passwords do not match", errs["confirm_password"])
	})

	t.Run("new password equal to current is rejected before any network call", func(t *testing.T) {
		errs := ChangeRequest{
			CurrentPassword: "SamePass1!",
			NewPassword:     "SamePass1!",
			ConfirmPassword: "SamePass1!",
		}.Validate()
		assert.Equal(t, "New password must be different from current password", errs["new_password"])
	})

	t.Run("missing confirmation", func(t *testing.T) {
		errs := ChangeRequest{
			CurrentPassword: "OldPass1!",
			NewPassword:     "NewPass1!",
		}.Validate()
		assert.Equal(t, "Please confirm your new password", errs["confirm_password"])
	})
}

func TestResetConfirm_Validate(t *testing.T) {
	t.Run("valid request has no field errors", func(t *testing.T) {
		errs := ResetConfirm{
			NewPassword:     "NewPass1!",
			ConfirmPassword: "NewPass1!",
		}.Validate()
		assert.Empty(t, errs)
	})

	t.Run("applies the same strength and match rules as change", func(t *testing.T) {
		errs := ResetConfirm{
			NewPassword:     "weakpass",
			ConfirmPassword: "other",
		}.Validate()
		assert.Equal(t, "Password must contain an uppercase letter", errs["new_password"])
		assert.Equal(t, "Passwords do not match", errs["confirm_password"])
	})
}

func TestFieldErrors_Err(t *testing.T) {
	errs := FieldErrors{
		"confirm_password": "Passwords do not match",
		"current_password": "Current password is required",
	}
	assert.Equal(t, "Current password is required; Passwords do not match", errs.Err())
}
