package service

import "bizdesk-backend/internal/domain"

// ConfirmationGuard gates irreversible deletes behind a typed confirmation.
// It is an intentional friction step, not a security boundary: the caller is
// already authorized, the guard only prevents accidents.
type ConfirmationGuard struct{}

func NewConfirmationGuard() ConfirmationGuard {
	return ConfirmationGuard{}
}

// Authorize succeeds iff supplied is byte-equal to expected. Absent input is
// an ordinary mismatch, never a panic.
func (ConfirmationGuard) Authorize(expected, supplied string) error {
	if expected == "" || supplied != expected {
		return domain.ErrConfirmationMismatch
	}
	return nil
}
