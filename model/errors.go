package model

import "errors"

// Registry failure taxonomy. Operations wrap these with call context via
// fmt.Errorf("...: %w", ...); callers match them with errors.Is.
var (
	// Registry lifecycle
	ErrRegistryExists     = errors.New("registry already created")
	ErrRegistryNotCreated = errors.New("registry has not been created")

	// Authorization
	ErrNotAdmin    = errors.New("caller is not the admin")
	ErrNotVerifier = errors.New("caller is not an authorized verifier")

	// Enrollment
	ErrInvalidDeadline    = errors.New("deadline days must be greater than zero")
	ErrAlreadyEnrolled    = errors.New("farmer is already enrolled")
	ErrNotEnrolled        = errors.New("farmer is not enrolled")
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// Claims
	ErrInvalidProofHash = errors.New("proof hash cannot be empty")
	ErrDeadlinePassed   = errors.New("claim deadline has passed")
	ErrDuplicateClaim   = errors.New("farmer already has a claim")
	ErrClaimNotFound    = errors.New("claim not found")
	ErrClaimNotPending  = errors.New("claim is not pending")

	// Verifier roster
	ErrVerifierExists   = errors.New("verifier already in roster")
	ErrVerifierNotFound = errors.New("verifier not in roster")
)
