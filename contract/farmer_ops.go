package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"agriproof/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Lifecycle: Farmer Operations ---

// EnrollFarmer enrolls the caller with a claim deadline of deadlineDays days
// from the current ledger time. Enrollment is permanent and one-shot per
// identity: there is no update, cancellation, or re-enrollment path.
func (s *AgriProofSmartContract) EnrollFarmer(ctx contractapi.TransactionContextInterface, deadlineDays uint64) error {
	callerID, err := s.getCallerID(ctx)
	if err != nil {
		return fmt.Errorf("EnrollFarmer: failed to get caller identity: %w", err)
	}

	logger.Infof("Farmer '%s' enrolling with deadline of %d days", callerID, deadlineDays)

	if deadlineDays == 0 {
		return fmt.Errorf("EnrollFarmer: %w", model.ErrInvalidDeadline)
	}

	enrollmentKey, err := s.createEnrollmentKey(ctx, callerID)
	if err != nil {
		return fmt.Errorf("EnrollFarmer: failed to create enrollment key: %w", err)
	}
	existing, err := ctx.GetStub().GetState(enrollmentKey)
	if err != nil {
		return fmt.Errorf("EnrollFarmer: failed to check for existing enrollment: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("EnrollFarmer: farmer '%s': %w", callerID, model.ErrAlreadyEnrolled)
	}

	now, err := s.getCurrentTxTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("EnrollFarmer: %w", err)
	}

	enrollment := model.Enrollment{
		EnrollmentTimestamp: now,
		ClaimDeadline:       now + int64(deadlineDays)*secondsPerDay,
	}
	enrollmentBytes, err := json.Marshal(enrollment)
	if err != nil {
		return fmt.Errorf("EnrollFarmer: failed to marshal enrollment for '%s': %w", callerID, err)
	}
	if err := ctx.GetStub().PutState(enrollmentKey, enrollmentBytes); err != nil {
		return fmt.Errorf("EnrollFarmer: failed to save enrollment for '%s': %w", callerID, err)
	}

	s.emitRegistryEvent(ctx, "FarmerEnrolled", map[string]interface{}{
		"farmer":        callerID,
		"claimDeadline": enrollment.ClaimDeadline,
	})
	logger.Infof("Farmer '%s' enrolled; claim deadline %d", callerID, enrollment.ClaimDeadline)
	return nil
}

// SubmitClaim records the caller's single damage claim. The claim must arrive
// before the enrollment deadline, and a prior claim of any status blocks
// resubmission permanently.
func (s *AgriProofSmartContract) SubmitClaim(ctx contractapi.TransactionContextInterface, proofHash string) error {
	callerID, err := s.getCallerID(ctx)
	if err != nil {
		return fmt.Errorf("SubmitClaim: failed to get caller identity: %w", err)
	}

	logger.Infof("Farmer '%s' submitting claim", callerID)

	if strings.TrimSpace(proofHash) == "" {
		return fmt.Errorf("SubmitClaim: %w", model.ErrInvalidProofHash)
	}
	if len(proofHash) > maxProofHashLength {
		return fmt.Errorf("SubmitClaim: proofHash exceeds max length %d", maxProofHashLength)
	}

	enrollmentKey, err := s.createEnrollmentKey(ctx, callerID)
	if err != nil {
		return fmt.Errorf("SubmitClaim: failed to create enrollment key: %w", err)
	}
	enrollmentBytes, err := ctx.GetStub().GetState(enrollmentKey)
	if err != nil {
		return fmt.Errorf("SubmitClaim: failed to read enrollment for '%s': %w", callerID, err)
	}
	if enrollmentBytes == nil {
		return fmt.Errorf("SubmitClaim: farmer '%s': %w", callerID, model.ErrNotEnrolled)
	}
	var enrollment model.Enrollment
	if err := json.Unmarshal(enrollmentBytes, &enrollment); err != nil {
		return fmt.Errorf("SubmitClaim: failed to unmarshal enrollment for '%s': %w", callerID, err)
	}

	now, err := s.getCurrentTxTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("SubmitClaim: %w", err)
	}
	if now >= enrollment.ClaimDeadline {
		return fmt.Errorf("SubmitClaim: deadline was %d, now is %d: %w", enrollment.ClaimDeadline, now, model.ErrDeadlinePassed)
	}

	claimKey, err := s.createClaimKey(ctx, callerID)
	if err != nil {
		return fmt.Errorf("SubmitClaim: failed to create claim key: %w", err)
	}
	existingClaim, err := ctx.GetStub().GetState(claimKey)
	if err != nil {
		return fmt.Errorf("SubmitClaim: failed to check for existing claim: %w", err)
	}
	if existingClaim != nil {
		return fmt.Errorf("SubmitClaim: farmer '%s': %w", callerID, model.ErrDuplicateClaim)
	}

	claim := model.Claim{
		ProofHash:           proofHash,
		Status:              model.ClaimStatusPending,
		SubmissionTimestamp: now,
	}
	claimBytes, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("SubmitClaim: failed to marshal claim for '%s': %w", callerID, err)
	}
	if err := ctx.GetStub().PutState(claimKey, claimBytes); err != nil {
		return fmt.Errorf("SubmitClaim: failed to save claim for '%s': %w", callerID, err)
	}

	s.emitRegistryEvent(ctx, "ClaimSubmitted", map[string]interface{}{
		"farmer":              callerID,
		"proofHash":           proofHash,
		"submissionTimestamp": now,
	})
	logger.Infof("Claim submitted by farmer '%s' at %d", callerID, now)
	return nil
}
