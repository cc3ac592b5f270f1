package contract

import (
	"encoding/json"
	"fmt"

	"agriproof/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Lifecycle: Verifier Operations ---

// VerifyClaim records the decision on a farmer's pending claim. PENDING is the
// only state this transition accepts; APPROVED and REJECTED are terminal, so a
// second call on the same farmer always fails regardless of the new approved
// value. This is the only mutation path for a claim record.
func (s *AgriProofSmartContract) VerifyClaim(ctx contractapi.TransactionContextInterface, farmerID string, approved bool) error {
	callerID, err := s.getCallerID(ctx)
	if err != nil {
		return fmt.Errorf("VerifyClaim: failed to get caller identity: %w", err)
	}

	logger.Infof("Verifier '%s' deciding claim of farmer '%s' (approved=%t)", callerID, farmerID, approved)

	rm := NewRosterManager(ctx)
	isVerifier, err := rm.IsVerifier(callerID)
	if err != nil {
		return fmt.Errorf("VerifyClaim: failed to check verifier status: %w", err)
	}
	if !isVerifier {
		return fmt.Errorf("VerifyClaim: identity '%s': %w", callerID, model.ErrNotVerifier)
	}

	if err := s.validateRequiredString(farmerID, "farmerID", maxStringInputLength); err != nil {
		return fmt.Errorf("VerifyClaim: %w", err)
	}

	claimKey, err := s.createClaimKey(ctx, farmerID)
	if err != nil {
		return fmt.Errorf("VerifyClaim: failed to create claim key for '%s': %w", farmerID, err)
	}
	claimBytes, err := ctx.GetStub().GetState(claimKey)
	if err != nil {
		return fmt.Errorf("VerifyClaim: failed to read claim for '%s': %w", farmerID, err)
	}
	if claimBytes == nil {
		return fmt.Errorf("VerifyClaim: farmer '%s': %w", farmerID, model.ErrClaimNotFound)
	}

	var claim model.Claim
	if err := json.Unmarshal(claimBytes, &claim); err != nil {
		return fmt.Errorf("VerifyClaim: failed to unmarshal claim for '%s': %w", farmerID, err)
	}
	if claim.Status != model.ClaimStatusPending {
		return fmt.Errorf("VerifyClaim: claim of farmer '%s' has status '%s': %w", farmerID, claim.Status, model.ErrClaimNotPending)
	}

	now, err := s.getCurrentTxTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("VerifyClaim: %w", err)
	}

	// ProofHash and SubmissionTimestamp carry over unchanged.
	if approved {
		claim.Status = model.ClaimStatusApproved
	} else {
		claim.Status = model.ClaimStatusRejected
	}
	claim.VerifierID = callerID
	claim.VerificationTimestamp = now

	updatedBytes, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("VerifyClaim: failed to marshal decided claim for '%s': %w", farmerID, err)
	}
	if err := ctx.GetStub().PutState(claimKey, updatedBytes); err != nil {
		return fmt.Errorf("VerifyClaim: failed to save decided claim for '%s': %w", farmerID, err)
	}

	s.emitRegistryEvent(ctx, "ClaimVerified", map[string]interface{}{
		"farmer":                farmerID,
		"status":                claim.Status,
		"verifier":              callerID,
		"verificationTimestamp": now,
	})
	logger.Infof("Claim of farmer '%s' decided as '%s' by verifier '%s'", farmerID, claim.Status, callerID)
	return nil
}
