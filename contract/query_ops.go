package contract

import (
	"encoding/json"
	"fmt"

	"agriproof/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Query Functions ---

// getClaimByFarmerID is an internal helper to retrieve and unmarshal a claim.
func (s *AgriProofSmartContract) getClaimByFarmerID(ctx contractapi.TransactionContextInterface, farmerID string) (*model.Claim, error) {
	claimKey, err := s.createClaimKey(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("getClaimByFarmerID: failed to create key for '%s': %w", farmerID, err)
	}
	claimBytes, err := ctx.GetStub().GetState(claimKey)
	if err != nil {
		return nil, fmt.Errorf("getClaimByFarmerID: failed to read claim for '%s': %w", farmerID, err)
	}
	if claimBytes == nil {
		return nil, fmt.Errorf("farmer '%s': %w", farmerID, model.ErrClaimNotFound)
	}
	var claim model.Claim
	if err := json.Unmarshal(claimBytes, &claim); err != nil {
		return nil, fmt.Errorf("getClaimByFarmerID: failed to unmarshal claim for '%s': %w", farmerID, err)
	}
	return &claim, nil
}

// GetClaim returns the claim record for a farmer, unchanged. Read-only.
func (s *AgriProofSmartContract) GetClaim(ctx contractapi.TransactionContextInterface, farmerID string) (*model.ClaimDetails, error) {
	logger.Debugf("GetClaim: querying claim for farmer '%s'", farmerID)
	if err := s.validateRequiredString(farmerID, "farmerID", maxStringInputLength); err != nil {
		return nil, fmt.Errorf("GetClaim: %w", err)
	}
	claim, err := s.getClaimByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("GetClaim: %w", err)
	}
	return &model.ClaimDetails{
		FarmerID:              farmerID,
		ProofHash:             claim.ProofHash,
		Status:                claim.Status,
		SubmissionTimestamp:   claim.SubmissionTimestamp,
		VerifierID:            claim.VerifierID,
		VerificationTimestamp: claim.VerificationTimestamp,
	}, nil
}

// GetEnrollment returns the enrollment record for a farmer, unchanged.
// Read-only.
func (s *AgriProofSmartContract) GetEnrollment(ctx contractapi.TransactionContextInterface, farmerID string) (*model.EnrollmentDetails, error) {
	logger.Debugf("GetEnrollment: querying enrollment for farmer '%s'", farmerID)
	if err := s.validateRequiredString(farmerID, "farmerID", maxStringInputLength); err != nil {
		return nil, fmt.Errorf("GetEnrollment: %w", err)
	}
	enrollmentKey, err := s.createEnrollmentKey(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("GetEnrollment: failed to create key for '%s': %w", farmerID, err)
	}
	enrollmentBytes, err := ctx.GetStub().GetState(enrollmentKey)
	if err != nil {
		return nil, fmt.Errorf("GetEnrollment: failed to read enrollment for '%s': %w", farmerID, err)
	}
	if enrollmentBytes == nil {
		return nil, fmt.Errorf("GetEnrollment: farmer '%s': %w", farmerID, model.ErrEnrollmentNotFound)
	}
	var enrollment model.Enrollment
	if err := json.Unmarshal(enrollmentBytes, &enrollment); err != nil {
		return nil, fmt.Errorf("GetEnrollment: failed to unmarshal enrollment for '%s': %w", farmerID, err)
	}
	return &model.EnrollmentDetails{
		FarmerID:            farmerID,
		EnrollmentTimestamp: enrollment.EnrollmentTimestamp,
		ClaimDeadline:       enrollment.ClaimDeadline,
	}, nil
}

// IsVerifier reports whether an identity is currently an authorized verifier.
func (s *AgriProofSmartContract) IsVerifier(ctx contractapi.TransactionContextInterface, identity string) (bool, error) {
	logger.Debugf("IsVerifier: querying roster membership of '%s'", identity)
	if err := s.validateRequiredString(identity, "identity", maxStringInputLength); err != nil {
		return false, fmt.Errorf("IsVerifier: %w", err)
	}
	return NewRosterManager(ctx).IsVerifier(identity)
}

// GetAdmin returns the singleton admin identity.
func (s *AgriProofSmartContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	logger.Debug("GetAdmin: querying registry admin")
	admin, err := NewRosterManager(ctx).GetAdmin()
	if err != nil {
		return "", fmt.Errorf("GetAdmin: %w", err)
	}
	return admin, nil
}
