package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Lifecycle: Admin Operations ---

// AddVerifier appends verifierID to the authorized roster. Admin only.
func (s *AgriProofSmartContract) AddVerifier(ctx contractapi.TransactionContextInterface, verifierID string) error {
	callerID, err := s.getCallerID(ctx)
	if err != nil {
		return fmt.Errorf("AddVerifier: failed to get caller identity: %w", err)
	}

	rm := NewRosterManager(ctx)
	if err := rm.RequireAdmin(callerID); err != nil {
		return fmt.Errorf("AddVerifier: %w", err)
	}
	if err := s.validateRequiredString(verifierID, "verifierID", maxStringInputLength); err != nil {
		return fmt.Errorf("AddVerifier: %w", err)
	}

	if err := rm.AddVerifier(verifierID); err != nil {
		return fmt.Errorf("AddVerifier: %w", err)
	}

	s.emitRegistryEvent(ctx, "VerifierAdded", map[string]interface{}{
		"verifier": verifierID,
	})
	logger.Infof("Verifier '%s' added by admin '%s'", verifierID, callerID)
	return nil
}

// RemoveVerifier removes verifierID from the authorized roster. Admin only.
func (s *AgriProofSmartContract) RemoveVerifier(ctx contractapi.TransactionContextInterface, verifierID string) error {
	callerID, err := s.getCallerID(ctx)
	if err != nil {
		return fmt.Errorf("RemoveVerifier: failed to get caller identity: %w", err)
	}

	rm := NewRosterManager(ctx)
	if err := rm.RequireAdmin(callerID); err != nil {
		return fmt.Errorf("RemoveVerifier: %w", err)
	}
	if err := s.validateRequiredString(verifierID, "verifierID", maxStringInputLength); err != nil {
		return fmt.Errorf("RemoveVerifier: %w", err)
	}

	if err := rm.RemoveVerifier(verifierID); err != nil {
		return fmt.Errorf("RemoveVerifier: %w", err)
	}

	s.emitRegistryEvent(ctx, "VerifierRemoved", map[string]interface{}{
		"verifier": verifierID,
	})
	logger.Infof("Verifier '%s' removed by admin '%s'", verifierID, callerID)
	return nil
}
