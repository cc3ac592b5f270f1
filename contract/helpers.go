package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Object types for composite keys, also usable as 'docType' in CouchDB.
const (
	enrollmentObjectType = "Enrollment" // One record per farmer. Attribute: FullID.
	claimObjectType      = "Claim"      // One record per farmer, ever. Attribute: FullID.
)

// Constants for input validation and deadline arithmetic.
const (
	maxStringInputLength = 256
	maxProofHashLength   = 512
	secondsPerDay        = 86400
)

// getCurrentTxTimestamp retrieves ledger time from the stub, in unix seconds.
// All deadline arithmetic runs on this value.
func (s *AgriProofSmartContract) getCurrentTxTimestamp(ctx contractapi.TransactionContextInterface) (int64, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.GetSeconds(), nil
}

// getCallerID retrieves the full X.509 ID of the current transactor.
func (s *AgriProofSmartContract) getCallerID(ctx contractapi.TransactionContextInterface) (string, error) {
	clientIdentity := ctx.GetClientIdentity()
	if clientIdentity == nil {
		return "", errors.New("client identity is nil from context")
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		return "", fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" {
		return "", errors.New("client identity ID from context is empty")
	}
	return id, nil
}

// --- Key Creation Helpers (using Composite Keys) ---

func (s *AgriProofSmartContract) createEnrollmentKey(ctx contractapi.TransactionContextInterface, farmerID string) (string, error) {
	farmerID = strings.TrimSpace(farmerID)
	if farmerID == "" {
		return "", errors.New("farmerID cannot be empty")
	}
	return ctx.GetStub().CreateCompositeKey(enrollmentObjectType, []string{farmerID})
}

func (s *AgriProofSmartContract) createClaimKey(ctx contractapi.TransactionContextInterface, farmerID string) (string, error) {
	farmerID = strings.TrimSpace(farmerID)
	if farmerID == "" {
		return "", errors.New("farmerID cannot be empty")
	}
	return ctx.GetStub().CreateCompositeKey(claimObjectType, []string{farmerID})
}

// --- Validation Helpers ---

func (s *AgriProofSmartContract) validateRequiredString(input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if len(input) > max {
		return fmt.Errorf("%s exceeds max length %d", field, max)
	}
	return nil
}

// emitRegistryEvent sends a chaincode event. Emission is best effort: the
// notification channel is observational only and never fails the call.
func (s *AgriProofSmartContract) emitRegistryEvent(ctx contractapi.TransactionContextInterface, eventName string, payload map[string]interface{}) {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Warningf("emitRegistryEvent: Failed to marshal payload for event '%s': %v", eventName, err)
		return
	}
	if errSet := ctx.GetStub().SetEvent(eventName, eventBytes); errSet != nil {
		logger.Warningf("emitRegistryEvent: Failed to set event '%s': %v", eventName, errSet)
	}
}
