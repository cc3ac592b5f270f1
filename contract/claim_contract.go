package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("agriproof.claimcontract")

// AgriProofSmartContract manages farmer enrollments, damage claims, and the
// verifier roster, with role-based access control. Failed preconditions abort
// the whole call: the peer discards every write of a transaction whose
// chaincode function returns an error, so no partial effects survive.
// @contract:AgriProofSmartContract
type AgriProofSmartContract struct {
	contractapi.Contract
}

// Instantiate is called during chaincode instantiation.
func (s *AgriProofSmartContract) Instantiate(ctx contractapi.TransactionContextInterface) {
	logger.Info("AgriProofSmartContract Instantiated/Upgraded")
}

// CreateRegistry initializes the registry, pinning the caller as the singleton
// admin. The admin is set exactly once and never reassigned; a second call
// always fails.
func (s *AgriProofSmartContract) CreateRegistry(ctx contractapi.TransactionContextInterface) error {
	callerID, err := s.getCallerID(ctx)
	if err != nil {
		return fmt.Errorf("CreateRegistry: failed to get caller identity: %w", err)
	}

	rm := NewRosterManager(ctx)
	if err := rm.SetAdmin(callerID); err != nil {
		return fmt.Errorf("CreateRegistry: %w", err)
	}

	s.emitRegistryEvent(ctx, "RegistryCreated", map[string]interface{}{
		"admin": callerID,
	})
	logger.Infof("Registry created; admin is '%s'", callerID)
	return nil
}
