package contract

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"agriproof/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var rosterLogger = flogging.MustGetLogger("agriproof.roster")

// State keys for the two singleton records the roster owns.
const (
	adminStateKey    = "agriproof.admin"
	verifierStateKey = "agriproof.verifiers"
)

// verifierEntryWidth is the fixed width of one roster entry. Full client IDs
// are variable-length X.509 strings, so the roster stores their SHA-256
// digests, which keeps the packed encoding fixed-width.
const verifierEntryWidth = sha256.Size

// RosterManager holds the singleton admin identity and the packed verifier
// roster, and gates admin-only and verifier-only operations. Admin status does
// not imply verifier status; the two roles are independent.
type RosterManager struct {
	Ctx contractapi.TransactionContextInterface
}

// NewRosterManager creates a new instance of RosterManager.
func NewRosterManager(ctx contractapi.TransactionContextInterface) *RosterManager {
	return &RosterManager{Ctx: ctx}
}

// identityDigest maps a full client ID onto a fixed-width roster entry.
func identityDigest(fullID string) []byte {
	sum := sha256.Sum256([]byte(fullID))
	return sum[:]
}

// --- Packed roster codec ---
//
// A roster blob is a concatenation of fixed-width entries. The absent storage
// key is the canonical empty roster; an empty-but-present blob is never
// written. Relative order of surviving entries is preserved across removals.

// rosterContains scans the blob in fixed-width chunks for an exact match.
func rosterContains(blob, entry []byte) bool {
	for start := 0; start+verifierEntryWidth <= len(blob); start += verifierEntryWidth {
		if bytes.Equal(blob[start:start+verifierEntryWidth], entry) {
			return true
		}
	}
	return false
}

// rosterAppend returns the blob with entry appended at the end.
func rosterAppend(blob, entry []byte) ([]byte, error) {
	if rosterContains(blob, entry) {
		return nil, model.ErrVerifierExists
	}
	out := make([]byte, 0, len(blob)+verifierEntryWidth)
	out = append(out, blob...)
	out = append(out, entry...)
	return out, nil
}

// rosterRemove returns a new blob containing every chunk not equal to entry.
// An unchanged length means no chunk matched.
func rosterRemove(blob, entry []byte) ([]byte, error) {
	out := make([]byte, 0, len(blob))
	for start := 0; start+verifierEntryWidth <= len(blob); start += verifierEntryWidth {
		chunk := blob[start : start+verifierEntryWidth]
		if !bytes.Equal(chunk, entry) {
			out = append(out, chunk...)
		}
	}
	if len(out) == len(blob) {
		return nil, model.ErrVerifierNotFound
	}
	return out, nil
}

// --- Admin singleton ---

// SetAdmin pins fullID as the registry admin. The admin is set exactly once;
// any later attempt fails.
func (rm *RosterManager) SetAdmin(fullID string) error {
	existing, err := rm.Ctx.GetStub().GetState(adminStateKey)
	if err != nil {
		return fmt.Errorf("failed to read admin record: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("admin is already '%s': %w", string(existing), model.ErrRegistryExists)
	}
	if err := rm.Ctx.GetStub().PutState(adminStateKey, []byte(fullID)); err != nil {
		return fmt.Errorf("failed to save admin record: %w", err)
	}
	rosterLogger.Infof("Registry admin set to '%s'", fullID)
	return nil
}

// GetAdmin returns the singleton admin identity.
func (rm *RosterManager) GetAdmin() (string, error) {
	adminBytes, err := rm.Ctx.GetStub().GetState(adminStateKey)
	if err != nil {
		return "", fmt.Errorf("failed to read admin record: %w", err)
	}
	if adminBytes == nil {
		return "", model.ErrRegistryNotCreated
	}
	return string(adminBytes), nil
}

// IsAdmin reports whether fullID equals the singleton admin. A registry with
// no admin yet has no admins.
func (rm *RosterManager) IsAdmin(fullID string) (bool, error) {
	admin, err := rm.GetAdmin()
	if err != nil {
		if errors.Is(err, model.ErrRegistryNotCreated) {
			return false, nil
		}
		return false, err
	}
	return admin == fullID, nil
}

// RequireAdmin fails unless fullID is the admin.
func (rm *RosterManager) RequireAdmin(fullID string) error {
	admin, err := rm.GetAdmin()
	if err != nil {
		return err
	}
	if admin != fullID {
		return fmt.Errorf("identity '%s': %w", fullID, model.ErrNotAdmin)
	}
	return nil
}

// --- Verifier roster ---

// IsVerifier reports whether fullID is currently in the roster. An absent
// roster key means no verifiers.
func (rm *RosterManager) IsVerifier(fullID string) (bool, error) {
	blob, err := rm.Ctx.GetStub().GetState(verifierStateKey)
	if err != nil {
		return false, fmt.Errorf("failed to read verifier roster: %w", err)
	}
	if blob == nil {
		return false, nil
	}
	if len(blob)%verifierEntryWidth != 0 {
		return false, fmt.Errorf("verifier roster blob length %d is not a multiple of %d", len(blob), verifierEntryWidth)
	}
	return rosterContains(blob, identityDigest(fullID)), nil
}

// AddVerifier appends fullID to the roster, creating the storage key if the
// roster was empty.
func (rm *RosterManager) AddVerifier(fullID string) error {
	blob, err := rm.Ctx.GetStub().GetState(verifierStateKey)
	if err != nil {
		return fmt.Errorf("failed to read verifier roster: %w", err)
	}
	updated, err := rosterAppend(blob, identityDigest(fullID))
	if err != nil {
		return fmt.Errorf("cannot add verifier '%s': %w", fullID, err)
	}
	if err := rm.Ctx.GetStub().PutState(verifierStateKey, updated); err != nil {
		return fmt.Errorf("failed to save verifier roster: %w", err)
	}
	rosterLogger.Infof("Verifier '%s' added to roster (%d total)", fullID, len(updated)/verifierEntryWidth)
	return nil
}

// RemoveVerifier removes fullID from the roster, deleting the storage key
// entirely when the last verifier is removed.
func (rm *RosterManager) RemoveVerifier(fullID string) error {
	blob, err := rm.Ctx.GetStub().GetState(verifierStateKey)
	if err != nil {
		return fmt.Errorf("failed to read verifier roster: %w", err)
	}
	if blob == nil {
		return fmt.Errorf("cannot remove verifier '%s' from empty roster: %w", fullID, model.ErrVerifierNotFound)
	}
	updated, err := rosterRemove(blob, identityDigest(fullID))
	if err != nil {
		return fmt.Errorf("cannot remove verifier '%s': %w", fullID, err)
	}
	if len(updated) == 0 {
		if err := rm.Ctx.GetStub().DelState(verifierStateKey); err != nil {
			return fmt.Errorf("failed to delete empty verifier roster: %w", err)
		}
		rosterLogger.Infof("Verifier '%s' removed; roster is now empty", fullID)
		return nil
	}
	if err := rm.Ctx.GetStub().PutState(verifierStateKey, updated); err != nil {
		return fmt.Errorf("failed to save verifier roster: %w", err)
	}
	rosterLogger.Infof("Verifier '%s' removed from roster (%d remaining)", fullID, len(updated)/verifierEntryWidth)
	return nil
}
