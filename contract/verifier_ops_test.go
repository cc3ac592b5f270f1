package contract

import (
	"testing"

	"agriproof/model"

	"github.com/stretchr/testify/require"
)

// pendingClaim sets up an enrolled farmer with a pending claim submitted at
// t0+1 and idVerifier on the roster.
func pendingClaim(t *testing.T) *registryHarness {
	t.Helper()
	h := enrolledFarmer(t)
	h.at(t0 + 1)
	require.NoError(t, h.contract.SubmitClaim(h.as(idFarmerA), "hash1"))
	require.NoError(t, h.contract.AddVerifier(h.as(idAdmin), idVerifier))
	return h
}

func TestVerifyClaimApproves(t *testing.T) {
	h := pendingClaim(t)
	t2 := t0 + 7200
	h.at(t2)

	require.NoError(t, h.contract.VerifyClaim(h.as(idVerifier), idFarmerA, true))

	claim, err := h.contract.GetClaim(h.as(idFarmerB), idFarmerA)
	require.NoError(t, err)
	require.Equal(t, model.ClaimStatusApproved, claim.Status)
	require.Equal(t, idVerifier, claim.VerifierID)
	require.Equal(t, t2, claim.VerificationTimestamp)
	// Submission fields carry over untouched.
	require.Equal(t, "hash1", claim.ProofHash)
	require.Equal(t, t0+1, claim.SubmissionTimestamp)

	event := h.lastEvent(t, "ClaimVerified")
	require.Equal(t, idFarmerA, event["farmer"])
	require.Equal(t, string(model.ClaimStatusApproved), event["status"])
	require.Equal(t, idVerifier, event["verifier"])
}

func TestVerifyClaimRejects(t *testing.T) {
	h := pendingClaim(t)
	h.at(t0 + 7200)

	require.NoError(t, h.contract.VerifyClaim(h.as(idVerifier), idFarmerA, false))

	claim, err := h.contract.GetClaim(h.as(idFarmerA), idFarmerA)
	require.NoError(t, err)
	require.Equal(t, model.ClaimStatusRejected, claim.Status)
	require.Equal(t, idVerifier, claim.VerifierID)
}

func TestVerifyClaimIsOneShot(t *testing.T) {
	h := pendingClaim(t)
	t2 := t0 + 7200
	h.at(t2)
	require.NoError(t, h.contract.VerifyClaim(h.as(idVerifier), idFarmerA, true))

	// The second decision fails whatever the new verdict is, and the record
	// keeps the first decision.
	h.at(t2 + 60)
	err := h.contract.VerifyClaim(h.as(idVerifier), idFarmerA, false)
	require.ErrorIs(t, err, model.ErrClaimNotPending)

	claim, err := h.contract.GetClaim(h.as(idFarmerA), idFarmerA)
	require.NoError(t, err)
	require.Equal(t, model.ClaimStatusApproved, claim.Status)
	require.Equal(t, t2, claim.VerificationTimestamp)
}

func TestVerifyClaimRequiresVerifierRole(t *testing.T) {
	h := pendingClaim(t)
	h.at(t0 + 7200)

	// Admin status does not imply verifier status.
	err := h.contract.VerifyClaim(h.as(idAdmin), idFarmerA, true)
	require.ErrorIs(t, err, model.ErrNotVerifier)

	err = h.contract.VerifyClaim(h.as(idFarmerB), idFarmerA, true)
	require.ErrorIs(t, err, model.ErrNotVerifier)
}

func TestRemovedVerifierCannotDecide(t *testing.T) {
	h := pendingClaim(t)
	require.NoError(t, h.contract.RemoveVerifier(h.as(idAdmin), idVerifier))

	h.at(t0 + 7200)
	err := h.contract.VerifyClaim(h.as(idVerifier), idFarmerA, true)
	require.ErrorIs(t, err, model.ErrNotVerifier)
}

func TestVerifyClaimWithoutClaimFails(t *testing.T) {
	h := createdRegistry(t)
	require.NoError(t, h.contract.AddVerifier(h.as(idAdmin), idVerifier))

	err := h.contract.VerifyClaim(h.as(idVerifier), idFarmerA, true)
	require.ErrorIs(t, err, model.ErrClaimNotFound)
}
