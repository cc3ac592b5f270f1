package contract

import (
	"testing"

	"agriproof/model"

	"github.com/stretchr/testify/require"
)

func TestCreateRegistrySetsAdmin(t *testing.T) {
	h := newRegistryHarness()

	require.NoError(t, h.contract.CreateRegistry(h.as(idAdmin)))

	admin, err := h.contract.GetAdmin(h.as(idFarmerA))
	require.NoError(t, err)
	require.Equal(t, idAdmin, admin)

	event := h.lastEvent(t, "RegistryCreated")
	require.Equal(t, idAdmin, event["admin"])
}

func TestCreateRegistryIsOneShot(t *testing.T) {
	h := newRegistryHarness()
	require.NoError(t, h.contract.CreateRegistry(h.as(idAdmin)))

	err := h.contract.CreateRegistry(h.as(idFarmerA))
	require.ErrorIs(t, err, model.ErrRegistryExists)

	// The original admin survives the rejected attempt.
	admin, err := h.contract.GetAdmin(h.as(idFarmerA))
	require.NoError(t, err)
	require.Equal(t, idAdmin, admin)
}

func TestGetAdminBeforeCreateFails(t *testing.T) {
	h := newRegistryHarness()

	_, err := h.contract.GetAdmin(h.as(idFarmerA))
	require.ErrorIs(t, err, model.ErrRegistryNotCreated)
}

func TestAdminOpsBeforeCreateFail(t *testing.T) {
	h := newRegistryHarness()

	err := h.contract.AddVerifier(h.as(idAdmin), idVerifier)
	require.ErrorIs(t, err, model.ErrRegistryNotCreated)

	err = h.contract.RemoveVerifier(h.as(idAdmin), idVerifier)
	require.ErrorIs(t, err, model.ErrRegistryNotCreated)
}
