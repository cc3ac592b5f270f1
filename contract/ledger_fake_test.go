package contract

import (
	"encoding/json"
	"testing"

	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/stretchr/testify/require"
)

// fakeStub is an in-memory world state implementing only the stub methods the
// contract consumes. Everything else comes from the embedded interface and
// panics if reached, which keeps the fake honest about what the core touches.
type fakeStub struct {
	shim.ChaincodeStubInterface
	state  map[string][]byte
	events map[string][]byte
	now    int64
}

func newFakeStub() *fakeStub {
	return &fakeStub{
		state:  map[string][]byte{},
		events: map[string][]byte{},
	}
}

func (f *fakeStub) GetState(key string) ([]byte, error) {
	return f.state[key], nil
}

func (f *fakeStub) PutState(key string, value []byte) error {
	f.state[key] = value
	return nil
}

func (f *fakeStub) DelState(key string) error {
	delete(f.state, key)
	return nil
}

func (f *fakeStub) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	return shim.CreateCompositeKey(objectType, attributes)
}

func (f *fakeStub) GetTxTimestamp() (*timestamp.Timestamp, error) {
	return &timestamp.Timestamp{Seconds: f.now}, nil
}

func (f *fakeStub) SetEvent(name string, payload []byte) error {
	f.events[name] = payload
	return nil
}

type fakeClientIdentity struct {
	cid.ClientIdentity
	id string
}

func (f *fakeClientIdentity) GetID() (string, error) {
	return f.id, nil
}

type fakeTxContext struct {
	stub   *fakeStub
	client *fakeClientIdentity
}

func (f *fakeTxContext) GetStub() shim.ChaincodeStubInterface {
	return f.stub
}

func (f *fakeTxContext) GetClientIdentity() cid.ClientIdentity {
	return f.client
}

// registryHarness wires one world state to transaction contexts for any number
// of callers, so tests read like ledger transcripts.
type registryHarness struct {
	contract *AgriProofSmartContract
	stub     *fakeStub
}

func newRegistryHarness() *registryHarness {
	return &registryHarness{
		contract: &AgriProofSmartContract{},
		stub:     newFakeStub(),
	}
}

// as returns a transaction context whose caller is the given identity.
func (h *registryHarness) as(identity string) *fakeTxContext {
	return &fakeTxContext{stub: h.stub, client: &fakeClientIdentity{id: identity}}
}

// at sets ledger time for subsequent transactions, in unix seconds.
func (h *registryHarness) at(seconds int64) {
	h.stub.now = seconds
}

// lastEvent decodes the most recent payload emitted under name.
func (h *registryHarness) lastEvent(t *testing.T, name string) map[string]interface{} {
	t.Helper()
	payload, ok := h.stub.events[name]
	require.True(t, ok, "event %q was not emitted", name)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	return decoded
}

const (
	idAdmin    = "x509::CN=admin,OU=admin::CN=ca.org1.example.com"
	idVerifier = "x509::CN=verifier1,OU=client::CN=ca.org1.example.com"
	idFarmerA  = "x509::CN=farmerA,OU=client::CN=ca.org1.example.com"
	idFarmerB  = "x509::CN=farmerB,OU=client::CN=ca.org1.example.com"
)
