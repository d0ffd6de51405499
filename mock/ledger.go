// Package mock is the test harness for the health chaincodes: it wires one
// in-memory stub per contract and drives invocations the way a peer would.
package mock

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vitalchain/healthcc/mock/stub"
)

// Ledger holds the mocked chaincode stubs of a single test.
type Ledger struct {
	t     *testing.T
	stubs map[string]*stub.Stub
}

// NewLedger creates an empty ledger. Log level is taken from the LOG
// environment variable, default error.
func NewLedger(t *testing.T) *Ledger {
	lvl := logrus.ErrorLevel
	var err error
	if level, ok := os.LookupEnv("LOG"); ok {
		lvl, err = logrus.ParseLevel(level)
		require.NoError(t, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	return &Ledger{
		t:     t,
		stubs: make(map[string]*stub.Stub),
	}
}

// NewChaincode registers the chaincode under name, creates its stub and runs
// Init. When the chaincode keeps a stub between calls (BaseContract), the
// caller attaches it with SetStub.
func (l *Ledger) NewChaincode(name string, cc shim.Chaincode) *stub.Stub {
	s := stub.NewMockStub(name, cc)

	resp := s.MockInit(l.NewTxID(), nil)
	require.Equal(l.t, int32(shim.OK), resp.GetStatus(), resp.GetMessage())

	for otherName, other := range l.stubs {
		s.MockPeerChaincode(otherName, other)
		other.MockPeerChaincode(name, s)
	}
	l.stubs[name] = s

	return s
}

// GetStub returns the stub registered under name.
func (l *Ledger) GetStub(name string) *stub.Stub {
	return l.stubs[name]
}

// NewTxID returns a fresh mock transaction id.
func (l *Ledger) NewTxID() string {
	txID := [16]byte(uuid.New())
	return hex.EncodeToString(txID[:])
}

// Invoke runs a routed invocation on the named chaincode.
func (l *Ledger) Invoke(name, fn string, args ...string) peer.Response {
	s, ok := l.stubs[name]
	require.True(l.t, ok, "chaincode %s is not registered", name)

	ccArgs := make([][]byte, 0, len(args)+1)
	ccArgs = append(ccArgs, []byte(fn))
	for _, arg := range args {
		ccArgs = append(ccArgs, []byte(arg))
	}

	return s.MockInvoke(l.NewTxID(), ccArgs)
}

// Tx runs fn inside a mocked transaction on the named stub. Typed contract
// methods that write state or read the tx timestamp must run through it.
func (l *Ledger) Tx(name string, fn func()) {
	s, ok := l.stubs[name]
	require.True(l.t, ok, "chaincode %s is not registered", name)

	txID := l.NewTxID()
	s.MockTransactionStart(txID)
	defer s.MockTransactionEnd(txID)
	fn()
}
