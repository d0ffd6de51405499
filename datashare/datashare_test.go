package datashare

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/stretchr/testify/require"

	"github.com/vitalchain/healthcc/core"
	"github.com/vitalchain/healthcc/mock"
	"github.com/vitalchain/healthcc/mock/stub"
)

const (
	testChaincodeName = "datashare"
	testAdmin         = "contract-owner"
)

func newTestContract(t *testing.T) (*mock.Ledger, *Contract, *stub.Stub) {
	ledger := mock.NewLedger(t)
	cc := New(testAdmin)
	s := ledger.NewChaincode(testChaincodeName, cc)
	cc.SetStub(s)
	return ledger, cc, s
}

func TestShareAnonymizedData(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	var (
		id  uint64
		err error
	)
	ledger.Tx(testChaincodeName, func() {
		id, err = cc.TxShareAnonymizedData("user1", "genetic", "ATCG...")
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	record, err := cc.QuerySharedData(1)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, "user1", record.PatientID)
	require.Equal(t, "genetic", record.DataType)
	require.Equal(t, "ATCG...", record.AnonymizedData)
	require.NotZero(t, record.SharedAt)

	value, err := cc.QueryTokenBalance("user1")
	require.NoError(t, err)
	require.Equal(t, int64(RewardPerShare), value.Int64())
}

func TestShareAnonymizedDataIDsAreSequential(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	var (
		first, second uint64
		err           error
	)
	ledger.Tx(testChaincodeName, func() {
		first, err = cc.TxShareAnonymizedData("user1", "genetic", "ATCG...")
		require.NoError(t, err)
		second, err = cc.TxShareAnonymizedData("user2", "medical-history", "Patient history...")
		require.NoError(t, err)
	})
	require.Equal(t, uint64(1), first)
	require.Equal(t, uint64(2), second)
}

func TestAccumulatedSharingRewards(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	ledger.Tx(testChaincodeName, func() {
		_, err := cc.TxShareAnonymizedData("user1", "genetic", "ATCG...")
		require.NoError(t, err)
		_, err = cc.TxShareAnonymizedData("user1", "medical-history", "Patient history...")
		require.NoError(t, err)
	})

	value, err := cc.QueryTokenBalance("user1")
	require.NoError(t, err)
	require.Equal(t, int64(200), value.Int64())
}

func TestRewardDataSharing(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	var err error
	ledger.Tx(testChaincodeName, func() {
		err = cc.TxRewardDataSharing(testAdmin, "user1", big.NewInt(500))
	})
	require.NoError(t, err)

	value, err := cc.QueryTokenBalance("user1")
	require.NoError(t, err)
	require.Equal(t, int64(500), value.Int64())
}

func TestRewardDataSharingByNonAdmin(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	var err error
	ledger.Tx(testChaincodeName, func() {
		err = cc.TxRewardDataSharing("user2", "user1", big.NewInt(500))
	})
	code, ok := core.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, core.CodeNotAdmin, code)

	value, err := cc.QueryTokenBalance("user1")
	require.NoError(t, err)
	require.Zero(t, value.Sign())
}

func TestQuerySharedDataUnknownID(t *testing.T) {
	_, cc, _ := newTestContract(t)

	record, err := cc.QuerySharedData(1)
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestQueryTokenBalanceUnknownAccount(t *testing.T) {
	_, cc, _ := newTestContract(t)

	value, err := cc.QueryTokenBalance("user2")
	require.NoError(t, err)
	require.Zero(t, value.Sign())
}

func TestRoutedInvocations(t *testing.T) {
	ledger, _, _ := newTestContract(t)

	resp := ledger.Invoke(testChaincodeName, FnShareAnonymizedData, "user1", "genetic", "ATCG...")
	require.Equal(t, int32(shim.OK), resp.GetStatus(), resp.GetMessage())
	require.Equal(t, "1", string(resp.GetPayload()))

	resp = ledger.Invoke(testChaincodeName, FnGetSharedData, "1")
	require.Equal(t, int32(shim.OK), resp.GetStatus(), resp.GetMessage())

	var record SharedData
	require.NoError(t, json.Unmarshal(resp.GetPayload(), &record))
	require.Equal(t, "user1", record.PatientID)

	resp = ledger.Invoke(testChaincodeName, FnGetTokenBalance, "user1")
	require.Equal(t, int32(shim.OK), resp.GetStatus(), resp.GetMessage())
	require.Equal(t, "100", string(resp.GetPayload()))

	resp = ledger.Invoke(testChaincodeName, FnRewardDataSharing, "user2", "user1", "500")
	require.Equal(t, int32(shim.ERROR), resp.GetStatus())
	require.Contains(t, resp.GetMessage(), "(code 100)")

	resp = ledger.Invoke(testChaincodeName, FnGetSharedData, "42")
	require.Equal(t, int32(shim.OK), resp.GetStatus())
	require.Empty(t, resp.GetPayload())
}
