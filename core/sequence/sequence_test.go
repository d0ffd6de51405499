package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vitalchain/healthcc/mock/stub"
)

func TestNextStartsAtOneAndIncreases(t *testing.T) {
	s := stub.NewMockStub("sequence", nil)
	s.MockTransactionStart("tx1")
	defer s.MockTransactionEnd("tx1")

	prev := uint64(0)
	for i := 0; i < 5; i++ {
		id, err := Next(s, "product")
		require.NoError(t, err)
		require.Equal(t, prev+1, id)
		prev = id
	}
}

func TestCountersAreIndependentPerRecordType(t *testing.T) {
	s := stub.NewMockStub("sequence", nil)
	s.MockTransactionStart("tx1")
	defer s.MockTransactionEnd("tx1")

	id, err := Next(s, "product")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	id, err = Next(s, "order")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	id, err = Next(s, "product")
	require.NoError(t, err)
	require.Equal(t, uint64(2), id)
}

func TestCurrent(t *testing.T) {
	s := stub.NewMockStub("sequence", nil)
	s.MockTransactionStart("tx1")
	defer s.MockTransactionEnd("tx1")

	last, err := Current(s, "product")
	require.NoError(t, err)
	require.Equal(t, uint64(0), last)

	_, err = Next(s, "product")
	require.NoError(t, err)

	last, err = Current(s, "product")
	require.NoError(t, err)
	require.Equal(t, uint64(1), last)
}

func TestFreshStateResetsCounter(t *testing.T) {
	s := stub.NewMockStub("sequence", nil)
	s.MockTransactionStart("tx1")
	_, err := Next(s, "product")
	require.NoError(t, err)
	_, err = Next(s, "product")
	require.NoError(t, err)
	s.MockTransactionEnd("tx1")

	fresh := stub.NewMockStub("sequence", nil)
	fresh.MockTransactionStart("tx2")
	defer fresh.MockTransactionEnd("tx2")

	id, err := Next(fresh, "product")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
}
