package marketplace

import (
	"encoding/json"
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/stretchr/testify/require"

	"github.com/vitalchain/healthcc/core"
	"github.com/vitalchain/healthcc/mock"
	"github.com/vitalchain/healthcc/mock/stub"
)

const testChaincodeName = "marketplace"

func newTestContract(t *testing.T) (*mock.Ledger, *Contract, *stub.Stub) {
	ledger := mock.NewLedger(t)
	cc := New()
	s := ledger.NewChaincode(testChaincodeName, cc)
	cc.SetStub(s)
	return ledger, cc, s
}

func listTestProduct(t *testing.T, ledger *mock.Ledger, cc *Contract) uint64 {
	var (
		id  uint64
		err error
	)
	ledger.Tx(testChaincodeName, func() {
		id, err = cc.TxListProduct("seller1", "Vitamin C", "High-quality Vitamin C supplement", 1000, 100)
	})
	require.NoError(t, err)
	return id
}

func TestListProduct(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	id := listTestProduct(t, ledger, cc)
	require.Equal(t, uint64(1), id)

	product, err := cc.QueryProduct(1)
	require.NoError(t, err)
	require.NotNil(t, product)
	require.Equal(t, "seller1", product.Seller)
	require.Equal(t, "Vitamin C", product.Name)
	require.Equal(t, int64(1000), product.Price)
	require.Equal(t, int64(100), product.Stock)
}

func TestUpdateProduct(t *testing.T) {
	ledger, cc, _ := newTestContract(t)
	listTestProduct(t, ledger, cc)

	var err error
	ledger.Tx(testChaincodeName, func() {
		err = cc.TxUpdateProduct("seller1", 1, 1200, 90)
	})
	require.NoError(t, err)

	product, err := cc.QueryProduct(1)
	require.NoError(t, err)
	require.Equal(t, int64(1200), product.Price)
	require.Equal(t, int64(90), product.Stock)

	// partial update semantics: name and description survive
	require.Equal(t, "Vitamin C", product.Name)
	require.Equal(t, "High-quality Vitamin C supplement", product.Description)
}

func TestUpdateProductByNonSeller(t *testing.T) {
	ledger, cc, _ := newTestContract(t)
	listTestProduct(t, ledger, cc)

	before, err := cc.QueryProduct(1)
	require.NoError(t, err)

	ledger.Tx(testChaincodeName, func() {
		err = cc.TxUpdateProduct("seller2", 1, 1200, 90)
	})
	code, ok := core.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, core.CodeNotOwner, code)

	after, err := cc.QueryProduct(1)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestUpdateUnknownProduct(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	var err error
	ledger.Tx(testChaincodeName, func() {
		err = cc.TxUpdateProduct("seller1", 1, 1200, 90)
	})
	code, ok := core.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, core.CodeNotFound, code)
}

func TestPlaceOrder(t *testing.T) {
	ledger, cc, _ := newTestContract(t)
	listTestProduct(t, ledger, cc)

	var (
		orderID uint64
		err     error
	)
	ledger.Tx(testChaincodeName, func() {
		orderID, err = cc.TxPlaceOrder("buyer1", 1, 5)
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), orderID)

	order, err := cc.QueryOrder(1)
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, "buyer1", order.Buyer)
	require.Equal(t, uint64(1), order.ProductID)
	require.Equal(t, int64(5), order.Quantity)
	require.Equal(t, int64(5000), order.TotalPrice)
	require.Equal(t, StatusPlaced, order.Status)

	product, err := cc.QueryProduct(1)
	require.NoError(t, err)
	require.Equal(t, int64(95), product.Stock)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	ledger, cc, _ := newTestContract(t)
	listTestProduct(t, ledger, cc)

	var err error
	ledger.Tx(testChaincodeName, func() {
		_, err = cc.TxPlaceOrder("buyer1", 1, 101)
	})
	code, ok := core.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, core.CodeNotFound, code)

	product, err := cc.QueryProduct(1)
	require.NoError(t, err)
	require.Equal(t, int64(100), product.Stock)

	// no order id is burned visibly: the next successful order still starts at 1
	order, err := cc.QueryOrder(1)
	require.NoError(t, err)
	require.Nil(t, order)
}

func TestPlaceOrderExactStock(t *testing.T) {
	ledger, cc, _ := newTestContract(t)
	listTestProduct(t, ledger, cc)

	var err error
	ledger.Tx(testChaincodeName, func() {
		_, err = cc.TxPlaceOrder("buyer1", 1, 100)
	})
	require.NoError(t, err)

	product, err := cc.QueryProduct(1)
	require.NoError(t, err)
	require.Zero(t, product.Stock)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	ledger, cc, _ := newTestContract(t)

	var err error
	ledger.Tx(testChaincodeName, func() {
		_, err = cc.TxPlaceOrder("buyer1", 7, 1)
	})
	code, ok := core.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, core.CodeNotFound, code)
}

func TestQueryUnknownProductAndOrder(t *testing.T) {
	_, cc, _ := newTestContract(t)

	product, err := cc.QueryProduct(1)
	require.NoError(t, err)
	require.Nil(t, product)

	order, err := cc.QueryOrder(1)
	require.NoError(t, err)
	require.Nil(t, order)
}

func TestRoutedInvocations(t *testing.T) {
	ledger, _, _ := newTestContract(t)

	resp := ledger.Invoke(testChaincodeName, FnListProduct,
		"seller1", "Vitamin C", "High-quality Vitamin C supplement", "1000", "100")
	require.Equal(t, int32(shim.OK), resp.GetStatus(), resp.GetMessage())
	require.Equal(t, "1", string(resp.GetPayload()))

	resp = ledger.Invoke(testChaincodeName, FnPlaceOrder, "buyer1", "1", "5")
	require.Equal(t, int32(shim.OK), resp.GetStatus(), resp.GetMessage())
	require.Equal(t, "1", string(resp.GetPayload()))

	resp = ledger.Invoke(testChaincodeName, FnGetOrder, "1")
	require.Equal(t, int32(shim.OK), resp.GetStatus(), resp.GetMessage())

	var order Order
	require.NoError(t, json.Unmarshal(resp.GetPayload(), &order))
	require.Equal(t, int64(5000), order.TotalPrice)

	resp = ledger.Invoke(testChaincodeName, FnUpdateProduct, "seller2", "1", "1", "1")
	require.Equal(t, int32(shim.ERROR), resp.GetStatus())
	require.Contains(t, resp.GetMessage(), "(code 102)")

	resp = ledger.Invoke(testChaincodeName, FnGetProduct, "9")
	require.Equal(t, int32(shim.OK), resp.GetStatus())
	require.Empty(t, resp.GetPayload())
}
