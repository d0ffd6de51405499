package marketplace

import (
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"

	"github.com/vitalchain/healthcc/core"
)

// routed function names
const (
	FnListProduct   = "listProduct"
	FnUpdateProduct = "updateProduct"
	FnPlaceOrder    = "placeOrder"
	FnGetProduct    = "getProduct"
	FnGetOrder      = "getOrder"
)

// Init implements shim.Chaincode.
func (c *Contract) Init(shim.ChaincodeStubInterface) pb.Response {
	return shim.Success(nil)
}

// Invoke dispatches routed invocations to the typed contract methods.
func (c *Contract) Invoke(stub shim.ChaincodeStubInterface) pb.Response {
	c.SetStub(stub)
	fn, args := stub.GetFunctionAndParameters()

	switch fn {
	case FnListProduct:
		if err := core.CheckArgsCount(args, 5); err != nil {
			return core.Failure(err)
		}
		price, err := parseAmount(args[3])
		if err != nil {
			return core.Failure(err)
		}
		stock, err := parseAmount(args[4])
		if err != nil {
			return core.Failure(err)
		}
		return core.Response(c.TxListProduct(args[0], args[1], args[2], price, stock))

	case FnUpdateProduct:
		if err := core.CheckArgsCount(args, 4); err != nil {
			return core.Failure(err)
		}
		productID, err := parseID(args[1])
		if err != nil {
			return core.Failure(err)
		}
		newPrice, err := parseAmount(args[2])
		if err != nil {
			return core.Failure(err)
		}
		newStock, err := parseAmount(args[3])
		if err != nil {
			return core.Failure(err)
		}
		return core.Response(nil, c.TxUpdateProduct(args[0], productID, newPrice, newStock))

	case FnPlaceOrder:
		if err := core.CheckArgsCount(args, 3); err != nil {
			return core.Failure(err)
		}
		productID, err := parseID(args[1])
		if err != nil {
			return core.Failure(err)
		}
		quantity, err := parseAmount(args[2])
		if err != nil {
			return core.Failure(err)
		}
		return core.Response(c.TxPlaceOrder(args[0], productID, quantity))

	case FnGetProduct:
		if err := core.CheckArgsCount(args, 1); err != nil {
			return core.Failure(err)
		}
		productID, err := parseID(args[0])
		if err != nil {
			return core.Failure(err)
		}
		product, err := c.QueryProduct(productID)
		if err != nil {
			return core.Failure(err)
		}
		if product == nil {
			return shim.Success(nil)
		}
		return core.Success(product)

	case FnGetOrder:
		if err := core.CheckArgsCount(args, 1); err != nil {
			return core.Failure(err)
		}
		orderID, err := parseID(args[0])
		if err != nil {
			return core.Failure(err)
		}
		order, err := c.QueryOrder(orderID)
		if err != nil {
			return core.Failure(err)
		}
		if order == nil {
			return shim.Success(nil)
		}
		return core.Success(order)
	}

	return shim.Error("unknown function: " + fn)
}

func parseID(arg string) (uint64, error) {
	return strconv.ParseUint(arg, 10, 64)
}

func parseAmount(arg string) (int64, error) {
	return strconv.ParseInt(arg, 10, 64)
}
