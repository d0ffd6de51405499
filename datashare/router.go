package datashare

import (
	"math/big"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"

	"github.com/vitalchain/healthcc/core"
)

// routed function names
const (
	FnShareAnonymizedData = "shareAnonymizedData"
	FnRewardDataSharing   = "rewardDataSharing"
	FnGetSharedData       = "getSharedData"
	FnGetTokenBalance     = "getTokenBalance"
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
	case FnShareAnonymizedData:
		if err := core.CheckArgsCount(args, 3); err != nil {
			return core.Failure(err)
		}
		return core.Response(c.TxShareAnonymizedData(args[0], args[1], args[2]))

	case FnRewardDataSharing:
		if err := core.CheckArgsCount(args, 3); err != nil {
			return core.Failure(err)
		}
		amount, ok := new(big.Int).SetString(args[2], 10)
		if !ok {
			return shim.Error("invalid amount: " + args[2])
		}
		return core.Response(nil, c.TxRewardDataSharing(args[0], args[1], amount))

	case FnGetSharedData:
		if err := core.CheckArgsCount(args, 1); err != nil {
			return core.Failure(err)
		}
		dataID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return shim.Error("invalid data id: " + args[0])
		}
		record, err := c.QuerySharedData(dataID)
		if err != nil {
			return core.Failure(err)
		}
		if record == nil {
			return shim.Success(nil)
		}
		return core.Success(record)

	case FnGetTokenBalance:
		if err := core.CheckArgsCount(args, 1); err != nil {
			return core.Failure(err)
		}
		value, err := c.QueryTokenBalance(args[0])
		if err != nil {
			return core.Failure(err)
		}
		return shim.Success([]byte(value.String()))
	}

	return shim.Error("unknown function: " + fn)
}
