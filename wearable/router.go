package wearable

import (
	"encoding/json"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"

	"github.com/vitalchain/healthcc/core"
)

// routed function names
const (
	FnRegisterDevice      = "registerDevice"
	FnUpdateHealthMetrics = "updateHealthMetrics"
	FnGetHealthMetrics    = "getHealthMetrics"
	FnGetDeviceInfo       = "getDeviceInfo"
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
	case FnRegisterDevice:
		if err := core.CheckArgsCount(args, 3); err != nil {
			return core.Failure(err)
		}
		return core.Response(nil, c.TxRegisterDevice(args[0], args[1], args[2]))

	case FnUpdateHealthMetrics:
		if err := core.CheckArgsCount(args, 5); err != nil {
			return core.Failure(err)
		}
		var heartRate []int
		if err := json.Unmarshal([]byte(args[2]), &heartRate); err != nil {
			return shim.Error("invalid heart rate series: " + err.Error())
		}
		steps, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return shim.Error("invalid steps: " + args[3])
		}
		sleepHours, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return shim.Error("invalid sleep hours: " + args[4])
		}
		return core.Response(nil, c.TxUpdateHealthMetrics(args[0], args[1], heartRate, steps, sleepHours))

	case FnGetHealthMetrics:
		if err := core.CheckArgsCount(args, 2); err != nil {
			return core.Failure(err)
		}
		metrics, err := c.QueryHealthMetrics(args[0], args[1])
		if err != nil {
			return core.Failure(err)
		}
		if metrics == nil {
			return shim.Success(nil)
		}
		return core.Success(metrics)

	case FnGetDeviceInfo:
		if err := core.CheckArgsCount(args, 1); err != nil {
			return core.Failure(err)
		}
		device, err := c.QueryDeviceInfo(args[0])
		if err != nil {
			return core.Failure(err)
		}
		if device == nil {
			return shim.Success(nil)
		}
		return core.Success(device)
	}

	return shim.Error("unknown function: " + fn)
}
