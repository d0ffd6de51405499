package healthrecord

import (
	"encoding/json"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"

	"github.com/vitalchain/healthcc/core"
)

// routed function names
const (
	FnUpdateHealthRecord = "updateHealthRecord"
	FnGrantDataAccess    = "grantDataAccess"
	FnRevokeDataAccess   = "revokeDataAccess"
	FnGetHealthRecord    = "getHealthRecord"
	FnCheckDataAccess    = "checkDataAccess"
)

// updateRequest is the routed payload of updateHealthRecord. The pointer
// fields distinguish "absent, keep the stored value" (JSON null or omitted)
// from an explicit empty string.
type updateRequest struct {
	GeneticData        *string  `json:"geneticData"`
	MedicalHistory     *string  `json:"medicalHistory"`
	CurrentMedications []string `json:"currentMedications"`
	Allergies          []string `json:"allergies"`
}

// Init implements shim.Chaincode.
func (c *Contract) Init(shim.ChaincodeStubInterface) pb.Response {
	return shim.Success(nil)
}

// Invoke dispatches routed invocations to the typed contract methods.
func (c *Contract) Invoke(stub shim.ChaincodeStubInterface) pb.Response {
	c.SetStub(stub)
	fn, args := stub.GetFunctionAndParameters()

	switch fn {
	case FnUpdateHealthRecord:
		if err := core.CheckArgsCount(args, 2); err != nil {
			return core.Failure(err)
		}
		var req updateRequest
		if err := json.Unmarshal([]byte(args[1]), &req); err != nil {
			return shim.Error("invalid update request: " + err.Error())
		}
		return core.Response(nil, c.TxUpdateHealthRecord(
			args[0], req.GeneticData, req.MedicalHistory, req.CurrentMedications, req.Allergies))

	case FnGrantDataAccess:
		if err := core.CheckArgsCount(args, 2); err != nil {
			return core.Failure(err)
		}
		return core.Response(nil, c.TxGrantDataAccess(args[0], args[1]))

	case FnRevokeDataAccess:
		if err := core.CheckArgsCount(args, 2); err != nil {
			return core.Failure(err)
		}
		return core.Response(nil, c.TxRevokeDataAccess(args[0], args[1]))

	case FnGetHealthRecord:
		if err := core.CheckArgsCount(args, 2); err != nil {
			return core.Failure(err)
		}
		record, err := c.QueryHealthRecord(args[0], args[1])
		if err != nil {
			return core.Failure(err)
		}
		if record == nil {
			return shim.Success(nil)
		}
		return core.Success(record)

	case FnCheckDataAccess:
		if err := core.CheckArgsCount(args, 2); err != nil {
			return core.Failure(err)
		}
		granted, err := c.QueryDataAccess(args[0], args[1])
		if err != nil {
			return core.Failure(err)
		}
		return shim.Success([]byte(strconv.FormatBool(granted)))
	}

	return shim.Error("unknown function: " + fn)
}
