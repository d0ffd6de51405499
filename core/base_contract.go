package core

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// BaseContractInterface is the minimal surface a contract exposes to the
// shared infrastructure.
type BaseContractInterface interface {
	GetStub() shim.ChaincodeStubInterface
	SetStub(stub shim.ChaincodeStubInterface)
}

// BaseContract holds the chaincode stub for the duration of an invocation.
// Domain contracts embed it.
type BaseContract struct {
	stub shim.ChaincodeStubInterface
}

// GetStub returns the stub of the current invocation.
func (bc *BaseContract) GetStub() shim.ChaincodeStubInterface {
	return bc.stub
}

// SetStub attaches the stub for the current invocation.
func (bc *BaseContract) SetStub(stub shim.ChaincodeStubInterface) {
	bc.stub = stub
}

// TxUnixMilli returns the transaction timestamp in Unix milliseconds.
func TxUnixMilli(stub shim.ChaincodeStubInterface) (int64, error) {
	ts, err := stub.GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("getting tx timestamp: %w", err)
	}
	return ts.GetSeconds()*1000 + int64(ts.GetNanos())/int64(time.Millisecond), nil
}
