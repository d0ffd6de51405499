// Package sequence issues monotonically increasing integer identifiers for
// chaincode records. The last issued value is kept in the ledger state, so a
// fresh state is the reset boundary.
package sequence

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// StateKeySequence is the state key prefix under which counters are stored.
const StateKeySequence byte = 0x35

// Next issues the next identifier for the given record type. The first call
// on a fresh state returns 1; every later call returns a strictly greater
// value. Identifiers are never reused.
func Next(stub shim.ChaincodeStubInterface, recordType string) (uint64, error) {
	key, err := counterKey(stub, recordType)
	if err != nil {
		return 0, err
	}

	last, err := load(stub, key)
	if err != nil {
		return 0, err
	}

	next := last + 1
	if err = stub.PutState(key, []byte(strconv.FormatUint(next, 10))); err != nil {
		return 0, err
	}

	return next, nil
}

// Current returns the last issued identifier, 0 when nothing was issued yet.
func Current(stub shim.ChaincodeStubInterface, recordType string) (uint64, error) {
	key, err := counterKey(stub, recordType)
	if err != nil {
		return 0, err
	}
	return load(stub, key)
}

func counterKey(stub shim.ChaincodeStubInterface, recordType string) (string, error) {
	prefix := hex.EncodeToString([]byte{StateKeySequence})
	return stub.CreateCompositeKey(prefix, []string{recordType})
}

func load(stub shim.ChaincodeStubInterface, key string) (uint64, error) {
	data, err := stub.GetState(key)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}

	last, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing sequence counter: %w", err)
	}
	return last, nil
}
