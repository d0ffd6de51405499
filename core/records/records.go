// Package records is a keyed record table over the chaincode state. Records
// are stored as JSON under a composite key built from the record type and the
// record identifier.
package records

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// ErrNotFound is returned by Load when no record is stored under the id.
// Query paths translate it to an absent value, mutation paths to a denial.
var ErrNotFound = errors.New("record not found")

// Save stores the record under (recordType, id). An existing record under the
// same id is silently overwritten.
func Save(stub shim.ChaincodeStubInterface, recordType, id string, record interface{}) error {
	key, err := stub.CreateCompositeKey(recordType, []string{id})
	if err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", recordType, err)
	}

	return stub.PutState(key, data)
}

// Load reads the record stored under (recordType, id) into out. Returns
// ErrNotFound when the state holds no entry.
func Load(stub shim.ChaincodeStubInterface, recordType, id string, out interface{}) error {
	key, err := stub.CreateCompositeKey(recordType, []string{id})
	if err != nil {
		return err
	}

	data, err := stub.GetState(key)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrNotFound
	}

	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s record: %w", recordType, err)
	}
	return nil
}

// Exists reports whether a record is stored under (recordType, id).
func Exists(stub shim.ChaincodeStubInterface, recordType, id string) (bool, error) {
	key, err := stub.CreateCompositeKey(recordType, []string{id})
	if err != nil {
		return false, err
	}

	data, err := stub.GetState(key)
	if err != nil {
		return false, err
	}
	return len(data) > 0, nil
}
