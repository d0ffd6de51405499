// Package acl keeps directed permission edges between principals. An edge
// (grantor, grantee) is stored as an explicit true/false value: a revoked
// grant stays in the state as a denial and is observably identical to a grant
// that never existed.
package acl

import (
	"encoding/hex"
	"errors"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// StateKeyAccessEdge is the state key prefix for permission edges.
const StateKeyAccessEdge byte = 0x33

var ErrPrincipalMustNotBeEmpty = errors.New("principal must not be empty")

var (
	edgeGranted = []byte{1}
	edgeRevoked = []byte{0}
)

// GrantAccess sets the edge (grantor, grantee) to true. Idempotent.
func GrantAccess(stub shim.ChaincodeStubInterface, grantor, grantee string) error {
	key, err := edgeKey(stub, grantor, grantee)
	if err != nil {
		return err
	}
	return stub.PutState(key, edgeGranted)
}

// RevokeAccess sets the edge (grantor, grantee) to false. The edge is not
// removed, so a later CheckAccess sees an explicit denial.
func RevokeAccess(stub shim.ChaincodeStubInterface, grantor, grantee string) error {
	key, err := edgeKey(stub, grantor, grantee)
	if err != nil {
		return err
	}
	return stub.PutState(key, edgeRevoked)
}

// CheckAccess reports whether the edge (grantor, grantee) exists and is true.
// Missing and revoked edges both report false.
func CheckAccess(stub shim.ChaincodeStubInterface, grantor, grantee string) (bool, error) {
	key, err := edgeKey(stub, grantor, grantee)
	if err != nil {
		return false, err
	}

	data, err := stub.GetState(key)
	if err != nil {
		return false, err
	}

	return len(data) == 1 && data[0] == edgeGranted[0], nil
}

// edgeKey builds a composite key from the pair of principals. Composite key
// attributes keep the principals separate, so identifiers containing any
// separator character cannot collide.
func edgeKey(stub shim.ChaincodeStubInterface, grantor, grantee string) (string, error) {
	if grantor == "" || grantee == "" {
		return "", ErrPrincipalMustNotBeEmpty
	}

	prefix := hex.EncodeToString([]byte{StateKeyAccessEdge})
	return stub.CreateCompositeKey(prefix, []string{grantor, grantee})
}
