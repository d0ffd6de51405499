package core

import (
	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/vitalchain/healthcc/core/acl"
)

// Gate is the authorization decision point guarding mutations and gated
// reads. It is a pure policy check: a denial leaves the state untouched.
//
// Rules are evaluated in order: self-access, explicit grant, privileged
// viewer. Ownership checks on a loaded record go through RequireOwner.
type Gate struct {
	// Admin is the principal allowed on admin-only operations.
	Admin string
	// Viewers are additional principals allowed on gated reads, e.g. a
	// designated practitioner for health metrics.
	Viewers []string
}

// RequireAdmin allows only the configured admin principal.
func (g Gate) RequireAdmin(caller string) error {
	if g.Admin != "" && caller == g.Admin {
		return nil
	}
	return Errorf(CodeNotAdmin, "caller %q is not the contract administrator", caller)
}

// RequireOwner allows only the record's owning principal.
func (g Gate) RequireOwner(owner, caller string) error {
	if caller == owner {
		return nil
	}
	return Errorf(CodeNotOwner, "caller %q does not own the record", caller)
}

// AuthorizeRead decides whether caller may read data belonging to principal:
// the principal itself, anyone holding an explicit grant from the principal,
// and configured privileged viewers are allowed.
func (g Gate) AuthorizeRead(stub shim.ChaincodeStubInterface, principal, caller string) error {
	if caller == principal {
		return nil
	}

	granted, err := acl.CheckAccess(stub, principal, caller)
	if err != nil {
		return err
	}
	if granted {
		return nil
	}

	for _, viewer := range g.Viewers {
		if caller == viewer {
			return nil
		}
	}

	return Errorf(CodeNotFound, "caller %q has no access to data of %q", caller, principal)
}
