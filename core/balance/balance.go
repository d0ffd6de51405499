// Package balance keeps per-principal token balances in the chaincode state.
// Balances only grow through the exposed operations; there is no debit path.
package balance

import (
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// StateKeyTokenBalance is the state key prefix for token balances.
const StateKeyTokenBalance byte = 0x2b

var (
	ErrAccountMustNotBeEmpty   = errors.New("account must not be empty")
	ErrAmountMustNotBeNegative = errors.New("amount must not be negative")
)

// Get retrieves the balance of the account. Unknown accounts hold 0.
func Get(stub shim.ChaincodeStubInterface, account string) (*big.Int, error) {
	key, err := balanceKey(stub, account)
	if err != nil {
		return nil, err
	}

	data, err := stub.GetState(key)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(data), nil
}

// Add credits the account with amount, creating the balance on first write.
func Add(stub shim.ChaincodeStubInterface, account string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrAmountMustNotBeNegative
	}

	key, err := balanceKey(stub, account)
	if err != nil {
		return err
	}

	data, err := stub.GetState(key)
	if err != nil {
		return err
	}

	value := new(big.Int).SetBytes(data)
	value.Add(value, amount)

	return stub.PutState(key, value.Bytes())
}

func balanceKey(stub shim.ChaincodeStubInterface, account string) (string, error) {
	if account == "" {
		return "", ErrAccountMustNotBeEmpty
	}

	prefix := hex.EncodeToString([]byte{StateKeyTokenBalance})
	return stub.CreateCompositeKey(prefix, []string{account})
}
