package core

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"

	"github.com/vitalchain/healthcc/core/logger"
)

// ErrWrongArgsCount is the format for argument count mismatches in routers.
const ErrWrongArgsCount = "wrong arguments count, get: %d, want: %d"

// CheckArgsCount validates the argument count of a routed invocation.
func CheckArgsCount(args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf(ErrWrongArgsCount, len(args), want)
	}
	return nil
}

// Success marshals value into a successful peer response. nil values produce
// an empty payload, which routed callers read as "nothing found".
func Success(value interface{}) pb.Response {
	if value == nil {
		return shim.Success(nil)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return shim.Error(fmt.Sprintf("marshal response: %v", err))
	}
	return shim.Success(data)
}

// Failure translates an error outcome into a peer response. Denial codes
// stay visible in the message.
func Failure(err error) pb.Response {
	logger.Logger().Warningf("invocation failed: %v", err)
	return shim.Error(err.Error())
}

// Response folds a typed method result into a peer response.
func Response(value interface{}, err error) pb.Response {
	if err != nil {
		return Failure(err)
	}
	return Success(value)
}
