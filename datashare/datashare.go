// Package datashare implements the health data sharing and incentives
// contract: patients share anonymized data records and are credited with
// tokens, the contract administrator may issue extra rewards.
package datashare

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/vitalchain/healthcc/core"
	"github.com/vitalchain/healthcc/core/balance"
	"github.com/vitalchain/healthcc/core/records"
	"github.com/vitalchain/healthcc/core/sequence"
)

// sharedDataRecordType keys shared data records and their id sequence.
const sharedDataRecordType = "shared_data"

// RewardPerShare is the token amount credited for every shared record.
const RewardPerShare = 100

// SharedData is an anonymized data record shared by a patient.
type SharedData struct {
	PatientID      string `json:"patientId"`
	DataType       string `json:"dataType"`
	AnonymizedData string `json:"anonymizedData"`
	SharedAt       int64  `json:"sharedAt"`
}

// Contract is the health data sharing chaincode.
type Contract struct {
	core.BaseContract
	gate core.Gate
}

// New creates the contract. admin is the principal allowed to issue rewards.
func New(admin string) *Contract {
	return &Contract{gate: core.Gate{Admin: admin}}
}

// TxShareAnonymizedData stores a shared data record for the sender, credits
// the sharing reward and returns the new record id.
func (c *Contract) TxShareAnonymizedData(sender, dataType, anonymizedData string) (uint64, error) {
	stub := c.GetStub()

	id, err := sequence.Next(stub, sharedDataRecordType)
	if err != nil {
		return 0, err
	}

	sharedAt, err := core.TxUnixMilli(stub)
	if err != nil {
		return 0, err
	}

	record := SharedData{
		PatientID:      sender,
		DataType:       dataType,
		AnonymizedData: anonymizedData,
		SharedAt:       sharedAt,
	}
	if err = records.Save(stub, sharedDataRecordType, formatID(id), record); err != nil {
		return 0, err
	}

	if err = balance.Add(stub, sender, big.NewInt(RewardPerShare)); err != nil {
		return 0, err
	}

	return id, nil
}

// TxRewardDataSharing credits recipient with amount. Only the contract
// administrator may call it; everyone else is denied with code 100.
func (c *Contract) TxRewardDataSharing(sender, recipient string, amount *big.Int) error {
	if err := c.gate.RequireAdmin(sender); err != nil {
		return err
	}
	return balance.Add(c.GetStub(), recipient, amount)
}

// QuerySharedData returns the shared data record under dataID, nil when no
// record exists.
func (c *Contract) QuerySharedData(dataID uint64) (*SharedData, error) {
	var record SharedData
	err := records.Load(c.GetStub(), sharedDataRecordType, formatID(dataID), &record)
	if errors.Is(err, records.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// QueryTokenBalance returns the token balance of account, 0 for unknown
// accounts.
func (c *Contract) QueryTokenBalance(account string) (*big.Int, error) {
	return balance.Get(c.GetStub(), account)
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
