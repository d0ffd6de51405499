// Package healthrecord implements the personal health data contract:
// patients maintain their health record and grant or revoke read access to
// other principals.
package healthrecord

import (
	"errors"

	"github.com/vitalchain/healthcc/core"
	"github.com/vitalchain/healthcc/core/acl"
	"github.com/vitalchain/healthcc/core/records"
)

// healthRecordType keys health records by patient principal.
const healthRecordType = "health_record"

// HealthRecord is a patient's personal health record.
type HealthRecord struct {
	GeneticData        string   `json:"geneticData"`
	MedicalHistory     string   `json:"medicalHistory"`
	CurrentMedications []string `json:"currentMedications"`
	Allergies          []string `json:"allergies"`
	LastUpdated        int64    `json:"lastUpdated"`
}

// Contract is the personal health data chaincode.
type Contract struct {
	core.BaseContract
	gate core.Gate
}

// New creates the contract.
func New() *Contract {
	return &Contract{}
}

// TxUpdateHealthRecord updates the sender's health record, creating it on
// first write. geneticData and medicalHistory are patch fields: nil keeps
// the stored value, a non-nil pointer overwrites it. Medications and
// allergies are always replaced.
func (c *Contract) TxUpdateHealthRecord(
	sender string,
	geneticData *string,
	medicalHistory *string,
	currentMedications []string,
	allergies []string,
) error {
	stub := c.GetStub()

	var record HealthRecord
	err := records.Load(stub, healthRecordType, sender, &record)
	if err != nil && !errors.Is(err, records.ErrNotFound) {
		return err
	}

	if geneticData != nil {
		record.GeneticData = *geneticData
	}
	if medicalHistory != nil {
		record.MedicalHistory = *medicalHistory
	}
	record.CurrentMedications = currentMedications
	record.Allergies = allergies

	record.LastUpdated, err = core.TxUnixMilli(stub)
	if err != nil {
		return err
	}

	return records.Save(stub, healthRecordType, sender, record)
}

// TxGrantDataAccess grants requester read access to the sender's record.
// The call signature puts the sender in the grantor position, so only the
// record owner can create edges originating from themselves.
func (c *Contract) TxGrantDataAccess(sender, requester string) error {
	return acl.GrantAccess(c.GetStub(), sender, requester)
}

// TxRevokeDataAccess revokes requester's read access to the sender's record.
func (c *Contract) TxRevokeDataAccess(sender, requester string) error {
	return acl.RevokeAccess(c.GetStub(), sender, requester)
}

// QueryHealthRecord returns the health record of patientID. The patient and
// principals holding an explicit grant may read; everyone else is denied with
// code 101. An allowed read of a missing record returns nil.
func (c *Contract) QueryHealthRecord(sender, patientID string) (*HealthRecord, error) {
	stub := c.GetStub()

	if err := c.gate.AuthorizeRead(stub, patientID, sender); err != nil {
		return nil, err
	}

	var record HealthRecord
	err := records.Load(stub, healthRecordType, patientID, &record)
	if errors.Is(err, records.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// QueryDataAccess reports whether requester holds an active grant from
// patientID. Revoked and never-granted are both false.
func (c *Contract) QueryDataAccess(patientID, requester string) (bool, error) {
	return acl.CheckAccess(c.GetStub(), patientID, requester)
}
