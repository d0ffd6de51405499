// Package wearable implements the wearable device integration contract:
// principals register devices under caller-supplied device ids and sync
// health metrics through devices they own.
package wearable

import (
	"errors"

	"github.com/vitalchain/healthcc/core"
	"github.com/vitalchain/healthcc/core/records"
)

// record type prefixes for devices and per-patient metrics
const (
	deviceRecordType  = "device"
	metricsRecordType = "health_metrics"
)

// Device is a registered wearable device.
type Device struct {
	Owner      string `json:"owner"`
	DeviceType string `json:"deviceType"`
	LastSynced int64  `json:"lastSynced"`
}

// HealthMetrics is the latest metrics snapshot synced for a patient.
type HealthMetrics struct {
	HeartRate   []int   `json:"heartRate"`
	Steps       int64   `json:"steps"`
	SleepHours  float64 `json:"sleepHours"`
	LastUpdated int64   `json:"lastUpdated"`
}

// Contract is the wearable device chaincode.
type Contract struct {
	core.BaseContract
	gate core.Gate
}

// New creates the contract. viewers are principals allowed to read any
// patient's metrics in addition to the patient and explicit grantees.
func New(viewers ...string) *Contract {
	return &Contract{gate: core.Gate{Viewers: viewers}}
}

// TxRegisterDevice registers a device under the caller-supplied deviceID.
// Re-registration silently overwrites the previous registration.
func (c *Contract) TxRegisterDevice(sender, deviceID, deviceType string) error {
	stub := c.GetStub()

	lastSynced, err := core.TxUnixMilli(stub)
	if err != nil {
		return err
	}

	device := Device{
		Owner:      sender,
		DeviceType: deviceType,
		LastSynced: lastSynced,
	}
	return records.Save(stub, deviceRecordType, deviceID, device)
}

// TxUpdateHealthMetrics stores a metrics snapshot for the sender, synced
// through one of their devices. Unknown devices and devices owned by someone
// else are both denied with code 101, leaving prior metrics unchanged.
func (c *Contract) TxUpdateHealthMetrics(sender, deviceID string, heartRate []int, steps int64, sleepHours float64) error {
	stub := c.GetStub()

	var device Device
	err := records.Load(stub, deviceRecordType, deviceID, &device)
	if errors.Is(err, records.ErrNotFound) || (err == nil && device.Owner != sender) {
		return core.Errorf(core.CodeNotFound, "device %q is not registered to %q", deviceID, sender)
	}
	if err != nil {
		return err
	}

	now, err := core.TxUnixMilli(stub)
	if err != nil {
		return err
	}

	metrics := HealthMetrics{
		HeartRate:   heartRate,
		Steps:       steps,
		SleepHours:  sleepHours,
		LastUpdated: now,
	}
	if err = records.Save(stub, metricsRecordType, sender, metrics); err != nil {
		return err
	}

	device.LastSynced = now
	return records.Save(stub, deviceRecordType, deviceID, device)
}

// QueryHealthMetrics returns the metrics of patientID. The patient, explicit
// grantees and configured viewers may read; everyone else is denied with
// code 101. An allowed read with no synced metrics returns nil.
func (c *Contract) QueryHealthMetrics(sender, patientID string) (*HealthMetrics, error) {
	stub := c.GetStub()

	if err := c.gate.AuthorizeRead(stub, patientID, sender); err != nil {
		return nil, err
	}

	var metrics HealthMetrics
	err := records.Load(stub, metricsRecordType, patientID, &metrics)
	if errors.Is(err, records.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

// QueryDeviceInfo returns the registration under deviceID, nil when the
// device is unknown. Never denied.
func (c *Contract) QueryDeviceInfo(deviceID string) (*Device, error) {
	var device Device
	err := records.Load(c.GetStub(), deviceRecordType, deviceID, &device)
	if errors.Is(err, records.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}
