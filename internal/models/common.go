// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Role is a participant's fixed category. It determines which stage
// transitions the participant may receive and never changes once assigned.
type Role string

const (
	RoleSupplier     Role = "supplier"
	RoleManufacturer Role = "manufacturer"
	RoleDistributor  Role = "distributor"
	RoleRetailer     Role = "retailer"
	RoleConsumer     Role = "consumer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSupplier, RoleManufacturer, RoleDistributor, RoleRetailer, RoleConsumer:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleSupplier:
		return "Raw Material Supplier"
	case RoleManufacturer:
		return "Manufacturer"
	case RoleDistributor:
		return "Distributor"
	case RoleRetailer:
		return "Retailer"
	case RoleConsumer:
		return "Consumer"
	}
	return "Unknown"
}

// Stage is one position in the fixed custody life cycle of a product.
// Stages are strictly ordered and advance one step at a time; Sold is
// terminal.
type Stage int

const (
	StageInit Stage = iota
	StageRawMaterialSupplied
	StageManufactured
	StageDistributed
	StageAtRetailer
	StageSold
)

func (s Stage) Label() string {
	switch s {
	case StageInit:
		return "Init"
	case StageRawMaterialSupplied:
		return "Raw Material Supplied"
	case StageManufactured:
		return "Manufactured"
	case StageDistributed:
		return "Distributed"
	case StageAtRetailer:
		return "At Retailer"
	case StageSold:
		return "Sold"
	}
	return "Unknown"
}

func (s Stage) Terminal() bool {
	return s >= StageSold
}

func (s Stage) Next() Stage {
	return s + 1
}

// ExpectedRecipientRole returns the role the next custodian must hold for a
// handoff out of the given stage. Total over all non-terminal stages; the
// second return is false only for Sold.
func ExpectedRecipientRole(s Stage) (Role, bool) {
	switch s {
	case StageInit:
		return RoleManufacturer, true
	case StageRawMaterialSupplied:
		return RoleDistributor, true
	case StageManufactured:
		return RoleRetailer, true
	case StageDistributed:
		return RoleConsumer, true
	case StageAtRetailer:
		// consumer receipt marks the product Sold
		return RoleConsumer, true
	}
	return "", false
}
