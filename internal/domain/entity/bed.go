package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BedType drives which admissions a bed is eligible for
type BedType string

const (
	BedTypeICU     BedType = "ICU"
	BedTypeGeneral BedType = "General"
	BedTypePrivate BedType = "Private"
)

// AllBedTypes lists bed types in their canonical order
var AllBedTypes = []BedType{BedTypeICU, BedTypeGeneral, BedTypePrivate}

// BedStatus represents the occupancy state of a bed
type BedStatus string

const (
	BedStatusAvailable   BedStatus = "Available"
	BedStatusOccupied    BedStatus = "Occupied"
	BedStatusCleaning    BedStatus = "Cleaning"
	BedStatusMaintenance BedStatus = "Maintenance"
	BedStatusReserved    BedStatus = "Reserved"
)

// EquipmentStatus represents the working state of a piece of bed equipment
type EquipmentStatus string

const (
	EquipmentWorking     EquipmentStatus = "Working"
	EquipmentMaintenance EquipmentStatus = "Maintenance"
	EquipmentOutOfOrder  EquipmentStatus = "Out of Order"
)

// BedEquipment is a single equipment entry attached to a bed
type BedEquipment struct {
	Name   string          `json:"name"`
	Status EquipmentStatus `json:"status"`
}

// Bed represents a physical hospital bed.
// AssignedPatientID is set if and only if Status is Occupied.
type Bed struct {
	ID                uuid.UUID                         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Ward              string                            `gorm:"type:varchar(100);not null;index" json:"ward"`
	RoomNumber        string                            `gorm:"type:varchar(50);not null" json:"room_number"`
	BedNumber         string                            `gorm:"type:varchar(50);not null" json:"bed_number"`
	Type              BedType                           `gorm:"type:varchar(20);not null;index" json:"type"`
	Status            BedStatus                         `gorm:"type:varchar(20);not null;default:'Available';index" json:"status"`
	AssignedPatientID *string                           `gorm:"type:varchar(100);index" json:"assigned_patient_id"`
	Equipment         datatypes.JSONSlice[BedEquipment] `gorm:"type:jsonb" json:"equipment"`
	Notes             string                            `gorm:"type:varchar(500)" json:"notes,omitempty"`
	IsActive          bool                              `gorm:"not null;default:true;index" json:"is_active"`
	LastUpdated       time.Time                         `gorm:"not null" json:"last_updated"`
	CreatedAt         time.Time                         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time                         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bed) TableName() string {
	return "beds"
}

// IsAvailable reports whether the bed can take a patient right now
func (b *Bed) IsAvailable() bool {
	return b.IsActive && b.Status == BedStatusAvailable && b.AssignedPatientID == nil
}

// IsOccupied checks if a patient is bound to the bed
func (b *Bed) IsOccupied() bool {
	return b.Status == BedStatusOccupied
}

// HasWorkingEquipment reports whether any working equipment name contains requirement,
// ignoring case.
func (b *Bed) HasWorkingEquipment(requirement string) bool {
	needle := strings.ToLower(requirement)
	for _, eq := range b.Equipment {
		if eq.Status == EquipmentWorking && strings.Contains(strings.ToLower(eq.Name), needle) {
			return true
		}
	}
	return false
}

// Location returns the ward/room/bed snapshot used by admissions
func (b *Bed) Location() BedLocation {
	return BedLocation{
		BedID:      b.ID,
		Ward:       b.Ward,
		RoomNumber: b.RoomNumber,
		BedNumber:  b.BedNumber,
	}
}

// BedLocation is the denormalized location an admission is bound to
type BedLocation struct {
	BedID      uuid.UUID
	Ward       string
	RoomNumber string
	BedNumber  string
}

// BedFilter holds list filters and paging for beds
type BedFilter struct {
	Ward      string
	Type      BedType
	Status    BedStatus
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// BedStatusCounts holds per-status counts of active beds
type BedStatusCounts struct {
	Total       int64
	Available   int64
	Occupied    int64
	Cleaning    int64
	Maintenance int64
	Reserved    int64
}
