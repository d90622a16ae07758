package models

import "time"

// ProfessionalKind is the professional category of a staff member
type ProfessionalKind string

const (
	KindPhysician  ProfessionalKind = "physician"
	KindNurse      ProfessionalKind = "nurse"
	KindTechnician ProfessionalKind = "technician"
)

// Valid reports whether k is a known professional kind
func (k ProfessionalKind) Valid() bool {
	switch k {
	case KindPhysician, KindNurse, KindTechnician:
		return true
	}
	return false
}

// Professional represents the professionals table
type Professional struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"size:100;not null" json:"name"`
	Specialty     string           `gorm:"size:50" json:"specialty"`
	LicenseNumber string           `gorm:"size:20;not null;uniqueIndex" json:"license_number"`
	Phone         string           `gorm:"size:20" json:"phone,omitempty"`
	Email         string           `gorm:"size:100" json:"email,omitempty"`
	Kind          ProfessionalKind `gorm:"size:20;not null" json:"kind"`
	Active        bool             `gorm:"not null;default:true;index" json:"active"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TableName specifies the table name for Professional model
func (Professional) TableName() string {
	return "professionals"
}
