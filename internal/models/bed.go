package models

import (
	"time"

	"hospital-management-backend/internal/apperror"
)

// Bed represents the beds table
// Occupied is true if and only if PatientID and OccupiedAt are both set.
type Bed struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Number     string     `gorm:"uniqueIndex;not null;size:10" json:"number"`
	Sector     string     `gorm:"not null;size:50;index" json:"sector"`
	Occupied   bool       `gorm:"not null;default:false" json:"occupied"`
	PatientID  *uint      `gorm:"index" json:"patient_id"`
	OccupiedAt *time.Time `json:"occupied_at"`
}

// TableName specifies the table name for Bed model
func (Bed) TableName() string {
	return "beds"
}

// Occupy assigns the bed to a patient. It never overwrites a current occupant.
func (b *Bed) Occupy(patientID uint, at time.Time) error {
	if b.Occupied {
		return apperror.ErrAlreadyOccupied
	}
	b.Occupied = true
	b.PatientID = &patientID
	b.OccupiedAt = &at
	return nil
}

// Release returns the bed to the available state
func (b *Bed) Release() error {
	if !b.Occupied {
		return apperror.ErrAlreadyAvailable
	}
	b.Occupied = false
	b.PatientID = nil
	b.OccupiedAt = nil
	return nil
}
