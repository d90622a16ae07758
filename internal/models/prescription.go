package models

import "time"

// Prescription represents the prescriptions table
type Prescription struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	PatientID            uint      `gorm:"not null;index" json:"patient_id"`
	ProfessionalID       uint      `gorm:"not null;index" json:"professional_id"`
	OnlineConsultationID *uint     `gorm:"index" json:"online_consultation_id,omitempty"`
	AppointmentID        *uint     `gorm:"index" json:"appointment_id,omitempty"`
	Medication           string    `gorm:"size:200;not null" json:"medication"`
	Dosage               string    `gorm:"size:100;not null" json:"dosage"`
	Frequency            string    `gorm:"size:100;not null" json:"frequency"`
	Duration             string    `gorm:"size:50;not null" json:"duration"`
	Instructions         string    `gorm:"type:text" json:"instructions,omitempty"`
	Active               bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt            time.Time `json:"created_at"`
}

// TableName specifies the table name for Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}
