package models

import "time"

// AppointmentKind distinguishes in-person visits from telemedicine
type AppointmentKind string

const (
	AppointmentInPerson     AppointmentKind = "in_person"
	AppointmentTelemedicine AppointmentKind = "telemedicine"
)

// Appointment and exam statuses
const (
	StatusScheduled = "scheduled"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

// Appointment represents the appointments table
type Appointment struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	PatientID      uint            `gorm:"not null;index" json:"patient_id"`
	ProfessionalID uint            `gorm:"not null;index" json:"professional_id"`
	ScheduledAt    time.Time       `gorm:"not null;index" json:"scheduled_at"`
	Kind           AppointmentKind `gorm:"size:20;not null" json:"kind"`
	Status         string          `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
