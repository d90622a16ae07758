package models

import (
	"time"

	"hospital-management-backend/internal/apperror"
)

// AttendanceMode is how a schedule slot can be attended
type AttendanceMode string

const (
	ModeInPerson AttendanceMode = "in_person"
	ModeOnline   AttendanceMode = "online"
	ModeEither   AttendanceMode = "either"
)

// Valid reports whether m is a known attendance mode
func (m AttendanceMode) Valid() bool {
	switch m {
	case ModeInPerson, ModeOnline, ModeEither:
		return true
	}
	return false
}

// ScheduleSlot represents the schedule_slots table
// Available starts true and is consumed by exactly one reservation.
type ScheduleSlot struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ProfessionalID uint           `gorm:"not null;index" json:"professional_id"`
	Date           string         `gorm:"size:10;not null;index" json:"date"`
	StartTime      string         `gorm:"size:5;not null" json:"start_time"`
	EndTime        string         `gorm:"size:5;not null" json:"end_time"`
	Mode           AttendanceMode `gorm:"size:20;not null" json:"mode"`
	Available      bool           `gorm:"not null;default:true;index" json:"available"`
	Notes          string         `gorm:"size:200" json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TableName specifies the table name for ScheduleSlot model
func (ScheduleSlot) TableName() string {
	return "schedule_slots"
}

// Reserve consumes the slot
func (s *ScheduleSlot) Reserve() error {
	if !s.Available {
		return apperror.ErrSlotAlreadyReserved
	}
	s.Available = false
	return nil
}
