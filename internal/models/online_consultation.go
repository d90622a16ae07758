package models

import (
	"fmt"
	"time"

	"hospital-management-backend/internal/apperror"
)

// Online consultation statuses
const (
	ConsultationScheduled  = "scheduled"
	ConsultationInProgress = "in_progress"
	ConsultationFinished   = "finished"
	ConsultationCancelled  = "cancelled"
)

// OnlineConsultation represents the online_consultations table
type OnlineConsultation struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	PatientID        uint       `gorm:"not null;index" json:"patient_id"`
	ProfessionalID   uint       `gorm:"not null;index" json:"professional_id"`
	StartsAt         time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at"`
	VideoLink        string     `gorm:"size:200" json:"video_link"`
	Status           string     `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Notes            string     `gorm:"type:text" json:"notes,omitempty"`
	ReportedSymptoms string     `gorm:"type:text" json:"reported_symptoms,omitempty"`
	Diagnosis        string     `gorm:"type:text" json:"diagnosis,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// TableName specifies the table name for OnlineConsultation model
func (OnlineConsultation) TableName() string {
	return "online_consultations"
}

// Start moves a scheduled consultation into progress
func (o *OnlineConsultation) Start(at time.Time) error {
	if o.Status != ConsultationScheduled {
		return apperror.Conflict(apperror.CodeInvalidTransition,
			fmt.Sprintf("consultation cannot be started from status %q", o.Status))
	}
	o.Status = ConsultationInProgress
	o.StartsAt = at
	return nil
}

// Finish closes an in-progress consultation with its clinical notes
func (o *OnlineConsultation) Finish(at time.Time, symptoms, diagnosis, notes string) error {
	if o.Status != ConsultationInProgress {
		return apperror.Conflict(apperror.CodeInvalidTransition, "consultation is not in progress")
	}
	o.Status = ConsultationFinished
	o.EndsAt = &at
	o.ReportedSymptoms = symptoms
	o.Diagnosis = diagnosis
	o.Notes = notes
	return nil
}
