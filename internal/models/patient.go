package models

import "time"

// Patient represents the patients table
type Patient struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Document  string     `gorm:"size:20;not null;uniqueIndex" json:"document"`
	Phone     string     `gorm:"size:20" json:"phone,omitempty"`
	Email     string     `gorm:"size:100" json:"email,omitempty"`
	Address   string     `gorm:"type:text" json:"address,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}

// PatientLinks counts the records that keep a patient from being deleted
type PatientLinks struct {
	Appointments        int64 `json:"appointments"`
	Exams               int64 `json:"exams"`
	OnlineConsultations int64 `json:"online_consultations"`
	ActivePrescriptions int64 `json:"active_prescriptions"`
	OccupiedBed         bool  `json:"occupied_bed"`
}

// Any reports whether at least one linked record exists
func (l PatientLinks) Any() bool {
	return l.Appointments > 0 || l.Exams > 0 || l.OnlineConsultations > 0 ||
		l.ActivePrescriptions > 0 || l.OccupiedBed
}
