package models

import "time"

// Exam represents the exams table
type Exam struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PatientID   uint      `gorm:"not null;index" json:"patient_id"`
	ExamType    string    `gorm:"size:100;not null" json:"exam_type"`
	ScheduledAt time.Time `gorm:"not null" json:"scheduled_at"`
	Result      string    `gorm:"type:text" json:"result,omitempty"`
	Status      string    `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Exam model
func (Exam) TableName() string {
	return "exams"
}
