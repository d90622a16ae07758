package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// AuditLog represents the audit_logs table
// Records logins, account changes and occupancy transitions
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditUserRegistration  = "user_registration"
	AuditUserLogin         = "user_login"
	AuditUserToggle        = "user_toggle"
	AuditPasswordChange    = "user_password_change"
	AuditBedOccupy         = "bed_occupy"
	AuditBedRelease        = "bed_release"
	AuditSlotReserve       = "slot_reserve"
	AuditPrescriptionClose = "prescription_deactivate"
	AuditPatientDelete     = "patient_delete"
	AuditSupplyCreate      = "supply_create"
	AuditSupplyUpdate      = "supply_update"
)

// MaxAuditDetails bounds the stored details text in runes
const MaxAuditDetails = 1000

var auditActions = map[string]bool{
	AuditUserRegistration:  true,
	AuditUserLogin:         true,
	AuditUserToggle:        true,
	AuditPasswordChange:    true,
	AuditBedOccupy:         true,
	AuditBedRelease:        true,
	AuditSlotReserve:       true,
	AuditPrescriptionClose: true,
	AuditPatientDelete:     true,
	AuditSupplyCreate:      true,
	AuditSupplyUpdate:      true,
}

// NewAuditLog builds an entry for one of the Audit* actions. Details longer
// than MaxAuditDetails are cut.
func NewAuditLog(userID *uint, action, details string) (*AuditLog, error) {
	if !auditActions[action] {
		return nil, fmt.Errorf("unknown audit action %q", action)
	}
	if utf8.RuneCountInString(details) > MaxAuditDetails {
		details = string([]rune(details)[:MaxAuditDetails])
	}
	return &AuditLog{UserID: userID, Action: action, Details: details}, nil
}
