package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"hospital-management-backend/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBedOccupyRelease(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bed := &Bed{ID: 5, Number: "5", Sector: "ICU"}

	require.NoError(t, bed.Occupy(2, at))
	assert.True(t, bed.Occupied)
	require.NotNil(t, bed.PatientID)
	assert.Equal(t, uint(2), *bed.PatientID)
	require.NotNil(t, bed.OccupiedAt)
	assert.Equal(t, at, *bed.OccupiedAt)

	err := bed.Occupy(3, at.Add(time.Hour))
	assert.ErrorIs(t, err, apperror.ErrAlreadyOccupied)
	assert.Equal(t, uint(2), *bed.PatientID, "occupant must not be overwritten")

	require.NoError(t, bed.Release())
	assert.False(t, bed.Occupied)
	assert.Nil(t, bed.PatientID)
	assert.Nil(t, bed.OccupiedAt)

	assert.ErrorIs(t, bed.Release(), apperror.ErrAlreadyAvailable)

	require.NoError(t, bed.Occupy(3, at))
	assert.Equal(t, uint(3), *bed.PatientID)
}

func TestScheduleSlotReserveOnce(t *testing.T) {
	slot := &ScheduleSlot{ID: 1, Available: true}

	require.NoError(t, slot.Reserve())
	assert.False(t, slot.Available)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, slot.Reserve(), apperror.ErrSlotAlreadyReserved)
		assert.False(t, slot.Available)
	}
}

func TestOnlineConsultationTransitions(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	c := &OnlineConsultation{Status: ConsultationScheduled}

	err := c.Finish(now, "", "", "")
	assert.Equal(t, apperror.CodeInvalidTransition, apperror.CodeOf(err))

	require.NoError(t, c.Start(now))
	assert.Equal(t, ConsultationInProgress, c.Status)

	assert.Error(t, c.Start(now))

	require.NoError(t, c.Finish(now.Add(20*time.Minute), "fever", "flu", "rest"))
	assert.Equal(t, ConsultationFinished, c.Status)
	require.NotNil(t, c.EndsAt)
	assert.Equal(t, "flu", c.Diagnosis)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{"physician", RolePhysician, false},
		{"nurse", RoleNurse, false},
		{"receptionist", RoleReceptionist, false},
		{"medico", "", true},
		{"", "", true},
		{"Admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatientLinksAny(t *testing.T) {
	assert.False(t, PatientLinks{}.Any())
	assert.True(t, PatientLinks{Exams: 1}.Any())
	assert.True(t, PatientLinks{OccupiedBed: true}.Any())
}

func TestAttendanceModeValid(t *testing.T) {
	assert.True(t, ModeEither.Valid())
	assert.False(t, AttendanceMode("both").Valid())
}

func TestSupplyStockStatus(t *testing.T) {
	tests := []struct {
		name    string
		stock   int
		minimum int
		want    StockStatus
	}{
		{"below minimum", 9, 10, StockLow},
		{"at minimum", 10, 10, StockOK},
		{"above minimum", 11, 10, StockOK},
		{"no minimum", 0, 0, StockOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			supply := Supply{Name: "Gauze", StockQuantity: tt.stock, MinimumQuantity: tt.minimum}
			assert.Equal(t, tt.want, supply.StockStatus())

			raw, err := json.Marshal(supply)
			require.NoError(t, err)
			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, string(tt.want), decoded["stock_status"])
			assert.Equal(t, "Gauze", decoded["name"])
		})
	}
}

func TestNewAuditLog(t *testing.T) {
	entry, err := NewAuditLog(nil, AuditSupplyUpdate, strings.Repeat("é", MaxAuditDetails+5))
	require.NoError(t, err)
	assert.Equal(t, AuditSupplyUpdate, entry.Action)
	assert.Equal(t, MaxAuditDetails, utf8.RuneCountInString(entry.Details))

	_, err = NewAuditLog(nil, "something_else", "")
	assert.Error(t, err)
}
