package service

import (
	"context"
	"testing"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service/servicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScheduleFixture(t *testing.T) (*ScheduleService, *servicetest.AuditLog, uint) {
	t.Helper()
	professionals := servicetest.NewProfessionals()
	professional := &models.Professional{Name: "Dr. House", LicenseNumber: "CRM-1", Kind: models.KindPhysician, Active: true}
	require.NoError(t, professionals.CreateProfessional(context.Background(), professional))

	audit := &servicetest.AuditLog{}
	return NewScheduleService(servicetest.NewSlots(), professionals, audit, zap.NewNop()), audit, professional.ID
}

func TestScheduleService_ReserveOnce(t *testing.T) {
	service, audit, professionalID := newScheduleFixture(t)
	ctx := context.Background()
	actor := &models.User{ID: 1, Role: models.RoleReceptionist}

	slot, err := service.CreateSlot(ctx, SlotInput{
		ProfessionalID: professionalID,
		Date:           "2026-03-02",
		StartTime:      "09:00",
		EndTime:        "09:30",
		Mode:           "online",
	})
	require.NoError(t, err)
	assert.True(t, slot.Available)

	reserved, err := service.Reserve(ctx, actor, slot.ID)
	require.NoError(t, err)
	assert.False(t, reserved.Available)

	for i := 0; i < 3; i++ {
		_, err = service.Reserve(ctx, actor, slot.ID)
		assert.ErrorIs(t, err, apperror.ErrSlotAlreadyReserved)
	}

	_, err = service.Reserve(ctx, actor, 77)
	assert.ErrorIs(t, err, apperror.ErrSlotNotFound)

	assert.Equal(t, []string{models.AuditSlotReserve}, audit.Actions())

	open, err := service.ListAvailable(ctx, repository.SlotFilter{})
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestScheduleService_CreateSlotValidation(t *testing.T) {
	service, _, professionalID := newScheduleFixture(t)

	valid := func() SlotInput {
		return SlotInput{ProfessionalID: professionalID, Date: "2026-03-02", StartTime: "09:00", EndTime: "09:30"}
	}

	tests := []struct {
		name     string
		mutate   func(in *SlotInput)
		wantCode apperror.Code
	}{
		{name: "missing date", mutate: func(in *SlotInput) { in.Date = "" }, wantCode: apperror.CodeInvalidInput},
		{name: "bad date", mutate: func(in *SlotInput) { in.Date = "02/03/2026" }, wantCode: apperror.CodeInvalidInput},
		{name: "bad start", mutate: func(in *SlotInput) { in.StartTime = "9h" }, wantCode: apperror.CodeInvalidInput},
		{name: "end before start", mutate: func(in *SlotInput) { in.EndTime = "08:30" }, wantCode: apperror.CodeInvalidInput},
		{name: "end equals start", mutate: func(in *SlotInput) { in.EndTime = "09:00" }, wantCode: apperror.CodeInvalidInput},
		{name: "unknown mode", mutate: func(in *SlotInput) { in.Mode = "carrier-pigeon" }, wantCode: apperror.CodeInvalidInput},
		{name: "unknown professional", mutate: func(in *SlotInput) { in.ProfessionalID = 404 }, wantCode: apperror.CodeProfessionalNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := service.CreateSlot(context.Background(), in)
			assert.Equal(t, tt.wantCode, apperror.CodeOf(err))
		})
	}

	slot, err := service.CreateSlot(context.Background(), valid())
	require.NoError(t, err)
	assert.Equal(t, models.ModeEither, slot.Mode)
}

func TestScheduleService_ListAvailableByMode(t *testing.T) {
	service, _, professionalID := newScheduleFixture(t)
	ctx := context.Background()

	for _, mode := range []string{"in_person", "online", "either"} {
		_, err := service.CreateSlot(ctx, SlotInput{
			ProfessionalID: professionalID,
			Date:           "2026-03-02",
			StartTime:      "10:00",
			EndTime:        "10:30",
			Mode:           mode,
		})
		require.NoError(t, err)
	}

	online, err := service.ListAvailable(ctx, repository.SlotFilter{Mode: models.ModeOnline})
	require.NoError(t, err)
	require.Len(t, online, 2)
	assert.Equal(t, models.ModeOnline, online[0].Mode)
	assert.Equal(t, models.ModeEither, online[1].Mode)

	_, err = service.ListAvailable(ctx, repository.SlotFilter{Mode: "fax"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
