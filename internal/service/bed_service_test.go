package service

import (
	"context"
	"sync"
	"testing"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/internal/service/servicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bedFixture struct {
	service  *BedService
	beds     *servicetest.Beds
	patients *servicetest.Patients
	audit    *servicetest.AuditLog
	actor    *models.User
}

func newBedFixture(t *testing.T) *bedFixture {
	t.Helper()
	beds := servicetest.NewBeds()
	patients := servicetest.NewPatients()
	audit := &servicetest.AuditLog{}
	service := NewBedService(beds, patients, audit, zap.NewNop()).WithClock(fixedClock(issuedAt))
	return &bedFixture{
		service:  service,
		beds:     beds,
		patients: patients,
		audit:    audit,
		actor:    &models.User{ID: 1, Username: "nina", Role: models.RoleNurse},
	}
}

func (f *bedFixture) addPatients(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.patients.CreatePatient(context.Background(), &models.Patient{Name: "Patient", Document: string(rune('A' + i))}))
	}
}

func (f *bedFixture) addBeds(t *testing.T, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := f.service.CreateBed(context.Background(), string(rune('0'+i)), "ICU")
		require.NoError(t, err)
	}
}

func TestBedService_OccupyReleaseScenario(t *testing.T) {
	f := newBedFixture(t)
	f.addPatients(t, 3)
	f.addBeds(t, 5)
	ctx := context.Background()

	bed, err := f.service.Occupy(ctx, f.actor, 5, 2)
	require.NoError(t, err)
	assert.True(t, bed.Occupied)
	require.NotNil(t, bed.PatientID)
	assert.Equal(t, uint(2), *bed.PatientID)
	require.NotNil(t, bed.OccupiedAt)
	assert.Equal(t, issuedAt, *bed.OccupiedAt)

	_, err = f.service.Occupy(ctx, f.actor, 5, 3)
	assert.ErrorIs(t, err, apperror.ErrAlreadyOccupied)

	stored, err := f.beds.FindBedByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, uint(2), *stored.PatientID)

	bed, err = f.service.Release(ctx, f.actor, 5)
	require.NoError(t, err)
	assert.False(t, bed.Occupied)
	assert.Nil(t, bed.PatientID)
	assert.Nil(t, bed.OccupiedAt)

	bed, err = f.service.Occupy(ctx, f.actor, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), *bed.PatientID)

	assert.Equal(t, []string{models.AuditBedOccupy, models.AuditBedRelease, models.AuditBedOccupy}, f.audit.Actions())
}

func TestBedService_Failures(t *testing.T) {
	f := newBedFixture(t)
	f.addPatients(t, 1)
	f.addBeds(t, 1)
	ctx := context.Background()

	_, err := f.service.Release(ctx, f.actor, 1)
	assert.ErrorIs(t, err, apperror.ErrAlreadyAvailable)

	_, err = f.service.Occupy(ctx, f.actor, 1, 42)
	assert.ErrorIs(t, err, apperror.ErrPatientNotFound)

	stored, err := f.beds.FindBedByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, stored.Occupied)
	assert.Nil(t, stored.PatientID)

	_, err = f.service.Occupy(ctx, f.actor, 9, 1)
	assert.ErrorIs(t, err, apperror.ErrBedNotFound)

	_, err = f.service.Release(ctx, f.actor, 9)
	assert.ErrorIs(t, err, apperror.ErrBedNotFound)

	_, err = f.service.Occupy(ctx, f.actor, 1, 0)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Empty(t, f.audit.Actions())
}

func TestBedService_OccupiedReportedBeforeMissingPatient(t *testing.T) {
	f := newBedFixture(t)
	f.addPatients(t, 1)
	f.addBeds(t, 1)
	ctx := context.Background()

	_, err := f.service.Occupy(ctx, f.actor, 1, 1)
	require.NoError(t, err)

	_, err = f.service.Occupy(ctx, f.actor, 1, 0)
	assert.ErrorIs(t, err, apperror.ErrAlreadyOccupied)

	_, err = f.service.Occupy(ctx, f.actor, 99, 0)
	assert.ErrorIs(t, err, apperror.ErrBedNotFound)
}

func TestBedService_ConcurrentOccupyHasOneWinner(t *testing.T) {
	f := newBedFixture(t)
	const callers = 20
	f.addPatients(t, callers)
	f.addBeds(t, 1)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 1; i <= callers; i++ {
		wg.Add(1)
		go func(patientID uint) {
			defer wg.Done()
			_, err := f.service.Occupy(context.Background(), f.actor, 1, patientID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperror.CodeOf(err) == apperror.CodeAlreadyOccupied:
				conflicts++
			}
		}(uint(i))
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)
}

func TestBedService_CreateAndList(t *testing.T) {
	f := newBedFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateBed(ctx, "101", "Ward A")
	require.NoError(t, err)
	_, err = f.service.CreateBed(ctx, "201", "ICU")
	require.NoError(t, err)

	_, err = f.service.CreateBed(ctx, "101", "Ward B")
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = f.service.CreateBed(ctx, "", "ICU")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	icu, err := f.service.ListBeds(ctx, repository.BedFilter{Sector: "ICU"})
	require.NoError(t, err)
	require.Len(t, icu, 1)
	assert.Equal(t, "201", icu[0].Number)

	occupied := false
	available, err := f.service.ListBeds(ctx, repository.BedFilter{Occupied: &occupied})
	require.NoError(t, err)
	assert.Len(t, available, 2)
}
