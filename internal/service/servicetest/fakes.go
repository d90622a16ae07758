// Package servicetest provides in-memory stores satisfying the service
// interfaces for use in tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

// Users is an in-memory credential store
type Users struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.User
}

func NewUsers() *Users {
	return &Users{byID: make(map[uint]*models.User)}
}

// Add stores user as is and returns it with an id assigned
func (s *Users) Add(user models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	s.byID[user.ID] = &user
	copied := user
	return &copied
}

func (s *Users) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Users) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.FindUserByUsername(ctx, username)
	return err == nil, nil
}

func (s *Users) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byID {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Users) AdminExists(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byID {
		if user.Role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (s *Users) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	copied := *user
	s.byID[user.ID] = &copied
	return nil
}

func (s *Users) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.byID))
	for _, user := range s.byID {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Users) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	return s.update(id, func(user *models.User) { user.LastLoginAt = &at })
}

func (s *Users) SetActive(_ context.Context, id uint, active bool) error {
	return s.update(id, func(user *models.User) { user.Active = active })
}

func (s *Users) UpdatePasswordHash(_ context.Context, id uint, hash string) error {
	return s.update(id, func(user *models.User) { user.PasswordHash = hash })
}

func (s *Users) update(id uint, apply func(user *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	apply(user)
	return nil
}

// AuditLog records audit entries in memory. Err, when set, is returned by
// every write.
type AuditLog struct {
	mu      sync.Mutex
	Entries []models.AuditLog
	Err     error
}

func (a *AuditLog) CreateAuditLog(_ context.Context, userID *uint, action string, details string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	entry, err := models.NewAuditLog(userID, action, details)
	if err != nil {
		return err
	}
	entry.ID = uint(len(a.Entries) + 1)
	entry.CreatedAt = time.Now().UTC()
	a.Entries = append(a.Entries, *entry)
	return nil
}

// Actions lists recorded actions in order
func (a *AuditLog) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	actions := make([]string, 0, len(a.Entries))
	for _, entry := range a.Entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

// Beds is an in-memory bed store. UpdateBedLocked serializes transitions
// the way a row lock does.
type Beds struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.Bed
}

func NewBeds() *Beds {
	return &Beds{byID: make(map[uint]*models.Bed)}
}

func (s *Beds) CreateBed(_ context.Context, bed *models.Bed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Number == bed.Number {
			return repository.ErrDuplicate
		}
	}
	s.nextID++
	bed.ID = s.nextID
	copied := *bed
	s.byID[bed.ID] = &copied
	return nil
}

func (s *Beds) BedNumberExists(_ context.Context, number string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, bed := range s.byID {
		if bed.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *Beds) FindBedByID(_ context.Context, id uint) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bed, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *bed
	return &copied, nil
}

func (s *Beds) ListBeds(_ context.Context, filter repository.BedFilter) ([]models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var beds []models.Bed
	for _, bed := range s.byID {
		if filter.Sector != "" && bed.Sector != filter.Sector {
			continue
		}
		if filter.Occupied != nil && bed.Occupied != *filter.Occupied {
			continue
		}
		beds = append(beds, *bed)
	}
	sort.Slice(beds, func(i, j int) bool {
		if beds[i].Sector != beds[j].Sector {
			return beds[i].Sector < beds[j].Sector
		}
		return beds[i].Number < beds[j].Number
	})
	return beds, nil
}

// UpdateBedLocked applies transition to a copy and stores it only on success
func (s *Beds) UpdateBedLocked(_ context.Context, id uint, transition func(bed *models.Bed) error) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := *stored
	if err := transition(&working); err != nil {
		return nil, err
	}
	*stored = working
	copied := working
	return &copied, nil
}

// Slots is an in-memory schedule slot store
type Slots struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.ScheduleSlot
}

func NewSlots() *Slots {
	return &Slots{byID: make(map[uint]*models.ScheduleSlot)}
}

func (s *Slots) CreateSlot(_ context.Context, slot *models.ScheduleSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	slot.ID = s.nextID
	copied := *slot
	s.byID[slot.ID] = &copied
	return nil
}

func (s *Slots) ListAvailableSlots(_ context.Context, filter repository.SlotFilter) ([]models.ScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var slots []models.ScheduleSlot
	for _, slot := range s.byID {
		if !slot.Available {
			continue
		}
		if filter.ProfessionalID != 0 && slot.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if filter.Date != "" && slot.Date != filter.Date {
			continue
		}
		if filter.Mode != "" && filter.Mode != models.ModeEither &&
			slot.Mode != filter.Mode && slot.Mode != models.ModeEither {
			continue
		}
		slots = append(slots, *slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

func (s *Slots) UpdateSlotLocked(_ context.Context, id uint, transition func(slot *models.ScheduleSlot) error) (*models.ScheduleSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := *stored
	if err := transition(&working); err != nil {
		return nil, err
	}
	*stored = working
	copied := working
	return &copied, nil
}

// Patients is an in-memory patient store. Links sets the linked-record
// counts reported for a patient id.
type Patients struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.Patient
	Links  map[uint]models.PatientLinks
}

func NewPatients() *Patients {
	return &Patients{
		byID:  make(map[uint]*models.Patient),
		Links: make(map[uint]models.PatientLinks),
	}
}

// SetLinks records the linked-record counts for id
func (s *Patients) SetLinks(id uint, links models.PatientLinks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Links[id] = links
}

func (s *Patients) ListPatients(_ context.Context) ([]models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patients := make([]models.Patient, 0, len(s.byID))
	for _, patient := range s.byID {
		patients = append(patients, *patient)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].Name < patients[j].Name })
	return patients, nil
}

func (s *Patients) FindPatientByID(_ context.Context, id uint) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patient, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *patient
	return &copied, nil
}

func (s *Patients) PatientExists(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[id]
	return ok, nil
}

func (s *Patients) DocumentTaken(_ context.Context, document string, excludeID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, patient := range s.byID {
		if patient.Document == document && patient.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Patients) CreatePatient(_ context.Context, patient *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	patient.ID = s.nextID
	copied := *patient
	s.byID[patient.ID] = &copied
	return nil
}

func (s *Patients) UpdatePatient(_ context.Context, patient *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[patient.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *patient
	s.byID[patient.ID] = &copied
	return nil
}

func (s *Patients) DeletePatient(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

func (s *Patients) PatientLinks(_ context.Context, id uint) (models.PatientLinks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Links[id], nil
}

// Professionals is an in-memory professional store
type Professionals struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.Professional
}

func NewProfessionals() *Professionals {
	return &Professionals{byID: make(map[uint]*models.Professional)}
}

func (s *Professionals) ListActiveProfessionals(_ context.Context) ([]models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var professionals []models.Professional
	for _, professional := range s.byID {
		if professional.Active {
			professionals = append(professionals, *professional)
		}
	}
	sort.Slice(professionals, func(i, j int) bool { return professionals[i].Name < professionals[j].Name })
	return professionals, nil
}

func (s *Professionals) ProfessionalExists(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	professional, ok := s.byID[id]
	return ok && professional.Active, nil
}

func (s *Professionals) LicenseExists(_ context.Context, license string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, professional := range s.byID {
		if professional.LicenseNumber == license {
			return true, nil
		}
	}
	return false, nil
}

func (s *Professionals) CreateProfessional(_ context.Context, professional *models.Professional) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	professional.ID = s.nextID
	copied := *professional
	s.byID[professional.ID] = &copied
	return nil
}

// Appointments is an in-memory appointment store
type Appointments struct {
	mu    sync.Mutex
	items []models.Appointment
}

func (s *Appointments) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Appointment(nil), s.items...), nil
}

func (s *Appointments) CreateAppointment(_ context.Context, appointment *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointment.ID = uint(len(s.items) + 1)
	s.items = append(s.items, *appointment)
	return nil
}

// Exams is an in-memory exam store
type Exams struct {
	mu    sync.Mutex
	items []models.Exam
}

func (s *Exams) ListExams(_ context.Context) ([]models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Exam(nil), s.items...), nil
}

func (s *Exams) CreateExam(_ context.Context, exam *models.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exam.ID = uint(len(s.items) + 1)
	s.items = append(s.items, *exam)
	return nil
}

func (s *Exams) RecordExamResult(_ context.Context, id uint, result string) (*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Result = result
			s.items[i].Status = models.StatusDone
			copied := s.items[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Consultations is an in-memory online consultation store
type Consultations struct {
	mu    sync.Mutex
	items []models.OnlineConsultation
}

func (s *Consultations) ListConsultations(_ context.Context) ([]models.OnlineConsultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OnlineConsultation(nil), s.items...), nil
}

func (s *Consultations) CreateConsultation(_ context.Context, consultation *models.OnlineConsultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	consultation.ID = uint(len(s.items) + 1)
	s.items = append(s.items, *consultation)
	return nil
}

func (s *Consultations) UpdateConsultationLocked(_ context.Context, id uint, transition func(c *models.OnlineConsultation) error) (*models.OnlineConsultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		working := s.items[i]
		if err := transition(&working); err != nil {
			return nil, err
		}
		s.items[i] = working
		return &working, nil
	}
	return nil, repository.ErrNotFound
}

// Prescriptions is an in-memory prescription store
type Prescriptions struct {
	mu    sync.Mutex
	items []models.Prescription
}

func (s *Prescriptions) ListActivePrescriptions(_ context.Context, patientID uint) ([]models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var prescriptions []models.Prescription
	for _, prescription := range s.items {
		if !prescription.Active {
			continue
		}
		if patientID != 0 && prescription.PatientID != patientID {
			continue
		}
		prescriptions = append(prescriptions, prescription)
	}
	return prescriptions, nil
}

func (s *Prescriptions) CreatePrescription(_ context.Context, prescription *models.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prescription.ID = uint(len(s.items) + 1)
	s.items = append(s.items, *prescription)
	return nil
}

func (s *Prescriptions) DeactivatePrescription(_ context.Context, id uint) (*models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Active = false
			copied := s.items[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListAuditLogs returns entries newest first
func (a *AuditLog) ListAuditLogs(_ context.Context, filter repository.AuditFilter) ([]models.AuditLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var entries []models.AuditLog
	for i := len(a.Entries) - 1; i >= 0 && len(entries) < limit; i-- {
		entry := a.Entries[i]
		if filter.UserID != 0 && (entry.UserID == nil || *entry.UserID != filter.UserID) {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Supplies is an in-memory supply store
type Supplies struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*models.Supply
}

func NewSupplies() *Supplies {
	return &Supplies{byID: make(map[uint]*models.Supply)}
}

func (s *Supplies) CreateSupply(_ context.Context, supply *models.Supply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	supply.ID = s.nextID
	copied := *supply
	s.byID[supply.ID] = &copied
	return nil
}

func (s *Supplies) FindSupplyByID(_ context.Context, id uint) (*models.Supply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	supply, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *supply
	return &copied, nil
}

func (s *Supplies) ListSupplies(_ context.Context, filter repository.SupplyFilter) ([]models.Supply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var supplies []models.Supply
	for _, supply := range s.byID {
		if filter.Category != "" && supply.Category != filter.Category {
			continue
		}
		if filter.LowStock && supply.StockQuantity >= supply.MinimumQuantity {
			continue
		}
		supplies = append(supplies, *supply)
	}
	sort.Slice(supplies, func(i, j int) bool {
		if supplies[i].Category != supplies[j].Category {
			return supplies[i].Category < supplies[j].Category
		}
		return supplies[i].Name < supplies[j].Name
	})
	return supplies, nil
}

// UpdateSupplyLocked applies change to a copy and stores it only on success
func (s *Supplies) UpdateSupplyLocked(_ context.Context, id uint, change func(supply *models.Supply) error) (*models.Supply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := *stored
	if err := change(&working); err != nil {
		return nil, err
	}
	*stored = working
	copied := working
	return &copied, nil
}
