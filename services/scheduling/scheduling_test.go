package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "safelife/database/repository/booking"
	"safelife/models"
)

// fakeAvailabilityRepo keeps schedules in memory with the same semantics as
// the mongo implementation: day writes are total replacements, absent
// professionals and days read as empty.
type fakeAvailabilityRepo struct {
	schedules map[string]map[string][]string
	failWith  error
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{schedules: make(map[string]map[string][]string)}
}

func (f *fakeAvailabilityRepo) EnsureForProfessional(_ context.Context, prof models.Professional) error {
	if f.schedules[prof.ID] == nil {
		f.schedules[prof.ID] = make(map[string][]string)
	}
	return nil
}

func (f *fakeAvailabilityRepo) SetDaySlots(_ context.Context, professionalID, day string, slots []string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.schedules[professionalID] == nil {
		f.schedules[professionalID] = make(map[string][]string)
	}
	f.schedules[professionalID][day] = append([]string(nil), slots...)
	return nil
}

func (f *fakeAvailabilityRepo) GetDaySlots(_ context.Context, professionalID, day string) ([]string, error) {
	slots, ok := f.schedules[professionalID][day]
	if !ok {
		return []string{}, nil
	}
	return slots, nil
}

func (f *fakeAvailabilityRepo) GetSchedule(_ context.Context, professionalID string) (map[string][]string, error) {
	sched, ok := f.schedules[professionalID]
	if !ok {
		return map[string][]string{}, nil
	}
	return sched, nil
}

func (f *fakeAvailabilityRepo) ListProfessionals(_ context.Context) ([]models.Professional, error) {
	var pros []models.Professional
	for id := range f.schedules {
		pros = append(pros, models.Professional{ID: id})
	}
	return pros, nil
}

// fakeBookingRepo mirrors the conditional-insert behavior of the mongo repo:
// a second insert for the same slot key fails with ErrSlotTaken.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	failWith error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Insert(_ context.Context, b *models.Booking) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, exists := f.bookings[b.ID]; exists {
		return bookingRepo.ErrSlotTaken
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) ExistsForPatient(_ context.Context, professionalID, patientID, day, slot string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, b := range f.bookings {
		if b.ProfessionalID == professionalID && b.PatientID == patientID && b.Day == day && b.Time == slot {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) ExistsForSlot(_ context.Context, professionalID, day, slot string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, b := range f.bookings {
		if b.ProfessionalID == professionalID && b.Day == day && b.Time == slot {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	return b, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	b, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) ListByProfessional(_ context.Context, professionalID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProfessionalID == professionalID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByPatient(_ context.Context, patientID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	pros     []models.Professional
	failWith error
}

func (f *fakeUserRepo) Create(context.Context, *models.User) error          { return nil }
func (f *fakeUserRepo) GetByID(context.Context, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) Delete(context.Context, string) error                     { return nil }
func (f *fakeUserRepo) UpdatePasswordHash(context.Context, string, string) error { return nil }
func (f *fakeUserRepo) SetConsent(context.Context, string, time.Time) error      { return nil }
func (f *fakeUserRepo) ListProfessionals(context.Context) ([]models.Professional, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.pros, nil
}

func newService() (*DefaultSchedulingService, *fakeAvailabilityRepo, *fakeBookingRepo) {
	availRepo := newFakeAvailabilityRepo()
	bkRepo := newFakeBookingRepo()
	svc := &DefaultSchedulingService{
		AvailabilityRepo: availRepo,
		BookingRepo:      bkRepo,
		UserRepo:         &fakeUserRepo{},
	}
	return svc, availRepo, bkRepo
}

func patientInfo(name string) models.PatientInfo {
	return models.PatientInfo{Name: name, Email: name + "@example.com", Phone: "11999990000"}
}

func bookingReq(professionalID, patientID, day, slot string) BookingRequest {
	return BookingRequest{
		ProfessionalID: professionalID,
		PatientID:      patientID,
		Day:            day,
		Time:           slot,
		Patient:        patientInfo("Paciente"),
	}
}

func TestAvailabilityRoundTrip(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetDaySlots(ctx, "prof-1", "Seg", []string{"08:00", "09:00"}))

	slots, err := svc.GetDaySlots(ctx, "prof-1", "Seg")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "09:00"}, slots)
}

func TestGetDaySlotsEmptyForUnknownProfessional(t *testing.T) {
	svc, _, _ := newService()

	slots, err := svc.GetDaySlots(context.Background(), "nobody", "Seg")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSetDaySlotsDeduplicatesPreservingOrder(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetDaySlots(ctx, "prof-1", "Ter", []string{"10:00", "08:00", "10:00", ""}))

	slots, err := svc.GetDaySlots(ctx, "prof-1", "Ter")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "08:00"}, slots)
}

func TestSetDaySlotsRejectsUnknownDay(t *testing.T) {
	svc, _, _ := newService()

	err := svc.SetDaySlots(context.Background(), "prof-1", "Funday", []string{"08:00"})
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeValidation))
}

func TestBookAppointmentDuplicateByPatient(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.BookAppointment(ctx, bookingReq("prof-1", "pat-a", "Seg", "08:00"))
	require.NoError(t, err)

	_, err = svc.BookAppointment(ctx, bookingReq("prof-1", "pat-a", "Seg", "08:00"))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeDuplicateBooking))
}

// The concrete scheduling scenario: P opens Seg {08:00, 09:00}; patient A
// takes 08:00; patient B is refused 08:00 but gets 09:00.
func TestBookAppointmentSlotConflictAcrossPatients(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetDaySlots(ctx, "prof-P", "Seg", []string{"08:00", "09:00"}))

	booking, err := svc.BookAppointment(ctx, bookingReq("prof-P", "pat-A", "Seg", "08:00"))
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	_, err = svc.BookAppointment(ctx, bookingReq("prof-P", "pat-B", "Seg", "08:00"))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeSlotTaken))

	_, err = svc.BookAppointment(ctx, bookingReq("prof-P", "pat-B", "Seg", "09:00"))
	require.NoError(t, err)
}

func TestBookAppointmentValidationBeforeIO(t *testing.T) {
	svc, _, bkRepo := newService()
	bkRepo.failWith = errors.New("backend must not be reached")

	cases := []BookingRequest{
		{PatientID: "p", Day: "Seg", Time: "08:00", Patient: patientInfo("x")},
		{ProfessionalID: "pr", Day: "Seg", Time: "08:00", Patient: patientInfo("x")},
		{ProfessionalID: "pr", PatientID: "p", Day: "NoDay", Time: "08:00", Patient: patientInfo("x")},
		{ProfessionalID: "pr", PatientID: "p", Day: "Seg", Patient: patientInfo("x")},
		{ProfessionalID: "pr", PatientID: "p", Day: "Seg", Time: "08:00"},
	}
	for _, req := range cases {
		_, err := svc.BookAppointment(context.Background(), req)
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeValidation), "expected validation error, got %v", err)
	}
}

func TestBookingIDDeterministic(t *testing.T) {
	a := BookingIDFor("prof-1", "Seg", "08:00")
	b := BookingIDFor("prof-1", "Seg", "08:00")
	c := BookingIDFor("prof-1", "Seg", "09:00")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestConfirmBookingTransition(t *testing.T) {
	svc, _, bkRepo := newService()
	ctx := context.Background()

	booking, err := svc.BookAppointment(ctx, bookingReq("prof-1", "pat-a", "Qua", "14:00"))
	require.NoError(t, err)

	bkRepo.bookings[booking.ID].Status = models.BookingStatusPending
	require.NoError(t, svc.ConfirmBooking(ctx, booking.ID))

	got, err := bkRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
}

func TestCanRemoveGuard(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.BookAppointment(ctx, bookingReq("prof-1", "pat-a", "Seg", "08:00"))
	require.NoError(t, err)

	ok, err := svc.CanRemove(ctx, "prof-1", "Seg", "08:00")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanRemove(ctx, "prof-1", "Seg", "09:00")
	require.NoError(t, err)
	assert.True(t, ok)
}

// A failed conflict check must surface as an error, never as "no conflict".
func TestCanRemoveSurfacesCheckFailure(t *testing.T) {
	svc, _, bkRepo := newService()
	bkRepo.failWith = errors.New("connection reset")

	ok, err := svc.CanRemove(context.Background(), "prof-1", "Seg", "08:00")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestSaveAllRejectsGuardedRemoval(t *testing.T) {
	svc, availRepo, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetDaySlots(ctx, "prof-1", "Seg", []string{"08:00", "09:00"}))
	_, err := svc.BookAppointment(ctx, bookingReq("prof-1", "pat-a", "Seg", "08:00"))
	require.NoError(t, err)

	// Dropping the booked 08:00 slot must fail before anything is written.
	err = svc.SaveAll(ctx, "prof-1", map[string][]string{
		"Seg": {"09:00"},
		"Ter": {"10:00"},
	})
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeSlotGuarded))

	slots, err := svc.GetDaySlots(ctx, "prof-1", "Seg")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "09:00"}, slots)
	assert.Empty(t, availRepo.schedules["prof-1"]["Ter"])
}

func TestSaveAllPersistsEveryDay(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	err := svc.SaveAll(ctx, "prof-1", map[string][]string{
		"Seg": {"08:00"},
		"Qui": {"15:00", "16:00"},
	})
	require.NoError(t, err)

	seg, _ := svc.GetDaySlots(ctx, "prof-1", "Seg")
	qui, _ := svc.GetDaySlots(ctx, "prof-1", "Qui")
	assert.Equal(t, []string{"08:00"}, seg)
	assert.Equal(t, []string{"15:00", "16:00"}, qui)
}

func TestEditSessionToggle(t *testing.T) {
	session := NewEditSession(map[string][]string{"Seg": {"08:00"}})

	session.ToggleSlot("Seg", "09:00")
	assert.Equal(t, []string{"08:00", "09:00"}, session.PendingByDay()["Seg"])

	session.ToggleSlot("Seg", "08:00")
	assert.Equal(t, []string{"09:00"}, session.PendingByDay()["Seg"])

	session.ToggleSlot("Dom", "10:00")
	assert.Equal(t, []string{"10:00"}, session.PendingByDay()["Dom"])
}

func TestListProfessionalsByRoleSwallowsErrors(t *testing.T) {
	svc, _, _ := newService()
	svc.UserRepo = &fakeUserRepo{failWith: errors.New("permission denied")}

	pros := svc.ListProfessionalsByRole(context.Background())
	assert.Empty(t, pros)
	assert.NotNil(t, pros)
}
