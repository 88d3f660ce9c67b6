package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safelife/models"
)

// deadCache returns a redis client nothing listens behind. Token caching
// fails with a connection error, which is enough for tests that only care
// about what happened before the session step.
func deadCache() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
}

// fakeUserRepo keeps accounts in memory, keyed by ID, with email lookups
// matching the mongo repo's (nil, nil) miss contract.
type fakeUserRepo struct {
	users    map[string]*models.User
	creates  int
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *u
	f.users[u.ID] = &cp
	f.creates++
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) SetConsent(_ context.Context, id string, consentAt time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PrivacyConsent = true
	u.ConsentAt = &consentAt
	return nil
}

func (f *fakeUserRepo) ListProfessionals(_ context.Context) ([]models.Professional, error) {
	var out []models.Professional
	for _, u := range f.users {
		if u.UserType == models.UserTypeProfessional {
			out = append(out, models.Professional{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

type fakeSeeder struct {
	seeded []string
}

func (f *fakeSeeder) EnsureForProfessional(_ context.Context, prof models.Professional) error {
	f.seeded = append(f.seeded, prof.ID)
	return nil
}

func signupReq(userType string) SignupRequest {
	req := SignupRequest{
		Name:            "Ana Silva",
		Email:           "ana@example.com",
		Phone:           "11988887777",
		UserType:        userType,
		Password:        "segredo123",
		ConfirmPassword: "segredo123",
	}
	if userType == models.UserTypeProfessional {
		req.CRP = "06/12345"
	}
	return req
}

// Invalid forms must be rejected before any repository call is made.
func TestRegisterValidationBeforeIO(t *testing.T) {
	repo := newFakeUserRepo()
	repo.failWith = errors.New("backend must not be reached")
	svc := &DefaultUserService{Repo: repo, Availability: &fakeSeeder{}}

	mutate := []func(*SignupRequest){
		func(r *SignupRequest) { r.Name = "" },
		func(r *SignupRequest) { r.Email = "" },
		func(r *SignupRequest) { r.Phone = "" },
		func(r *SignupRequest) { r.Password = "" },
		func(r *SignupRequest) { r.ConfirmPassword = "outra" },
		func(r *SignupRequest) { r.UserType = "admin" },
	}
	for _, m := range mutate {
		req := signupReq(models.UserTypePatient)
		m(&req)
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
	}
	assert.Zero(t, repo.creates)
}

func TestRegisterRequiresCRPForProfessionals(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo(), Availability: &fakeSeeder{}}

	req := signupReq(models.UserTypeProfessional)
	req.CRP = ""
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = &models.User{ID: "u1", Email: "ana@example.com"}
	svc := &DefaultUserService{Repo: repo, Availability: &fakeSeeder{}}

	_, err := svc.Register(context.Background(), signupReq(models.UserTypePatient))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Zero(t, repo.creates)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo, Availability: &fakeSeeder{}, AuthCache: deadCache()}

	req := signupReq(models.UserTypePatient)
	_, _ = svc.Register(context.Background(), req)

	require.Equal(t, 1, repo.creates)
	for _, u := range repo.users {
		assert.NotEqual(t, req.Password, u.PasswordHash)
		assert.NotEmpty(t, u.PasswordHash)
		assert.Equal(t, "ana@example.com", u.Email)
	}
}

func TestRegisterSeedsAvailabilityForProfessionals(t *testing.T) {
	repo := newFakeUserRepo()
	seeder := &fakeSeeder{}
	svc := &DefaultUserService{Repo: repo, Availability: seeder, AuthCache: deadCache()}

	_, _ = svc.Register(context.Background(), signupReq(models.UserTypeProfessional))

	require.Equal(t, 1, repo.creates)
	assert.Len(t, seeder.seeded, 1)
}

func TestRegisterSkipsSeedingForPatients(t *testing.T) {
	repo := newFakeUserRepo()
	seeder := &fakeSeeder{}
	svc := &DefaultUserService{Repo: repo, Availability: seeder, AuthCache: deadCache()}

	_, _ = svc.Register(context.Background(), signupReq(models.UserTypePatient))

	assert.Empty(t, seeder.seeded)
}

func TestGetUserTypeFallsBackToEmpty(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	got := svc.GetUserType(context.Background(), "missing")
	assert.Equal(t, "", got)
}

func TestGetUserTypeResolvesRole(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = &models.User{ID: "u1", UserType: models.UserTypeProfessional}
	svc := &DefaultUserService{Repo: repo}

	assert.Equal(t, models.UserTypeProfessional, svc.GetUserType(context.Background(), "u1"))
}

func TestConsentRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = &models.User{ID: "u1"}
	svc := &DefaultUserService{Repo: repo}
	ctx := context.Background()

	accepted, err := svc.GetConsent(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, accepted)

	require.NoError(t, svc.AcceptConsent(ctx, "u1"))

	accepted, err = svc.GetConsent(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, accepted)
	require.NotNil(t, repo.users["u1"].ConsentAt)
	assert.False(t, repo.users["u1"].ConsentAt.IsZero())
}

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := hashPassword("segredo123")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo123", hash)
	assert.NoError(t, checkPassword(hash, "segredo123"))
	assert.Error(t, checkPassword(hash, "errada"))
}
