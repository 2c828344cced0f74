package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khm1546/melon-streaming-ranking/models"
)

// fakeUserStore mimics the unique-username index of the real store.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User

	createErr error
	// registered just before Create, to simulate a lost registration race
	raceUser *models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserID == userID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.raceUser != nil {
		f.mu.Lock()
		f.users[f.raceUser.Username] = f.raceUser
		f.mu.Unlock()
		return nil, ErrUserExists
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return nil, ErrUserExists
	}
	f.nextID++
	user.UserID = f.nextID
	f.users[user.Username] = user
	copied := *user
	return &copied, nil
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		pin string
		ok  bool
	}{
		{"1234", true},
		{"0000", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"12 4", false},
		{"", false},
		{"١٢٣٤", false}, // digits must be ASCII
	}
	for _, tt := range tests {
		err := ValidatePIN(tt.pin)
		if tt.ok {
			assert.NoError(t, err, tt.pin)
		} else {
			assert.ErrorIs(t, err, ErrBadPINFormat, tt.pin)
		}
	}
}

func TestAuthenticateRegistersFirstUse(t *testing.T) {
	store := newFakeUserStore()
	gate := NewGate(store)

	user, registered, err := gate.Authenticate(context.Background(), "haewon", "1234")
	require.NoError(t, err)
	assert.True(t, registered)
	assert.Equal(t, "haewon", user.Username)
	assert.NotZero(t, user.UserID)

	// same PIN again: succeeds, no second registration
	again, registered, err := gate.Authenticate(context.Background(), "haewon", "1234")
	require.NoError(t, err)
	assert.False(t, registered)
	assert.Equal(t, user.UserID, again.UserID)

	// wrong PIN: auth failure, not validation failure
	_, _, err = gate.Authenticate(context.Background(), "haewon", "4321")
	assert.ErrorIs(t, err, ErrPINMismatch)
}

func TestAuthenticateBadFormatBeforeStorage(t *testing.T) {
	store := newFakeUserStore()
	gate := NewGate(store)

	for _, pin := range []string{"123", "12a4", "12345", ""} {
		_, _, err := gate.Authenticate(context.Background(), "haewon", pin)
		assert.ErrorIs(t, err, ErrBadPINFormat, pin)
	}
	assert.Empty(t, store.users, "no user may be registered on a malformed PIN")
}

func TestAuthenticateCaseSensitiveUsernames(t *testing.T) {
	store := newFakeUserStore()
	gate := NewGate(store)

	_, registered, err := gate.Authenticate(context.Background(), "Haewon", "1234")
	require.NoError(t, err)
	assert.True(t, registered)

	_, registered, err = gate.Authenticate(context.Background(), "haewon", "9999")
	require.NoError(t, err)
	assert.True(t, registered, "different case is a different username")
}

func TestAuthenticateLostRegistrationRace(t *testing.T) {
	store := newFakeUserStore()
	gate := NewGate(store)

	// the winner registers haewon between our lookup and our create
	hash, err := HashPIN("1234")
	require.NoError(t, err)
	store.raceUser = &models.User{
		UserID:    7,
		Username:  "haewon",
		PinHash:   hash,
		CreatedAt: time.Now(),
	}

	// matching PIN falls through to the winner's record
	user, registered, err := gate.Authenticate(context.Background(), "haewon", "1234")
	require.NoError(t, err)
	assert.False(t, registered)
	assert.Equal(t, int64(7), user.UserID)

	// mismatching PIN against the winner's record still fails auth
	delete(store.users, "haewon")
	_, _, err = gate.Authenticate(context.Background(), "haewon", "9999")
	assert.ErrorIs(t, err, ErrPINMismatch)
}

func TestHashAndVerifyPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	require.NoError(t, err)
	assert.True(t, VerifyPIN(hash, "1234"))
	assert.False(t, VerifyPIN(hash, "1235"))
}
