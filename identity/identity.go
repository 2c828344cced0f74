// Package identity implements the username + 4-digit PIN gate. There are
// no sessions: every mutating request re-presents the credential pair and
// goes through Authenticate, which registers unseen usernames as a side
// effect of the first successful call.
package identity

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/khm1546/melon-streaming-ranking/models"
)

var (
	// ErrBadPINFormat rejects anything that is not exactly 4 numeric digits.
	ErrBadPINFormat = errors.New("bad_pin_format")
	// ErrPINMismatch means the username exists and the PIN does not match.
	ErrPINMismatch = errors.New("pin_mismatch")
	// ErrUserNotFound is returned by stores for unknown usernames.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned by stores when a concurrent registration won.
	ErrUserExists = errors.New("user already exists")
)

// UserStore is the persistence the gate needs: exact-match lookup by
// case-sensitive username and creation with a unique-username guarantee.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, userID int64) (*models.User, error)
}

type Gate struct {
	users UserStore
}

func NewGate(users UserStore) *Gate {
	return &Gate{users: users}
}

// ValidatePIN checks the 4-digit format without touching storage.
func ValidatePIN(pin string) error {
	if len(pin) != 4 {
		return ErrBadPINFormat
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrBadPINFormat
		}
	}
	return nil
}

// HashPIN hashes a PIN the same way the rest of the app hashes secrets.
func HashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPIN compares a stored hash with a candidate PIN.
func VerifyPIN(pinHash string, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) == nil
}

// Authenticate validates the PIN format, then either registers the
// username (first use wins) or checks the PIN against the stored hash.
// It returns the user and whether this call registered them. Repeating
// the call with the same correct PIN is a no-op.
func (g *Gate) Authenticate(ctx context.Context, username, pin string) (*models.User, bool, error) {
	if err := ValidatePIN(pin); err != nil {
		return nil, false, err
	}

	user, err := g.users.GetByUsername(ctx, username)
	if err == nil {
		if !VerifyPIN(user.PinHash, pin) {
			return nil, false, ErrPINMismatch
		}
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	hash, err := HashPIN(pin)
	if err != nil {
		return nil, false, err
	}
	now := time.Now()
	created, err := g.users.Create(ctx, &models.User{
		Username:  username,
		PinHash:   hash,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		log.Printf("✅ [IdentityGate] Registered new user %q\n", username)
		return created, true, nil
	}

	// A concurrent request registered the same username first. The unique
	// index makes exactly one Create win; fall back to verifying against
	// the winner's PIN.
	if errors.Is(err, ErrUserExists) {
		user, getErr := g.users.GetByUsername(ctx, username)
		if getErr != nil {
			return nil, false, getErr
		}
		if !VerifyPIN(user.PinHash, pin) {
			return nil, false, ErrPINMismatch
		}
		return user, false, nil
	}
	return nil, false, err
}
