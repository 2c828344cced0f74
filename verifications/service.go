// Package verifications implements the proof-of-streaming record
// lifecycle: validate the submission, run the identity gate, store the
// proof image, and upsert the single record each (user, song) pair may
// hold. Reads (by id, by user) and the admin status transitions live
// here too.
package verifications

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/khm1546/melon-streaming-ranking/helpers"
	"github.com/khm1546/melon-streaming-ranking/identity"
	"github.com/khm1546/melon-streaming-ranking/models"
)

var (
	ErrSongNotFound         = errors.New("song not found")
	ErrVerificationNotFound = errors.New("verification not found")
	ErrBadStreamCount       = errors.New("bad_stream_count")
	ErrMissingProof         = errors.New("missing_proof")
	ErrBadProofType         = errors.New("bad_proof_type")
)

// SongStore is the song lookup surface the service needs.
type SongStore interface {
	GetByID(ctx context.Context, songID int64) (*models.Song, error)
	// RecomputeStreamCount refreshes the song's cached total from the
	// approved verification set.
	RecomputeStreamCount(ctx context.Context, songID int64) error
}

// Store holds verification records. Upsert must be atomic on the
// (user_id, song_id) key: concurrent submissions may not splice fields
// from two different records together.
type Store interface {
	Upsert(ctx context.Context, v *models.Verification) (*models.Verification, error)
	GetByID(ctx context.Context, verificationID int64) (*models.Verification, error)
	GetByUserAndSong(ctx context.Context, userID, songID int64) (*models.Verification, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Verification, error)
	ListApproved(ctx context.Context, songID int64) ([]models.Verification, error)
	SetStatus(ctx context.Context, verificationID int64, status string, verifiedAt *time.Time) (*models.Verification, error)
}

type Service struct {
	gate   *identity.Gate
	songs  SongStore
	store  Store
	proofs helpers.ProofStorage
	now    func() time.Time
}

func NewService(gate *identity.Gate, songs SongStore, store Store, proofs helpers.ProofStorage) *Service {
	return &Service{gate: gate, songs: songs, store: store, proofs: proofs, now: time.Now}
}

// Submission is one submit/edit request. Exactly one of Proof and
// ExistingProofImage must be set: a new upload, or a reference to the
// already-stored image when the user only corrects the count.
type Submission struct {
	Username    string
	PIN         string
	SongID      int64
	StreamCount int64

	Proof         multipart.File
	ProofFilename string

	ExistingProofImage string
}

// Submit validates, authenticates, and upserts. Nothing is written
// before every check has passed; a failed identity check aborts with the
// store untouched.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Verification, error) {
	if err := identity.ValidatePIN(sub.PIN); err != nil {
		return nil, err
	}
	if sub.StreamCount <= 0 {
		return nil, ErrBadStreamCount
	}
	if sub.Proof == nil && sub.ExistingProofImage == "" {
		return nil, ErrMissingProof
	}
	if sub.Proof != nil && !helpers.AllowedProofImage(sub.ProofFilename) {
		return nil, ErrBadProofType
	}

	song, err := s.songs.GetByID(ctx, sub.SongID)
	if err != nil {
		return nil, err
	}

	user, _, err := s.gate.Authenticate(ctx, sub.Username, sub.PIN)
	if err != nil {
		return nil, err
	}

	now := s.now()

	var proofImage string
	if sub.Proof != nil {
		proofImage = helpers.BuildProofFilename(user.UserID, song.SongID, now, sub.ProofFilename)
		if err := s.proofs.Save(ctx, sub.Proof, proofImage); err != nil {
			log.Println("❌ [Verifications] Proof save failed:", err)
			return nil, err
		}
	} else {
		// edit path keeps the stored image; the reference must belong to
		// this user's existing record, not be an arbitrary filename
		existing, err := s.store.GetByUserAndSong(ctx, user.UserID, song.SongID)
		if err != nil {
			if errors.Is(err, ErrVerificationNotFound) {
				return nil, ErrMissingProof
			}
			return nil, err
		}
		if existing.ProofImage != sub.ExistingProofImage {
			return nil, ErrMissingProof
		}
		proofImage = existing.ProofImage
	}

	record, err := s.store.Upsert(ctx, &models.Verification{
		UserID:      user.UserID,
		Username:    user.Username,
		SongID:      song.SongID,
		SongTitle:   song.Title,
		StreamCount: sub.StreamCount,
		ProofImage:  proofImage,
		Status:      models.StatusApproved,
		VerifiedAt:  &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	// advisory cache only; ranking never reads it
	if err := s.songs.RecomputeStreamCount(ctx, song.SongID); err != nil {
		log.Println("⚠️ [Verifications] Stream count recompute failed:", err)
	}
	log.Printf("✅ [Verifications] %s submitted %d streams for %q\n", user.Username, sub.StreamCount, song.Title)
	return record, nil
}

func (s *Service) GetByID(ctx context.Context, verificationID int64) (*models.Verification, error) {
	return s.store.GetByID(ctx, verificationID)
}

// ListApproved returns the records ranking and stats derive from,
// optionally narrowed to one song (songID > 0).
func (s *Service) ListApproved(ctx context.Context, songID int64) ([]models.Verification, error) {
	return s.store.ListApproved(ctx, songID)
}

// ProfileFor assembles a user's verifications plus their approved-stream
// total.
func (s *Service) ProfileFor(ctx context.Context, user *models.User) (*models.UserProfile, error) {
	records, err := s.store.ListByUserID(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, v := range records {
		if v.Status == models.StatusApproved {
			total += v.StreamCount
		}
	}
	return &models.UserProfile{
		ID:            user.UserID,
		Username:      user.Username,
		Verifications: records,
		TotalStreams:  total,
		CreatedAt:     user.CreatedAt,
	}, nil
}

// Approve marks a record approved and stamps the verification time.
func (s *Service) Approve(ctx context.Context, verificationID int64) (*models.Verification, error) {
	now := s.now()
	return s.store.SetStatus(ctx, verificationID, models.StatusApproved, &now)
}

// Reject marks a record rejected; it drops out of rankings and totals.
func (s *Service) Reject(ctx context.Context, verificationID int64) (*models.Verification, error) {
	return s.store.SetStatus(ctx, verificationID, models.StatusRejected, nil)
}
