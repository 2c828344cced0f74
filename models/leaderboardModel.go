package models

import "time"

// LeaderboardEntry is derived from the verification set on every query,
// never persisted. Rank is dense and 1-based.
type LeaderboardEntry struct {
	ID          int64     `json:"id"`
	Rank        int       `json:"rank"`
	Username    string    `json:"username"`
	SongID      int64     `json:"songId"`
	SongTitle   string    `json:"songTitle"`
	StreamCount int64     `json:"streamCount"`
	VerifiedAt  time.Time `json:"verifiedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Stats struct {
	TotalVerifications int64 `json:"totalVerifications"`
	TotalStreams       int64 `json:"totalStreams"`
	ActiveUsers        int64 `json:"activeUsers"`
	TotalSongs         int64 `json:"totalSongs"`
}

// UserProfile is the /users/:username response: the user plus their
// verifications and the sum of approved stream counts.
type UserProfile struct {
	ID            int64          `json:"id"`
	Username      string         `json:"username"`
	Verifications []Verification `json:"verifications"`
	TotalStreams  int64          `json:"totalStreams"`
	CreatedAt     time.Time      `json:"created_at"`
}
