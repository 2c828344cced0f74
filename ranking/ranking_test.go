package ranking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khm1546/melon-streaming-ranking/models"
)

func verification(id int64, username string, songID int64, count int64, verifiedAt time.Time) models.Verification {
	return models.Verification{
		VerificationID: id,
		UserID:         id,
		Username:       username,
		SongID:         songID,
		SongTitle:      "O.O",
		StreamCount:    count,
		Status:         models.StatusApproved,
		VerifiedAt:     &verifiedAt,
		CreatedAt:      verifiedAt,
	}
}

func TestParseFilter(t *testing.T) {
	for _, s := range []string{"", "all", "today", "week", "month"} {
		f, err := ParseFilter(s)
		require.NoError(t, err, s)
		if s == "" {
			assert.Equal(t, FilterAll, f)
		}
	}
	_, err := ParseFilter("year")
	assert.Error(t, err)
}

func TestRankOrdering(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	vs := []models.Verification{
		verification(1, "haewon", 1, 150, now.Add(-2*time.Hour)),
		verification(2, "lily", 1, 300, now.Add(-1*time.Hour)),
		verification(3, "sullyoon", 1, 150, now.Add(-3*time.Hour)),
		verification(4, "bae", 1, 90, now.Add(-30*time.Minute)),
	}

	entries := Rank(vs, FilterAll, 0, now)
	require.Len(t, entries, 4)

	// stream count desc, then earlier verification first
	assert.Equal(t, "lily", entries[0].Username)
	assert.Equal(t, "sullyoon", entries[1].Username)
	assert.Equal(t, "haewon", entries[2].Username)
	assert.Equal(t, "bae", entries[3].Username)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRankTieBreakByID(t *testing.T) {
	now := time.Now()
	at := now.Add(-time.Hour)
	vs := []models.Verification{
		verification(7, "b", 1, 100, at),
		verification(3, "a", 1, 100, at),
	}

	entries := Rank(vs, FilterAll, 0, now)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].ID)
	assert.Equal(t, int64(7), entries[1].ID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRankDeterministicUnderPermutation(t *testing.T) {
	now := time.Now()
	var vs []models.Verification
	for i := int64(1); i <= 50; i++ {
		// deliberately many equal counts and timestamps
		vs = append(vs, verification(i, "user", 1, i%5, now.Add(-time.Duration(i%3)*time.Minute)))
	}

	want := Rank(vs, FilterAll, 0, now)
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]models.Verification, len(vs))
		copy(shuffled, vs)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := Rank(shuffled, FilterAll, 0, now)
		require.Equal(t, want, got)
	}
}

func TestRankSongFilter(t *testing.T) {
	now := time.Now()
	vs := []models.Verification{
		verification(1, "haewon", 1, 100, now.Add(-time.Hour)),
		verification(2, "haewon", 2, 500, now.Add(-time.Hour)),
		verification(3, "lily", 1, 200, now.Add(-time.Hour)),
	}

	entries := Rank(vs, FilterAll, 1, now)
	require.Len(t, entries, 2)
	assert.Equal(t, "lily", entries[0].Username)
	assert.Equal(t, "haewon", entries[1].Username)
}

func TestRankTimeWindows(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	vs := []models.Verification{
		verification(1, "sameday", 1, 10, time.Date(2025, 6, 10, 0, 30, 0, 0, time.UTC)),
		verification(2, "yesterday", 1, 20, time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)),
		verification(3, "sixdays", 1, 30, now.AddDate(0, 0, -6)),
		verification(4, "eightdays", 1, 40, now.AddDate(0, 0, -8)),
		verification(5, "fortydays", 1, 50, now.AddDate(0, 0, -40)),
	}

	today := Rank(vs, FilterToday, 0, now)
	require.Len(t, today, 1)
	assert.Equal(t, "sameday", today[0].Username)

	week := Rank(vs, FilterWeek, 0, now)
	require.Len(t, week, 3)

	month := Rank(vs, FilterMonth, 0, now)
	require.Len(t, month, 4)

	all := Rank(vs, FilterAll, 0, now)
	require.Len(t, all, 5)
}

func TestPositionOf(t *testing.T) {
	now := time.Now()
	vs := []models.Verification{
		verification(1, "haewon", 1, 100, now.Add(-time.Hour)),
		verification(2, "lily", 1, 200, now.Add(-time.Hour)),
	}
	entries := Rank(vs, FilterAll, 0, now)

	assert.Equal(t, 1, PositionOf(entries, "lily"))
	assert.Equal(t, 2, PositionOf(entries, "haewon"))
	assert.Equal(t, 0, PositionOf(entries, "kyujin"))
}

func TestComputeStatsMatchesUnfilteredRank(t *testing.T) {
	now := time.Now()
	vs := []models.Verification{
		verification(1, "haewon", 1, 100, now.Add(-time.Hour)),
		verification(2, "haewon", 2, 250, now.Add(-time.Hour)),
		verification(3, "lily", 1, 200, now.Add(-time.Hour)),
	}

	stats := ComputeStats(vs, 9)
	assert.Equal(t, int64(3), stats.TotalVerifications)
	assert.Equal(t, int64(550), stats.TotalStreams)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	assert.Equal(t, int64(9), stats.TotalSongs)

	var sum int64
	for _, e := range Rank(vs, FilterAll, 0, now) {
		sum += e.StreamCount
	}
	assert.Equal(t, stats.TotalStreams, sum)
}
