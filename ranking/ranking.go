// Package ranking computes leaderboard orderings and site-wide aggregates
// from the verification set. Everything here is pure: callers load the
// approved verifications and pass them in together with the clock reading,
// so the ordering rules stay testable without a database.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/khm1546/melon-streaming-ranking/models"
)

// Filter selects the time window a leaderboard query covers.
type Filter string

const (
	FilterAll   Filter = "all"
	FilterToday Filter = "today"
	FilterWeek  Filter = "week"
	FilterMonth Filter = "month"
)

// ParseFilter maps the query-string value onto a Filter. An empty value
// means "all"; anything else unknown is rejected.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterToday, FilterWeek, FilterMonth:
		return Filter(s), nil
	case "":
		return FilterAll, nil
	}
	return "", fmt.Errorf("unknown leaderboard filter %q", s)
}

// Contains reports whether a verification timestamp falls inside the
// window ending at now. "today" is the current calendar day in now's
// location; "week" and "month" are trailing 7 and 30 days.
func (f Filter) Contains(ts, now time.Time) bool {
	switch f {
	case FilterToday:
		y1, m1, d1 := ts.In(now.Location()).Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case FilterWeek:
		return !ts.Before(now.AddDate(0, 0, -7))
	case FilterMonth:
		return !ts.Before(now.AddDate(0, 0, -30))
	}
	return true
}

// Rank selects the verifications inside the filter window (and, when
// songID > 0, for that song only), orders them by stream count descending
// with earlier verification winning ties and record id as the final
// tie-break, and assigns dense 1-based ranks. The comparator is a strict
// total order, so the output is deterministic for any input permutation.
func Rank(verifications []models.Verification, filter Filter, songID int64, now time.Time) []models.LeaderboardEntry {
	selected := make([]models.Verification, 0, len(verifications))
	for _, v := range verifications {
		if songID > 0 && v.SongID != songID {
			continue
		}
		if !filter.Contains(v.RankedAt(), now) {
			continue
		}
		selected = append(selected, v)
	}

	sort.Slice(selected, func(i, j int) bool {
		a, b := &selected[i], &selected[j]
		if a.StreamCount != b.StreamCount {
			return a.StreamCount > b.StreamCount
		}
		at, bt := a.RankedAt(), b.RankedAt()
		if !at.Equal(bt) {
			return at.Before(bt)
		}
		return a.VerificationID < b.VerificationID
	})

	entries := make([]models.LeaderboardEntry, len(selected))
	for i, v := range selected {
		entries[i] = models.LeaderboardEntry{
			ID:          v.VerificationID,
			Rank:        i + 1,
			Username:    v.Username,
			SongID:      v.SongID,
			SongTitle:   v.SongTitle,
			StreamCount: v.StreamCount,
			VerifiedAt:  v.RankedAt(),
			CreatedAt:   v.CreatedAt,
		}
	}
	return entries
}

// PositionOf returns the 1-based rank of username inside entries, or 0
// when the user is absent. The full list is small (hundreds of rows), so
// indexing into it is fine.
func PositionOf(entries []models.LeaderboardEntry, username string) int {
	for _, e := range entries {
		if e.Username == username {
			return e.Rank
		}
	}
	return 0
}

// ComputeStats aggregates the same verification set the unfiltered
// leaderboard ranks, so totalStreams always equals the sum over
// Rank(FilterAll) output.
func ComputeStats(verifications []models.Verification, totalSongs int64) models.Stats {
	stats := models.Stats{TotalSongs: totalSongs}
	users := make(map[string]struct{})
	for _, v := range verifications {
		stats.TotalVerifications++
		stats.TotalStreams += v.StreamCount
		users[v.Username] = struct{}{}
	}
	stats.ActiveUsers = int64(len(users))
	return stats
}
