// Package freshness decides whether cached sports data can still be served
// or has to be refetched from the origin.
package freshness

import (
	"time"

	"github.com/goalline/sportscache/internal/domain"
)

// ttlByKind maps each data kind to how long a cached record stays servable.
// A zero duration means the record never expires once written.
var ttlByKind = map[domain.DataKind]time.Duration{
	// Static reference data
	domain.DataKindTeamInfo:      24 * time.Hour,
	domain.DataKindVenueInfo:     24 * time.Hour,
	domain.DataKindLeagueInfo:    24 * time.Hour,
	domain.DataKindPlayerProfile: 24 * time.Hour,

	// Semi-static per-season data
	domain.DataKindStandings:        time.Hour,
	domain.DataKindTeamStatistics:   time.Hour,
	domain.DataKindPlayerStatistics: time.Hour,
	domain.DataKindSquad:            time.Hour,
	domain.DataKindTrophies:         time.Hour,
	domain.DataKindTransfers:        time.Hour,
	domain.DataKindCoach:            time.Hour,

	// Schedule data that moves during a match day
	domain.DataKindFixtures: 15 * time.Minute,
	domain.DataKindInjuries: 15 * time.Minute,

	// In-play data
	domain.DataKindLiveFixtures: 15 * time.Second,
}

// TTL returns the time-to-live for a data kind. Unknown kinds get the
// shortest TTL so a bad caller never serves long-lived garbage.
func TTL(kind domain.DataKind) time.Duration {
	if ttl, ok := ttlByKind[kind]; ok {
		return ttl
	}
	return 15 * time.Second
}

// CurrentSeason returns the season a given instant belongs to. European
// seasons roll over in July: before July the instant still belongs to the
// season that started the previous calendar year.
func CurrentSeason(now time.Time) int {
	if now.Month() >= time.July {
		return now.Year()
	}
	return now.Year() - 1
}

// SeasonClosed reports whether a season has finished relative to now.
// Season 0 marks season-independent data and is never closed.
func SeasonClosed(season int, now time.Time) bool {
	return season > 0 && season < CurrentSeason(now)
}

// Classify evaluates a cached record's usability.
//
// Records for a closed season are permanently fresh: the underlying facts can
// no longer change, so the origin is never consulted again. Otherwise the
// record is fresh while its kind's TTL has not elapsed since the last update.
func Classify(kind domain.DataKind, season int, updatedAt time.Time, now time.Time) domain.Freshness {
	if updatedAt.IsZero() {
		return domain.FreshnessMissing
	}

	if SeasonClosed(season, now) {
		return domain.FreshnessFresh
	}

	if now.Sub(updatedAt) < TTL(kind) {
		return domain.FreshnessFresh
	}

	return domain.FreshnessStale
}
