package domain

// DataKind identifies a class of origin data with a shared freshness policy
type DataKind string

const (
	// DataKindTeamInfo is static team profile data
	DataKindTeamInfo DataKind = "team_info"
	// DataKindVenueInfo is static venue profile data
	DataKindVenueInfo DataKind = "venue_info"
	// DataKindLeagueInfo is static league profile data
	DataKindLeagueInfo DataKind = "league_info"
	// DataKindPlayerProfile is static player profile data
	DataKindPlayerProfile DataKind = "player_profile"
	// DataKindStandings is a league table for a season
	DataKindStandings DataKind = "standings"
	// DataKindTeamStatistics is aggregated team statistics for a season
	DataKindTeamStatistics DataKind = "team_statistics"
	// DataKindPlayerStatistics is aggregated player statistics for a season
	DataKindPlayerStatistics DataKind = "player_statistics"
	// DataKindSquad is a team's roster
	DataKindSquad DataKind = "squad"
	// DataKindTrophies is a player's or coach's honours list
	DataKindTrophies DataKind = "trophies"
	// DataKindTransfers is a player's transfer history
	DataKindTransfers DataKind = "transfers"
	// DataKindCoach is coach career data
	DataKindCoach DataKind = "coach"
	// DataKindFixtures is a schedule of matches
	DataKindFixtures DataKind = "fixtures"
	// DataKindInjuries is a list of current injuries
	DataKindInjuries DataKind = "injuries"
	// DataKindLiveFixtures is in-play match data
	DataKindLiveFixtures DataKind = "live_fixtures"
)

// String returns the data kind name
func (k DataKind) String() string {
	return string(k)
}

// Valid reports whether the data kind is one of the known kinds
func (k DataKind) Valid() bool {
	switch k {
	case DataKindTeamInfo, DataKindVenueInfo, DataKindLeagueInfo, DataKindPlayerProfile,
		DataKindStandings, DataKindTeamStatistics, DataKindPlayerStatistics, DataKindSquad,
		DataKindTrophies, DataKindTransfers, DataKindCoach,
		DataKindFixtures, DataKindInjuries, DataKindLiveFixtures:
		return true
	}
	return false
}

// SeasonScoped reports whether records of this kind are partitioned by season.
// Season-independent kinds store their single record under season 0.
func (k DataKind) SeasonScoped() bool {
	switch k {
	case DataKindTeamInfo, DataKindVenueInfo, DataKindLeagueInfo, DataKindPlayerProfile, DataKindCoach:
		return false
	}
	return true
}

// AssetKind identifies a class of origin image
type AssetKind string

const (
	// AssetKindPlayerPhoto is a player headshot
	AssetKindPlayerPhoto AssetKind = "player_photo"
	// AssetKindCoachPhoto is a coach headshot
	AssetKindCoachPhoto AssetKind = "coach_photo"
	// AssetKindTeamLogo is a team crest
	AssetKindTeamLogo AssetKind = "team_logo"
	// AssetKindLeagueLogo is a league crest
	AssetKindLeagueLogo AssetKind = "league_logo"
	// AssetKindVenuePhoto is a stadium photograph
	AssetKindVenuePhoto AssetKind = "venue_photo"
)

// String returns the asset kind name
func (k AssetKind) String() string {
	return string(k)
}

// Valid reports whether the asset kind is one of the known kinds
func (k AssetKind) Valid() bool {
	switch k {
	case AssetKindPlayerPhoto, AssetKindCoachPhoto, AssetKindTeamLogo, AssetKindLeagueLogo, AssetKindVenuePhoto:
		return true
	}
	return false
}

// Freshness classifies a cached record against its policy
type Freshness int

const (
	// FreshnessMissing means no usable record exists
	FreshnessMissing Freshness = iota
	// FreshnessStale means a record exists but its TTL has elapsed
	FreshnessStale
	// FreshnessFresh means the record is within its TTL or permanently valid
	FreshnessFresh
)

// String returns the freshness name
func (f Freshness) String() string {
	switch f {
	case FreshnessFresh:
		return "fresh"
	case FreshnessStale:
		return "stale"
	default:
		return "missing"
	}
}
