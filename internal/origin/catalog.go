package origin

import (
	"fmt"
	"strconv"

	"github.com/goalline/sportscache/internal/domain"
)

// DataRequest describes the origin API call backing one data kind
type DataRequest struct {
	Path   string
	Params map[string]string
}

// RequestFor maps a subject to the origin endpoint serving its data kind.
// The subject parameter name depends on the kind: team-scoped kinds send
// team=, player-scoped kinds send player=, and so on.
func RequestFor(kind domain.DataKind, subjectID int64, season int) (DataRequest, error) {
	id := strconv.FormatInt(subjectID, 10)

	var req DataRequest
	switch kind {
	case domain.DataKindTeamInfo:
		req = DataRequest{Path: "teams", Params: map[string]string{"id": id}}
	case domain.DataKindVenueInfo:
		req = DataRequest{Path: "venues", Params: map[string]string{"id": id}}
	case domain.DataKindLeagueInfo:
		req = DataRequest{Path: "leagues", Params: map[string]string{"id": id}}
	case domain.DataKindPlayerProfile:
		req = DataRequest{Path: "players/profiles", Params: map[string]string{"player": id}}
	case domain.DataKindStandings:
		req = DataRequest{Path: "standings", Params: map[string]string{"league": id}}
	case domain.DataKindTeamStatistics:
		req = DataRequest{Path: "teams/statistics", Params: map[string]string{"team": id}}
	case domain.DataKindPlayerStatistics:
		req = DataRequest{Path: "players", Params: map[string]string{"id": id}}
	case domain.DataKindSquad:
		req = DataRequest{Path: "players/squads", Params: map[string]string{"team": id}}
	case domain.DataKindTrophies:
		req = DataRequest{Path: "trophies", Params: map[string]string{"player": id}}
	case domain.DataKindTransfers:
		req = DataRequest{Path: "transfers", Params: map[string]string{"player": id}}
	case domain.DataKindCoach:
		req = DataRequest{Path: "coachs", Params: map[string]string{"id": id}}
	case domain.DataKindFixtures:
		req = DataRequest{Path: "fixtures", Params: map[string]string{"team": id}}
	case domain.DataKindInjuries:
		req = DataRequest{Path: "injuries", Params: map[string]string{"team": id}}
	case domain.DataKindLiveFixtures:
		req = DataRequest{Path: "fixtures", Params: map[string]string{"live": "all", "league": id}}
	default:
		return DataRequest{}, fmt.Errorf("%w: %s", domain.ErrInvalidSubject, kind)
	}

	if kind.SeasonScoped() && season > 0 && kind != domain.DataKindLiveFixtures {
		req.Params["season"] = strconv.Itoa(season)
	}

	return req, nil
}
