package web

import (
	"net/http"
	"strconv"
	"teamladder/internal/back"
	"teamladder/internal/back/elo"
	"teamladder/internal/util"
	"time"

	"github.com/go-chi/chi"
	"gopkg.in/guregu/null.v4"
)

const (
	defaultMatchesLimit = 20
	maxMatchesLimit     = 100
)

type membershipView struct {
	PlayerID  string `json:"player_id"`
	Rating2v2 int    `json:"rating_2v2"`
	Rating3v3 int    `json:"rating_3v3"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
}

// IDs are Discord snowflakes, sent as strings so JavaScript does not round
// them.
func newMembershipView(m back.Membership) membershipView {
	return membershipView{
		PlayerID:  strconv.FormatInt(m.PlayerID, 10),
		Rating2v2: m.Rating2v2,
		Rating3v3: m.Rating3v3,
		Wins:      m.Wins,
		Losses:    m.Losses,
	}
}

type leaderboardEntryView struct {
	Rank int `json:"rank"`
	membershipView
}

func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	communityID, ok := s.parseID(w, r, "communityID")
	if !ok {
		return
	}

	mode, err := elo.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		s.badRequest(w, "%s", err)
		return
	}

	leaderboard, err := s.back.GetLeaderboard(communityID, mode)
	if err != nil {
		s.error(w, err)
		return
	}

	ret := make([]leaderboardEntryView, len(leaderboard))
	for k, v := range leaderboard {
		ret[k] = leaderboardEntryView{Rank: k + 1, membershipView: newMembershipView(v)}
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, ret)
}

type membershipStatsView struct {
	membershipView
	MatchesPlayed int       `json:"matches_played"`
	LastMatchAt   null.Time `json:"last_match_at"`
}

func (s *Server) getMembership(w http.ResponseWriter, r *http.Request) {
	communityID, ok := s.parseID(w, r, "communityID")
	if !ok {
		return
	}

	playerID, ok := s.parseID(w, r, "playerID")
	if !ok {
		return
	}

	stats, err := s.back.GetMembershipStats(playerID, communityID)
	if err != nil {
		s.error(w, err)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, membershipStatsView{
		membershipView: newMembershipView(stats.Membership),
		MatchesPlayed:  stats.MatchesPlayed,
		LastMatchAt:    stats.LastMatchAt,
	})
}

type matchEntryView struct {
	PlayerID    string `json:"player_id"`
	Outcome     string `json:"outcome"`
	RatingDelta int    `json:"rating_delta"`
	RatingAfter int    `json:"rating_after"`
}

type matchView struct {
	ID        util.UUIDAsBlob      `json:"id"`
	Mode      string               `json:"mode"`
	CreatedAt util.TimeAsTimestamp `json:"created_at"`
	Entries   []matchEntryView     `json:"entries"`
}

func (s *Server) getMatches(w http.ResponseWriter, r *http.Request) {
	communityID, ok := s.parseID(w, r, "communityID")
	if !ok {
		return
	}

	limit := uint64(defaultMatchesLimit)
	if str := r.URL.Query().Get("limit"); str != "" {
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil || v == 0 || v > maxMatchesLimit {
			s.badRequest(w, "limit must be between 1 and %d", maxMatchesLimit)
			return
		}
		limit = v
	}

	matches, err := s.back.GetRecentMatches(communityID, limit)
	if err != nil {
		s.error(w, err)
		return
	}

	ret := make([]matchView, len(matches))
	for k, match := range matches {
		entries := make([]matchEntryView, len(match.Entries))
		for i, v := range match.Entries {
			entries[i] = matchEntryView{
				PlayerID:    strconv.FormatInt(v.PlayerID, 10),
				Outcome:     v.Outcome.String(),
				RatingDelta: v.RatingDelta,
				RatingAfter: v.RatingAfter,
			}
		}

		ret[k] = matchView{
			ID:        match.ID,
			Mode:      match.Mode.String(),
			CreatedAt: match.CreatedAt,
			Entries:   entries,
		}
	}

	s.cache(w, "public", 10*time.Second)
	s.response(w, http.StatusOK, ret)
}

func (s *Server) parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	str := chi.URLParam(r, param)
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		s.badRequest(w, "invalid %s: %q", param, str)
		return 0, false
	}

	return id, true
}
