package leaderboard

import (
	"context"
	"sort"

	"github.com/questlab/questmaster/internal/model"
	"github.com/questlab/questmaster/internal/services/lobby"
)

// MaxEntries caps the leaderboard length
const MaxEntries = 10

// Service derives a lobby's ranking from its members' question histories
type Service struct {
	lobbies *lobby.Controller
}

// New creates a new leaderboard service
func New(lobbies *lobby.Controller) *Service {
	return &Service{
		lobbies: lobbies,
	}
}

// Compute ranks a lobby's members. Winners (any CORRECT answer) come first,
// ordered by fewest questions asked; the rest follow, ordered by most "Yes"
// answers. This is a primary-then-secondary comparator: a winner always
// outranks a non-winner regardless of yes counts. Ties keep their relative
// order (host first, then participants by join time).
func (s *Service) Compute(ctx context.Context, pin model.PIN) ([]model.LeaderboardEntry, error) {
	l, err := s.lobbies.GetLobby(ctx, pin)
	if err != nil {
		return nil, err
	}

	members := l.Members()
	// Map iteration order is not stable between polls; fix the base order so
	// stable sorting means the same thing on every read.
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].ID < members[j].ID
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})

	var winners, others []model.LeaderboardEntry
	for _, u := range members {
		total, yes, correct := u.QuestionStats()
		entry := model.LeaderboardEntry{
			UserID:         u.ID,
			Name:           u.Name,
			QuestionCount:  total,
			YesCount:       yes,
			GuessedCorrect: correct,
		}
		if correct {
			winners = append(winners, entry)
		} else {
			others = append(others, entry)
		}
	}

	// Fewer questions to find the answer ranks higher
	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].QuestionCount < winners[j].QuestionCount
	})
	// More "Yes" answers ranks higher among non-winners
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].YesCount > others[j].YesCount
	})

	ranking := append(winners, others...)
	if len(ranking) > MaxEntries {
		ranking = ranking[:MaxEntries]
	}

	return ranking, nil
}
