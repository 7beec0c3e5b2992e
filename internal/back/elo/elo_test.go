package elo_test

import (
	"teamladder/internal/back/elo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(mode elo.Mode, ratings ...int) []elo.Record {
	ret := make([]elo.Record, len(ratings))
	for k, v := range ratings {
		ret[k] = elo.NewRecord()
		switch mode {
		case elo.Mode2v2:
			ret[k].Rating2v2 = v
		case elo.Mode3v3:
			ret[k].Rating3v3 = v
		}
	}

	return ret
}

func TestExpectation(t *testing.T) {
	tests := []struct {
		name          string
		winner, loser int
		expected      float64
	}{
		{"even", 1000, 1000, 0.5},
		{"favorite", 1200, 1000, 0.7597},
		{"underdog", 1000, 1200, 0.2403},
		{"ten to one", 1400, 1000, 0.9091},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, elo.Expectation(test.winner, test.loser), 0.0001)
		})
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name          string
		winner, loser int
		expected      int
	}{
		{"even", 1000, 1000, 16},
		{"favorite wins", 1200, 1000, 8},
		{"underdog wins", 1000, 1200, 24},
		{"crushing favorite", 2000, 1000, 0},
		{"negative ratings", -100, -100, 16},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, elo.Delta(test.winner, test.loser))
		})
	}
}

func TestTeamRatingRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		ratings  []int
		expected int
	}{
		{[]int{1000, 1000}, 1000},
		{[]int{1000, 1001}, 1000},
		{[]int{1001, 1002}, 1002},
		{[]int{1, 2, 2}, 2},
		{[]int{-3, -4}, -4},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, elo.TeamRating(records(elo.Mode2v2, test.ratings...), elo.Mode2v2), "%v", test.ratings)
	}

	assert.Equal(t, 0, elo.TeamRating(nil, elo.Mode2v2))
}

func TestComputeMatchEvenTeams(t *testing.T) {
	winners := records(elo.Mode2v2, 1000, 1000)
	losers := records(elo.Mode2v2, 1000, 1000)

	results := elo.ComputeMatch(winners, losers, elo.Mode2v2)
	require.Len(t, results, 4)

	for _, v := range results[:2] {
		assert.Equal(t, 16, v.Delta)
		assert.Equal(t, 1016, v.Record.Rating2v2)
		assert.Equal(t, 1, v.Record.Wins)
		assert.Equal(t, 0, v.Record.Losses)
	}

	for _, v := range results[2:] {
		assert.Equal(t, -16, v.Delta)
		assert.Equal(t, 984, v.Record.Rating2v2)
		assert.Equal(t, 0, v.Record.Wins)
		assert.Equal(t, 1, v.Record.Losses)
	}
}

func TestComputeMatchFavoriteWins(t *testing.T) {
	winners := records(elo.Mode3v3, 1100, 1200, 1300)
	losers := records(elo.Mode3v3, 900, 1000, 1100)

	results := elo.ComputeMatch(winners, losers, elo.Mode3v3)
	require.Len(t, results, 6)

	expected := []int{1108, 1208, 1308, 892, 992, 1092}
	for k, v := range results {
		assert.Equal(t, expected[k], v.Record.Rating3v3, "entry #%d", k)
		assert.Equal(t, elo.DefaultRating, v.Record.Rating2v2, "entry #%d changed the other mode", k)
	}

	assert.Equal(t, 8, results[0].Delta)
	assert.Equal(t, -8, results[5].Delta)
}

func TestComputeMatchSameDeltaForWholeSide(t *testing.T) {
	winners := records(elo.Mode2v2, 1500, 700)
	losers := records(elo.Mode2v2, 1150, 1010)

	results := elo.ComputeMatch(winners, losers, elo.Mode2v2)
	require.Len(t, results, 4)

	assert.Equal(t, results[0].Delta, results[1].Delta)
	assert.Equal(t, results[2].Delta, results[3].Delta)
	assert.Equal(t, results[0].Delta, -results[2].Delta)
}

func TestComputeMatchAllowsNegativeRatings(t *testing.T) {
	winners := records(elo.Mode2v2, 0, 0)
	losers := records(elo.Mode2v2, 0, 5)

	results := elo.ComputeMatch(winners, losers, elo.Mode2v2)
	assert.Equal(t, -16, results[2].Record.Rating2v2)
	assert.Equal(t, -11, results[3].Record.Rating2v2)
}

func TestComputeMatchKeepsInputsAndIsDeterministic(t *testing.T) {
	winners := records(elo.Mode2v2, 1234, 987)
	losers := records(elo.Mode2v2, 1111, 1050)
	winnersCopy := append([]elo.Record(nil), winners...)
	losersCopy := append([]elo.Record(nil), losers...)

	first := elo.ComputeMatch(winners, losers, elo.Mode2v2)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, elo.ComputeMatch(winners, losers, elo.Mode2v2))
	}

	assert.Equal(t, winnersCopy, winners)
	assert.Equal(t, losersCopy, losers)
}

func TestParseMode(t *testing.T) {
	mode, err := elo.ParseMode("2v2")
	require.NoError(t, err)
	assert.Equal(t, elo.Mode2v2, mode)

	mode, err = elo.ParseMode("3v3")
	require.NoError(t, err)
	assert.Equal(t, elo.Mode3v3, mode)

	_, err = elo.ParseMode("1v1")
	assert.Error(t, err)
}

func TestModeForPlayerCount(t *testing.T) {
	for count, expected := range map[int]elo.Mode{4: elo.Mode2v2, 6: elo.Mode3v3} {
		mode, ok := elo.ModeForPlayerCount(count)
		assert.True(t, ok)
		assert.Equal(t, expected, mode)
	}

	for _, count := range []int{0, 1, 2, 3, 5, 7, 8} {
		_, ok := elo.ModeForPlayerCount(count)
		assert.False(t, ok, "count %d", count)
	}
}
