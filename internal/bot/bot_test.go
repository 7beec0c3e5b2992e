package bot // nolint:testpackage

import (
	"errors"
	"fmt"
	"strings"
	"teamladder/internal/back"
	"teamladder/internal/back/elo"
	"teamladder/internal/util"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		command string
		args    []string
	}{
		{"", "", nil},
		{"!help", "!help", nil},
		{"!ladder 2v2", "!ladder", []string{"2v2"}},
		{"!play  <@1>   <@!2> <@3> <@4>", "!play", []string{"<@1>", "<@!2>", "<@3>", "<@4>"}},
	}

	for _, test := range tests {
		command, args := parseCommand(test.input)
		assert.Equal(t, test.command, command, test.input)
		assert.Equal(t, test.args, args, test.input)
	}
}

func TestParseMentions(t *testing.T) {
	ids, err := parseMentions([]string{"<@4>", "<@!3>", "<@2>", "<@123456789012345678>"})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 2, 123456789012345678}, ids)

	ids, err = parseMentions(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, bad := range []string{"bob", "<@abc>", "<#123>", "<@1>x", "<@99999999999999999999>"} {
		_, err := parseMentions([]string{"<@1>", bad})
		assert.True(t, errors.Is(err, util.ErrPublic("")), bad)
	}
}

func TestParseSingleMention(t *testing.T) {
	id, err := parseSingleMention([]string{"<@!42>"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseSingleMention(nil)
	assert.True(t, errors.Is(err, util.ErrPublic("")))

	_, err = parseSingleMention([]string{"<@1>", "<@2>"})
	assert.True(t, errors.Is(err, util.ErrPublic("")))
}

func TestGetCommunityID(t *testing.T) {
	id, err := getCommunityID(&discordgo.Message{GuildID: "700000000000000001"})
	require.NoError(t, err)
	assert.Equal(t, int64(700000000000000001), id)

	_, err = getCommunityID(&discordgo.Message{})
	assert.True(t, errors.Is(err, util.ErrPublic("")))
}

func TestUserLimiter(t *testing.T) {
	limiter := newUserLimiter(0.001, 2)

	assert.True(t, limiter.allow("a"))
	assert.True(t, limiter.allow("a"))
	assert.False(t, limiter.allow("a"))

	// Users have their own budget.
	assert.True(t, limiter.allow("b"))
}

func TestTruncateMessage(t *testing.T) {
	short := "```\nhello\n```"
	assert.Equal(t, short, truncateMessage(short))

	long := "```\n" + strings.Repeat("é", maxMessageLen)
	truncated := truncateMessage(long)
	assert.LessOrEqual(t, len(truncated), maxMessageLen)
	assert.True(t, strings.HasSuffix(truncated, "```"))
	assert.True(t, strings.HasPrefix(truncated, "```\néé"))
	assert.NotContains(t, truncated, "�")
}

func TestNilChannelWriter(t *testing.T) {
	var w *channelWriter
	n, err := fmt.Fprint(w, "ignored")
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, w.Flush())
	w.Reset()
}

func TestWriteLeaderboard(t *testing.T) {
	leaderboard := []back.Membership{
		{PlayerID: 1, Record: elo.Record{Rating2v2: 1016, Rating3v3: 1000, Wins: 1}},
		{PlayerID: 2, Record: elo.Record{Rating2v2: 984, Rating3v3: 1000, Losses: 1}},
	}

	var buf strings.Builder
	writeLeaderboard(&buf, leaderboard, []string{"alice", "bob"})

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "```", lines[0])
	assert.Equal(t, strings.Fields("Rank Player 2v2 3v3 Wins Losses"), strings.Fields(lines[1]))
	assert.Equal(t, strings.Fields("1 alice 1016 1000 1 0"), strings.Fields(lines[2]))
	assert.Equal(t, strings.Fields("2 bob 984 1000 0 1"), strings.Fields(lines[3]))
	assert.Equal(t, "```", lines[4])
}

func TestWriteMatchResults(t *testing.T) {
	results := []back.MatchResult{
		{PlayerID: 1, NewRating: 1016, Delta: 16, Wins: 1},
		{PlayerID: 2, NewRating: 984, Delta: -16, Losses: 1},
	}

	var buf strings.Builder
	writeMatchResults(&buf, results, []string{"alice", "bob"})

	assert.Contains(t, buf.String(), "+16")
	assert.Contains(t, buf.String(), "-16")
	assert.Contains(t, buf.String(), "alice")
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{util.ErrPublic("nope"), "Error: nope"},
		{back.ErrEmptyLeaderboard, "Error: No registered players!"},
		{fmt.Errorf("wrapped: %w", back.ErrNotFound), "Error: Player not found!"},
		{back.ErrPersistence, "Error: unable to save the match, nothing was changed."},
		{errors.New("secret database details"), "There was an error processing your command."},
		{
			&back.Failure{Kind: back.FailureInvalidPlayerCount, Count: 5},
			"Error: Invalid player amount (5). Valid amounts are: [4, 6]",
		},
		{
			&back.Failure{Kind: back.FailurePlayerNotRegistered, PlayerID: 3},
			"Error: <@3> is not registered!",
		},
		{&back.Failure{Kind: back.FailureDuplicatePlayers, PlayerID: 3, Count: 4}, "Error: Duplicate found!"},
		{&back.Failure{Kind: back.FailureDuplicatePlayers}, "Error: Invalid argument!"},
	}

	for _, test := range tests {
		var buf strings.Builder
		writeError(&buf, test.err)
		assert.Equal(t, test.expected, buf.String())
	}
}

func TestInviteURL(t *testing.T) {
	url := inviteURL("1234")
	assert.True(t, strings.HasPrefix(url, "https://discordapp.com/api/oauth2/authorize?client_id=1234&"))
}

func TestLocaleLanguage(t *testing.T) {
	tests := map[string]string{
		"en":          "en",
		"fr":          "fr",
		"fr-CA":       "fr",
		"fr_FR":       "fr",
		"fr_FR.UTF-8": "fr",
		"":            "en",
		"???":         "en",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, localeLanguage(input), input)
	}
}
