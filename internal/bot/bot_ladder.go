package bot

import (
	"fmt"
	"io"
	"strings"
	"teamladder/internal/back"
	"teamladder/internal/back/elo"
	"teamladder/internal/util"
	"text/tabwriter"

	"github.com/bwmarrin/discordgo"
	"github.com/leonelquinteros/gotext"
)

const recentMatchesCount = 5

func (bot *Bot) cmdLadder(m *discordgo.Message, args []string, out io.Writer) error {
	communityID, err := getCommunityID(m)
	if err != nil {
		return err
	}

	if len(args) != 1 {
		return util.ErrPublic(gotext.Get("invalid argument, expected 2v2 or 3v3"))
	}

	mode, err := elo.ParseMode(args[0])
	if err != nil {
		return util.ErrPublic(gotext.Get("invalid argument, expected 2v2 or 3v3"))
	}

	leaderboard, err := bot.back.GetLeaderboard(communityID, mode)
	if err != nil {
		return err
	}

	names := make([]string, len(leaderboard))
	for k, v := range leaderboard {
		names[k] = bot.displayName(m.GuildID, v.PlayerID)
	}

	writeLeaderboard(out, leaderboard, names)
	return nil
}

func writeLeaderboard(out io.Writer, leaderboard []back.Membership, names []string) {
	fmt.Fprint(out, "```\n")
	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, gotext.Get("Rank\tPlayer\t2v2\t3v3\tWins\tLosses"))
	for k, v := range leaderboard {
		fmt.Fprintf(
			table, "%d\t%s\t%d\t%d\t%d\t%d\n",
			k+1, names[k],
			v.Rating2v2, v.Rating3v3, v.Wins, v.Losses,
		)
	}
	table.Flush()
	fmt.Fprint(out, "```")
}

func (bot *Bot) cmdPlay(m *discordgo.Message, args []string, out io.Writer) error {
	communityID, err := getCommunityID(m)
	if err != nil {
		return err
	}

	playerIDs, err := parseMentions(args)
	if err != nil {
		return err
	}

	results, err := bot.back.ApplyMatch(playerIDs, communityID)
	if err != nil {
		return err
	}

	names := make([]string, len(results))
	for k, v := range results {
		names[k] = bot.displayName(m.GuildID, v.PlayerID)
	}

	fmt.Fprintln(out, gotext.Get("Elo change:"))
	writeMatchResults(out, results, names)

	return nil
}

func writeMatchResults(out io.Writer, results []back.MatchResult, names []string) {
	fmt.Fprint(out, "```\n")
	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, gotext.Get("Player\tRating\tChange\tWins\tLosses"))
	for k, v := range results {
		fmt.Fprintf(
			table, "%s\t%d\t%+d\t%d\t%d\n",
			names[k], v.NewRating, v.Delta, v.Wins, v.Losses,
		)
	}
	table.Flush()
	fmt.Fprint(out, "```")
}

func (bot *Bot) cmdMatches(m *discordgo.Message, _ []string, out io.Writer) error {
	communityID, err := getCommunityID(m)
	if err != nil {
		return err
	}

	matches, err := bot.back.GetRecentMatches(communityID, recentMatchesCount)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Fprint(out, gotext.Get("No match has been played yet."))
		return nil
	}

	fmt.Fprint(out, "```\n")
	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, gotext.Get("Match\tDate\tMode\tWinners\tLosers\tChange"))
	for _, match := range matches {
		var delta int
		if winners := match.Winners(); len(winners) > 0 {
			delta = winners[0].RatingDelta
		}

		fmt.Fprintf(
			table, "%s\t%s\t%s\t%s\t%s\t%+d\n",
			match.ID.Short(), util.Datetime(match.CreatedAt), match.Mode,
			bot.entryNames(m.GuildID, match.Winners()),
			bot.entryNames(m.GuildID, match.Losers()),
			delta,
		)
	}
	table.Flush()
	fmt.Fprint(out, "```")

	return nil
}

func (bot *Bot) entryNames(guildID string, entries []back.MatchEntry) string {
	names := make([]string, len(entries))
	for k, v := range entries {
		names[k] = bot.displayName(guildID, v.PlayerID)
	}

	return strings.Join(names, ", ")
}
