package bot

import (
	"fmt"
	"io"
	"strconv"
	"teamladder/internal/back"
	"teamladder/internal/util"
	"text/tabwriter"

	"github.com/bwmarrin/discordgo"
	"github.com/leonelquinteros/gotext"
)

func (bot *Bot) cmdRegister(m *discordgo.Message, _ []string, out io.Writer) error {
	communityID, err := getCommunityID(m)
	if err != nil {
		return err
	}

	playerID, err := parseSnowflake(m.Author.ID)
	if err != nil {
		return err
	}

	outcome, err := bot.back.Register(playerID, communityID)
	if err != nil {
		return err
	}

	switch outcome {
	case back.OutcomeRegistered:
		fmt.Fprint(out, gotext.Get("%s has been registered, see you on the ladder.", mention(playerID)))
	case back.OutcomeAlreadyRegistered:
		fmt.Fprint(out, gotext.Get("%s is already registered.", mention(playerID)))
	}

	return nil
}

func (bot *Bot) cmdInfo(m *discordgo.Message, args []string, out io.Writer) error {
	communityID, err := getCommunityID(m)
	if err != nil {
		return err
	}

	playerID, err := parseSingleMention(args)
	if err != nil {
		return err
	}

	if !bot.back.MembershipExists(playerID, communityID) {
		return util.ErrPublic(gotext.Get("%s is not registered!", mention(playerID)))
	}

	stats, err := bot.back.GetMembershipStats(playerID, communityID)
	if err != nil {
		return err
	}

	lastMatch := "-"
	if stats.LastMatchAt.Valid {
		lastMatch = util.Date(stats.LastMatchAt.Time)
	}

	fmt.Fprint(out, "```\n")
	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, gotext.Get("Player\t2v2\t3v3\tWins\tLosses\tMatches\tLast match"))
	fmt.Fprintf(
		table, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
		bot.displayName(m.GuildID, playerID),
		stats.Rating2v2, stats.Rating3v3, stats.Wins, stats.Losses,
		stats.MatchesPlayed, lastMatch,
	)
	table.Flush()
	fmt.Fprint(out, "```")

	return nil
}

func (bot *Bot) cmdReset(m *discordgo.Message, args []string, out io.Writer) error {
	communityID, err := getCommunityID(m)
	if err != nil {
		return err
	}

	if !bot.isServerAdmin(m.Author.ID, m.ChannelID) {
		return util.ErrPublic(gotext.Get("you have to be admin to use this command!"))
	}

	playerID, err := parseSingleMention(args)
	if err != nil {
		return err
	}

	if err := bot.back.ResetMembership(playerID, communityID); err != nil {
		return err
	}

	fmt.Fprint(out, gotext.Get("%s has been reset!", mention(playerID)))
	return nil
}

// isServerAdmin returns true if the user has the administrator permission in
// the server owning the channel.
func (bot *Bot) isServerAdmin(userID, channelID string) bool {
	perms, err := bot.dg.State.UserChannelPermissions(userID, channelID)
	if err != nil {
		if perms, err = bot.dg.UserChannelPermissions(userID, channelID); err != nil {
			return false
		}
	}

	return perms&discordgo.PermissionAdministrator != 0
}

// displayName returns the server nickname of a player, or its username if it
// cannot be found in the state cache.
func (bot *Bot) displayName(guildID string, playerID int64) string {
	userID := strconv.FormatInt(playerID, 10)

	if member, err := bot.dg.State.Member(guildID, userID); err == nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := bot.dg.User(userID)
	if err != nil {
		return userID
	}

	return user.Username
}
