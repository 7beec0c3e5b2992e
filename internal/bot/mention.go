package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"teamladder/internal/util"

	"github.com/bwmarrin/discordgo"
	"github.com/leonelquinteros/gotext"
)

var mentionRegexp = regexp.MustCompile(`^<@!?(\d+)>$`) // nolint:gochecknoglobals

// parseMentions returns the user IDs mentioned in args, in the order they were
// typed. Every argument must be a mention.
func parseMentions(args []string) ([]int64, error) {
	ret := make([]int64, 0, len(args))
	for _, v := range args {
		matches := mentionRegexp.FindStringSubmatch(v)
		if matches == nil {
			return nil, util.ErrPublic(gotext.Get("expected a player mention, got `%s`", v))
		}

		id, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return nil, util.ErrPublic(gotext.Get("expected a player mention, got `%s`", v))
		}

		ret = append(ret, id)
	}

	return ret, nil
}

// parseSingleMention expects exactly one mention.
func parseSingleMention(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, util.ErrPublic(gotext.Get("expected a single player mention"))
	}

	ids, err := parseMentions(args)
	if err != nil {
		return 0, err
	}

	return ids[0], nil
}

func mention(playerID int64) string {
	return fmt.Sprintf("<@%d>", playerID)
}

// parseSnowflake converts a Discord ID to the int64 we store.
func parseSnowflake(id string) (int64, error) {
	ret, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid Discord ID %q: %w", id, err)
	}

	return ret, nil
}

// getCommunityID returns the ID of the server the message was sent in.
func getCommunityID(m *discordgo.Message) (int64, error) {
	if m.GuildID == "" {
		return 0, util.ErrPublic(gotext.Get("this command only works in a server channel"))
	}

	return parseSnowflake(m.GuildID)
}
