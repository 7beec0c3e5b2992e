package bot

import (
	"fmt"
	"io"
	"teamladder/internal/util"
	"time"

	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) cmdDev(m *discordgo.Message, args []string, out io.Writer) error {
	if !bot.config.IsAdmin(m.Author.ID) {
		return fmt.Errorf("!dev command ran by a non-admin: %v", args)
	}
	if len(args) < 1 {
		return util.ErrPublic("need a subcommand")
	}

	switch args[0] {
	case "panic":
		panic("an admin asked me to panic")
	case "uptime":
		fmt.Fprintf(out, "The bot has been online for %s", time.Since(bot.startedAt).Truncate(time.Second))
	case "error":
		return util.ErrPublic("here's your error")
	case "url":
		fmt.Fprint(out, inviteURL(bot.dg.State.User.ID))
	default:
		return util.ErrPublic(fmt.Sprintf("unknown subcommand: %s", args[0]))
	}

	return nil
}

func inviteURL(clientID string) string {
	return fmt.Sprintf(
		"https://discordapp.com/api/oauth2/authorize?client_id=%s&scope=bot&permissions=%d",
		clientID,
		discordgo.PermissionReadMessages|discordgo.PermissionSendMessages|
			discordgo.PermissionEmbedLinks|discordgo.PermissionReadMessageHistory,
	)
}
