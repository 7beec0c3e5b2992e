package bot

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime/debug"
	"strings"
	"teamladder/internal/back"
	"teamladder/internal/config"
	"teamladder/internal/util"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/leonelquinteros/gotext"
)

type commandHandler func(m *discordgo.Message, args []string, w io.Writer) error

type Bot struct {
	back   *back.Back
	config *config.Config

	startedAt time.Time
	dg        *discordgo.Session
	limiter   *userLimiter

	handlers map[string]commandHandler
}

func New(back *back.Back, config *config.Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.DiscordToken)
	if err != nil {
		return nil, err
	}

	setupLocale(config.Locale)

	bot := &Bot{
		back:      back,
		config:    config,
		dg:        dg,
		startedAt: time.Now(),
		limiter:   newUserLimiter(config.CommandRate, config.CommandBurst),
	}

	dg.AddHandler(bot.handleMessage)

	bot.handlers = map[string]commandHandler{
		"!dev":      bot.cmdDev,
		"!help":     bot.cmdHelp,
		"!info":     bot.cmdInfo,
		"!ladder":   bot.cmdLadder,
		"!matches":  bot.cmdMatches,
		"!play":     bot.cmdPlay,
		"!register": bot.cmdRegister,
		"!reset":    bot.cmdReset,
	}

	return bot, nil
}

// Serve listens to Discord until done is closed.
func (bot *Bot) Serve(done <-chan struct{}) error {
	log.Println("info: starting Discord bot")
	if err := bot.dg.Open(); err != nil {
		return fmt.Errorf("unable to connect to Discord: %w", err)
	}

	<-done

	if err := bot.dg.Close(); err != nil {
		return fmt.Errorf("could not close Discord bot: %w", err)
	}

	return nil
}

func (bot *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore webooks, self, bots, non-commands.
	if m.Author == nil || m.Author.ID == s.State.User.ID ||
		m.Author.Bot || !strings.HasPrefix(m.Content, "!") {
		return
	}

	if !bot.isListenChannel(s, m.ChannelID) {
		return
	}

	log.Printf(
		"info: <%s(%s)@%s#%s> %s",
		m.Author.String(), m.Author.ID,
		m.GuildID, m.ChannelID,
		m.Content,
	)

	if !bot.limiter.allow(m.Author.ID) {
		log.Printf("warning: rate limited %s", m.Author.ID)
		return
	}

	out := newChannelWriter(s, m.ChannelID)
	defer func() {
		if err := out.Flush(); err != nil {
			log.Printf("error: could not send message: %s", err)
		}
	}()

	defer func() {
		r := recover()
		if r != nil {
			out.Reset()
			fmt.Fprint(out, gotext.Get("Something went very wrong, please tell the bot operator."))
			log.Print("panic: ", r)
			log.Print(string(debug.Stack()))
		}
	}()

	if err := bot.dispatch(m.Message, out); err != nil {
		out.Reset()
		writeError(out, err)
		log.Printf("error: failed to process command: %s", err)
	}
}

// writeError renders err for the chat, only errors meant for users are
// shown verbatim.
func writeError(w io.Writer, err error) {
	var failure *back.Failure
	switch {
	case errors.Is(err, util.ErrPublic("")):
		fmt.Fprint(w, gotext.Get("Error: %s", err.Error()))
	case errors.Is(err, back.ErrPersistence):
		fmt.Fprint(w, gotext.Get("Error: unable to save the match, nothing was changed."))
	case errors.As(err, &failure):
		fmt.Fprint(w, gotext.Get("Error: %s", failureMessage(failure)))
	default:
		fmt.Fprint(w, gotext.Get("There was an error processing your command."))
	}
}

func failureMessage(failure *back.Failure) string {
	switch failure.Kind {
	case back.FailureNotFound:
		return gotext.Get("Player not found!")
	case back.FailureEmptyLeaderboard:
		return gotext.Get("No registered players!")
	case back.FailureDuplicatePlayers:
		if failure.Count == 0 {
			return gotext.Get("Invalid argument!")
		}
		return gotext.Get("Duplicate found!")
	case back.FailureInvalidPlayerCount:
		return gotext.Get("Invalid player amount (%d). Valid amounts are: [4, 6]", failure.Count)
	case back.FailurePlayerNotRegistered:
		return gotext.Get("%s is not registered!", mention(failure.PlayerID))
	default:
		return failure.Error()
	}
}

func (bot *Bot) isListenChannel(s *discordgo.Session, channelID string) bool {
	if len(bot.config.DiscordListenChannelNames) == 0 {
		return true
	}

	channel, err := s.State.Channel(channelID)
	if err != nil {
		if channel, err = s.Channel(channelID); err != nil {
			log.Printf("error: unable to fetch channel %s: %s", channelID, err)
			return false
		}
	}

	return bot.config.IsListenChannel(channel.Name)
}

func parseCommand(cmd string) (string, []string) {
	parts := strings.Fields(cmd)

	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], nil
	default:
		return parts[0], parts[1:]
	}
}

func (bot *Bot) dispatch(m *discordgo.Message, w io.Writer) error {
	command, args := parseCommand(m.Content)
	handler, ok := bot.handlers[command]
	if !ok {
		return util.ErrPublic(gotext.Get("invalid command: %v", command))
	}

	return handler(m, args, w)
}

func (bot *Bot) cmdHelp(m *discordgo.Message, _ []string, w io.Writer) error {
	fmt.Fprint(w, strings.ReplaceAll(gotext.Get(`Available commands:
'''
!help                   # display this help message
!info @PLAYER           # display the ratings and record of a player
!ladder 2v2|3v3         # display the leaderboard of this server
!matches                # display the last matches played on this server
!play @W1 @W2 @L1 @L2   # record a 2v2 (or 3v3) match, winners first
!register               # join the ladder of this server
!reset @PLAYER          # reset a player (server administrators only)
'''`), "'''", "```"))

	if !bot.config.IsAdmin(m.Author.ID) {
		return nil
	}

	fmt.Fprint(w, strings.ReplaceAll(`Admin-only commands:
'''
!dev error     error out
!dev panic     panic and abort
!dev uptime    display for how long the server has been running
!dev url       display the link to use when adding the bot to a new server
'''`, "'''", "```"))

	return nil
}
