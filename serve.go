package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"teamladder/internal/back"
	"teamladder/internal/bot"
	"teamladder/internal/config"
	"teamladder/internal/util"
	"teamladder/internal/web"
)

// A service runs until done is closed, returning early only on failure.
type service func(done <-chan struct{}) error

func serve() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	if conf.DiscordToken == "" {
		return errors.New("no Discord token, set TEAMLADDER_DISCORD_TOKEN")
	}

	b, err := back.New("sqlite3", back.SQLiteDSN(conf.DatabaseDSN))
	if err != nil {
		return err
	}

	discord, err := bot.New(b, conf)
	if err != nil {
		return util.ConcatErrors([]error{err, b.Close()})
	}

	services := []service{discord.Serve}
	if addr := conf.GetWebAddr(); addr != "" {
		services = append(services, web.NewServer(b, addr).Serve)
	}

	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	errs := runServices(signaled, services...)
	errs = append(errs, b.Close())

	log.Print("info: shutdown complete")

	return util.ConcatErrors(errs)
}

// runServices starts every service and stops them all on the first signal or
// the first service failure. It returns once they are all stopped.
func runServices(signaled <-chan os.Signal, services ...service) []error {
	var wg sync.WaitGroup
	done := make(chan struct{})
	errs := make(chan error, len(services))

	for _, v := range services {
		wg.Add(1)
		go func(run service) {
			defer wg.Done()
			errs <- run(done)
		}(v)
	}

	ret := make([]error, 0, len(services))
	select {
	case sig := <-signaled:
		log.Printf("info: received signal %s", sig)
	case err := <-errs:
		log.Printf("error: service stopped: %s", err)
		ret = append(ret, err)
	}

	close(done)
	wg.Wait()
	close(errs)

	for err := range errs {
		ret = append(ret, err)
	}

	return ret
}
