package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func run(command string) error {
	switch command {
	case "version":
		fmt.Fprintf(os.Stdout, "Teamladder %s\n", Version)
	case "serve":
		return serve()
	case "migrate":
		return migrateUp()
	case "dev:fixtures":
		return loadFixtures()
	case "help":
		fmt.Fprint(os.Stdout, help())
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}

	return nil
}

func help() string {
	return fmt.Sprintf(`
Teamladder is a Discord bot keeping 2v2 and 3v3 Elo ladders for each server
it is invited in.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    dev:fixtures create default data for quick testing during development
    help         display this help
    migrate      create or upgrade the database schema
    serve        start the Discord bot and the HTTP API
    version      display the current version

ENVIRONMENT
    TEAMLADDER_DISCORD_TOKEN   Discord bot token
    TEAMLADDER_DATABASE        path to the sqlite database
    TEAMLADDER_WEB_ADDR        HTTP API address, empty to disable
    TEAMLADDER_LOCALE          language of the bot replies
    TEAMLADDER_LISTEN_CHANNEL  comma-separated channel names to listen to
`,
		os.Args[0],
	)
}
