package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultDatabaseDSN = "./teamladder.db"
	DefaultWebAddr     = "127.0.0.1:3001"
	DefaultLocale      = "en"
)

type Config struct {
	DiscordToken string

	// DiscordListenChannelNames is a list of channel names where the bot will
	// listen and accept commands. Empty means everywhere.
	DiscordListenChannelNames []string

	// Who is allowed to use `!dev` commands.
	DiscordAdminUserIDs []string

	// Path to the sqlite database.
	DatabaseDSN string

	// Where the read-only HTTP API listens, empty disables it.
	WebAddr *string `json:",omitempty"`

	Locale string

	// Per-user command rate (commands per second) and burst.
	CommandRate  float64
	CommandBurst int
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

// GetWebAddr returns the HTTP API address, or "" when disabled.
func (c *Config) GetWebAddr() string {
	if c.WebAddr == nil {
		return DefaultWebAddr
	}

	return *c.WebAddr
}

func (c *Config) IsAdmin(discordUserID string) bool {
	for _, v := range c.DiscordAdminUserIDs {
		if v == discordUserID {
			return true
		}
	}

	return false
}

// IsListenChannel returns true if commands are accepted in a channel of the
// given name.
func (c *Config) IsListenChannel(name string) bool {
	if len(c.DiscordListenChannelNames) == 0 {
		return true
	}

	for _, v := range c.DiscordListenChannelNames {
		if strings.EqualFold(v, name) {
			return true
		}
	}

	return false
}

func (c *Config) setDefaults() {
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = DefaultDatabaseDSN
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.CommandRate <= 0 {
		c.CommandRate = 1
	}
	if c.CommandBurst <= 0 {
		c.CommandBurst = 3
	}
}

func (c *Config) expandFromEnv() {
	// A missing .env is fine, the environment itself still applies.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: unable to load .env: %s", err)
	}

	vars := []struct {
		src string
		dst *string
	}{
		{"TEAMLADDER_DISCORD_TOKEN", &c.DiscordToken},
		{"TEAMLADDER_DATABASE", &c.DatabaseDSN},
		{"TEAMLADDER_LOCALE", &c.Locale},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}

	// Can be set to an empty string to disable the API.
	if str, ok := os.LookupEnv("TEAMLADDER_WEB_ADDR"); ok {
		c.WebAddr = &str
	}

	if str := os.Getenv("TEAMLADDER_LISTEN_CHANNEL"); str != "" {
		c.DiscordListenChannelNames = strings.Split(str, ",")
		for k := range c.DiscordListenChannelNames {
			c.DiscordListenChannelNames[k] = strings.TrimSpace(c.DiscordListenChannelNames[k])
		}
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}

	return c.reloadFromPath(path)
}

// reloadFromPath reads the configuration at path, writing the defaults there
// first if the file does not exist. Environment variables are never written.
func (c *Config) reloadFromPath(path string) error {
	log.Printf("debug: reading conf from %s", path)

	*c = Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.setDefaults()
		if err := c.writeToPath(path); err != nil {
			return fmt.Errorf("unable to write default conf: %w", err)
		}
		log.Printf("info: wrote default conf to %s", path)
	} else if err := c.decodeFromPath(path); err != nil {
		return err
	}

	c.expandFromEnv()
	c.setDefaults()

	return nil
}

func (c *Config) decodeFromPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("unable to decode %s: %w", path, err)
	}

	return nil
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "teamladder")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) writeToPath(path string) error {
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
