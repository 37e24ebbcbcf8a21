package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mordv/scorebot/internal/config"
	"github.com/mordv/scorebot/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	envFile := flag.String("env", ".env", "dotenv file loaded before resolution")
	mappingsPath := flag.String("mappings", "", "mappings file path (overrides MAPPINGS_FILE)")
	flag.Parse()

	log := logger.NewLogger("configcheck")

	// Overload matches the bot's startup: dotenv values override anything
	// already in the environment. A missing .env is fine, deployments may
	// configure everything via the real environment.
	if err := godotenv.Overload(*envFile); err != nil && !os.IsNotExist(err) {
		log.Warn().Str("path", *envFile).Err(err).Msg("failed to load dotenv file")
	}

	cfg, err := config.Resolve(config.Options{
		MappingsPath: *mappingsPath,
		Logger:       log,
	})
	if err != nil {
		log.Error().Err(err).Msg("configuration is invalid")
		os.Exit(1)
	}

	log.Info().
		Int("token_length", len(cfg.DiscordToken)).
		Int64("server_id", cfg.ServerID).
		Int64("bot_channel_id", cfg.BotChannelID).
		Int64("botspam_channel_id", cfg.BotSpamChannelID).
		Int64("bot_self_id", cfg.BotSelfID).
		Int("roles", len(cfg.Roles)).
		Int("mods", len(cfg.ModsDict)).
		Int("rank_emoji", len(cfg.RankEmoji)).
		Int("user_newbest_limits", len(cfg.UserNewbestLimit)).
		Int("role_thresholds", len(cfg.RoleThresholds)).
		Msg("configuration is valid")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
