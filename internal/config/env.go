// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Mordvinov

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envValues is the raw environment layer. Every field holds the literal
// string from the store; validation and coercion happen in the resolver so
// that error messages can name the exact received value.
type envValues struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	ServerID     string `env:"SERVER_ID"`
	BotChannelID string `env:"BOT_CHANNEL_ID"`

	APIClientID     string `env:"API_CLIENT_ID"`
	APIClientSecret string `env:"API_CLIENT_SECRET"`

	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB"`

	PostRequestURL   string `env:"POST_REQUEST_URL"`
	PostRequestToken string `env:"POST_REQUEST_TOKEN"`

	PervertRole      string `env:"PERVERT_ROLE"`
	BotSelfID        string `env:"BOT_SELF_ID"`
	BotSpamChannelID string `env:"BOTSPAM_CHANNEL_ID"`

	RolesJSON          string `env:"ROLES_JSON"`
	ModsDictJSON       string `env:"MODS_DICT_JSON"`
	RankEmojiJSON      string `env:"RANK_EMOJI_JSON"`
	UserNewbestJSON    string `env:"USER_NEWBEST_LIMIT_JSON"`
	RoleThresholdsJSON string `env:"ROLE_THRESHOLDS_JSON"`

	MappingsFile string `env:"MAPPINGS_FILE"`
}

// parseEnv populates ev from the given key/value store using the
// caarlos0/env library. A nil store means the process environment.
func parseEnv(ev *envValues, environment map[string]string) error {
	err := env.ParseWithOptions(ev, env.Options{Environment: environment})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
