// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Mordvinov

package config

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/mordv/scorebot/internal/logger"
)

// Config is the immutable, fully-typed runtime configuration of the bot.
// It is constructed exactly once at process start by [Resolve] and is never
// mutated afterwards, so it is safe for unsynchronized concurrent reads.
type Config struct {
	// DiscordToken is the bot authentication token. Required.
	DiscordToken string

	// ServerID is the numeric id of the guild the bot serves. Required.
	ServerID int64

	// BotChannelID is the channel the bot answers commands in. Required.
	BotChannelID int64

	// BotSpamChannelID is the channel that receives new-top-score and
	// rank-change posts. Zero means not configured.
	BotSpamChannelID int64

	// BotSelfID is the bot's own Discord user id. Zero means not configured.
	BotSelfID int64

	// PervertRoleID gates the opt-in command set behind a role. Zero means
	// not configured.
	PervertRoleID int64

	// APIClientID and APIClientSecret are the scoring API credentials.
	APIClientID     string
	APIClientSecret string

	// DatabaseURL is the connection string handed to the service layer.
	// When DATABASE_URL is unset it is composed from the POSTGRES_* parts.
	DatabaseURL string

	// PostRequestURL and PostRequestToken configure the outbound score
	// posting endpoint.
	PostRequestURL   string
	PostRequestToken string

	// Roles maps rank role names to Discord role ids.
	Roles map[string]int64

	// RoleNames holds the Roles keys in their configured (document) order,
	// best rank first.
	RoleNames []string

	// RevRoles is derived from Roles: role id back to role name. When two
	// names share an id, the later entry in configured order wins.
	RevRoles map[int64]string

	// RoleRank is derived from Roles: role name to its position in the
	// configured order.
	RoleRank map[string]int

	// ModsDict maps two-letter mod codes to the numeric values the pp
	// calculator expects.
	ModsDict map[string]int

	// RankEmoji maps score grades to the emoji posted with them.
	RankEmoji map[string]string

	// UserNewbestLimit maps usernames to the personal-top cutoff that
	// decides whether a score gets posted.
	UserNewbestLimit map[string]int

	// RoleThresholds maps role names to the pp threshold that awards them.
	RoleThresholds map[string]int
}

// Options carries the injectable sources for one resolution pass. The zero
// value resolves from the process environment and the default mappings file,
// with diagnostics discarded.
type Options struct {
	// Environment overrides the environment store. Nil means the process
	// environment.
	Environment map[string]string

	// Mappings overrides the structured mapping source. Nil means a JSON
	// file at MappingsPath.
	Mappings MappingSource

	// MappingsPath overrides the mappings file location. Empty means the
	// MAPPINGS_FILE environment value, then mappings.json next to the
	// executable.
	MappingsPath string

	// Logger receives informational "key absent, defaulting" diagnostics.
	// Nil means no output.
	Logger *logger.Logger
}

// Resolve performs one full resolution pass over every configuration key
// and returns either a complete [Config] or the full set of fatal
// configuration errors joined together, so a broken deployment reports all
// of its misconfiguration at once. No partial config is returned on error.
func Resolve(opts Options) (*Config, error) {
	ev := &envValues{}
	if err := parseEnv(ev, opts.Environment); err != nil {
		return nil, err
	}

	if err := opts.applyDefaults(ev); err != nil {
		return nil, err
	}

	return newResolver(ev, opts.Mappings, opts.Logger).resolve()
}

// applyDefaults fills unset options by merging a computed default layer on
// top of the caller's values. It runs after the environment layer is parsed
// because the default mappings path may come from MAPPINGS_FILE.
func (o *Options) applyDefaults(ev *envValues) error {
	defaults := Options{
		MappingsPath: ev.MappingsFile,
		Logger:       logger.Nop(),
	}
	if defaults.MappingsPath == "" {
		defaults.MappingsPath = defaultMappingsPath()
	}

	if err := mergo.Merge(o, defaults); err != nil {
		return fmt.Errorf("error merging option defaults: %w", err)
	}

	if o.Mappings == nil {
		o.Mappings = newFileSource(o.MappingsPath, o.Logger)
	}

	return nil
}
