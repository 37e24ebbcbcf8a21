// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Mordvinov

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mordv/scorebot/internal/logger"
)

// resolver walks every configuration key once, applying that key's coercion
// policy and accumulating fatal errors instead of stopping at the first one.
type resolver struct {
	env      *envValues
	mappings MappingSource
	log      *logger.Logger
	errs     []error
}

func newResolver(ev *envValues, mappings MappingSource, log *logger.Logger) *resolver {
	return &resolver{env: ev, mappings: mappings, log: log}
}

func (r *resolver) resolve() (*Config, error) {
	cfg := &Config{
		DiscordToken: r.requiredString("DISCORD_TOKEN", r.env.DiscordToken),
		ServerID:     r.requiredInt64("SERVER_ID", r.env.ServerID),
		BotChannelID: r.requiredInt64("BOT_CHANNEL_ID", r.env.BotChannelID),

		BotSpamChannelID: r.optionalInt64("BOTSPAM_CHANNEL_ID", r.env.BotSpamChannelID),
		BotSelfID:        r.optionalInt64("BOT_SELF_ID", r.env.BotSelfID),
		PervertRoleID:    r.optionalInt64("PERVERT_ROLE", r.env.PervertRole),

		APIClientID:      r.env.APIClientID,
		APIClientSecret:  r.env.APIClientSecret,
		PostRequestURL:   r.env.PostRequestURL,
		PostRequestToken: r.env.PostRequestToken,

		DatabaseURL: r.databaseURL(),

		RankEmoji: r.opaqueMapping("RANK_EMOJI_JSON", r.env.RankEmojiJSON, "RANK_EMOJI"),
	}

	cfg.RoleNames, cfg.Roles = r.roleMapping("ROLES_JSON", r.env.RolesJSON, "ROLES")
	cfg.RevRoles, cfg.RoleRank = deriveRoleIndexes(cfg.RoleNames, cfg.Roles)

	cfg.ModsDict = r.intMapping("MODS_DICT_JSON", r.env.ModsDictJSON, "MODS_DICT")
	cfg.UserNewbestLimit = r.intMapping("USER_NEWBEST_LIMIT_JSON", r.env.UserNewbestJSON, "USER_NEWBEST_LIMIT")
	cfg.RoleThresholds = r.intMapping("ROLE_THRESHOLDS_JSON", r.env.RoleThresholdsJSON, "ROLE_THRESHOLDS")

	if len(r.errs) > 0 {
		return nil, fmt.Errorf("error resolving configuration: %w", errors.Join(r.errs...))
	}

	return cfg, nil
}

func (r *resolver) fail(err error) {
	r.errs = append(r.errs, err)
}

// read resolves the raw value for one mapping-typed key. A non-empty
// environment blob always wins, then the structured source, then absent.
// Sources are never blended; the first hit supplies the whole mapping.
func (r *resolver) read(envValue, fileKey string) RawValue {
	if envValue != "" {
		return textValue(envValue)
	}

	if raw, ok := r.mappings.Lookup(fileKey); ok {
		return structuredValue(raw)
	}

	return RawValue{}
}

func (r *resolver) requiredString(key, value string) string {
	if value == "" {
		r.fail(missingKey(key))
		return ""
	}

	return value
}

func (r *resolver) requiredInt64(key, value string) int64 {
	if value == "" {
		r.fail(missingKey(key))
		return 0
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		r.fail(invalidKey(key, value, errors.New("must be an integer id")))
		return 0
	}

	return n
}

// optionalInt64 resolves to the zero sentinel when unset. A value that is
// present but not an integer is still fatal: presence means an operator
// committed to configuring the key, so malformed input must not silently
// degrade to unset.
func (r *resolver) optionalInt64(key, value string) int64 {
	if value == "" {
		r.log.Info().Str("key", key).Msg("optional key not configured, left unset")
		return 0
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		r.fail(invalidKey(key, value, errors.New("must be an integer id")))
		return 0
	}

	return n
}

// decodeMappingKey runs source resolution plus JSON-object normalization
// for one mapping-typed key. ok is false when the key is absent (soft, with
// a diagnostic) or its payload failed to parse (fatal, already recorded).
func (r *resolver) decodeMappingKey(envKey, envValue, fileKey string) (keys []string, values map[string]json.RawMessage, ok bool) {
	rv := r.read(envValue, fileKey)
	if rv.Absent() {
		r.log.Info().Str("env", envKey).Str("key", fileKey).Msg("no mapping configured, defaulting to empty")
		return nil, nil, false
	}

	keys, values, err := decodeMapping(rv)
	if err != nil {
		r.fail(invalidKey(fileKey, rv.received(), err))
		return nil, nil, false
	}

	return keys, values, true
}

// intMapping implements the required-structured-mapping policy: every value
// must coerce to an integer, absence yields an empty mapping.
func (r *resolver) intMapping(envKey, envValue, fileKey string) map[string]int {
	out := map[string]int{}

	keys, values, ok := r.decodeMappingKey(envKey, envValue, fileKey)
	if !ok {
		return out
	}

	for _, k := range keys {
		n, err := coerceInt64(values[k])
		if err != nil {
			r.fail(invalidKey(fileKey, fmt.Sprintf("%s=%s", k, values[k]), errors.New("mapping values must be integers")))
			continue
		}
		out[k] = int(n)
	}

	return out
}

// roleMapping is intMapping specialized for ROLES: ids stay 64-bit and the
// configured key order is kept for the derived rank index.
func (r *resolver) roleMapping(envKey, envValue, fileKey string) ([]string, map[string]int64) {
	out := map[string]int64{}

	keys, values, ok := r.decodeMappingKey(envKey, envValue, fileKey)
	if !ok {
		return nil, out
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		id, err := coerceInt64(values[k])
		if err != nil {
			r.fail(invalidKey(fileKey, fmt.Sprintf("%s=%s", k, values[k]), errors.New("mapping values must be integer role ids")))
			continue
		}
		names = append(names, k)
		out[k] = id
	}

	return names, out
}

// opaqueMapping implements the optional-mapping policy for RANK_EMOJI:
// values pass through without numeric coercion.
func (r *resolver) opaqueMapping(envKey, envValue, fileKey string) map[string]string {
	out := map[string]string{}

	keys, values, ok := r.decodeMappingKey(envKey, envValue, fileKey)
	if !ok {
		return out
	}

	for _, k := range keys {
		var s string
		if err := json.Unmarshal(values[k], &s); err != nil {
			r.fail(invalidKey(fileKey, fmt.Sprintf("%s=%s", k, values[k]), errors.New("mapping values must be strings")))
			continue
		}
		out[k] = s
	}

	return out
}

// databaseURL prefers an explicit DATABASE_URL and otherwise composes the
// in-cluster default from the POSTGRES_* parts.
func (r *resolver) databaseURL() string {
	if r.env.DatabaseURL != "" {
		return r.env.DatabaseURL
	}

	return fmt.Sprintf("postgresql://%s:%s@db:5432/%s",
		r.env.PostgresUser, r.env.PostgresPassword, r.env.PostgresDB)
}

// deriveRoleIndexes rebuilds the two secondary lookups from the
// authoritative role mapping: role id back to name (later duplicates win)
// and role name to its position in the configured order. An empty mapping
// derives two empty indexes.
func deriveRoleIndexes(names []string, roles map[string]int64) (map[int64]string, map[string]int) {
	rev := make(map[int64]string, len(roles))
	rank := make(map[string]int, len(roles))

	for i, name := range names {
		rev[roles[name]] = name
		rank[name] = i
	}

	return rev, rank
}
