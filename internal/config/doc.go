// Package config resolves the bot's runtime configuration from layered
// sources into one immutable, fully-typed [Config].
//
// Each key is sought in a fixed precedence order:
//  1. Environment variables (always win when present and non-empty)
//  2. An optional JSON mappings file (mapping-typed keys only)
//  3. A hard default, or explicit absence
//
// Required keys that resolve to nothing are fatal; optional keys degrade to
// an explicit unset/empty value with an informational diagnostic. A value
// that is present but malformed is always fatal, regardless of whether the
// key is required.
//
// The main entry point is [Resolve], which takes its sources as [Options]
// so tests can inject a fake environment and mapping source.
package config
