package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mordv/scorebot/internal/logger"
)

// defaultMappingsName is the file looked up next to the executable when
// neither an explicit path nor the MAPPINGS_FILE override is set.
const defaultMappingsName = "mappings.json"

// MappingSource is an abstract structured key-value source for the
// mapping-typed configuration keys (ROLES, MODS_DICT, RANK_EMOJI,
// USER_NEWBEST_LIMIT, ROLE_THRESHOLDS). Production code backs it with a
// JSON file on disk; tests may inject an in-memory fixture.
type MappingSource interface {
	// Lookup returns the raw JSON value stored under key, or false when
	// the source holds nothing for it.
	Lookup(key string) (json.RawMessage, bool)
}

// fileSource reads mapping keys from a single JSON object on disk. The file
// is optional: a missing, unreadable, or malformed file degrades every
// lookup to absent instead of failing resolution, because environment
// overrides remain the authoritative escape hatch. The file is parsed at
// most once; the result is reused for every lookup in the pass.
type fileSource struct {
	path   string
	log    *logger.Logger
	loaded bool
	data   map[string]json.RawMessage
}

func newFileSource(path string, log *logger.Logger) *fileSource {
	return &fileSource{path: path, log: log}
}

func (f *fileSource) Lookup(key string) (json.RawMessage, bool) {
	if !f.loaded {
		f.load()
	}

	raw, ok := f.data[key]
	return raw, ok
}

func (f *fileSource) load() {
	f.loaded = true

	body, err := os.ReadFile(f.path)
	if err != nil {
		// A missing file is a supported deployment, not a problem.
		if !os.IsNotExist(err) {
			f.log.Info().Str("path", f.path).Err(err).Msg("failed to read mappings file")
		}
		return
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		f.log.Info().Str("path", f.path).Err(err).Msg("failed to parse mappings file")
		return
	}

	f.data = data
}

// defaultMappingsPath resolves the fallback mappings location: next to the
// running executable, which mirrors a repo-root mappings.json in
// development checkouts.
func defaultMappingsPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return defaultMappingsName
	}

	return filepath.Join(filepath.Dir(execPath), defaultMappingsName)
}
