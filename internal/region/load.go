package region

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// schemaVersionKey is the reserved top-level key carrying the pack file's
// schema version. It is not a region code.
const schemaVersionKey = "schema_version"

// supportedSchemaMajor is the highest pack schema major version this build
// understands. Files declaring a higher major are rejected.
const supportedSchemaMajor = 1

// ErrEmptySnapshot indicates a pack file that parsed but contained no regions.
var ErrEmptySnapshot = errors.New("region pack file contains no regions")

// LoadSnapshot parses a region pack file into an immutable Snapshot.
//
// The file is a JSON object keyed by region code, with an optional
// schema_version string. Version strings that parse as semver and declare a
// major version above supportedSchemaMajor are rejected; absent or
// non-semver versions are accepted (the built-in packs ship without one).
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading region packs: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing region packs: %w", err)
	}

	if verRaw, ok := raw[schemaVersionKey]; ok {
		delete(raw, schemaVersionKey)
		var verStr string
		if err := json.Unmarshal(verRaw, &verStr); err == nil {
			if v, verr := semver.NewVersion(verStr); verr == nil && v.Major() > supportedSchemaMajor {
				return nil, fmt.Errorf("region pack schema version %s is newer than supported major %d",
					verStr, supportedSchemaMajor)
			}
		}
	}

	packs := make(map[string]Pack, len(raw))
	for code, msg := range raw {
		var p Pack
		if err := json.Unmarshal(msg, &p); err != nil {
			return nil, fmt.Errorf("parsing region pack %q: %w", code, err)
		}
		packs[code] = p
	}

	if len(packs) == 0 {
		return nil, ErrEmptySnapshot
	}

	return &Snapshot{packs: packs, source: path, loadedAt: time.Now()}, nil
}

// Load builds a Registry from the pack file at path, falling back to the
// built-in defaults if the file is absent or malformed. It never fails.
func Load(ctx context.Context, path string) *Registry {
	log := logging.FromContext(ctx)

	if path != "" {
		snap, err := LoadSnapshot(path)
		if err == nil {
			log.Debug().Str("component", "region").Str("path", path).
				Int("regions", len(snap.packs)).Msg("loaded region packs")
			return NewRegistry(snap)
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Str("component", "region").Str("path", path).Err(err).
				Msg("region pack file unusable, using built-in defaults")
		}
	}

	return NewRegistry(DefaultSnapshot())
}
