// Package region manages region factor packs: per-region electricity factor
// overrides and grid generation mixes, loaded once from a JSON file and
// published as immutable snapshots. Hot reload replaces the whole snapshot
// atomically, so concurrent readers never observe a partial table.
package region

import (
	"sort"
	"strings"
	"time"
)

// Pack is one region's overlay data. All fields are optional.
type Pack struct {
	// Factors overrides specific emission factors by canonical activity key.
	// In practice only electricity_kwh is overridden.
	Factors map[string]float64 `json:"factors,omitempty"`
	// GridMix maps generation source name to its share of generation.
	// Shares are stored as read; consumers normalize them.
	GridMix map[string]float64 `json:"grid_mix,omitempty"`
	// Meta carries provenance strings (source, version, url) for display.
	Meta map[string]string `json:"__meta__,omitempty"`
}

// Snapshot is an immutable set of packs keyed by region code.
type Snapshot struct {
	packs    map[string]Pack
	source   string
	loadedAt time.Time
}

// Pack returns the pack for code, trimming surrounding whitespace.
// The second return is false for empty or unknown codes.
func (s *Snapshot) Pack(code string) (Pack, bool) {
	if s == nil {
		return Pack{}, false
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Pack{}, false
	}
	p, ok := s.packs[code]
	return p, ok
}

// Codes returns the region codes in the snapshot, sorted.
func (s *Snapshot) Codes() []string {
	if s == nil {
		return nil
	}
	codes := make([]string, 0, len(s.packs))
	for code := range s.packs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Source describes where the snapshot came from ("builtin" or a file path).
func (s *Snapshot) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// LoadedAt reports when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// NewSnapshot builds a snapshot from an explicit pack table. The map is
// copied; later mutation of packs does not affect the snapshot.
func NewSnapshot(source string, packs map[string]Pack) *Snapshot {
	copied := make(map[string]Pack, len(packs))
	for code, p := range packs {
		copied[code] = p
	}
	return &Snapshot{packs: copied, source: source, loadedAt: time.Now()}
}

// DefaultSnapshot returns the built-in illustrative pack set, used whenever
// no pack file is available or the file is malformed.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		source:   "builtin",
		loadedAt: time.Now(),
		packs: map[string]Pack{
			"EU-avg": {
				Meta:    map[string]string{"source": "Illustrative EU avg", "version": "2024.1", "url": ""},
				Factors: map[string]float64{"electricity_kwh": 0.28},
				GridMix: map[string]float64{
					"coal": 0.15, "gas": 0.20, "nuclear": 0.25,
					"hydro": 0.15, "wind": 0.18, "solar": 0.07,
				},
			},
			"US-avg": {
				Meta:    map[string]string{"source": "Illustrative US avg", "version": "2024.1", "url": ""},
				Factors: map[string]float64{"electricity_kwh": 0.40},
				GridMix: map[string]float64{
					"coal": 0.20, "gas": 0.38, "nuclear": 0.19,
					"hydro": 0.07, "wind": 0.11, "solar": 0.05,
				},
			},
			"FR": {
				Meta:    map[string]string{"source": "Illustrative France", "version": "2024.1", "url": ""},
				Factors: map[string]float64{"electricity_kwh": 0.07},
				GridMix: map[string]float64{
					"nuclear": 0.66, "hydro": 0.12, "wind": 0.10,
					"solar": 0.06, "gas": 0.04, "coal": 0.02,
				},
			},
		},
	}
}
