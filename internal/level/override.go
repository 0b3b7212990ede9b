package level

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Override is a sparse per-level record; nil fields keep the computed default.
// The keys follow the levels document shape: {level: N, gridSize: 6, ...}.
type Override struct {
	Level            int      `yaml:"level"`
	GridSize         *int     `yaml:"gridSize,omitempty"`
	TimeBonusSeconds *int     `yaml:"timeBonusSeconds,omitempty"`
	RewardMultiplier *float64 `yaml:"rewardMultiplier,omitempty"`
	Shuffle          *bool    `yaml:"shuffle,omitempty"`
	ShuffleInterval  *int     `yaml:"shuffleInterval,omitempty"`
	MultiGrid        *bool    `yaml:"multiGrid,omitempty"`
	MultiGridCount   *int     `yaml:"multiGridCount,omitempty"`
	Fade             *bool    `yaml:"fade,omitempty"`
	PoolCount        *int     `yaml:"poolCount,omitempty"`
}

// OverrideSource supplies optional per-level overrides. Absence is normal.
type OverrideSource interface {
	Override(level int) (Override, bool)
}

// StaticOverrides is an in-memory override source keyed by level number.
// The key wins over the record's own Level field.
type StaticOverrides map[int]Override

// Override implements OverrideSource.
func (s StaticOverrides) Override(level int) (Override, bool) {
	ov, ok := s[level]
	if !ok {
		return Override{}, false
	}
	ov.Level = level
	return ov, true
}

// check reports entries that must be skipped.
func (o Override) check(totalLevels, maxGridSize int) error {
	if o.Level < 1 || o.Level > totalLevels {
		return fmt.Errorf("level %d out of range 1..%d", o.Level, totalLevels)
	}
	if o.GridSize != nil {
		g := *o.GridSize
		if g <= 0 || g%2 != 0 || g > maxGridSize {
			return fmt.Errorf("gridSize %d must be even and within 2..%d", g, maxGridSize)
		}
	}
	return nil
}

// apply overlays the fields present in o onto cfg.
func (o Override) apply(cfg *Config) {
	if o.GridSize != nil {
		cfg.GridSize = *o.GridSize
	}
	if o.TimeBonusSeconds != nil {
		cfg.TimeBonusSeconds = *o.TimeBonusSeconds
	}
	if o.RewardMultiplier != nil {
		cfg.RewardMultiplier = *o.RewardMultiplier
	}
	if o.Shuffle != nil {
		cfg.ShuffleEnabled = *o.Shuffle
	}
	if o.ShuffleInterval != nil {
		cfg.ShuffleInterval = *o.ShuffleInterval
	}
	if o.MultiGrid != nil {
		cfg.MultiGridEnabled = *o.MultiGrid
	}
	if o.MultiGridCount != nil {
		cfg.MultiGridCount = *o.MultiGridCount
	}
	if o.Fade != nil {
		cfg.FadeEnabled = *o.Fade
	}
	if o.PoolCount != nil {
		cfg.PoolCount = *o.PoolCount
	}
}

// ParseOverrides decodes a levels document entry by entry. JSON documents
// are accepted as well. A malformed entry is logged and skipped; only a
// document that cannot be read at all is an error.
func ParseOverrides(data []byte, totalLevels, maxGridSize int, logger *log.Logger) (StaticOverrides, error) {
	logger = orDiscard(logger)

	var doc struct {
		Levels []yaml.Node `yaml:"levels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("level: cannot parse overrides: %w", err)
	}

	out := make(StaticOverrides, len(doc.Levels))
	for i := range doc.Levels {
		var ov Override
		if err := doc.Levels[i].Decode(&ov); err != nil {
			logger.Warn("override entry skipped", "index", i, "line", doc.Levels[i].Line, "error", err)
			continue
		}
		if err := ov.check(totalLevels, maxGridSize); err != nil {
			logger.Warn("override entry skipped", "index", i, "line", doc.Levels[i].Line, "error", err)
			continue
		}
		out[ov.Level] = ov
	}
	return out, nil
}

// LoadOverrideFile reads a levels document from path.
func LoadOverrideFile(path string, totalLevels, maxGridSize int, logger *log.Logger) (StaticOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: cannot read overrides %s: %w", path, err)
	}
	ovs, err := ParseOverrides(data, totalLevels, maxGridSize, logger)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return ovs, nil
}

// FindOverrides locates the levels document.
// Search order: customPath -> ~/.pairs/configs/levels.yaml -> ./configs/levels.yaml -> none
//
// Missing or unreadable documents degrade to an empty source with a warning;
// resolution then uses pure defaults.
func FindOverrides(customPath string, totalLevels, maxGridSize int, logger *log.Logger) StaticOverrides {
	logger = orDiscard(logger)

	var candidates []string
	if customPath != "" {
		candidates = []string{customPath}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, ".pairs", "configs", "levels.yaml"))
		}
		candidates = append(candidates, filepath.Join("configs", "levels.yaml"))
	}

	for _, path := range candidates {
		ovs, err := LoadOverrideFile(path, totalLevels, maxGridSize, logger)
		if err == nil {
			logger.Debug("level overrides loaded", "path", path, "entries", len(ovs))
			return ovs
		}
		if errors.Is(err, os.ErrNotExist) && customPath == "" {
			continue
		}
		logger.Warn("level overrides ignored", "path", path, "error", err)
	}
	return StaticOverrides{}
}

// orDiscard returns l, or a logger that drops everything when l is nil.
func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
