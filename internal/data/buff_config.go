package data

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownBuff is returned when a buff id is absent from the catalog.
var ErrUnknownBuff = errors.New("unknown buff")

// BuffTag groups buffs for per-tag counting (e.g. "how many DoTs are on the unit").
type BuffTag int32

const (
	BuffTagSample BuffTag = iota
	BuffTagStat
	BuffTagDamageOverTime
	BuffTagHealing
	BuffTagControl
)

var buffTagNames = [...]string{
	BuffTagSample:         "SAMPLE_BUFF",
	BuffTagStat:           "STAT",
	BuffTagDamageOverTime: "DAMAGE_OVER_TIME",
	BuffTagHealing:        "HEALING",
	BuffTagControl:        "CONTROL",
}

func (t BuffTag) String() string {
	if t >= 0 && int(t) < len(buffTagNames) {
		return buffTagNames[t]
	}
	return fmt.Sprintf("BuffTag(%d)", int32(t))
}

// ParseBuffTag parses a tag name, case-insensitive.
func ParseBuffTag(s string) (BuffTag, error) {
	for i, name := range buffTagNames {
		if strings.EqualFold(s, name) {
			return BuffTag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown buff tag %q", s)
}

// UnmarshalText allows BuffTag in YAML catalogs.
func (t *BuffTag) UnmarshalText(text []byte) error {
	v, err := ParseBuffTag(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// BuffType is the polarity of a buff.
type BuffType int32

const (
	BuffTypeNeutral BuffType = iota
	BuffTypePositive
	BuffTypeNegative
)

var buffTypeNames = [...]string{
	BuffTypeNeutral:  "NEUTRAL",
	BuffTypePositive: "POSITIVE",
	BuffTypeNegative: "NEGATIVE",
}

func (t BuffType) String() string {
	if t >= 0 && int(t) < len(buffTypeNames) {
		return buffTypeNames[t]
	}
	return fmt.Sprintf("BuffType(%d)", int32(t))
}

// ParseBuffType parses a type name, case-insensitive.
func ParseBuffType(s string) (BuffType, error) {
	for i, name := range buffTypeNames {
		if strings.EqualFold(s, name) {
			return BuffType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown buff type %q", s)
}

// UnmarshalText allows BuffType in YAML catalogs.
func (t *BuffType) UnmarshalText(text []byte) error {
	v, err := ParseBuffType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// BuffConfig описывает бафф статически. Immutable после загрузки каталога.
type BuffConfig struct {
	ID    int32    `yaml:"id"`
	Class string   `yaml:"class"` // behavior name in the buff registry
	Tag   BuffTag  `yaml:"tag"`
	Type  BuffType `yaml:"type"`

	// OneShot buffs apply once and are removed immediately.
	OneShot bool `yaml:"one_shot"`

	// Duration is the life of one layer, TickInterval the period of OnTick.
	Duration     time.Duration `yaml:"duration"`
	TickInterval time.Duration `yaml:"tick_interval"`

	MaxLayer          int32 `yaml:"max_layer"`
	RefreshOnLayer    bool  `yaml:"refresh_on_layer"`
	RemoveAllOnExpiry bool  `yaml:"remove_all_on_expiry"`

	// Params are behavior-specific settings (attribute name, deltas).
	Params map[string]string `yaml:"params"`
}

// EffectiveMaxLayer returns MaxLayer clamped to at least 1.
func (c *BuffConfig) EffectiveMaxLayer() int32 {
	if c.MaxLayer < 1 {
		return 1
	}
	return c.MaxLayer
}

// Param returns a behavior parameter or def if absent.
func (c *BuffConfig) Param(key, def string) string {
	if v, ok := c.Params[key]; ok {
		return v
	}
	return def
}

func (c *BuffConfig) validate() error {
	if c.Class == "" {
		return fmt.Errorf("buff %d: empty class", c.ID)
	}
	if c.OneShot {
		return nil
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("buff %d: tick interval must be positive, got %s", c.ID, c.TickInterval)
	}
	if c.Duration < 0 {
		return fmt.Errorf("buff %d: negative duration %s", c.ID, c.Duration)
	}
	return nil
}
