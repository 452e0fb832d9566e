package data

import "time"

// buffDefs: встроенная таблица баффов, используется когда не задан
// ни YAML, ни database каталог.
var buffDefs = []BuffConfig{
	{
		ID:             0,
		Class:          "SampleBuff",
		Tag:            BuffTagSample,
		Type:           BuffTypeNeutral,
		Duration:       5 * time.Second,
		TickInterval:   time.Second,
		MaxLayer:       3,
		RefreshOnLayer: true,
	},
	{
		ID:             1,
		Class:          "StatModifier",
		Tag:            BuffTagStat,
		Type:           BuffTypePositive,
		Duration:       30 * time.Second,
		TickInterval:   time.Second,
		MaxLayer:       5,
		RefreshOnLayer: true,
		Params: map[string]string{
			"attribute":      "Attack",
			"temp_additive":  "10",
			"pre_multiplier": "0",
		},
	},
	{
		ID:                2,
		Class:             "Periodic",
		Tag:               BuffTagDamageOverTime,
		Type:              BuffTypeNegative,
		Duration:          6 * time.Second,
		TickInterval:      time.Second,
		MaxLayer:          3,
		RefreshOnLayer:    true,
		RemoveAllOnExpiry: true,
		Params: map[string]string{
			"attribute": "Health",
			"delta":     "-5",
		},
	},
	{
		ID:           3,
		Class:        "Periodic",
		Tag:          BuffTagHealing,
		Type:         BuffTypePositive,
		Duration:     10 * time.Second,
		TickInterval: 2 * time.Second,
		MaxLayer:     1,
		Params: map[string]string{
			"attribute": "Health",
			"delta":     "8",
		},
	},
	{
		ID:       4,
		Class:    "Instant",
		Tag:      BuffTagHealing,
		Type:     BuffTypePositive,
		OneShot:  true,
		MaxLayer: 1,
		Params: map[string]string{
			"attribute": "Health",
			"delta":     "50",
		},
	},
	{
		ID:           5,
		Class:        "StatModifier",
		Tag:          BuffTagControl,
		Type:         BuffTypeNegative,
		Duration:     3 * time.Second,
		TickInterval: time.Second,
		MaxLayer:     1,
		Params: map[string]string{
			"attribute":       "MoveSpeed",
			"post_multiplier": "-0.5",
		},
	},
}
