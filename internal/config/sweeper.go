package config

import (
	"sync"
	"time"
)

type SweeperConfig struct {
	Interval time.Duration // zero disables the sweep
	MaxAge   time.Duration
}

var (
	sweeperConfig *SweeperConfig
	sweeperOnce   sync.Once
)

func LoadSweeperConfig() *SweeperConfig {
	sweeperOnce.Do(func() {
		sweeperConfig = &SweeperConfig{
			Interval: getDuration("ORPHAN_SWEEP_INTERVAL", 0),
			MaxAge:   getDuration("ORPHAN_MAX_AGE", 72*time.Hour),
		}
	})
	return sweeperConfig
}
