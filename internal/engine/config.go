package engine

import (
	"fmt"
	"time"
)

type Config struct {
	// DepthLevels is how many synthetic levels are laid on each side
	// of the book per tick.
	DepthLevels int

	// LevelStep is the price distance between adjacent ladder levels.
	LevelStep float64

	MinLevelSize int
	MaxLevelSize int

	// PopTimeout bounds each wait on the tick queue so the loop can
	// notice a stop request.
	PopTimeout time.Duration

	// Seed fixes the ladder sizes. 0 seeds from the wall clock.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		DepthLevels:  5,
		LevelStep:    0.01,
		MinLevelSize: 1,
		MaxLevelSize: 50,
		PopTimeout:   100 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DepthLevels == 0 {
		c.DepthLevels = def.DepthLevels
	}
	if c.LevelStep == 0 {
		c.LevelStep = def.LevelStep
	}
	if c.MinLevelSize == 0 {
		c.MinLevelSize = def.MinLevelSize
	}
	if c.MaxLevelSize == 0 {
		c.MaxLevelSize = def.MaxLevelSize
	}
	if c.PopTimeout == 0 {
		c.PopTimeout = def.PopTimeout
	}
	return c
}

func (c Config) Validate() error {
	if c.DepthLevels <= 0 {
		return fmt.Errorf("depth levels must be positive, got %d", c.DepthLevels)
	}
	if c.LevelStep <= 0 {
		return fmt.Errorf("level step must be positive, got %v", c.LevelStep)
	}
	if c.MinLevelSize <= 0 || c.MaxLevelSize < c.MinLevelSize {
		return fmt.Errorf("level size range [%d, %d] is invalid", c.MinLevelSize, c.MaxLevelSize)
	}
	if c.PopTimeout <= 0 {
		return fmt.Errorf("pop timeout must be positive, got %v", c.PopTimeout)
	}
	return nil
}
