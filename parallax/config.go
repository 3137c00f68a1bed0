package parallax

import (
	"errors"
	"fmt"
	"time"
)

// Config tunes the pointer response and the entity transition
type Config struct {
	MaxOffset       float64       `mapstructure:"maxOffset"`       // M, pixels
	VerticalDamping float64       `mapstructure:"verticalDamping"` // k
	Smoothing       float64       `mapstructure:"smoothing"`       // α, fraction of remaining distance closed per frame
	Scale           float64       `mapstructure:"scale"`
	RotationFactor  float64       `mapstructure:"rotationFactor"` // degrees per pixel of horizontal offset
	FrameInterval   time.Duration `mapstructure:"frameInterval"`
	FadeDelay       time.Duration `mapstructure:"fadeDelay"`
	FadeInDuration  time.Duration `mapstructure:"fadeInDuration"`
	BounceScale     float64       `mapstructure:"bounceScale"`
	BounceDuration  time.Duration `mapstructure:"bounceDuration"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		MaxOffset:       14,
		VerticalDamping: 0.7,
		Smoothing:       0.12,
		Scale:           1.04,
		RotationFactor:  0.02,
		FrameInterval:   time.Second / 60,
		FadeDelay:       180 * time.Millisecond,
		FadeInDuration:  280 * time.Millisecond,
		BounceScale:     0.04,
		BounceDuration:  150 * time.Millisecond,
	}
}

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid parallax config")

// Validate checks ranges
func (c Config) Validate() error {
	switch {
	case c.Smoothing <= 0 || c.Smoothing > 1:
		return fmt.Errorf("%w: smoothing %v not in (0,1]", ErrInvalidConfig, c.Smoothing)
	case c.MaxOffset < 0:
		return fmt.Errorf("%w: maxOffset %v is negative", ErrInvalidConfig, c.MaxOffset)
	case c.VerticalDamping < 0:
		return fmt.Errorf("%w: verticalDamping %v is negative", ErrInvalidConfig, c.VerticalDamping)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidConfig, c.Scale)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frameInterval %v must be positive", ErrInvalidConfig, c.FrameInterval)
	case c.FadeDelay < 0 || c.FadeInDuration < 0 || c.BounceDuration < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	return nil
}
