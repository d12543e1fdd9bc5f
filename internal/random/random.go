package random

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_sampler.go github.com/KirkDiggler/lunchwheel/internal/random Sampler

// Sampler draws the random parameters of a spin
type Sampler interface {
	// Uniform returns a value in [min, max)
	Uniform(min, max float64) float64
}

// Config for the sampler
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Source is a Sampler backed by math/rand, safe for concurrent use
type Source struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new sampler
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Source{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Uniform returns a value in [min, max)
func (s *Source) Uniform(min, max float64) float64 {
	if max <= min {
		return min
	}

	s.mu.Lock()
	f := s.random.Float64()
	s.mu.Unlock()

	v := min + f*(max-min)
	if v >= max {
		// rounding can land exactly on max for wide ranges
		v = math.Nextafter(max, min)
	}
	return v
}
