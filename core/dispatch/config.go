package dispatch

import "fmt"

// ArrivalConfig controls the stream of generated work items.
type ArrivalConfig struct {
	// MinIntervalSeconds and MaxIntervalSeconds bound the uniform
	// interarrival delay.
	MinIntervalSeconds float64 `json:"min_interval_seconds"`
	MaxIntervalSeconds float64 `json:"max_interval_seconds"`
	// MinServiceSeconds and MaxServiceSeconds bound the uniform integer
	// service cost.
	MinServiceSeconds int `json:"min_service_seconds"`
	MaxServiceSeconds int `json:"max_service_seconds"`
	// Tier weights for the categorical priority draw.
	NormalWeight    float64 `json:"normal_weight"`
	CorporateWeight float64 `json:"corporate_weight"`
	VIPWeight       float64 `json:"vip_weight"`
}

// WorkersConfig controls the generated worker roster.
type WorkersConfig struct {
	Count       int      `json:"count"`
	Names       []string `json:"names"`
	MinCapacity int      `json:"min_capacity"`
	MaxCapacity int      `json:"max_capacity"`
}

// Config holds the engine parameters.
type Config struct {
	DefaultPolicy         string        `json:"default_policy"`
	BackoffMS             int           `json:"backoff_ms"`
	StatusIntervalSeconds int           `json:"status_interval_seconds"`
	Arrival               ArrivalConfig `json:"arrival"`
	Workers               WorkersConfig `json:"workers"`
}

var defaultWorkerNames = []string{
	"Alex", "Blake", "Casey", "Dana", "Elliot",
	"Frankie", "Gray", "Harper", "Indigo", "Jordan",
}

// SetDefaults applies the reference simulation parameters.
func (c *Config) SetDefaults() {
	if c.DefaultPolicy == "" {
		c.DefaultPolicy = PolicyRoundRobin
	}
	if c.BackoffMS == 0 {
		c.BackoffMS = 500
	}
	if c.StatusIntervalSeconds == 0 {
		c.StatusIntervalSeconds = 5
	}
	a := &c.Arrival
	if a.MinIntervalSeconds == 0 && a.MaxIntervalSeconds == 0 {
		a.MinIntervalSeconds, a.MaxIntervalSeconds = 1, 5
	}
	if a.MinServiceSeconds == 0 && a.MaxServiceSeconds == 0 {
		a.MinServiceSeconds, a.MaxServiceSeconds = 5, 30
	}
	if a.NormalWeight == 0 && a.CorporateWeight == 0 && a.VIPWeight == 0 {
		a.NormalWeight, a.CorporateWeight, a.VIPWeight = 0.7, 0.2, 0.1
	}
	w := &c.Workers
	if w.Count == 0 {
		w.Count = 5
	}
	if len(w.Names) == 0 {
		w.Names = defaultWorkerNames
	}
	if w.MinCapacity == 0 {
		w.MinCapacity = 1
	}
	if w.MaxCapacity == 0 {
		w.MaxCapacity = 3
	}
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if _, err := ForName(c.DefaultPolicy); err != nil {
		return err
	}
	if c.BackoffMS < 0 {
		return fmt.Errorf("backoff_ms must not be negative")
	}
	if c.StatusIntervalSeconds <= 0 {
		return fmt.Errorf("status_interval_seconds must be positive")
	}
	a := c.Arrival
	if a.MinIntervalSeconds < 0 || a.MaxIntervalSeconds < a.MinIntervalSeconds {
		return fmt.Errorf("arrival interval bounds are inconsistent")
	}
	if a.MinServiceSeconds <= 0 || a.MaxServiceSeconds < a.MinServiceSeconds {
		return fmt.Errorf("service duration bounds are inconsistent")
	}
	if a.NormalWeight < 0 || a.CorporateWeight < 0 || a.VIPWeight < 0 ||
		a.NormalWeight+a.CorporateWeight+a.VIPWeight == 0 {
		return fmt.Errorf("tier weights must be non-negative and not all zero")
	}
	w := c.Workers
	if w.Count <= 0 {
		return fmt.Errorf("workers count must be positive")
	}
	if w.MinCapacity <= 0 || w.MaxCapacity < w.MinCapacity {
		return fmt.Errorf("worker capacity bounds are inconsistent")
	}
	return nil
}
