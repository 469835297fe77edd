package dispatch

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/queuesim/core/model"
)

// Generator draws work items from the configured arrival distributions.
// It is used by a single goroutine and carries its own random source so
// simulations can be reproduced from a seed.
type Generator struct {
	cfg ArrivalConfig
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with the given value.
func NewGenerator(cfg ArrivalConfig, seed int64) *Generator {
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// NextInterval draws the delay before the next arrival.
func (g *Generator) NextInterval() time.Duration {
	span := g.cfg.MaxIntervalSeconds - g.cfg.MinIntervalSeconds
	secs := g.cfg.MinIntervalSeconds + g.rng.Float64()*span
	return time.Duration(secs * float64(time.Second))
}

// NewItem draws a work item with a random tier and service cost.
func (g *Generator) NewItem(now time.Time) *model.WorkItem {
	id := uuid.NewString()[:8]
	dur := g.cfg.MinServiceSeconds + g.rng.Intn(g.cfg.MaxServiceSeconds-g.cfg.MinServiceSeconds+1)
	return model.NewWorkItem(id, g.drawTier(), dur, now)
}

// drawTier samples the categorical tier distribution.
func (g *Generator) drawTier() model.PriorityTier {
	total := g.cfg.NormalWeight + g.cfg.CorporateWeight + g.cfg.VIPWeight
	r := g.rng.Float64() * total
	switch {
	case r < g.cfg.NormalWeight:
		return model.TierNormal
	case r < g.cfg.NormalWeight+g.cfg.CorporateWeight:
		return model.TierCorporate
	default:
		return model.TierVIP
	}
}

// BuildWorkers creates the worker roster: Count workers named from the
// configured list, each with a capacity drawn uniformly from the
// configured bounds.
func BuildWorkers(cfg WorkersConfig, rng *rand.Rand, now time.Time) []*model.Worker {
	workers := make([]*model.Worker, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		name := cfg.Names[i%len(cfg.Names)]
		capacity := cfg.MinCapacity + rng.Intn(cfg.MaxCapacity-cfg.MinCapacity+1)
		workers = append(workers, model.NewWorker(uuid.NewString()[:8], name, capacity, now))
	}
	return workers
}
