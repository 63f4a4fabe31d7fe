package manager

import (
	"time"

	"github.com/rs/zerolog"

	"fasttextd/internal/fasttext"
	"fasttextd/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxInflight   = 4
	defaultMaxWait       = 30 * time.Second
	defaultDrainTimeout  = 5 * time.Second
	defaultMaxK          = 100
	defaultMaxBatch      = 512
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Registry []types.Model
	// Engine loads models. A nil engine makes every load fail as a missing dependency.
	Engine        fasttext.Engine
	BudgetMB      int
	MarginMB      int
	DefaultModel  string
	MaxQueueDepth int
	MaxInflight   int
	MaxWait       time.Duration
	DrainTimeout  time.Duration
	MaxK          int
	MaxBatch      int
	// Normalize is "", "nfc" or "nfkc".
	Normalize string
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		engine:        cfg.Engine,
		registry:      append([]types.Model(nil), cfg.Registry...),
		budgetMB:      cfg.BudgetMB,
		marginMB:      cfg.MarginMB,
		defaultModel:  cfg.DefaultModel,
		instances:     make(map[string]*Instance),
		maxQueueDepth: orDefault(cfg.MaxQueueDepth, defaultMaxQueueDepth),
		maxInflight:   orDefault(cfg.MaxInflight, defaultMaxInflight),
		maxK:          orDefault(cfg.MaxK, defaultMaxK),
		maxBatch:      orDefault(cfg.MaxBatch, defaultMaxBatch),
		maxWait:       cfg.MaxWait,
		drainTimeout:  cfg.DrainTimeout,
		normalize:     newNormalizer(cfg.Normalize),
		publisher:     cfg.Publisher,
		log:           zerolog.Nop(),
		startTime:     time.Now(),
	}
	if m.maxWait <= 0 {
		m.maxWait = defaultMaxWait
	}
	if m.drainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	}
	return m
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
