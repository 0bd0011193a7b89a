package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"chicken/game"
	"chicken/meta"
	"chicken/searcher"
)

// Agent variants.
const (
	Minimax = "minimax" // Iterative deepening alpha-beta
	Fixed   = "fixed"   // Single fixed-depth alpha-beta iteration
	Greedy  = "greedy"  // One-ply heuristic scoring
)

// Agent configures one player. Unset fields keep their defaults.
type Agent struct {
	ID              int           `yaml:"id"`
	Name            string        `yaml:"name"`
	Variant         string        `yaml:"variant"`
	MaxDepth        int           `yaml:"max_depth"`
	FixedDepth      int           `yaml:"fixed_depth"`
	DepthReserve    time.Duration `yaml:"depth_reserve"`
	MoveReserve     time.Duration `yaml:"move_reserve"`
	NodeReserve     time.Duration `yaml:"node_reserve"`
	DisablePruning  bool          `yaml:"disable_pruning"`
	PenalizeHistory bool          `yaml:"penalize_history"` // Seed the visited set with the real match path
	Weights         game.Weights  `yaml:"weights"`
}

func Default() Agent {
	return Agent{
		Name:         "gregory",
		Variant:      Minimax,
		MaxDepth:     meta.MAX_DEPTH,
		FixedDepth:   6,
		DepthReserve: searcher.DepthReserve,
		MoveReserve:  searcher.MoveReserve,
		NodeReserve:  searcher.NodeReserve,
		Weights:      game.DefaultWeights(),
	}
}

// Parse decodes a YAML agent configuration on top of the defaults and validates it.
func Parse(data []byte) (Agent, error) {
	a := Default()
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Agent{}, fmt.Errorf("failed to decode agent config: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Agent{}, err
	}
	return a, nil
}

func Load(path string) (Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Agent{}, fmt.Errorf("failed to read agent config: %w", err)
	}
	a, err := Parse(data)
	if err != nil {
		return Agent{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func (a Agent) Validate() error {
	switch a.Variant {
	case Minimax, Fixed, Greedy:
	default:
		return fmt.Errorf("unknown variant %q", a.Variant)
	}
	if a.MaxDepth <= 0 {
		return errors.New("max_depth must be positive")
	}
	if a.Variant == Fixed && a.FixedDepth <= 0 {
		return errors.New("fixed_depth must be positive for the fixed variant")
	}
	if a.DepthReserve < 0 || a.MoveReserve < 0 || a.NodeReserve < 0 {
		return errors.New("reserves must not be negative")
	}
	if err := a.Weights.Validate(meta.MAP_SIZE); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	return nil
}

// Options translates the configuration into driver options.
func (a Agent) Options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithMaxDepth(a.MaxDepth),
		searcher.WithDepthReserve(a.DepthReserve),
		searcher.WithMoveReserve(a.MoveReserve),
		searcher.WithNodeReserve(a.NodeReserve),
		searcher.WithWeights(a.Weights),
	}
	if a.Variant == Fixed {
		options = append(options, searcher.WithFixedDepth(a.FixedDepth))
	}
	if a.DisablePruning {
		options = append(options, searcher.WithoutPruning())
	}
	return options
}

func (a Agent) String() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Variant
}
