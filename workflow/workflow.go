package workflow

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/supernal-tools/supernal/config"
)

// Category classifies a workflow state for board rendering.
type Category string

// State categories.
const (
	// CategoryTodo marks states holding not-yet-started work.
	CategoryTodo Category = "todo"

	// CategoryActive marks in-progress states.
	CategoryActive Category = "active"

	// CategoryDone marks terminal states.
	CategoryDone Category = "done"
)

// State is one workflow state (a board column).
type State struct {
	Name     string   `yaml:"name"`
	Category Category `yaml:"category,omitempty"`
	WIPLimit int      `yaml:"wip_limit,omitempty"`
}

// Config is the workflow section of a merged configuration document.
type Config struct {
	// Name identifies the workflow.
	Name string `yaml:"name,omitempty"`

	// States lists the board columns in display order.
	States []State `yaml:"states"`

	// Transitions maps a state name to the states reachable from it.
	// An empty map allows any move between declared states.
	Transitions map[string][]string `yaml:"transitions,omitempty"`

	// Priorities lists the allowed requirement priorities.
	Priorities []string `yaml:"priorities,omitempty"`

	// DefaultPriority is assigned to new requirements. Must be one of
	// Priorities when both are set.
	DefaultPriority string `yaml:"default_priority,omitempty"`
}

// FromDocument decodes a merged configuration document into a workflow
// view and checks its structure.
func FromDocument(doc config.Document) (*Config, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode workflow config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode workflow config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.States) == 0 {
		return ErrNoStates
	}

	seen := make(map[string]bool, len(c.States))
	for _, state := range c.States {
		if state.Name == "" {
			return ErrUnnamedState
		}
		if seen[state.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateState, state.Name)
		}
		seen[state.Name] = true
	}

	for from, targets := range c.Transitions {
		if !seen[from] {
			return fmt.Errorf("%w: transition source %q", ErrUnknownState, from)
		}
		for _, to := range targets {
			if !seen[to] {
				return fmt.Errorf("%w: transition %s -> %s", ErrUnknownState, from, to)
			}
		}
	}

	if c.DefaultPriority != "" && len(c.Priorities) > 0 {
		found := false
		for _, p := range c.Priorities {
			if p == c.DefaultPriority {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrUnknownPriority, c.DefaultPriority)
		}
	}

	return nil
}

// State returns the named state and whether it exists.
func (c *Config) State(name string) (State, bool) {
	for _, state := range c.States {
		if state.Name == name {
			return state, true
		}
	}
	return State{}, false
}

// CanTransition reports whether a move from one state to another is
// allowed. Both states must be declared. When no transition table is
// configured, any move between declared states is allowed.
func (c *Config) CanTransition(from, to string) bool {
	if _, ok := c.State(from); !ok {
		return false
	}
	if _, ok := c.State(to); !ok {
		return false
	}
	if len(c.Transitions) == 0 {
		return true
	}
	for _, target := range c.Transitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// Initial returns the entry state for new work: the first todo-category
// state, or the first state when none is categorized.
func (c *Config) Initial() string {
	for _, state := range c.States {
		if state.Category == CategoryTodo {
			return state.Name
		}
	}
	if len(c.States) > 0 {
		return c.States[0].Name
	}
	return ""
}
