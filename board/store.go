package board

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"

	"github.com/supernal-tools/supernal/workflow"
)

// Requirement ID generation.
const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 12
	idPrefix   = "req_"
)

// Requirement is a single work item on the board.
type Requirement struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description,omitempty"`
	State       string    `yaml:"state"`
	Priority    string    `yaml:"priority,omitempty"`
	Tags        []string  `yaml:"tags,omitempty"`
	Created     time.Time `yaml:"created"`
	Updated     time.Time `yaml:"updated"`
}

// Store keeps requirements as YAML files in a directory.
type Store struct {
	dir string
	wf  *workflow.Config
	mu  sync.Mutex
}

// NewStore creates the storage directory if needed. A nil workflow config
// disables state validation.
func NewStore(dir string, wf *workflow.Config) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create requirement store: %w", err)
	}
	return &Store{dir: dir, wf: wf}, nil
}

// CreateOption configures a new requirement.
type CreateOption func(*Requirement)

// WithDescription sets the requirement description.
func WithDescription(desc string) CreateOption {
	return func(r *Requirement) { r.Description = desc }
}

// WithPriority overrides the workflow's default priority.
func WithPriority(priority string) CreateOption {
	return func(r *Requirement) { r.Priority = priority }
}

// WithTags sets the requirement tags.
func WithTags(tags ...string) CreateOption {
	return func(r *Requirement) { r.Tags = tags }
}

// WithState overrides the workflow's initial state.
func WithState(state string) CreateOption {
	return func(r *Requirement) { r.State = state }
}

// Create stores a new requirement in the workflow's initial state with the
// workflow's default priority, unless options override them.
func (s *Store) Create(title string, opts ...CreateOption) (*Requirement, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	id, err := nanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return nil, fmt.Errorf("generate requirement id: %w", err)
	}

	now := time.Now().UTC()
	req := &Requirement{
		ID:      idPrefix + id,
		Title:   title,
		Created: now,
		Updated: now,
	}
	if s.wf != nil {
		req.State = s.wf.Initial()
		req.Priority = s.wf.DefaultPriority
	}
	for _, opt := range opts {
		opt(req)
	}

	if s.wf != nil && req.State != "" {
		if _, ok := s.wf.State(req.State); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownState, req.State)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Get returns the requirement with the given ID.
func (s *Store) Get(id string) (*Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

// List returns all requirements sorted by ID.
func (s *Store) List() ([]*Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}

	var reqs []*Requirement
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		req, err := s.read(strings.TrimSuffix(entry.Name(), ".yaml"))
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	sort.Slice(reqs, func(i, j int) bool { return reqs[i].ID < reqs[j].ID })
	return reqs, nil
}

// Save persists the requirement as-is. The requirement must already exist.
func (s *Store) Save(req *Requirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.read(req.ID); err != nil {
		return err
	}
	return s.write(req)
}

// Move transitions the requirement to a new state, validating the move
// against the workflow when one is attached, and bumps Updated.
func (s *Store) Move(id, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.read(id)
	if err != nil {
		return err
	}

	if s.wf != nil {
		if _, ok := s.wf.State(state); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownState, state)
		}
		if !s.wf.CanTransition(req.State, state) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, req.State, state)
		}
	}

	req.State = state
	req.Updated = time.Now().UTC()
	return s.write(req)
}

// Delete removes the requirement.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete requirement %s: %w", id, err)
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".yaml")
}

func (s *Store) read(id string) (*Requirement, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("read requirement %s: %w", id, err)
	}

	var req Requirement
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode requirement %s: %w", id, err)
	}
	return &req, nil
}

func (s *Store) write(req *Requirement) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode requirement %s: %w", req.ID, err)
	}
	if err := os.WriteFile(s.path(req.ID), data, 0644); err != nil {
		return fmt.Errorf("write requirement %s: %w", req.ID, err)
	}
	return nil
}
