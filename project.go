package supernal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/supernal-tools/supernal/board"
	"github.com/supernal-tools/supernal/config"
	"github.com/supernal-tools/supernal/workflow"
)

// Project layout.
const (
	// ConfigDirName is the project configuration directory.
	ConfigDirName = ".supernal"

	defaultConfigFile = "config.yaml"
	patternsDirName   = "patterns"
	requirementsDir   = "requirements"
)

// Project is a validated supernal project root.
type Project struct {
	root        string
	configFile  string
	searchPaths []string
	loader      *config.Loader
	store       *board.Store
}

// Option configures a Project before its loader is built.
type Option func(*Project)

// WithConfigFile overrides the config filename inside .supernal/.
func WithConfigFile(name string) Option {
	return func(p *Project) {
		p.configFile = name
	}
}

// WithSearchPath replaces the pattern search path. Entries are consulted
// in order; earlier entries shadow later ones.
func WithSearchPath(dirs ...string) Option {
	return func(p *Project) {
		p.searchPaths = dirs
	}
}

// Open validates that dir is a supernal project and builds its loader.
// The default pattern search path is the project's .supernal/patterns
// followed by the patterns directory shipped next to the binary.
func Open(dir string, opts ...Option) (*Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}

	info, err := os.Stat(filepath.Join(root, ConfigDirName))
	if err != nil || !info.IsDir() {
		return nil, ErrNotProject
	}

	p := &Project{
		root:       root,
		configFile: defaultConfigFile,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.searchPaths == nil {
		p.searchPaths = []string{filepath.Join(root, ConfigDirName, patternsDirName)}
		if exe, err := os.Executable(); err == nil {
			p.searchPaths = append(p.searchPaths, filepath.Join(filepath.Dir(exe), "..", patternsDirName))
		}
	}

	p.loader = config.NewLoader(config.LoaderConfig{SearchPaths: p.searchPaths})
	return p, nil
}

// Root returns the absolute project root directory.
func (p *Project) Root() string {
	return p.root
}

// ConfigPath returns the path of the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.root, ConfigDirName, p.configFile)
}

// Loader returns the project's configuration loader.
func (p *Project) Loader() *config.Loader {
	return p.loader
}

// Config returns the merged project configuration, cached after the first
// load.
func (p *Project) Config() (config.Document, error) {
	return p.loader.Get(p.ConfigPath())
}

// Reload drops all cached configuration and loads the project config
// again.
func (p *Project) Reload() (config.Document, error) {
	p.loader.ClearCache()
	return p.loader.Load(p.ConfigPath())
}

// Workflow returns the typed workflow view of the merged configuration.
func (p *Project) Workflow() (*workflow.Config, error) {
	doc, err := p.Config()
	if err != nil {
		return nil, err
	}
	return workflow.FromDocument(doc)
}

// Requirements returns the project's requirement store, validated against
// the project workflow. The store is created on first use.
func (p *Project) Requirements() (*board.Store, error) {
	if p.store != nil {
		return p.store, nil
	}

	wf, err := p.Workflow()
	if err != nil {
		return nil, err
	}

	store, err := board.NewStore(filepath.Join(p.root, ConfigDirName, requirementsDir), wf)
	if err != nil {
		return nil, err
	}
	p.store = store
	return store, nil
}
