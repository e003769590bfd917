package content

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
)

//go:embed defaults
var defaults embed.FS

var ErrInvalidManifest = goerr.New("invalid content manifest")

// Defaults returns the manifests bundled with the binary
func Defaults() fs.FS {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// Loader reads manifests laid out as <framework>/<manifest>.toml
type Loader struct {
	fsys  fs.FS
	mu    sync.RWMutex
	cache map[string]*model.Manifest
}

var _ interfaces.ContentLoader = &Loader{}

func New(fsys fs.FS) *Loader {
	return &Loader{
		fsys:  fsys,
		cache: make(map[string]*model.Manifest),
	}
}

// Manifest returns the named manifest of a framework
func (l *Loader) Manifest(framework, name string) (*model.Manifest, error) {
	key := path.Join(framework, name+".toml")

	l.mu.RLock()
	m, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := l.load(framework, name)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[key] = m
	l.mu.Unlock()
	return m, nil
}

// Questions returns the questions of one section as seen by lot. An absent
// section yields an empty list, not an error.
func (l *Loader) Questions(framework, lot, manifest, section string) ([]model.Question, error) {
	m, err := l.Manifest(framework, manifest)
	if err != nil {
		return nil, err
	}

	s := m.Filter(lot).Section(section)
	if s == nil {
		return []model.Question{}, nil
	}
	return s.Questions, nil
}

func (l *Loader) load(framework, name string) (*model.Manifest, error) {
	file := path.Join(framework, name+".toml")
	raw, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "manifest not found",
				goerr.V("framework", framework),
				goerr.V("manifest", name))
		}
		return nil, goerr.Wrap(err, "failed to read manifest", goerr.V("file", file))
	}

	var m model.Manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, goerr.Wrap(ErrInvalidManifest, "failed to parse manifest",
			goerr.V("file", file),
			goerr.V("error", err.Error()))
	}
	if m.Name == "" {
		m.Name = name
	}
	m.Framework = framework

	if err := validateManifest(&m); err != nil {
		return nil, goerr.Wrap(err, "manifest failed validation", goerr.V("file", file))
	}
	return &m, nil
}

func validateManifest(m *model.Manifest) error {
	sections := make(map[string]bool)
	questions := make(map[string][]model.Question)

	for i, s := range m.Sections {
		if s.Slug == "" {
			return goerr.Wrap(ErrInvalidManifest, "section slug is required", goerr.V("section_index", i))
		}
		if sections[s.Slug] {
			return goerr.Wrap(ErrInvalidManifest, "duplicate section slug", goerr.V("section", s.Slug))
		}
		sections[s.Slug] = true

		for j, q := range s.Questions {
			if q.ID == "" {
				return goerr.Wrap(ErrInvalidManifest, "question id is required",
					goerr.V("section", s.Slug),
					goerr.V("question_index", j))
			}
			if q.Type == "" {
				return goerr.Wrap(ErrInvalidManifest, "question type is required",
					goerr.V("question", q.ID))
			}
			for _, other := range questions[q.ID] {
				if lotsOverlap(q.Lots, other.Lots) {
					return goerr.Wrap(ErrInvalidManifest, "duplicate question id",
						goerr.V("question", q.ID))
				}
			}
			questions[q.ID] = append(questions[q.ID], q)
		}
	}
	return nil
}

// lotsOverlap reports whether two questions can be asked for the same lot.
// An empty lot list means every lot.
func lotsOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, lot := range a {
		if slices.Contains(b, lot) {
			return true
		}
	}
	return false
}

// Result is the outcome of validating one manifest file
type Result struct {
	Framework string
	Manifest  string
	Sections  int
	Questions int
	Err       error
}

// Validate parses every manifest under the root
func (l *Loader) Validate() ([]Result, error) {
	var results []Result

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".toml" {
			return nil
		}

		framework := path.Dir(p)
		name := strings.TrimSuffix(path.Base(p), ".toml")
		res := Result{Framework: framework, Manifest: name}

		m, err := l.load(framework, name)
		if err != nil {
			res.Err = err
		} else {
			res.Sections = len(m.Sections)
			for _, s := range m.Sections {
				res.Questions += len(s.Questions)
			}
		}
		results = append(results, res)
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk content directory")
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Framework != results[j].Framework {
			return results[i].Framework < results[j].Framework
		}
		return results[i].Manifest < results[j].Manifest
	})
	return results, nil
}
