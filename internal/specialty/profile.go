// Package specialty holds the domain profiles that steer model-based
// extraction. A profile selects the instruction block and which
// specialty-extended fields are recognized; the rule-based chain is
// specialty-independent.
package specialty

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultID is the profile used when the requested specialty is unknown.
const DefaultID = "general"

//go:embed profiles/*.yaml
var defaultProfiles embed.FS

// Profile describes one specialty's extraction behavior.
type Profile struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Instructions   string   `yaml:"instructions"`
	ExtendedFields []string `yaml:"extended_fields"`
	Vocabulary     []string `yaml:"vocabulary"`
}

// Recognizes reports whether the profile gates in the given extended field.
func (p Profile) Recognizes(field string) bool {
	for _, f := range p.ExtendedFields {
		if f == field {
			return true
		}
	}
	return false
}

// Registry holds the loaded profiles keyed by ID.
type Registry struct {
	profiles map[string]Profile
}

// Load builds a registry from the embedded defaults, then overlays any
// *.yaml files found in dir (empty dir skips the overlay). Overlay profiles
// with an ID matching a default replace it.
func Load(dir string) (*Registry, error) {
	reg := &Registry{profiles: make(map[string]Profile)}

	if err := reg.loadFS(defaultProfiles, "profiles"); err != nil {
		return nil, eris.Wrap(err, "specialty: load embedded profiles")
	}

	if dir != "" {
		if err := reg.loadFS(os.DirFS(dir), "."); err != nil {
			return nil, eris.Wrapf(err, "specialty: load profiles from %s", dir)
		}
	}

	return reg, nil
}

func (r *Registry) loadFS(fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.Join(root, entry.Name()))
		if err != nil {
			return err
		}
		var p Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			return eris.Wrapf(err, "parse %s", entry.Name())
		}
		if p.ID == "" {
			return eris.Errorf("profile %s has no id", entry.Name())
		}
		r.profiles[p.ID] = p
	}
	return nil
}

// Get returns the profile for id, falling back to the general profile for
// unknown or empty IDs.
func (r *Registry) Get(id string) Profile {
	if p, ok := r.profiles[id]; ok {
		return p
	}
	return r.profiles[DefaultID]
}

// IDs lists the registered profile IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
