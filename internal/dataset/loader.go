package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// set files may be YAML or JSON; yaml.v3 reads both and keeps key order.
var setExts = []string{".yaml", ".yml", ".json"}

var setFileRe = regexp.MustCompile(`^gen(\d+)\.(ya?ml|json)$`)

// Paths helper for set files.
type Paths struct {
	BaseDir string // base data directory, e.g., /opt/app/data
}

func (p Paths) SetsDir() string {
	return filepath.Join(p.BaseDir, "sets")
}

// GenerationPath returns the first existing set file for gen.
func (p Paths) GenerationPath(gen int) (string, error) {
	for _, ext := range setExts {
		path := filepath.Join(p.SetsDir(), fmt.Sprintf("gen%d%s", gen, ext))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("gen%d: %w", gen, os.ErrNotExist)
}

// Loader reads per-generation set files into an Index.
type Loader struct {
	paths       Paths
	generations []int // empty: discover every genN file in SetsDir
}

// NewLoader creates a set loader. When generations is empty every gen file
// found under <baseDir>/sets is loaded; otherwise each listed generation is
// required.
func NewLoader(baseDir string, generations []int) *Loader {
	return &Loader{
		paths:       Paths{BaseDir: baseDir},
		generations: append([]int(nil), generations...),
	}
}

// LoadAll loads every generation and returns a fresh Index.
func (l *Loader) LoadAll() (*Index, error) {
	gens, err := l.targets()
	if err != nil {
		return nil, err
	}
	cols := make([]*Collection, 0, len(gens))
	for _, g := range gens {
		c, err := l.Load(g)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return NewIndex(cols...), nil
}

// Load reads and validates one generation's set file.
func (l *Loader) Load(gen int) (*Collection, error) {
	path, err := l.paths.GenerationPath(gen)
	if err != nil {
		return nil, fmt.Errorf("locate sets: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sets: %w", err)
	}
	c, err := Decode(gen, b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return c, nil
}

// Files lists the set files the loader currently reads.
func (l *Loader) Files() []string {
	gens, err := l.targets()
	if err != nil {
		return nil
	}
	var out []string
	for _, g := range gens {
		if p, err := l.paths.GenerationPath(g); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func (l *Loader) targets() ([]int, error) {
	if len(l.generations) > 0 {
		return l.generations, nil
	}
	entries, err := os.ReadDir(l.paths.SetsDir())
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	seen := map[int]bool{}
	var gens []int
	for _, e := range entries {
		m := setFileRe.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		g, _ := strconv.Atoi(m[1])
		if !seen[g] {
			seen[g] = true
			gens = append(gens, g)
		}
	}
	if len(gens) == 0 {
		return nil, fmt.Errorf("no set files in %s", l.paths.SetsDir())
	}
	sort.Ints(gens)
	return gens, nil
}

// Decode parses a set document (species to set name to preset) keeping the
// declaration order of both mapping levels.
func Decode(gen int, b []byte) (*Collection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty set file")
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must map species to sets", root.Line)
	}

	c := NewCollection(gen)
	for i := 0; i+1 < len(root.Content); i += 2 {
		species := root.Content[i].Value
		sets := resolveAlias(root.Content[i+1])
		if sets.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: %s must map set names to presets", sets.Line, species)
		}
		if _, dup := c.sets[species]; dup {
			return nil, fmt.Errorf("line %d: duplicate species %s", root.Content[i].Line, species)
		}
		for j := 0; j+1 < len(sets.Content); j += 2 {
			name := sets.Content[j].Value
			var p Preset
			if err := resolveAlias(sets.Content[j+1]).Decode(&p); err != nil {
				return nil, fmt.Errorf("%s / %s: %w", species, name, err)
			}
			if err := c.Add(species, name, p); err != nil {
				return nil, fmt.Errorf("line %d: %w", sets.Content[j].Line, err)
			}
		}
	}
	return c, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
