// SPDX-License-Identifier: MIT

package recipe

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type scriptDoc struct {
	Script []string `json:"script" yaml:"script"`
}

type sourceDoc struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Git    string `json:"git,omitempty" yaml:"git,omitempty"`
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
}

type packageDoc struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

type aboutDoc struct {
	Homepage      string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	License       string `json:"license,omitempty" yaml:"license,omitempty"`
	LicenseFile   string `json:"license_file,omitempty" yaml:"license_file,omitempty"`
	Summary       string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Repository    string `json:"repository,omitempty" yaml:"repository,omitempty"`
}

type intermediateDoc struct {
	Package *packageDoc `json:"package,omitempty" yaml:"package,omitempty"`
	Build   scriptDoc   `json:"build" yaml:"build"`
	Source  []sourceDoc `json:"source" yaml:"source"`
	About   *aboutDoc   `json:"about,omitempty" yaml:"about,omitempty"`
}

// Field order matches the host's GeneratedRecipe wire type.
type generatedDoc struct {
	Recipe             *intermediateDoc `json:"recipe" yaml:"recipe"`
	MetadataInputGlobs []string         `json:"metadata_input_globs" yaml:"metadata_input_globs"`
	BuildInputGlobs    []string         `json:"build_input_globs" yaml:"build_input_globs"`
}

func (r *Intermediate) document() *intermediateDoc {
	doc := &intermediateDoc{
		Build:  scriptDoc{Script: nonNil(r.script)},
		Source: make([]sourceDoc, 0, len(r.sources)),
	}
	for _, src := range r.sources {
		s := sourceDoc{SHA256: src.Checksum}
		switch {
		case src.IsGit:
			s.Git = src.Path
		case src.IsURL:
			s.URL = src.Path
		default:
			s.Path = src.Path
		}
		doc.Source = append(doc.Source, s)
	}
	if r.pkg != (Package{}) {
		doc.Package = &packageDoc{Name: r.pkg.Name, Version: r.pkg.Version}
	}
	if r.about != (About{}) {
		a := aboutDoc(r.about)
		doc.About = &a
	}
	return doc
}

// intermediate rebuilds a recipe from its wire form.
func (doc *intermediateDoc) intermediate() (*Intermediate, error) {
	r := NewIntermediate()
	if doc.Package != nil {
		r.pkg = Package{Name: doc.Package.Name, Version: doc.Package.Version}
	}
	if len(doc.Build.Script) > 0 {
		r.script = append([]string(nil), doc.Build.Script...)
	}
	for i, s := range doc.Source {
		src := SourceLocation{Checksum: s.SHA256}
		set := 0
		if s.Path != "" {
			src.Path = s.Path
			set++
		}
		if s.URL != "" {
			src.Path, src.IsURL = s.URL, true
			set++
		}
		if s.Git != "" {
			src.Path, src.IsGit = s.Git, true
			set++
		}
		if set != 1 {
			return nil, fmt.Errorf("recipe: source %d must set exactly one of path, url, git", i)
		}
		r.sources = append(r.sources, src)
	}
	if doc.About != nil {
		r.about = About(*doc.About)
	}
	return r, nil
}

func (g *Generated) document() *generatedDoc {
	doc := &generatedDoc{
		MetadataInputGlobs: nonNil(g.metadataGlobs),
		BuildInputGlobs:    nonNil(g.buildGlobs),
	}
	if g.intermediate != nil {
		doc.Recipe = g.intermediate.document()
	}
	return doc
}

func encodeYAML(v any) (string, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
