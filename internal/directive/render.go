package directive

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/viant/mdflow/model/ident"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode selects how directive calls render.
type Mode int

const (
	// ViewMode renders text meant for the reader.
	ViewMode Mode = iota
	// AnalysisMode renders sentinels for Extract.
	AnalysisMode
)

func (m Mode) String() string {
	if m == AnalysisMode {
		return "analysis"
	}
	return "view"
}

// Directive names.
const (
	Goto = "goto"
	View = "view"
)

// Data is exposed to templates as dot.
type Data struct {
	ArtifactID ident.FullArtifactID
	World      ident.WorldID
}

// Renderer executes artifact templates.
type Renderer struct {
	leftDelim  string
	rightDelim string
	funcs      template.FuncMap
}

// Option customises a Renderer.
type Option func(r *Renderer)

// WithDelimiters overrides template action delimiters; empty values keep the defaults.
func WithDelimiters(left, right string) Option {
	return func(r *Renderer) {
		r.leftDelim = left
		r.rightDelim = right
	}
}

// WithFuncs adds template helpers. Directive names cannot be overridden.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) {
		for k, v := range funcs {
			r.funcs[k] = v
		}
	}
}

// NewRenderer creates a renderer with the default helper set.
func NewRenderer(options ...Option) *Renderer {
	ret := &Renderer{funcs: helpers()}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Render executes source in the given mode for the artifact.
func (r *Renderer) Render(mode Mode, artifactID ident.FullArtifactID, source string) (string, error) {
	funcs := template.FuncMap{}
	for k, v := range r.funcs {
		funcs[k] = v
	}
	funcs[Goto] = gotoFunc(mode, artifactID)
	funcs[View] = viewFunc(mode)
	tmpl, err := template.New(string(artifactID)).
		Delims(r.leftDelim, r.rightDelim).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(source)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %v: %w", artifactID, err)
	}
	var out strings.Builder
	data := &Data{ArtifactID: artifactID, World: artifactID.World()}
	if err = tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render %v in %v mode: %w", artifactID, mode, err)
	}
	return out.String(), nil
}

// RenderBoth returns view and analysis renderings of the same source.
func (r *Renderer) RenderBoth(artifactID ident.FullArtifactID, source string) (view string, analysis string, err error) {
	if view, err = r.Render(ViewMode, artifactID, source); err != nil {
		return "", "", err
	}
	if analysis, err = r.Render(AnalysisMode, artifactID, source); err != nil {
		return "", "", err
	}
	return view, analysis, nil
}

// ResolveSection resolves a goto argument against the artifact: a bare
// section id is local, anything longer must be a full section id.
func ResolveSection(artifactID ident.FullArtifactID, argument string) (ident.FullArtifactSectionID, error) {
	if local, err := ident.ParseArtifactSectionID(argument); err == nil {
		return artifactID.Section(local), nil
	}
	return ident.ParseFullArtifactSectionID(argument)
}

func sentinel(name, argument string) string {
	return openMarker + " " + name + " " + argument + " " + closeMarker
}

func gotoFunc(mode Mode, artifactID ident.FullArtifactID) func(string) (string, error) {
	return func(target string) (string, error) {
		sectionID, err := ResolveSection(artifactID, target)
		if err != nil {
			return "", err
		}
		if mode == AnalysisMode {
			return sentinel(Goto, target), nil
		}
		return "`" + sectionID.String() + "`", nil
	}
}

func viewFunc(mode Mode) func(string) (string, error) {
	return func(target string) (string, error) {
		artifactID, err := ident.ParseFullArtifactID(target)
		if err != nil {
			return "", err
		}
		if mode == AnalysisMode {
			return sentinel(View, target), nil
		}
		return "`" + artifactID.String() + "`", nil
	}
}

func helpers() template.FuncMap {
	return template.FuncMap{
		"join":  func(sep string, items ...string) string { return strings.Join(items, sep) },
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": func(text string) string { return cases.Title(language.English).String(text) },
		"trim":  strings.TrimSpace,
		"default": func(fallback, value string) string {
			if value == "" {
				return fallback
			}
			return value
		},
	}
}
