package artifact

import "strings"

// BlockKind classifies a raw block of a section.
type BlockKind int

const (
	// BlockText is ordinary markdown kept verbatim.
	BlockText BlockKind = iota
	// BlockConfig is a fenced configuration block; it is not part of the body.
	BlockConfig
	// BlockHeading is the section heading; it is not part of the body.
	BlockHeading
)

// Block is a verbatim slice of the source document.
type Block struct {
	Kind BlockKind
	Text string
}

// Directive is a control call recovered from the analysis rendering.
type Directive struct {
	Name     string
	Argument string
}

// RawSection is a section as split by the parser, before any kind is applied.
// Level is 1 for the head section and 2 for sub-sections.
type RawSection struct {
	Level      int
	Title      string
	Heading    string
	Config     map[string]interface{}
	Blocks     []Block
	Directives []Directive
}

// Render returns the section body: its text blocks without the heading and
// configuration blocks.
func (s *RawSection) Render() string {
	var builder strings.Builder
	for _, block := range s.Blocks {
		if block.Kind == BlockText {
			builder.WriteString(block.Text)
		}
	}
	return builder.String()
}

// Source returns the section exactly as it appeared in the document.
func (s *RawSection) Source() string {
	var builder strings.Builder
	for _, block := range s.Blocks {
		builder.WriteString(block.Text)
	}
	return builder.String()
}

// Description returns the trimmed body.
func (s *RawSection) Description() string {
	return strings.TrimSpace(s.Render())
}

// ConfigString returns a string configuration value.
func (s *RawSection) ConfigString(key string) (string, bool) {
	value, ok := s.Config[key]
	if !ok || value == nil {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

// DirectiveArguments returns arguments of all directives with the given name,
// in order of appearance, without duplicates.
func (s *RawSection) DirectiveArguments(name string) []string {
	var result []string
	seen := map[string]bool{}
	for _, directive := range s.Directives {
		if directive.Name != name || seen[directive.Argument] {
			continue
		}
		seen[directive.Argument] = true
		result = append(result, directive.Argument)
	}
	return result
}
