package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/viant/mdflow/internal/yml"
	"github.com/viant/mdflow/model/artifact"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultConfigMarker is the fence info token flagging a configuration block,
// e.g. "```yaml mdflow".
const DefaultConfigMarker = "mdflow"

type regionKind int

const (
	headingRegion regionKind = iota
	configRegion
)

// region is a structural line range [from, to) of the document.
type region struct {
	kind   regionKind
	from   int
	to     int
	level  int
	title  string
	config map[string]interface{}
}

// Parser splits documents into raw sections.
type Parser struct {
	marker   string
	markdown goldmark.Markdown
}

// Option customises a Parser.
type Option func(p *Parser)

// WithConfigMarker overrides the fence info token used for configuration blocks.
func WithConfigMarker(marker string) Option {
	return func(p *Parser) {
		p.marker = marker
	}
}

// New creates a parser.
func New(options ...Option) *Parser {
	ret := &Parser{marker: DefaultConfigMarker, markdown: goldmark.New()}
	for _, option := range options {
		option(ret)
	}
	return ret
}

var defaultParser = New()

// Parse splits source with the default parser.
func Parse(source []byte) ([]*artifact.RawSection, error) {
	return defaultParser.Parse(source)
}

// Parse returns the head section followed by sub-sections in declaration order.
func (p *Parser) Parse(source []byte) ([]*artifact.RawSection, error) {
	index := newLines(source)
	regions, err := p.regions(source, index)
	if err != nil {
		return nil, err
	}
	head := &artifact.RawSection{Level: 1, Config: map[string]interface{}{}}
	sections := []*artifact.RawSection{head}
	current := head
	hasTitle := false
	pos := 0
	for _, r := range regions {
		if r.from > pos {
			current.Blocks = append(current.Blocks, artifact.Block{Kind: artifact.BlockText, Text: index.text(pos, r.from)})
		}
		raw := index.text(r.from, r.to)
		pos = r.to
		switch r.kind {
		case configRegion:
			for k, v := range r.config {
				current.Config[k] = v
			}
			current.Blocks = append(current.Blocks, artifact.Block{Kind: artifact.BlockConfig, Text: raw})
		case headingRegion:
			if r.level == 1 {
				if hasTitle {
					return nil, fmt.Errorf("%w: line %d", ErrMultipleTitles, r.from+1)
				}
				if r.title == "" {
					return nil, fmt.Errorf("%w: empty title at line %d", ErrMissingTitle, r.from+1)
				}
				hasTitle = true
				head.Title = r.title
				head.Heading = raw
				head.Blocks = append(head.Blocks, artifact.Block{Kind: artifact.BlockHeading, Text: raw})
				current = head
				continue
			}
			if !hasTitle {
				return nil, fmt.Errorf("%w: %q at line %d", ErrSectionBeforeTitle, r.title, r.from+1)
			}
			current = &artifact.RawSection{
				Level:   2,
				Title:   r.title,
				Heading: raw,
				Config:  map[string]interface{}{},
				Blocks:  []artifact.Block{{Kind: artifact.BlockHeading, Text: raw}},
			}
			sections = append(sections, current)
		}
	}
	if pos < index.count() {
		current.Blocks = append(current.Blocks, artifact.Block{Kind: artifact.BlockText, Text: index.text(pos, index.count())})
	}
	if !hasTitle {
		return nil, ErrMissingTitle
	}
	return sections, nil
}

// regions collects top-level level-1/2 headings and configuration blocks.
func (p *Parser) regions(source []byte, index *lines) ([]*region, error) {
	document := p.markdown.Parser().Parse(text.NewReader(source))
	var result []*region
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		switch actual := node.(type) {
		case *ast.Heading:
			if actual.Level > 2 {
				continue
			}
			r, err := headingOf(actual, source, index)
			if err != nil {
				return nil, err
			}
			result = append(result, r)
		case *ast.FencedCodeBlock:
			if !p.isConfig(actual, source) {
				continue
			}
			r, err := configOf(actual, source, index)
			if err != nil {
				return nil, err
			}
			result = append(result, r)
		}
	}
	return result, nil
}

func (p *Parser) isConfig(block *ast.FencedCodeBlock, source []byte) bool {
	if block.Info == nil {
		return false
	}
	for _, field := range strings.Fields(string(block.Info.Segment.Value(source))) {
		if field == p.marker {
			return true
		}
	}
	return false
}

func headingOf(heading *ast.Heading, source []byte, index *lines) (*region, error) {
	segments := heading.Lines()
	if segments.Len() == 0 {
		if heading.Level == 1 {
			return nil, fmt.Errorf("%w: empty title", ErrMissingTitle)
		}
		return nil, ErrEmptySectionTitle
	}
	var parts []string
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		if part := strings.TrimSpace(string(segment.Value(source))); part != "" {
			parts = append(parts, part)
		}
	}
	from := index.lineOf(segments.At(0).Start)
	to := index.lineOf(segments.At(segments.Len()-1).Start) + 1
	if len(parts) == 0 && heading.Level > 1 {
		return nil, fmt.Errorf("%w at line %d", ErrEmptySectionTitle, from+1)
	}
	if !isATXHeading(index.line(from)) && to < index.count() {
		to++ // setext underline
	}
	return &region{kind: headingRegion, from: from, to: to, level: heading.Level, title: strings.Join(parts, " ")}, nil
}

func configOf(block *ast.FencedCodeBlock, source []byte, index *lines) (*region, error) {
	from := index.lineOf(block.Info.Segment.Start)
	fence, size := fenceOf(index.line(from))
	closing := from + 1
	var content bytes.Buffer
	segments := block.Lines()
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		content.Write(segment.Value(source))
	}
	if segments.Len() > 0 {
		closing = index.lineOf(segments.At(segments.Len()-1).Start) + 1
	}
	to := index.count()
	if closing < index.count() && isClosingFence(index.line(closing), fence, size) {
		to = closing + 1
	}
	node, err := yml.Decode(content.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w at line %d: %v", ErrMalformedConfig, from+1, err)
	}
	config := map[string]interface{}{}
	if node != nil {
		if !node.IsMapping() {
			return nil, fmt.Errorf("%w at line %d: expected key/value mapping", ErrMalformedConfig, from+1)
		}
		value, err := node.Interface()
		if err != nil {
			return nil, fmt.Errorf("%w at line %d: %v", ErrMalformedConfig, from+1, err)
		}
		config = value.(map[string]interface{})
	}
	return &region{kind: configRegion, from: from, to: to, config: config}, nil
}

func isATXHeading(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	count := 0
	for count < len(trimmed) && trimmed[count] == '#' {
		count++
	}
	if count == 0 || count > 6 {
		return false
	}
	return count == len(trimmed) || trimmed[count] == ' ' || trimmed[count] == '\t'
}

func fenceOf(line string) (byte, int) {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return '`', 3
	}
	fence := trimmed[0]
	size := 0
	for size < len(trimmed) && trimmed[size] == fence {
		size++
	}
	return fence, size
}

func isClosingFence(line string, fence byte, size int) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < size {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != fence {
			return false
		}
	}
	return true
}
