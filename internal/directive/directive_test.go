package directive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mdflow/internal/markdown"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
)

const artifactID = ident.FullArtifactID("project:release")

func TestRenderer_Render(t *testing.T) {
	source := `# {{ title "release flow" }}

## Review

When done go to {{ goto "finish" }} or read {{ view "project:guide" }}.
`
	testCases := []struct {
		name   string
		mode   Mode
		expect string
	}{
		{
			name:   "view",
			mode:   ViewMode,
			expect: "# Release Flow\n\n## Review\n\nWhen done go to `project:release:finish` or read `project:guide`.\n",
		},
		{
			name:   "analysis",
			mode:   AnalysisMode,
			expect: "# Release Flow\n\n## Review\n\nWhen done go to <<MDFLOW goto finish MDFLOW>> or read <<MDFLOW view project:guide MDFLOW>>.\n",
		},
	}
	renderer := NewRenderer()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := renderer.Render(tc.mode, artifactID, source)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestRenderer_InvalidTarget(t *testing.T) {
	_, err := NewRenderer().Render(AnalysisMode, artifactID, `{{ goto "not valid" }}`)
	assert.Error(t, err)
	_, err = NewRenderer().Render(ViewMode, artifactID, `{{ view "single" }}`)
	assert.Error(t, err)
}

func TestRenderer_Delimiters(t *testing.T) {
	actual, err := NewRenderer(WithDelimiters("[[", "]]")).Render(ViewMode, artifactID, `{{ keep }} [[ goto "next" ]] [[ .World ]]`)
	require.NoError(t, err)
	assert.Equal(t, "{{ keep }} `project:release:next` project", actual)
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []artifact.Directive
		hasErr bool
	}{
		{name: "none", input: "plain << text >>"},
		{
			name:   "single",
			input:  "go <<MDFLOW goto finish MDFLOW>> now",
			expect: []artifact.Directive{{Name: "goto", Argument: "finish"}},
		},
		{
			name:  "extra whitespace",
			input: "<<MDFLOW   goto \t review\n MDFLOW>> and <<MDFLOW view w:doc MDFLOW>>",
			expect: []artifact.Directive{
				{Name: "goto", Argument: "review"},
				{Name: "view", Argument: "w:doc"},
			},
		},
		{name: "missing whitespace", input: "<<MDFLOWgoto x MDFLOW>>", hasErr: true},
		{name: "missing argument", input: "<<MDFLOW goto MDFLOW>>", hasErr: true},
		{name: "unterminated", input: "<<MDFLOW goto x", hasErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Extract(tc.input)
			if tc.hasErr {
				assert.True(t, errors.Is(err, ErrMalformedDirective), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestAttach(t *testing.T) {
	source := `# Flow

## Start

{{ goto "review" }} then {{ goto "finish" }}

## Review

{{ goto "finish" }}

## Finish

Done.
`
	renderer := NewRenderer()
	view, analysis, err := renderer.RenderBoth(artifactID, source)
	require.NoError(t, err)
	viewSections, err := markdown.Parse([]byte(view))
	require.NoError(t, err)
	analysisSections, err := markdown.Parse([]byte(analysis))
	require.NoError(t, err)
	require.NoError(t, Attach(viewSections, analysisSections))

	assert.Equal(t, []string{"review", "finish"}, viewSections[1].DirectiveArguments(Goto))
	assert.Equal(t, []string{"finish"}, viewSections[2].DirectiveArguments(Goto))
	assert.Empty(t, viewSections[3].Directives)
	assert.Equal(t, "`project:release:finish`", viewSections[2].Description())
}

func TestCompare_Mismatch(t *testing.T) {
	source := `# Flow

{{ if eq (goto "x") "<<MDFLOW goto x MDFLOW>>" }}
## Only in analysis
{{ end }}
`
	view, analysis, err := NewRenderer().RenderBoth(artifactID, source)
	require.NoError(t, err)
	viewSections, err := markdown.Parse([]byte(view))
	require.NoError(t, err)
	analysisSections, err := markdown.Parse([]byte(analysis))
	require.NoError(t, err)
	err = Compare(viewSections, analysisSections)
	assert.True(t, errors.Is(err, ErrSectionCountMismatch), "got %v", err)
	assert.True(t, errors.Is(Attach(viewSections, analysisSections), ErrSectionCountMismatch))
}
