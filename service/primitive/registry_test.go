package primitive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/model/state"
	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/runtime/execution"
)

type sectionKind struct{}

func (k *sectionKind) Capability() types.Capability { return types.CapabilitySection }

func (k *sectionKind) Construct(_ ident.FullArtifactID, raw *artifact.RawSection) (*artifact.Section, error) {
	return &artifact.Section{Title: raw.Title}, nil
}

func (k *sectionKind) Validate(ident.FullArtifactID, *artifact.Section) []error { return nil }

type operationKind struct{ sectionKind }

func (k *operationKind) Capability() types.Capability { return types.CapabilityOperation }

func (k *operationKind) Execute(context.Context, *execution.Context) ([]state.Change, error) {
	return nil, nil
}

func TestRegistry_Resolve(t *testing.T) {
	registry := New()
	registry.Register("test.lib", Module{
		"text":      &sectionKind{},
		"operation": &operationKind{},
		"constant":  42,
	})
	registry.RegisterLoader("broken.lib", func() (Module, error) { return nil, errors.New("boom") })

	testCases := []struct {
		name   string
		id     string
		expect error
	}{
		{name: "section", id: "test.lib.text"},
		{name: "operation", id: "test.lib.operation"},
		{name: "missing member", id: "test.lib.missing", expect: ErrPrimitiveNotAvailable},
		{name: "not a kind", id: "test.lib.constant", expect: ErrPrimitiveNotPrimitive},
		{name: "unregistered module", id: "other.lib.text", expect: ErrPrimitiveModuleNotImportable},
		{name: "failing loader", id: "broken.lib.text", expect: ErrPrimitiveModuleNotImportable},
		{name: "no module", id: "text", expect: ErrPrimitiveModuleNotImportable},
		{name: "bad path", id: "test..text", expect: ErrPrimitiveModuleNotImportable},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := registry.Resolve(tc.id)
			if tc.expect != nil {
				assert.True(t, errors.Is(err, tc.expect), "expected %v, got %v", tc.expect, err)
				var primitiveErr *Error
				require.True(t, errors.As(err, &primitiveErr))
				assert.Equal(t, tc.id, primitiveErr.ID)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, kind)
		})
	}
}

func TestRegistry_Capabilities(t *testing.T) {
	registry := New()
	registry.Register("test.lib", Module{"text": &sectionKind{}, "operation": &operationKind{}})

	_, err := registry.SectionKind("test.lib.operation")
	assert.NoError(t, err)
	_, err = registry.OperationKind("test.lib.operation")
	assert.NoError(t, err)

	_, err = registry.OperationKind("test.lib.text")
	assert.True(t, errors.Is(err, ErrPrimitiveNotPrimitive))
	_, err = registry.ArtifactKind("test.lib.text")
	assert.True(t, errors.Is(err, ErrPrimitiveNotPrimitive))
	_, err = registry.SectionKind("test.lib.none")
	assert.True(t, errors.Is(err, ErrPrimitiveNotAvailable))
}

func TestRegistry_Memoized(t *testing.T) {
	registry := New()
	loads := 0
	registry.RegisterLoader("test.lib", func() (Module, error) {
		loads++
		return Module{"text": &sectionKind{}}, nil
	})
	first, err := registry.Resolve("test.lib.text")
	require.NoError(t, err)
	second, err := registry.Resolve("test.lib.text")
	require.NoError(t, err)
	assert.Same(t, first, second)
	_, _ = registry.Resolve("test.lib.missing")
	_, _ = registry.Resolve("test.lib.missing")
	assert.Equal(t, 1, loads)

	registry.Register("test.lib", Module{"missing": &sectionKind{}})
	_, err = registry.Resolve("test.lib.missing")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"test.lib"}, registry.Modules())
}
