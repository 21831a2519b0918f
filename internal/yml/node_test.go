package yml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Interface(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    interface{}
		isMapping bool
	}{
		{
			name:      "mapping",
			input:     "id: start\nretries: 3\nratio: 0.5\nenabled: true\nnothing: null\nitems: [a, b]",
			expect:    map[string]interface{}{"id": "start", "retries": 3, "ratio": 0.5, "enabled": true, "nothing": nil, "items": []interface{}{"a", "b"}},
			isMapping: true,
		},
		{name: "scalar", input: "plain", expect: "plain"},
		{name: "sequence", input: "- 1\n- 2", expect: []interface{}{1, 2}},
		{
			name:      "special numbers",
			input:     "ratio: .inf\nlow: -.Inf\nmask: 0x1F\nmode: 0o17",
			expect:    map[string]interface{}{"ratio": math.Inf(1), "low": math.Inf(-1), "mask": 31, "mode": 15},
			isMapping: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := Decode([]byte(tc.input))
			assert.NoError(t, err)
			assert.Equal(t, tc.isMapping, node.IsMapping())
			value, err := node.Interface()
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, value)
		})
	}
}

func TestNode_Interface_Malformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "int", input: "count: !!int abc"},
		{name: "float", input: "ratio: !!float abc"},
		{name: "nested", input: "items:\n  - !!int x"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := Decode([]byte(tc.input))
			if err == nil {
				_, err = node.Interface()
			}
			assert.Error(t, err)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	node, err := Decode([]byte("  \n"))
	assert.NoError(t, err)
	assert.Nil(t, node)
	assert.False(t, node.IsMapping())
}

func TestNode_Pairs(t *testing.T) {
	node, err := Decode([]byte("b: 1\na: 2\nc: 3"))
	assert.NoError(t, err)
	var keys []string
	err = node.Pairs(func(key string, _ *Node) error {
		keys = append(keys, key)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keys)
}
