package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShader = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var positions = array<vec2<f32>, 3>(
        vec2<f32>(0.0, -0.5),
        vec2<f32>(0.5, 0.5),
        vec2<f32>(-0.5, 0.5)
    );
    return vec4<f32>(positions[idx], 0.0, 1.0);
}
`

func TestCompileShader(t *testing.T) {
	code, err := CompileShader(testShader)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	// SPIR-V modules start with the magic number.
	assert.Equal(t, uint32(0x07230203), code[0])
}

func TestCompileShaderBadSource(t *testing.T) {
	_, err := CompileShader("fn broken( {")
	require.Error(t, err)
}
