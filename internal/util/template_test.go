package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_FastPath(t *testing.T) {
	out, err := RenderTemplate("no markers <b>", nil)
	require.NoError(t, err)
	assert.Equal(t, "no markers <b>", out)
}

func TestRenderTemplate_NoEscaping(t *testing.T) {
	out, err := RenderTemplate("Data: {{.Text}}", struct{ Text string }{Text: `O'Brien <dob> & "id"`})
	require.NoError(t, err)
	assert.Equal(t, `Data: O'Brien <dob> & "id"`, out)
}

func TestRenderTemplate_MissingKey(t *testing.T) {
	_, err := RenderTemplate("{{.Nope}}", map[string]any{})
	assert.Error(t, err)
}

func TestRenderTemplate_ParseError(t *testing.T) {
	_, err := RenderTemplate("{{.Text", nil)
	assert.Error(t, err)
}
