package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Parse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	assert.NotNil(t, tmpl.Lookup("login.html"))
	assert.NotNil(t, tmpl.Lookup("dashboard.html"))
}

func TestLoginTemplate_EscapesFlashes(t *testing.T) {
	tmpl := MustTemplates()

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "login.html", map[string]any{
		"Flashes": struct {
			Success []string
			Error   []string
		}{Error: []string{"<script>"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.NotContains(t, buf.String(), "<script>")
}
