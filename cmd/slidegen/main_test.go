package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlTemplate = `id: tpl-list
elements:
  - id: title
    type: text
    left: 0
    top: 0
    width: 800
    height: 80
    content: "<p>Healthy Habits</p>"
    textType: title
  - id: i1
    type: text
    left: 0
    top: 200
    width: 300
    height: 80
    content: "<p>Sleep well</p>"
    textType: item
  - id: i2
    type: text
    left: 400
    top: 200
    width: 300
    height: 80
    content: "<p>Drink water</p>"
    textType: item
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPromptFromYAMLTemplate(t *testing.T) {
	tmpl := writeFile(t, "list.yaml", yamlTemplate)
	out, err := run(t, "", "prompt", "--template", tmpl, "--topic", "Morning routines", "--language", "English")
	require.NoError(t, err)
	assert.Contains(t, out, "Morning routines")

	out, err = run(t, "", "prompt", "-t", tmpl, "--json")
	require.NoError(t, err)
	var plan struct {
		Structure struct {
			Type      string `json:"type"`
			ItemCount int    `json:"itemCount"`
		} `json:"structure"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "list", plan.Structure.Type)
	assert.Equal(t, 2, plan.Structure.ItemCount)
}

func TestFillFromStdin(t *testing.T) {
	tmpl := writeFile(t, "list.yaml", yamlTemplate)
	out, err := run(t, `{"title":"Evening","items":["Read","Stretch"]}`, "fill", "-t", tmpl, "--data", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Evening")
	assert.Contains(t, out, "Stretch")

	_, err = run(t, `{"items":["Read"]}`, "fill", "-t", tmpl, "--data", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestGenerateDemoWritesArtifacts(t *testing.T) {
	tmpl := writeFile(t, "list.yaml", yamlTemplate)
	dir := t.TempDir()
	out, err := run(t, "", "generate", "-t", tmpl, "--topic", "Focus", "--out", dir)
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 4)
	for _, line := range lines {
		_, err := os.Stat(line)
		assert.NoError(t, err, line)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	files, err := os.ReadDir(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"data.json", "prompt.txt", "response.txt", "slide.json"}, names)
}

func TestCommandsNeedTemplate(t *testing.T) {
	_, err := run(t, "", "prompt")
	require.EqualError(t, err, "--template is required")

	tmpl := writeFile(t, "list.yaml", yamlTemplate)
	_, err = run(t, "", "fill", "-t", tmpl)
	require.EqualError(t, err, "--data is required")

	_, err = run(t, "", "generate", "-t", tmpl)
	require.Error(t, err)
}

func TestIsYAML(t *testing.T) {
	assert.True(t, isYAML("a.yml", []byte("{}")))
	assert.False(t, isYAML("a.json", []byte("a: 1")))
	assert.True(t, isYAML("-", []byte("a: 1")))
	assert.False(t, isYAML("-", []byte(" {\"a\":1}")))
}
