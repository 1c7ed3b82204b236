package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stitts-dev/gameweek-advisor/internal/personality"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DEFAULT_GAMEWEEK", "34")
	t.Setenv("LOG_FORMAT", "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestReport_Text(t *testing.T) {
	out, _, err := runCLI(t, "report", "--offline")
	require.NoError(t, err)

	assert.Contains(t, out, "Gameweek 34 report (mock data)")
	assert.Contains(t, out, "fallback: no manager id provided")
	assert.Contains(t, out, "Captain:      Mohamed Salah")
	assert.Contains(t, out, "Vice captain: Alexander Isak")
	assert.Contains(t, out, "Starting XI")
	assert.Contains(t, out, personality.Lines(personality.Farewell)[0])
}

func TestReport_JSON(t *testing.T) {
	out, _, err := runCLI(t, "report", "--offline", "--format", "json")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "mock", doc["data_source"])
	assert.EqualValues(t, 34, doc["gameweek"])
	assert.Len(t, doc["starting_xi"], 11)
	assert.Len(t, doc["bench"], 4)
	assert.Len(t, doc["team_overview"], 15)
}

func TestReport_YAMLMatchesJSONKeys(t *testing.T) {
	out, _, err := runCLI(t, "report", "--offline", "-f", "yaml")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "mock", doc["data_source"])
	require.Contains(t, doc, "captain")
	captain, ok := doc["captain"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Mohamed Salah", captain["name"])
	assert.Contains(t, doc, "chip_recommendation")
}

func TestReport_LogsGoToStderr(t *testing.T) {
	out, errOut, err := runCLI(t, "report", "--offline", "--format", "json", "--log-level", "info")
	require.NoError(t, err)

	assert.Contains(t, errOut, "Report generated")
	assert.NotContains(t, out, "Report generated")
}

func TestReport_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"report", "--offline", "-f", "xml"}, `unknown format "xml"`},
		{"gameweek too high", []string{"report", "--offline", "--gw", "39"}, "gw must be between 0 and 38"},
		{"negative gameweek", []string{"report", "--offline", "--gw", "-1"}, "gw must be between 0 and 38"},
		{"extra args", []string{"report", "--offline", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
