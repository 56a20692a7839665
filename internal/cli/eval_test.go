package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/creal/internal/engine"
)

func TestEvalCommand_Text(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"exact integer", []string{"eval", "6 7 *"}, "42\n"},
		{"exact fraction", []string{"eval", "1 8 /"}, "0.125\n"},
		{"joined arguments", []string{"eval", "1", "8", "/"}, "0.125\n"},
		{"repeating fraction", []string{"eval", "1 3 /", "--digits", "5"}, "0.33333  (1/3)\n"},
		{"irrational", []string{"eval", "2 sqrt", "--digits", "5"}, "1.41421  (√2)\n"},
		{"hex", []string{"eval", "255", "--radix", "16"}, "ff\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEvalCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "eval", "1  3 ÷", "--digits", "4", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   engine.Outcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1 3 /", resp.Data.Expression)
	assert.Equal(t, "0.3333", resp.Data.Text)
	assert.Equal(t, "1/3", resp.Data.Nice)
	assert.False(t, resp.Data.Exact)
	assert.NotEmpty(t, resp.Data.Hash)
	assert.Empty(t, resp.Data.ID)
}

func TestEvalCommand_DomainError(t *testing.T) {
	stdout, _, err := executeCommand(t, "eval", "1 0 /")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E101]")
}

func TestEvalCommand_FormatError(t *testing.T) {
	stdout, _, err := executeCommand(t, "eval", "1 +", "--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeFormat, resp.Error.Code)
}

func TestEvalCommand_NoArgs(t *testing.T) {
	_, _, err := executeCommand(t, "eval")
	require.Error(t, err)
}

func TestEvalCommand_RecordsHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sub", "history.db")

	stdout, _, err := executeCommand(t, "eval", "2 2 +", "--history", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data engine.Outcome `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, int64(1), resp.Data.Seq)
	assert.FileExists(t, db)
}

func TestFormatOutcome(t *testing.T) {
	tests := []struct {
		name string
		out  engine.Outcome
		want string
	}{
		{"exact", outcome("0.5", "1/2", true), "0.5"},
		{"symbolic", outcome("3.14159", "π", false), "3.14159  (π)"},
		{"decimal nice form", outcome("0.12345", "0.12345", false), "0.12345"},
		{"plain approximation", outcome("1.23", "1.2345678", false), "1.23"},
		{"no nice form", outcome("7", "", false), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatOutcome(tt.out))
		})
	}
}

func outcome(text, nice string, exact bool) engine.Outcome {
	var out engine.Outcome
	out.Text = text
	out.Nice = nice
	out.Exact = exact
	return out
}
