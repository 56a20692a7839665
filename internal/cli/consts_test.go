package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/creal/internal/engine"
)

func TestEvaluateConstants(t *testing.T) {
	rows, err := evaluateConstants(context.Background(), engine.New(engine.WithDigits(5)))
	require.NoError(t, err)
	require.Len(t, rows, len(knownConstants))

	want := map[string]string{
		"π":      "3.14159",
		"e":      "2.71828",
		"√2":     "1.41421",
		"ln(2)":  "0.69314",
		"ln(10)": "2.30258",
	}
	for _, row := range rows {
		if v, ok := want[row.Name]; ok {
			assert.Equal(t, v, row.Value, row.Name)
		}
		assert.NotEmpty(t, row.Value, row.Name)
	}

	// Order follows the table.
	for i := range rows {
		assert.Equal(t, knownConstants[i].Name, rows[i].Name)
	}
}

func TestEvaluateConstants_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := evaluateConstants(ctx, engine.New(engine.WithDigits(1000)))
	require.Error(t, err)
	assert.Equal(t, ErrCodeAborted, ErrorCode(err))
}

func TestConstsCommand_Text(t *testing.T) {
	stdout, _, err := executeCommand(t, "consts", "--digits", "5")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "3.14159")
	assert.Contains(t, stdout, "ln(3)")
}

func TestConstsCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "consts", "--digits", "3", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []namedConstant `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, len(knownConstants))
	assert.Equal(t, namedConstant{Name: "π", Expression: "pi", Value: "3.141"}, resp.Data[0])
}
