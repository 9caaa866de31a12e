package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackskit/stackskit/internal/output"
)

func TestFormatter_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)

	data := map[string]string{"address": "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"}
	err := f.Print(data)
	require.NoError(t, err)

	var result map[string]string
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", result["address"])
}

func TestFormatter_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Print("connected")
	require.NoError(t, err)
	assert.Equal(t, "connected\n", buf.String())
}

func TestFormatter_Printf(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)

	err := f.Printf("balance: %s STX\n", "1,000.00")
	require.NoError(t, err)
	assert.Equal(t, "balance: 1,000.00 STX\n", buf.String())
}

func TestFormatter_IsJSON(t *testing.T) {
	t.Parallel()
	jsonFmt := output.NewFormatter(output.FormatJSON, nil)
	textFmt := output.NewFormatter(output.FormatText, nil)

	assert.True(t, jsonFmt.IsJSON())
	assert.False(t, textFmt.IsJSON())
}

func TestDetectFormat_Explicit(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatJSON))
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
}

func TestDetectFormat_NonTTY(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	// A plain buffer is not a terminal, so auto resolves to JSON.
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  output.Format
	}{
		{"json", output.FormatJSON},
		{"JSON", output.FormatJSON},
		{"  text ", output.FormatText},
		{"auto", output.FormatAuto},
		{"", output.FormatAuto},
		{"yaml", output.FormatAuto},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, output.ParseFormat(tc.input))
		})
	}
}
