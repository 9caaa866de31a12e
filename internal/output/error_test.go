package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackskit/stackskit/internal/output"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

func TestFormatError_NilError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format output.Format
	}{
		{"JSON format", output.FormatJSON},
		{"Text format", output.FormatText},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := output.FormatError(&buf, nil, tc.format)
			require.NoError(t, err)
			assert.Empty(t, buf.String())
		})
	}
}

func TestFormatError_GenericError_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	//nolint:err113 // Test error, not wrapped
	err := output.FormatError(&buf, errors.New("boom"), output.FormatJSON)
	require.NoError(t, err)

	var out output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "GENERAL_ERROR", out.Error.Code)
	assert.Equal(t, "boom", out.Error.Message)
	assert.Equal(t, kiterr.ExitGeneral, out.Error.ExitCode)
}

func TestFormatError_KitError_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	kerr := kiterr.WithSuggestion(
		kiterr.WithDetails(kiterr.ErrInvalidAddress, map[string]string{"address": "SPINVALID"}),
		"Check the address and try again",
	)
	err := output.FormatError(&buf, kerr, output.FormatJSON)
	require.NoError(t, err)

	var out output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, kiterr.Code(kerr), out.Error.Code)
	assert.Equal(t, "SPINVALID", out.Error.Details["address"])
	assert.Equal(t, "Check the address and try again", out.Error.Suggestion)
	assert.Equal(t, kiterr.ExitCode(kerr), out.Error.ExitCode)
}

func TestFormatError_KitError_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	kerr := kiterr.WithSuggestion(kiterr.ErrWalletUnavailable, "Install a Stacks wallet extension")
	err := output.FormatError(&buf, kerr, output.FormatText)
	require.NoError(t, err)

	text := buf.String()
	assert.Contains(t, text, "Error: ")
	assert.Contains(t, text, "Suggestion: Install a Stacks wallet extension")
}

func TestFormatError_KitError_Text_Details(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	kerr := kiterr.WithDetails(kiterr.ErrInvalidAmount, map[string]string{"amount": "-3"})
	err := output.FormatError(&buf, kerr, output.FormatText)
	require.NoError(t, err)

	text := buf.String()
	assert.Contains(t, text, "Details:")
	assert.Contains(t, text, "  amount: -3")
}

func TestFormatError_GenericError_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	//nolint:err113 // Test error, not wrapped
	err := output.FormatError(&buf, errors.New("boom"), output.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestFormatSuccess(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, output.FormatSuccess(&buf, "Transaction broadcast", output.FormatText))
		assert.Equal(t, "Transaction broadcast\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, output.FormatSuccess(&buf, "Transaction broadcast", output.FormatJSON))

		var out map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "success", out["status"])
		assert.Equal(t, "Transaction broadcast", out["message"])
	})
}

func TestCanRenderQR_NonFile(t *testing.T) {
	t.Parallel()
	assert.False(t, output.CanRenderQR(&strings.Builder{}))
}

func TestRenderQR_NonTerminal(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, output.RenderQR(&buf, "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", output.DefaultQRConfig()))
	assert.Empty(t, buf.String())
}
