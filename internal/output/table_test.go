package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackskit/stackskit/internal/output"
)

func TestTable_Render(t *testing.T) {
	t.Parallel()

	tbl := output.NewTable("ASSET", "BALANCE")
	tbl.AlignRight(1)
	tbl.AddRow("STX", "1,000.00")
	tbl.AddRow("sBTC", "0.5")

	want := "ASSET   BALANCE\n" +
		"-----  --------\n" +
		"STX    1,000.00\n" +
		"sBTC        0.5\n"
	assert.Equal(t, want, tbl.String())
}

func TestTable_NoHeader(t *testing.T) {
	t.Parallel()

	tbl := output.NewTable("K", "V")
	tbl.SetNoHeader(true)
	tbl.AddRow("network", "mainnet")

	assert.Equal(t, "network  mainnet\n", tbl.String())
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, output.NewTable().String())
}
