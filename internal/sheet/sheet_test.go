package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studio360/invoice-parser/internal/lineitems"
)

func TestFlattenCSV(t *testing.T) {
	csvData := "Item,Qty,Price,Subtotal\nBlue Mug,3,15.00,45.00\nGrand Total,,,45.00\n"

	text, err := FlattenCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	// flattened cells must survive the whitespace-run column splitter
	items := lineitems.ParseItemsFromText(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Mug", items[0].Product)
	require.NotNil(t, items[0].Subtotal)
	assert.Equal(t, float64(45), *items[0].Subtotal)
}

func TestFlattenCSVMalformed(t *testing.T) {
	_, err := FlattenCSV(strings.NewReader("a,\"unterminated\n"))
	assert.Error(t, err)
}

func TestFlattenXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Item", "Qty", "Price", "Subtotal"},
		{"Blue Mug", 3, 15.00, 45.00},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	text, err := FlattenXLSX(buf)
	require.NoError(t, err)
	assert.Contains(t, text, "Blue Mug")

	items := lineitems.ParseItemsFromText(text)
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Mug", items[0].Product)
}

func TestFlattenUploadDispatch(t *testing.T) {
	t.Run("plain text passes through verbatim", func(t *testing.T) {
		text, err := FlattenUpload("invoice.txt", strings.NewReader("hello\nworld"))
		require.NoError(t, err)
		assert.Equal(t, "hello\nworld", text)
	})

	t.Run("csv extension dispatches to csv", func(t *testing.T) {
		text, err := FlattenUpload("invoice.CSV", strings.NewReader("a,b\n"))
		require.NoError(t, err)
		assert.Equal(t, "a"+cellGap+"b\n", text)
	})

	t.Run("broken xlsx reports an error", func(t *testing.T) {
		_, err := FlattenUpload("invoice.xlsx", strings.NewReader("not a workbook"))
		assert.Error(t, err)
	})
}
