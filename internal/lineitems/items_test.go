package lineitems

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestParseItemsFromText(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		items := ParseItemsFromText("")
		require.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("no header means no items", func(t *testing.T) {
		text := "Blue Mug   3   15.00   45.00\nRed Pen   1   5.00   5.00"
		assert.Empty(t, ParseItemsFromText(text))
	})

	t.Run("single row end to end", func(t *testing.T) {
		text := "Item   Qty   Price   Subtotal\nBlue Mug   3   15.00   45.00"
		items := ParseItemsFromText(text)
		require.Len(t, items, 1)
		assert.Equal(t, Item{
			No:           1,
			Product:      "Blue Mug",
			ProductPrice: f(15),
			Qty:          f(3),
			Subtotal:     f(45),
		}, items[0])
	})

	t.Run("stops at terminator line without parsing it", func(t *testing.T) {
		text := strings.Join([]string{
			"Item   Qty   Price   Subtotal",
			"Blue Mug   3   15.00   45.00",
			"Grand Total   45.00",
			"Ghost Row   1   1.00   1.00",
		}, "\n")
		items := ParseItemsFromText(text)
		require.Len(t, items, 1)
		assert.Equal(t, "Blue Mug", items[0].Product)
	})

	t.Run("quantity over 999 folds into the product name", func(t *testing.T) {
		text := "Product   Qty   Amount\nWidget   1500   20.00   30.00"
		items := ParseItemsFromText(text)
		require.Len(t, items, 1)
		assert.Equal(t, "Widget 1500", items[0].Product)
		assert.Nil(t, items[0].Qty)
		assert.Equal(t, f(20), items[0].ProductPrice)
		assert.Equal(t, f(30), items[0].Subtotal)
	})

	t.Run("rows without any numeric column are discarded", func(t *testing.T) {
		text := "Item   Qty   Price\nsome   footnote here"
		assert.Empty(t, ParseItemsFromText(text))
	})

	t.Run("rows with fewer than two columns are skipped", func(t *testing.T) {
		text := "Item   Qty   Price\nJustOneColumn\nMug   2   4.00"
		items := ParseItemsFromText(text)
		require.Len(t, items, 1)
		assert.Equal(t, "Mug", items[0].Product)
	})

	t.Run("safety cap at 150 items", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("Item   Qty   Price   Subtotal\n")
		for i := 0; i < 300; i++ {
			fmt.Fprintf(&b, "Thing %d   2   3.00   6.00\n", i)
		}
		items := ParseItemsFromText(b.String())
		assert.Len(t, items, 150)
	})

	t.Run("sequential numbering", func(t *testing.T) {
		text := "Item   Qty   Price\nMug   2   4.00\nPen   1   2.00"
		items := ParseItemsFromText(text)
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].No)
		assert.Equal(t, 2, items[1].No)
	})
}

func TestHeaderDetection(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"item plus qty keywords", "SKU   Description   Qty", true},
		{"item plus price keywords", "Product   Unit Price", true},
		{"single column never qualifies", "Notes", false},
		{"one keyword group is not enough", "Description   Color", false},
		{"case insensitive", "ITEM   QUANTITY   AMOUNT", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := splitColumns(tt.line)
			got := len(parts) >= 2 && scoreHeader(parts) >= 2
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"abc", nil},
		{".", nil},
		{"3", f(3)},
		{"15.00", f(15)},
		{"-5.5", f(-5.5)},
		{"₱1,234.50", f(1234.5)},
		{"$2,000", f(2000)},
		{"1,234,567", f(1234567)},
		{"12,34", f(1234)},
		{"PHP 99.00", f(99)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := coerceNumber(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
