package schema

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio360/invoice-parser/internal/pipeline"
)

func TestValidateRecordJSON(t *testing.T) {
	pipe := pipeline.New(slog.New(slog.NewTextHandler(io.Discard, nil)), pipeline.Config{})

	t.Run("pipeline output always validates", func(t *testing.T) {
		texts := []string{
			"",
			"Invoice INV-1\nGrand Total: 99.00",
			"Item   Qty   Price\nMug   2   4.00",
		}
		for _, text := range texts {
			rec := pipe.Parse(text, nil)
			b, err := json.Marshal(rec)
			require.NoError(t, err)
			assert.NoError(t, ValidateRecordJSON(b), "text: %q", text)
		}
	})

	t.Run("missing field rejected", func(t *testing.T) {
		err := ValidateRecordJSON([]byte(`{"order_number":"X"}`))
		assert.Error(t, err)
	})

	t.Run("null scalar rejected", func(t *testing.T) {
		rec := pipe.Parse("", nil)
		b, err := json.Marshal(rec)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		m["grand_total"] = nil
		b, err = json.Marshal(m)
		require.NoError(t, err)
		assert.Error(t, ValidateRecordJSON(b))
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		assert.Error(t, ValidateRecordJSON([]byte(`{`)))
	})
}
