package backup

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBundle_Valid(t *testing.T) {
	raw := []byte(`{
		"metadata": {"version": 1, "timestamp": "2026-01-02T03:04:05Z", "type": "full", "modules": ["cards"]},
		"data": {"cards": [{"id": "c1"}]}
	}`)

	b, err := ParseBundle(raw)
	require.NoError(t, err)
	assert.Equal(t, ScopeFull, b.Metadata.Type)
	assert.Contains(t, b.Data, "cards")
}

func TestParseBundle_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"missing metadata", `{"data": {}}`},
		{"missing data", `{"metadata": {"version": 1, "type": "full"}}`},
		{"bad type", `{"metadata": {"version": 1, "type": "incremental"}, "data": {}}`},
		{"zero version", `{"metadata": {"type": "full"}, "data": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBundle([]byte(tt.raw))
			assert.ErrorIs(t, err, common.ErrInvalidBundle)
		})
	}
}

func TestNewBundle_FullScope(t *testing.T) {
	state := State{
		"cards": []any{map[string]any{"id": "c1"}},
		"decks": []any{map[string]any{"name": "d1"}},
	}

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b := NewBundle(state, nil, now)

	assert.Equal(t, BundleVersion, b.Metadata.Version)
	assert.Equal(t, ScopeFull, b.Metadata.Type)
	assert.Equal(t, "2026-01-02T03:04:05Z", b.Metadata.Timestamp)
	assert.Equal(t, []string{"cards", "decks"}, b.Metadata.Modules)
	assert.Len(t, b.Data, 2)
}

func TestNewBundle_PartialScope(t *testing.T) {
	state := State{
		"cards": []any{},
		"decks": []any{},
		"files": []any{},
	}

	b := NewBundle(state, []string{"cards", "unknown"}, time.Now())

	assert.Equal(t, ScopePartial, b.Metadata.Type)
	assert.Equal(t, []string{"cards"}, b.Metadata.Modules)
	assert.Len(t, b.Data, 1)
}

func TestBundle_JSONRoundTrip(t *testing.T) {
	state := State{"cards": []any{map[string]any{"id": "c1", "q": "question"}}}
	b := NewBundle(state, nil, time.Now())

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	parsed, err := ParseBundle(raw)
	require.NoError(t, err)
	assert.Equal(t, b.Data, parsed.Data)
	assert.Equal(t, b.Metadata.Modules, parsed.Metadata.Modules)
}
