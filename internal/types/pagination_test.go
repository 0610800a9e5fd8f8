package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Page{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, Page{Page: 0, Limit: 20}.Offset())
	assert.Equal(t, MaxPageOffset, Page{Page: math.MaxInt, Limit: 20}.Offset())
	assert.Equal(t, MaxPageOffset, Page{Page: math.MaxInt, Limit: 1}.Offset())
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  Page
		total int
		pages int
	}{
		{"empty", Page{Page: 1, Limit: 20}, 0, 0},
		{"exact", Page{Page: 1, Limit: 10}, 30, 3},
		{"remainder", Page{Page: 2, Limit: 20}, 41, 3},
		{"single", Page{Page: 1, Limit: 100}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.total)
			assert.Equal(t, tt.pages, p.Pages)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.page.Limit, p.Limit)
		})
	}
}

func TestNewPaginatedResponse_NilDataIsEmptyArray(t *testing.T) {
	resp := NewPaginatedResponse[Category](nil, Page{Page: 5, Limit: 20}, 3)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":5,"limit":20,"total":3,"pages":1}}`, string(raw))
}
