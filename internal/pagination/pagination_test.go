package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		requested string
		wantPage  int
		wantLen   int
		wantFirst int
		wantNext  bool
		wantPrev  bool
	}{
		{"first page by default", 23, 10, "", 1, 10, 1, true, false},
		{"non-numeric falls back to first page", 23, 10, "abc", 1, 10, 1, true, false},
		{"zero falls back to first page", 23, 10, "0", 1, 10, 1, true, false},
		{"negative falls back to first page", 23, 10, "-2", 1, 10, 1, true, false},
		{"middle page", 23, 10, "2", 2, 10, 11, true, true},
		{"last short page", 23, 10, "3", 3, 3, 21, false, true},
		{"past the end clamps to last page", 23, 10, "99", 3, 3, 21, false, true},
		{"exact multiple has no trailing page", 20, 10, "4", 2, 10, 11, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(seq(tt.total), tt.pageSize, tt.requested)
			assert.Equal(t, tt.wantPage, page.Number)
			assert.Len(t, page.Items, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page.Items[0])
			}
			assert.Equal(t, tt.total, page.TotalItems)
			assert.Equal(t, tt.wantNext, page.HasNext)
			assert.Equal(t, tt.wantPrev, page.HasPrev)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, 10, "5")
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPaginateClampedLastPageContents(t *testing.T) {
	page := Paginate(seq(23), 10, "99")
	assert.Equal(t, []int{21, 22, 23}, page.Items)
	assert.Equal(t, 3, page.TotalPages)
}
