package pagination

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		wantItems  []int
		wantPage   int
		wantPages  int
	}{
		{"first page", 25, 1, 10, seq(10), 1, 3},
		{"last partial page", 25, 3, 10, []int{21, 22, 23, 24, 25}, 3, 3},
		{"page beyond end", 10, 100, 10, []int{}, 100, 1},
		{"clamps page and limit", 5, 0, -3, []int{1}, 1, 5},
		{"empty set", 0, 1, 10, []int{}, 1, 0},
		{"exact multiple", 20, 2, 10, seq(20)[10:], 2, 2},
		{"largest page number", 10, math.MaxInt, 10, []int{}, math.MaxInt, 1},
		{"limit above ceiling", 250, 1, math.MaxInt, seq(MaxLimit), 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(seq(tt.total), tt.page, tt.limit)
			assert.Equal(t, tt.wantItems, got.Items)
			assert.Equal(t, tt.total, got.TotalCount)
			assert.Equal(t, tt.wantPage, got.CurrentPage)
			assert.Equal(t, tt.wantPages, got.TotalPages)
		})
	}
}

func TestPaginateProperties(t *testing.T) {
	for total := 0; total <= 31; total++ {
		for limit := 1; limit <= 12; limit++ {
			wantPages := 0
			if total > 0 {
				wantPages = (total + limit - 1) / limit
			}
			for page := 1; page <= wantPages+2; page++ {
				got := Paginate(seq(total), page, limit)
				assert.LessOrEqual(t, len(got.Items), limit)
				assert.Equal(t, wantPages, got.TotalPages)
				if page > wantPages {
					assert.Empty(t, got.Items)
					assert.NotNil(t, got.Items)
				}
			}
		}
	}
}

func TestPaginateDoesNotReorderOrAlias(t *testing.T) {
	items := []string{"c", "a", "b"}
	got := Paginate(items, 1, 2)
	assert.Equal(t, []string{"c", "a"}, got.Items)

	got.Items[0] = "z"
	assert.Equal(t, "c", items[0])
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 10}},
		{"page=3&limit=5", Params{Page: 3, Limit: 5}},
		{"page=0&limit=0", Params{Page: 1, Limit: 1}},
		{"page=-2", Params{Page: 1, Limit: 10}},
		{"page=abc&limit=xyz", Params{Page: 1, Limit: 10}},
		{"limit=101", Params{Page: 1, Limit: MaxLimit}},
		{"limit=9223372036854775807", Params{Page: 1, Limit: MaxLimit}},
		{"page=9223372036854775807", Params{Page: math.MaxInt, Limit: 10}},
		{"limit=99999999999999999999", Params{Page: 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseParams(q, 10))
		})
	}

	assert.Equal(t, Params{Page: 1, Limit: DefaultLimit}, ParseParams(url.Values{}, 0))
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
}

func TestOffsetSaturates(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{"first page", Params{Page: 1, Limit: 10}, 0},
		{"ordinary page", Params{Page: 4, Limit: 25}, 75},
		{"largest page", Params{Page: math.MaxInt, Limit: 10}, math.MaxInt},
		{"largest page, limit 1", Params{Page: math.MaxInt, Limit: 1}, math.MaxInt - 1},
		{"just past the boundary", Params{Page: math.MaxInt/MaxLimit + 2, Limit: MaxLimit}, math.MaxInt},
		{"unnormalized limit", Params{Page: 2, Limit: math.MaxInt}, MaxLimit},
		{"zero value", Params{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Offset()
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestFromWindowAndMap(t *testing.T) {
	p := FromWindow([]int{11, 12}, 12, 2, 10)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)

	empty := FromWindow[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Items)

	doubled := Map(p, func(i int) int { return i * 2 })
	assert.Equal(t, []int{22, 24}, doubled.Items)
	assert.Equal(t, p.TotalCount, doubled.TotalCount)
}
