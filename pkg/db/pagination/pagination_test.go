package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	p := Build(Params{Page: 2, Limit: 10}, 35)

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, int64(35), p.TotalCount)
	assert.Equal(t, 10, p.Limit)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestBuildLastPage(t *testing.T) {
	p := Build(Params{Page: 4, Limit: 10}, 35)

	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)
}

func TestBuildEmpty(t *testing.T) {
	p := Build(Params{Page: 1, Limit: 10}, 0)

	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestNormalizeClampsLimit(t *testing.T) {
	p := Params{Page: 0, Limit: 1000}.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 25}.Offset())
	assert.Equal(t, 50, Params{Page: 3, Limit: 25}.Offset())
}

func TestNewPageNeverNilItems(t *testing.T) {
	page := NewPage[string](nil, Params{Page: 1, Limit: 10}, 0)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
