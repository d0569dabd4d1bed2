package admin_test

import (
	"testing"

	"github.com/novacoders/webfront/admin"
	"github.com/stretchr/testify/assert"
)

func TestFiltersResetPage(t *testing.T) {
	f := admin.NewFilters().WithPage(4)

	t.Run("status change starts over", func(t *testing.T) {
		got := f.WithStatus("pending")
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, "pending", got.Status)
	})

	t.Run("search change starts over", func(t *testing.T) {
		got := f.WithSearch("ada")
		assert.Equal(t, 1, got.Page)
	})

	t.Run("category and priority changes start over", func(t *testing.T) {
		assert.Equal(t, 1, f.WithCategory("support").Page)
		assert.Equal(t, 1, f.WithPriority("high").Page)
	})

	t.Run("page change keeps the filters", func(t *testing.T) {
		got := admin.NewFilters().WithStatus("pending").WithSearch("ada").WithPage(3)
		assert.Equal(t, 3, got.Page)
		assert.Equal(t, "pending", got.Status)
		assert.Equal(t, "ada", got.Search)
	})

	t.Run("page is clamped to one", func(t *testing.T) {
		assert.Equal(t, 1, admin.NewFilters().WithPage(0).Page)
		assert.Equal(t, 1, admin.NewFilters().WithPage(-3).Page)
	})
}

func TestFiltersQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := admin.NewFilters().Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Empty(t, q.Get("status"))
	})

	t.Run("all sentinel is omitted", func(t *testing.T) {
		q := admin.NewFilters().WithStatus("all").WithCategory("all").Query()
		_, hasStatus := q["status"]
		_, hasCategory := q["category"]
		assert.False(t, hasStatus)
		assert.False(t, hasCategory)
	})

	t.Run("set filters are encoded", func(t *testing.T) {
		q := admin.NewFilters().
			WithStatus("pending").
			WithSearch("ada").
			WithPage(2).
			WithLimit(25).
			Query()

		assert.Equal(t, "pending", q.Get("status"))
		assert.Equal(t, "ada", q.Get("search"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "25", q.Get("limit"))
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		f := admin.Filters{Page: 2}
		q := f.Query()
		assert.Equal(t, "10", q.Get("limit"))
	})
}

func TestPagination(t *testing.T) {
	t.Run("navigation bounds", func(t *testing.T) {
		p := admin.Pagination{Current: 1, Pages: 3}
		assert.False(t, p.HasPrev())
		assert.True(t, p.HasNext())

		p = admin.Pagination{Current: 3, Pages: 3}
		assert.True(t, p.HasPrev())
		assert.False(t, p.HasNext())

		p = admin.Pagination{Current: 1, Pages: 1}
		assert.False(t, p.HasPrev())
		assert.False(t, p.HasNext())
	})

	t.Run("total count prefers totalRecords", func(t *testing.T) {
		assert.Equal(t, 42, admin.Pagination{TotalRecords: 42, Total: 7}.TotalCount())
		assert.Equal(t, 7, admin.Pagination{Total: 7}.TotalCount())
		assert.Zero(t, admin.Pagination{}.TotalCount())
	})
}
