package surface

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/filter"
)

// spotStore returns five dining spots followed by three safety spots.
func spotStore(t *testing.T) *catalogs.Store {
	t.Helper()
	var records []catalogs.Record
	for i := range 5 {
		records = append(records, catalogs.Record{
			ID:       fmt.Sprintf("dine-%d", i),
			Title:    fmt.Sprintf("Cafe %d", i),
			Category: catalogs.SpotDining,
		})
	}
	for i := range 3 {
		records = append(records, catalogs.Record{
			ID:          fmt.Sprintf("safe-%d", i),
			Title:       fmt.Sprintf("Clinic %d", i),
			Description: "open late",
			Category:    catalogs.SpotSafety,
		})
	}
	s, err := catalogs.NewStore("test spots", catalogs.SpotTaxonomy, records)
	require.NoError(t, err)
	return s
}

func viewIDs(v View) []string {
	out := make([]string, len(v.Records))
	for i, r := range v.Records {
		out[i] = r.ID
	}
	return out
}

func TestNewCarousel(t *testing.T) {
	_, err := NewCarousel(nil, 4)
	assert.True(t, errors.IsValidationError(err))

	_, err = NewCarousel(spotStore(t), 0)
	assert.True(t, errors.IsValidationError(err))

	c, err := NewCarousel(spotStore(t), 4)
	require.NoError(t, err)
	v := c.View()
	assert.Equal(t, []string{"dine-0", "dine-1", "dine-2", "dine-3"}, viewIDs(v))
	assert.Equal(t, 2, v.PageCount)
	assert.Equal(t, filter.DefaultState(), v.State)
	assert.Equal(t, filter.Summary{Showing: 8, Total: 8}, v.Summary)
}

func TestCarousel_FiveRecordsClampAtMaxOffset(t *testing.T) {
	c, err := NewCarousel(spotStore(t), 4)
	require.NoError(t, err)
	require.NoError(t, c.SelectCategory(catalogs.SpotDining))

	v := c.View()
	assert.Equal(t, []string{"dine-0", "dine-1", "dine-2", "dine-3"}, viewIDs(v))

	c.Next()
	v = c.View()
	assert.Equal(t, 1, v.Offset)
	assert.Equal(t, []string{"dine-1", "dine-2", "dine-3", "dine-4"}, viewIDs(v))
	assert.False(t, v.HasNext)

	c.Next()
	assert.Equal(t, 1, c.View().Offset)

	c.Previous()
	c.Previous()
	assert.Equal(t, 0, c.View().Offset)
}

func TestCarousel_FilterChangesResetOffset(t *testing.T) {
	c, err := NewCarousel(spotStore(t), 2)
	require.NoError(t, err)

	c.Next()
	c.Next()
	require.Equal(t, 4, c.View().Offset)

	require.NoError(t, c.SetQuery("clinic"))
	v := c.View()
	assert.Equal(t, 0, v.Offset)
	assert.Equal(t, []string{"safe-0", "safe-1"}, viewIDs(v))

	c.Next()
	require.NoError(t, c.SelectCategory(catalogs.SpotSafety))
	assert.Equal(t, 0, c.View().Offset)

	c.Next()
	require.NoError(t, c.Reset())
	assert.Equal(t, 0, c.View().Offset)
	assert.Equal(t, filter.DefaultState(), c.View().State)
}

func TestCarousel_EmptyState(t *testing.T) {
	c, err := NewCarousel(spotStore(t), 4)
	require.NoError(t, err)

	require.NoError(t, c.SelectCategory(catalogs.SpotLodging))
	v := c.View()
	assert.Empty(t, v.Records)
	assert.True(t, v.Summary.Empty)
	assert.Equal(t, 1, v.PageCount)
	assert.False(t, v.HasNext)
	assert.False(t, v.HasPrevious)
}

func TestCarousel_UnknownCategory(t *testing.T) {
	c, err := NewCarousel(spotStore(t), 4)
	require.NoError(t, err)
	c.Next()

	err = c.SelectCategory(catalogs.FormLeave)
	assert.True(t, errors.IsUnknownCategory(err))
	assert.Equal(t, 4, c.View().Offset)
}

func TestCarousel_Focus(t *testing.T) {
	c, err := NewCarousel(spotStore(t), 2)
	require.NoError(t, err)
	require.NoError(t, c.SetQuery("clinic"))

	require.NoError(t, c.Focus("dine-3"))
	v := c.View()
	assert.Equal(t, filter.State{Category: catalogs.SpotDining}, v.State)
	assert.Equal(t, 2, v.Offset)
	assert.Contains(t, viewIDs(v), "dine-3")
	assert.Equal(t, "dine-3", v.Focused)

	require.NoError(t, c.Focus("dine-4"))
	v = c.View()
	assert.Equal(t, 3, v.Offset)
	assert.Contains(t, viewIDs(v), "dine-4")

	c.Previous()
	assert.Equal(t, "dine-4", c.View().Focused)
	require.NoError(t, c.SetQuery(""))
	assert.Empty(t, c.View().Focused)

	err = c.Focus("missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestCarousel_Restore(t *testing.T) {
	c, err := NewCarousel(spotStore(t), 4)
	require.NoError(t, err)

	require.NoError(t, c.Restore(filter.State{Category: catalogs.SpotDining}, 1))
	assert.Equal(t, []string{"dine-1", "dine-2", "dine-3", "dine-4"}, viewIDs(c.View()))

	require.NoError(t, c.Restore(filter.State{}, 99))
	assert.Equal(t, 4, c.View().Offset)

	err = c.Restore(filter.State{}, -1)
	assert.True(t, errors.IsValidationError(err))

	err = c.Restore(filter.State{Category: "nope"}, 0)
	assert.True(t, errors.IsUnknownCategory(err))
}

func TestTabs(t *testing.T) {
	store := spotStore(t)
	tabs := Tabs(store, catalogs.SpotSafety)

	require.Len(t, tabs, 7)
	assert.Equal(t, catalogs.CategoryAll, tabs[0].Category)
	assert.Equal(t, 8, tabs[0].Count)
	assert.False(t, tabs[0].Active)

	byCat := map[catalogs.Category]Tab{}
	for _, tab := range tabs {
		byCat[tab.Category] = tab
	}
	assert.Equal(t, 5, byCat[catalogs.SpotDining].Count)
	assert.Equal(t, 0, byCat[catalogs.SpotLodging].Count)
	assert.True(t, byCat[catalogs.SpotSafety].Active)
	assert.Equal(t, "Safety", byCat[catalogs.SpotSafety].Label)
	assert.Equal(t, "safety", byCat[catalogs.SpotSafety].Style.Key)
}
