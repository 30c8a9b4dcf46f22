package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/internal/embedded"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/errors"
)

func loadForms(t *testing.T) *catalogs.Store {
	t.Helper()
	lib, err := catalogs.Load(embedded.Catalog())
	require.NoError(t, err)
	return lib.Forms
}

func ids(records []catalogs.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestMatches(t *testing.T) {
	r := &catalogs.Record{
		ID:          "x",
		Title:       "Leave Chit",
		Description: "Time off between  voyages",
		Category:    catalogs.FormLeave,
	}
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"default", DefaultState(), true},
		{"category match", State{Category: catalogs.FormLeave}, true},
		{"category mismatch", State{Category: catalogs.FormMedical}, false},
		{"title case-insensitive", State{Category: catalogs.CategoryAll, Query: "lEAVE"}, true},
		{"description", State{Category: catalogs.CategoryAll, Query: "voyages"}, true},
		{"no match", State{Category: catalogs.CategoryAll, Query: "pension"}, false},
		{"category and text both required", State{Category: catalogs.FormMedical, Query: "leave"}, false},
		{"single space is literal", State{Category: catalogs.CategoryAll, Query: " "}, true},
		{"double space is literal", State{Category: catalogs.CategoryAll, Query: "  "}, true},
		{"triple space is literal", State{Category: catalogs.CategoryAll, Query: "   "}, false},
		{"not trimmed", State{Category: catalogs.CategoryAll, Query: " leave "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(r, tt.state))
		})
	}
}

func TestController_DefaultShowsEverythingInOrder(t *testing.T) {
	store := loadForms(t)
	c := NewController(store)

	assert.Equal(t, DefaultState(), c.State())
	assert.True(t, c.State().IsDefault())
	assert.Equal(t, store.All(), c.Visible())
	assert.Equal(t, Summary{Showing: 18, Total: 18}, c.Summary())
}

func TestController_MedicalCategory(t *testing.T) {
	c := NewController(loadForms(t))

	require.NoError(t, c.SetCategory(catalogs.FormMedical))
	assert.Len(t, c.Visible(), 3)
	assert.Equal(t, 3, c.CategoryCounts()[catalogs.FormMedical])
	for _, r := range c.Visible() {
		assert.Equal(t, catalogs.FormMedical, r.Category)
	}
}

func TestController_LeaveQuery(t *testing.T) {
	c := NewController(loadForms(t))

	c.SetQuery("leave")
	titles := make([]string, 0)
	for _, r := range c.Visible() {
		titles = append(titles, r.Title)
	}

	assert.Contains(t, titles, "Leave Chit")
	assert.Contains(t, titles, "Request to Donate Leave Form")
	assert.Contains(t, titles, "Application to Accept Donated Leave")
	assert.NotContains(t, titles, "719K - Coast Guard Physical")
	assert.Equal(t, catalogs.CategoryAll, c.State().Category)
}

func TestController_EmptyResultIsNotAnError(t *testing.T) {
	c := NewController(loadForms(t))

	require.NoError(t, c.SetCategory(catalogs.FormBenefits))
	c.SetQuery("xyz-no-match")

	assert.Empty(t, c.Visible())
	assert.NotNil(t, c.Visible())
	assert.Equal(t, Summary{Showing: 0, Total: 18, Empty: true}, c.Summary())
}

func TestController_SetCategoryIdempotent(t *testing.T) {
	c := NewController(loadForms(t))

	require.NoError(t, c.SetCategory(catalogs.FormTraining))
	once := c.Visible()
	require.NoError(t, c.SetCategory(catalogs.FormTraining))
	assert.Equal(t, once, c.Visible())
}

func TestController_UnknownCategoryLeavesStateUnchanged(t *testing.T) {
	c := NewController(loadForms(t))
	require.NoError(t, c.SetCategory(catalogs.FormLeave))
	c.SetQuery("chit")
	before := c.Visible()

	err := c.SetCategory("tanker")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownCategory(err))
	assert.Equal(t, State{Category: catalogs.FormLeave, Query: "chit"}, c.State())
	assert.Equal(t, before, c.Visible())
}

func TestController_ResetAndApply(t *testing.T) {
	store := loadForms(t)
	c := NewController(store)

	require.NoError(t, c.Apply(State{Category: catalogs.FormCoastGuard, Query: "719"}))
	assert.Equal(t, []string{"cg-719b", "cg-719s"}, ids(c.Visible()))

	c.Reset()
	assert.Equal(t, DefaultState(), c.State())
	assert.Equal(t, store.Len(), len(c.Visible()))

	require.NoError(t, c.Apply(State{Query: "pension"}))
	assert.Equal(t, catalogs.CategoryAll, c.State().Category)

	assert.Error(t, c.Apply(State{Category: "bogus"}))
	assert.Equal(t, State{Category: catalogs.CategoryAll, Query: "pension"}, c.State())
}

func TestController_CategorySoundness(t *testing.T) {
	store := loadForms(t)
	c := NewController(store)

	total := 0
	for _, cat := range store.Taxonomy().Categories() {
		require.NoError(t, c.SetCategory(cat))
		for _, r := range c.Visible() {
			assert.Equal(t, cat, r.Category)
		}
		total += len(c.Visible())
	}
	assert.Equal(t, store.Len(), total)
}

func TestController_TextSoundnessAndCompleteness(t *testing.T) {
	store := loadForms(t)
	c := NewController(store)

	queries := []string{"", "form", "CG", "719", "leave", "Pay", "a", "zzz", " "}
	categories := append([]catalogs.Category{catalogs.CategoryAll}, store.Taxonomy().Categories()...)

	for _, cat := range categories {
		require.NoError(t, c.SetCategory(cat))
		for _, q := range queries {
			c.SetQuery(q)
			got := map[string]bool{}
			for _, r := range c.Visible() {
				got[r.ID] = true
			}

			for _, r := range store.All() {
				inCategory := cat == catalogs.CategoryAll || r.Category == cat
				needle := strings.ToLower(q)
				inText := strings.Contains(strings.ToLower(r.Title), needle) ||
					strings.Contains(strings.ToLower(r.Description), needle)
				assert.Equal(t, inCategory && inText, got[r.ID], "category=%s query=%q record=%s", cat, q, r.ID)
			}
		}
	}
}

func TestController_PreservesStoreOrder(t *testing.T) {
	store := loadForms(t)
	c := NewController(store)
	c.SetQuery("form")

	last := -1
	for _, r := range c.Visible() {
		i := store.IndexOf(r.ID)
		assert.Greater(t, i, last)
		last = i
	}
}
