package catalog

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func names(items []CatalogItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.DisplayName)
	}
	return out
}

func TestFilterAndSortDefaultOrdering(t *testing.T) {
	items := []CatalogItem{
		{Kind: KindPackage, DisplayName: "Zeta"},
		{Kind: KindProduct, DisplayName: "Apel"},
		{Kind: KindProduct, DisplayName: "Beta"},
	}
	page := FilterAndSort(items, Query{})
	assert.Equal(t, []string{"Apel", "Beta", "Zeta"}, names(page.Items))
	assert.Equal(t, "Zeta", items[0].DisplayName, "input must not be reordered")
}

func TestFilterAndSortCollation(t *testing.T) {
	items := []CatalogItem{
		{Kind: KindProduct, DisplayName: "eksfoliasi"},
		{Kind: KindProduct, DisplayName: "Écran"},
		{Kind: KindProduct, DisplayName: "Day Cream"},
		{Kind: KindProduct, DisplayName: "anti aging"},
	}
	page := FilterAndSort(items, Query{})
	assert.Equal(t, []string{"anti aging", "Day Cream", "Écran", "eksfoliasi"}, names(page.Items))

	page = FilterAndSort(items, Query{Sort: SortNameDesc})
	assert.Equal(t, []string{"eksfoliasi", "Écran", "Day Cream", "anti aging"}, names(page.Items))
}

func TestFilterAndSortSearch(t *testing.T) {
	items := []CatalogItem{
		{Kind: KindProduct, DisplayName: "Acne Cream", RegulatoryCode: "NA123"},
		{Kind: KindProduct, DisplayName: "Vitamin Serum"},
	}
	page := FilterAndSort(items, Query{Search: "na123"})
	assert.Equal(t, []string{"Acne Cream"}, names(page.Items))

	items = append(items, CatalogItem{
		Kind:        KindPackage,
		DisplayName: "Paket Hemat",
		Categories:  []Category{{ID: 1, Name: "Brightening"}},
	})
	page = FilterAndSort(items, Query{Search: "  BRIGHT "})
	assert.Equal(t, []string{"Paket Hemat"}, names(page.Items))

	page = FilterAndSort(items, Query{Search: "serum"})
	assert.Equal(t, []string{"Vitamin Serum"}, names(page.Items))
}

func TestFilterAndSortCategoryKeepsStoreOrder(t *testing.T) {
	serum := []Category{{ID: 1, Name: "Serum"}}
	items := []CatalogItem{
		{Kind: KindPackage, DisplayName: "Zeta", Categories: serum},
		{Kind: KindProduct, DisplayName: "Toner", Categories: []Category{{ID: 2, Name: "Toner"}}},
		{Kind: KindProduct, DisplayName: "Apel", Categories: serum},
	}
	page := FilterAndSort(items, Query{Category: "serum"})
	assert.Equal(t, []string{"Zeta", "Apel"}, names(page.Items))

	page = FilterAndSort(items, Query{Category: "seru"})
	assert.Empty(t, page.Items)
}

func TestFilterAndSortByPrice(t *testing.T) {
	items := []CatalogItem{
		{DisplayName: "B", PriceTiers: PriceTiers{RoleUmum: 200}},
		{DisplayName: "none", PriceTiers: PriceTiers{RoleDirector: 1}},
		{DisplayName: "A", PriceTiers: PriceTiers{RoleUmum: 100}},
		{DisplayName: "C", PriceTiers: PriceTiers{RoleUmum: 300}},
	}
	page := FilterAndSort(items, Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"A", "B", "C", "none"}, names(page.Items))

	page = FilterAndSort(items, Query{Sort: SortPriceDesc})
	assert.Equal(t, []string{"C", "B", "A", "none"}, names(page.Items))

	page = FilterAndSort(items, Query{Sort: SortPriceAsc, Role: RoleDirector})
	assert.Equal(t, "none", page.Items[0].DisplayName)
}

func TestFilterAndSortNewest(t *testing.T) {
	now := time.Now()
	items := []CatalogItem{
		{DisplayName: "old", CreatedAt: now.Add(-48 * time.Hour)},
		{DisplayName: "new", CreatedAt: now},
		{DisplayName: "mid", CreatedAt: now.Add(-time.Hour)},
	}
	page := FilterAndSort(items, Query{Sort: SortNewest})
	assert.Equal(t, []string{"new", "mid", "old"}, names(page.Items))
}

func TestFilterAndSortPagination(t *testing.T) {
	var items []CatalogItem
	for _, n := range []string{"a", "b", "c", "d"} {
		items = append(items, CatalogItem{Kind: KindProduct, DisplayName: n})
	}

	p1 := FilterAndSort(items, Query{Page: 1, PageSize: 2})
	assert.Equal(t, []string{"a", "b"}, names(p1.Items))
	assert.True(t, p1.HasMore)
	assert.Equal(t, 4, p1.Total)

	// the result ends exactly on a page boundary, the heuristic still says more
	p2 := FilterAndSort(items, Query{Page: 2, PageSize: 2})
	assert.Equal(t, []string{"c", "d"}, names(p2.Items))
	assert.True(t, p2.HasMore)

	p3 := FilterAndSort(items, Query{Page: 3, PageSize: 2})
	assert.Empty(t, p3.Items)
	assert.False(t, p3.HasMore)

	p0 := FilterAndSort(items, Query{Page: 0, PageSize: 5})
	assert.Equal(t, 1, p0.Page)
	assert.False(t, p0.HasMore)

	all := FilterAndSort(items, Query{})
	assert.Len(t, all.Items, 4)
	assert.False(t, all.HasMore)
}

func TestFilterAndSortHugePage(t *testing.T) {
	items := []CatalogItem{{Kind: KindProduct, DisplayName: "a"}, {Kind: KindProduct, DisplayName: "b"}}

	for _, page := range []int{math.MaxInt64 / 2, math.MaxInt64} {
		var p Page
		assert.NotPanics(t, func() { p = FilterAndSort(items, Query{Page: page, PageSize: 4}) })
		assert.Empty(t, p.Items)
		assert.False(t, p.HasMore)
		assert.Equal(t, 2, p.Total)
	}

	p := FilterAndSort(items, Query{Page: 2, PageSize: math.MaxInt64})
	assert.Empty(t, p.Items)
	p = FilterAndSort(items, Query{Page: 1, PageSize: math.MaxInt64})
	assert.Len(t, p.Items, 2)
}

func TestSortKeyValid(t *testing.T) {
	assert.True(t, SortKey("").Valid())
	assert.True(t, SortPriceDesc.Valid())
	assert.False(t, SortKey("popular").Valid())
}
