package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortDefault   SortKey = ""
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortDefault, SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortNewest:
		return true
	}
	return false
}

// Query narrows and orders a list of catalog items. Page is 1-indexed;
// a non-positive PageSize returns every match in a single page.
type Query struct {
	Search   string
	Category string
	Sort     SortKey
	Role     PriceRole
	Page     int
	PageSize int
}

type Page struct {
	Items    []CatalogItem `json:"items"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
	HasMore  bool          `json:"has_more"`
}

// FilterAndSort applies search, category, ordering and pagination without
// touching the input slice.
func FilterAndSort(items []CatalogItem, q Query) Page {
	matched := make([]CatalogItem, 0, len(items))
	search := strings.TrimSpace(q.Search)
	category := strings.TrimSpace(q.Category)
	fold := cases.Fold()
	needle := fold.String(search)

	for _, it := range items {
		if search != "" && !matchesSearch(it, needle, fold) {
			continue
		}
		if category != "" && !hasCategory(it, category) {
			continue
		}
		matched = append(matched, it)
	}

	role := q.Role
	if role == "" {
		role = RoleUmum
	}
	switch {
	case q.Sort != SortDefault:
		sortBy(matched, q.Sort, role)
	case category == "":
		defaultOrder(matched)
	}

	return paginate(matched, q.Page, q.PageSize)
}

func matchesSearch(it CatalogItem, needle string, fold cases.Caser) bool {
	fields := []string{it.DisplayName, it.ShortDescription, it.RegulatoryCode}
	for _, c := range it.Categories {
		fields = append(fields, c.Name)
	}
	for _, f := range fields {
		if f != "" && strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

func hasCategory(it CatalogItem, name string) bool {
	for _, c := range it.Categories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func newCollator() *collate.Collator {
	return collate.New(language.Indonesian, collate.IgnoreCase, collate.IgnoreDiacritics)
}

// defaultOrder puts products before packages, each group sorted by name.
func defaultOrder(items []CatalogItem) {
	col := newCollator()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind == KindProduct
		}
		return col.CompareString(items[i].DisplayName, items[j].DisplayName) < 0
	})
}

func sortBy(items []CatalogItem, key SortKey, role PriceRole) {
	switch key {
	case SortNameAsc, SortNameDesc:
		col := newCollator()
		sort.SliceStable(items, func(i, j int) bool {
			c := col.CompareString(items[i].DisplayName, items[j].DisplayName)
			if key == SortNameDesc {
				return c > 0
			}
			return c < 0
		})
	case SortPriceAsc, SortPriceDesc:
		// items without a price for the role go last either way
		sort.SliceStable(items, func(i, j int) bool {
			pi, oki := items[i].Price(role)
			pj, okj := items[j].Price(role)
			if oki != okj {
				return oki
			}
			if !oki {
				return false
			}
			if key == SortPriceDesc {
				return pi > pj
			}
			return pi < pj
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}

func paginate(items []CatalogItem, page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		return Page{Items: items, Page: 1, PageSize: len(items), Total: len(items)}
	}
	// compare before multiplying so huge page numbers cannot overflow
	start := len(items)
	if page-1 <= len(items)/size {
		start = min((page-1)*size, len(items))
	}
	end := len(items)
	if size < end-start {
		end = start + size
	}
	window := items[start:end]
	return Page{
		Items:    window,
		Page:     page,
		PageSize: size,
		Total:    len(items),
		HasMore:  len(window) == size,
	}
}
