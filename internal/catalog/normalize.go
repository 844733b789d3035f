package catalog

import (
	"strconv"
	"strings"
)

const PackageIDPrefix = "pkg_"

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func packageID(id int64) string {
	return PackageIDPrefix + formatID(id)
}

// Normalize projects a raw record onto the display model. Absent source
// values stay absent.
func Normalize(rec Record) CatalogItem {
	switch r := rec.(type) {
	case ProductRecord:
		return normalizeProduct(r)
	case *ProductRecord:
		return normalizeProduct(*r)
	case PackageRecord:
		return normalizePackage(r)
	case *PackageRecord:
		return normalizePackage(*r)
	}
	return CatalogItem{}
}

func normalizeProduct(r ProductRecord) CatalogItem {
	item := CatalogItem{
		ID:               formatID(r.ID),
		Kind:             KindProduct,
		Slug:             deref(r.Slug),
		DisplayName:      strings.TrimSpace(r.Name),
		ShortDescription: deref(r.ShortDescription),
		PriceTiers:       tiersFrom(r.Prices),
		CreatedAt:        r.CreatedAt,
		BundleContents:   []BundleLine{},
	}
	item.RegulatoryCode = deref(r.BPOM)
	if item.RegulatoryCode == "" && r.Copy != nil {
		item.RegulatoryCode = deref(r.Copy.BPOM)
	}
	item.PrimaryImage, item.Gallery = images(r.MainImage, r.Photos)
	item.Categories, item.PrimaryCategory = categories(r.Categories)
	return item
}

func normalizePackage(r PackageRecord) CatalogItem {
	item := CatalogItem{
		ID:               packageID(r.ID),
		Kind:             KindPackage,
		Slug:             deref(r.Slug),
		DisplayName:      strings.TrimSpace(r.Name),
		ShortDescription: deref(r.Description),
		PriceTiers:       tiersFrom(r.Prices),
		CreatedAt:        r.CreatedAt,
		BundleContents:   make([]BundleLine, 0, len(r.Contents)),
	}
	item.BundleContents = append(item.BundleContents, r.Contents...)
	item.PrimaryImage, item.Gallery = images(r.MainImage, r.Photos)
	item.Categories, item.PrimaryCategory = categories(r.Categories)
	return item
}

// NormalizeDetail adds the long-form product copy to the catalog item.
func NormalizeDetail(r ProductRecord) ProductDetail {
	d := ProductDetail{
		CatalogItem:       normalizeProduct(r),
		ActiveIngredients: make([]ActiveIngredient, 0, len(r.ActiveIngredients)),
	}
	if c := r.Copy; c != nil {
		d.Usage = deref(c.Usage)
		d.Composition = deref(c.Composition)
		d.Directions = deref(c.Directions)
		d.Netto = deref(c.Netto)
	}
	for _, ai := range r.ActiveIngredients {
		if strings.TrimSpace(ai.Name) == "" {
			continue
		}
		d.ActiveIngredients = append(d.ActiveIngredients, ai)
	}
	return d
}

func tiersFrom(p PriceColumns) PriceTiers {
	tiers := PriceTiers{}
	set := func(role PriceRole, v *float64) {
		if v != nil {
			tiers[role] = *v
		}
	}
	set(RoleDirector, p.Director)
	set(RoleManager, p.Manager)
	set(RoleSupervisor, p.Supervisor)
	set(RoleConsultant, p.Consultant)
	set(RoleUmum, p.Umum)
	return tiers
}

// images returns the primary image and the gallery. The main image wins over
// an identical gallery row; without a main image the first gallery entry
// becomes primary.
func images(main *string, photos []Photo) (string, []string) {
	primary := SanitizeImageURL(main)
	gallery := ValidImages(photos, primary)
	if primary == "" && len(gallery) > 0 {
		primary = gallery[0]
	}
	return primary, gallery
}

func categories(in []Category) ([]Category, *Category) {
	out := make([]Category, 0, len(in))
	for _, c := range in {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, Category{ID: c.ID, Name: strings.TrimSpace(c.Name)})
	}
	if len(out) == 0 {
		return out, nil
	}
	first := out[0]
	return out, &first
}
