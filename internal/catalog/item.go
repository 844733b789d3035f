package catalog

import "time"

// Kind tells an atomic product apart from a bundle.
type Kind string

const (
	KindProduct Kind = "product"
	KindPackage Kind = "package"
)

// PriceRole selects one of the tier prices.
type PriceRole string

const (
	RoleUmum       PriceRole = "umum"
	RoleConsultant PriceRole = "consultant"
	RoleSupervisor PriceRole = "supervisor"
	RoleManager    PriceRole = "manager"
	RoleDirector   PriceRole = "director"
)

var PriceRoles = []PriceRole{RoleUmum, RoleConsultant, RoleSupervisor, RoleManager, RoleDirector}

// ParseRole falls back to umum for anything unknown.
func ParseRole(s string) PriceRole {
	for _, r := range PriceRoles {
		if string(r) == s {
			return r
		}
	}
	return RoleUmum
}

// PriceTiers holds only the tiers that have a price. A missing key means
// "price on request".
type PriceTiers map[PriceRole]float64

func (p PriceTiers) Price(role PriceRole) (float64, bool) {
	v, ok := p[role]
	return v, ok
}

// Category ID is zero, and omitted, when the source named the category only.
type Category struct {
	ID   int64  `json:"id,string,omitempty"`
	Name string `json:"name"`
}

type BundleLine struct {
	RefID    string `json:"ref_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CatalogItem is the read-time display projection of a product or package.
// It is built fresh for every request and never written back.
type CatalogItem struct {
	ID               string       `json:"id"`
	Kind             Kind         `json:"kind"`
	Slug             string       `json:"slug"`
	DisplayName      string       `json:"display_name"`
	ShortDescription string       `json:"short_description"`
	PriceTiers       PriceTiers   `json:"price_tiers"`
	PrimaryImage     string       `json:"primary_image,omitempty"`
	Gallery          []string     `json:"gallery"`
	Categories       []Category   `json:"categories"`
	PrimaryCategory  *Category    `json:"primary_category,omitempty"`
	RegulatoryCode   string       `json:"regulatory_code,omitempty"`
	BundleContents   []BundleLine `json:"bundle_contents"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Price returns the amount for the role, or false when it is on request.
func (c CatalogItem) Price(role PriceRole) (float64, bool) {
	return c.PriceTiers.Price(role)
}

type ActiveIngredient struct {
	Name     string `json:"nama_bahan"`
	Function string `json:"fungsi,omitempty"`
}

// ProductDetail extends the catalog item with the long-form copy shown on a
// product page.
type ProductDetail struct {
	CatalogItem
	Usage             string             `json:"kegunaan,omitempty"`
	Composition       string             `json:"komposisi,omitempty"`
	Directions        string             `json:"cara_pakai,omitempty"`
	Netto             string             `json:"netto,omitempty"`
	ActiveIngredients []ActiveIngredient `json:"bahan_aktif"`
}
