package storefrontapi

import (
	"net/http"
	"strings"

	"github.com/drwskincare/storefront/internal/catalog"
	"github.com/drwskincare/storefront/internal/webserver"
	"github.com/drwskincare/storefront/internal/whatsapp"
	"github.com/labstack/echo/v4"
)

// listQuery is the query string accepted by the list endpoints.
type listQuery struct {
	Search   string `query:"search" validate:"max=100"`
	Category string `query:"category" validate:"max=100"`
	Sort     string `query:"sort" validate:"omitempty,oneof=name_asc name_desc price_asc price_desc newest"`
	Page     int    `query:"page" validate:"omitempty,min=1,max=100000"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Role     string `query:"role" validate:"omitempty,oneof=umum consultant supervisor manager director"`
}

// itemView adds the price selected for the caller's role.
type itemView struct {
	catalog.CatalogItem
	Role      catalog.PriceRole `json:"role"`
	Price     *float64          `json:"price"`
	PriceText string            `json:"price_text"`
}

type productDetailView struct {
	*catalog.ProductDetail
	Role      catalog.PriceRole `json:"role"`
	Price     *float64          `json:"price"`
	PriceText string            `json:"price_text"`
}

func registerCatalogRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:slug", getProduct)
	webserver.ApiGET("/packages", listPackages)
	webserver.ApiGET("/packages/:slug", getPackage)
	webserver.ApiGET("/catalog", listCatalog)
	webserver.ApiGET("/items/:slug", getItem)
	webserver.ApiGET("/items/:slug/whatsapp", getWhatsappLink)
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/slugs", listSlugs)
}

func roleOf(c echo.Context) catalog.PriceRole {
	if r := strings.TrimSpace(c.QueryParam("role")); r != "" {
		return catalog.ParseRole(r)
	}
	return catalog.ParseRole(GetAppContext(c).Config().Storefront.DefaultRole)
}

func selectPrice(item catalog.CatalogItem, role catalog.PriceRole) (*float64, string) {
	v, has := item.Price(role)
	text := whatsapp.FormatPrice(v, has)
	if !has {
		return nil, text
	}
	return &v, text
}

func viewOf(item catalog.CatalogItem, role catalog.PriceRole) itemView {
	price, text := selectPrice(item, role)
	return itemView{CatalogItem: item, Role: role, Price: price, PriceText: text}
}

func parseListQuery(c echo.Context) (catalog.Query, error) {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return catalog.Query{}, err
	}
	if err := c.Validate(&q); err != nil {
		return catalog.Query{}, err
	}
	limit := q.Limit
	if limit == 0 {
		limit = GetAppContext(c).Config().Storefront.PageSize
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	return catalog.Query{
		Search:   q.Search,
		Category: q.Category,
		Sort:     catalog.SortKey(q.Sort),
		Role:     roleOf(c),
		Page:     page,
		PageSize: limit,
	}, nil
}

type lister func(svc *catalog.Service, c echo.Context, q catalog.Query) (catalog.Page, error)

func listWith(c echo.Context, list lister) error {
	q, err := parseListQuery(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid query parameters", err.Error())
	}
	page, err := list(GetAppContext(c).Catalog(), c, q)
	if err != nil {
		return storeFail(c, err, "Not found")
	}
	views := make([]itemView, 0, len(page.Items))
	for _, it := range page.Items {
		views = append(views, viewOf(it, q.Role))
	}
	return paged(c, views, page)
}

func listProducts(c echo.Context) error {
	return listWith(c, func(svc *catalog.Service, c echo.Context, q catalog.Query) (catalog.Page, error) {
		return svc.ListProducts(c.Request().Context(), q)
	})
}

func listPackages(c echo.Context) error {
	return listWith(c, func(svc *catalog.Service, c echo.Context, q catalog.Query) (catalog.Page, error) {
		return svc.ListPackages(c.Request().Context(), q)
	})
}

func listCatalog(c echo.Context) error {
	return listWith(c, func(svc *catalog.Service, c echo.Context, q catalog.Query) (catalog.Page, error) {
		return svc.ListCatalog(c.Request().Context(), q)
	})
}

func getProduct(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return fail(c, http.StatusBadRequest, "INVALID_SLUG", "Slug is required", nil)
	}
	d, err := GetAppContext(c).Catalog().ProductDetail(c.Request().Context(), slug)
	if err != nil {
		return storeFail(c, err, "Product not found")
	}
	role := roleOf(c)
	price, text := selectPrice(d.CatalogItem, role)
	return ok(c, productDetailView{ProductDetail: d, Role: role, Price: price, PriceText: text})
}

func getPackage(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return fail(c, http.StatusBadRequest, "INVALID_SLUG", "Slug is required", nil)
	}
	item, err := GetAppContext(c).Catalog().PackageDetail(c.Request().Context(), slug)
	if err != nil {
		return storeFail(c, err, "Package not found")
	}
	return ok(c, viewOf(*item, roleOf(c)))
}

func getItem(c echo.Context) error {
	resolved, err := GetAppContext(c).Catalog().ItemBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return storeFail(c, err, "Item not found")
	}
	role := roleOf(c)
	var item interface{}
	if resolved.Kind == catalog.KindProduct {
		price, text := selectPrice(resolved.Product.CatalogItem, role)
		item = productDetailView{ProductDetail: resolved.Product, Role: role, Price: price, PriceText: text}
	} else {
		item = viewOf(*resolved.Package, role)
	}
	return ok(c, map[string]interface{}{"kind": resolved.Kind, "item": item})
}

func getWhatsappLink(c echo.Context) error {
	appCtx := GetAppContext(c)
	resolved, err := appCtx.Catalog().ItemBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return storeFail(c, err, "Item not found")
	}
	item := resolved.Base()
	role := roleOf(c)
	price, has := item.Price(role)
	site := appCtx.Config().Storefront
	req := whatsapp.LinkRequest{
		Name:     item.DisplayName,
		Kind:     string(item.Kind),
		Price:    price,
		HasPrice: has,
		BPOM:     item.RegulatoryCode,
		Slug:     item.Slug,
		Phone:    site.WhatsappNumber,
		SiteName: site.SiteName,
		SiteURL:  site.SiteURL,
	}
	return ok(c, map[string]interface{}{
		"url":     whatsapp.BuildLink(req),
		"message": whatsapp.Message(req),
	})
}

func listCategories(c echo.Context) error {
	cats, err := GetAppContext(c).Catalog().Categories(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "Categories not found")
	}
	return ok(c, cats)
}

func listSlugs(c echo.Context) error {
	idx, err := GetAppContext(c).Catalog().SlugIndex(c.Request().Context())
	if err != nil {
		return storeFail(c, err, "Slugs not found")
	}
	return ok(c, idx)
}
