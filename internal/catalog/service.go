package catalog

import (
	"context"
	"strings"

	"github.com/drwskincare/storefront/internal/domain"
	"github.com/drwskincare/storefront/internal/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service composes repository reads with the normalization pipeline.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolved is the result of a slug lookup across products and packages.
type Resolved struct {
	Kind    Kind           `json:"kind"`
	Product *ProductDetail `json:"-"`
	Package *CatalogItem   `json:"-"`
}

// Item returns whichever variant was resolved.
func (r Resolved) Item() interface{} {
	if r.Kind == KindProduct {
		return r.Product
	}
	return r.Package
}

// Base returns the catalog projection of the resolved item.
func (r Resolved) Base() CatalogItem {
	if r.Product != nil {
		return r.Product.CatalogItem
	}
	if r.Package != nil {
		return *r.Package
	}
	return CatalogItem{}
}

type SlugIndex struct {
	Products []string `json:"products"`
	Packages []string `json:"packages"`
}

type BrokenImage struct {
	URL     string `json:"url"`
	Product string `json:"product,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

type BrokenImageStats struct {
	TotalBroken      int           `json:"total_broken"`
	ProductsAffected int           `json:"products_affected"`
	BrokenImages     []BrokenImage `json:"broken_images"`
}

func (s *Service) productItems(ctx context.Context) ([]CatalogItem, error) {
	rows, err := s.repo.Products(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, Normalize(FromProduk(row)))
	}
	return items, nil
}

func (s *Service) packageItems(ctx context.Context) ([]CatalogItem, error) {
	rows, err := s.repo.Packages(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, Normalize(FromPaket(row)))
	}
	return items, nil
}

func (s *Service) ListProducts(ctx context.Context, q Query) (Page, error) {
	items, err := s.productItems(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "list products")
	}
	return FilterAndSort(items, q), nil
}

func (s *Service) ListPackages(ctx context.Context, q Query) (Page, error) {
	items, err := s.packageItems(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "list packages")
	}
	return FilterAndSort(items, q), nil
}

// ListCatalog lists products and packages together. A package whose slug is
// already taken by a product is left out.
func (s *Service) ListCatalog(ctx context.Context, q Query) (Page, error) {
	products, err := s.productItems(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "list catalog")
	}
	packages, err := s.packageItems(ctx)
	if err != nil {
		return Page{}, errors.Wrap(err, "list catalog")
	}

	taken := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.Slug != "" {
			taken[p.Slug] = struct{}{}
		}
	}
	items := products
	for _, p := range packages {
		if _, dup := taken[p.Slug]; dup && p.Slug != "" {
			zap.L().Warn("package slug shadowed by product",
				zap.String("slug", p.Slug), zap.String("id", p.ID))
			continue
		}
		items = append(items, p)
	}
	return FilterAndSort(items, q), nil
}

func (s *Service) ProductDetail(ctx context.Context, slug string) (*ProductDetail, error) {
	row, err := s.repo.ProductBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, errors.Wrapf(err, "product %q", slug)
	}
	d := NormalizeDetail(FromProduk(*row))
	return &d, nil
}

func (s *Service) PackageDetail(ctx context.Context, slug string) (*CatalogItem, error) {
	row, err := s.repo.PackageBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, errors.Wrapf(err, "package %q", slug)
	}
	item := Normalize(FromPaket(*row))
	return &item, nil
}

// ItemBySlug looks up products first and falls back to packages only when
// the product lookup reports not-found.
func (s *Service) ItemBySlug(ctx context.Context, slug string) (Resolved, error) {
	product, err := s.ProductDetail(ctx, slug)
	if err == nil {
		return Resolved{Kind: KindProduct, Product: product}, nil
	}
	if !store.IsNotFound(err) {
		return Resolved{}, err
	}
	pkg, err := s.PackageDetail(ctx, slug)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Kind: KindPackage, Package: pkg}, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	cats := make([]Category, 0, len(rows))
	for _, k := range rows {
		cats = append(cats, Category{ID: k.ID, Name: k.NamaKategori})
	}
	return cats, nil
}

// SlugIndex fetches product and package slugs concurrently. Each list is
// retried on its own.
func (s *Service) SlugIndex(ctx context.Context) (SlugIndex, error) {
	var idx SlugIndex
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slugs, err := s.repo.ProductSlugs(gctx)
		idx.Products = slugs
		return errors.Wrap(err, "product slugs")
	})
	g.Go(func() error {
		slugs, err := s.repo.PackageSlugs(gctx)
		idx.Packages = slugs
		return errors.Wrap(err, "package slugs")
	})
	if err := g.Wait(); err != nil {
		return SlugIndex{}, err
	}
	return idx, nil
}

func (s *Service) BrokenImageStats(ctx context.Context) (BrokenImageStats, error) {
	rows, err := s.repo.SuspectImages(ctx)
	if err != nil {
		return BrokenImageStats{}, errors.Wrap(err, "broken image stats")
	}
	return brokenImageStats(rows), nil
}

func brokenImageStats(rows []domain.FotoProduk) BrokenImageStats {
	stats := BrokenImageStats{BrokenImages: make([]BrokenImage, 0, len(rows))}
	affected := make(map[int64]struct{})
	for _, f := range rows {
		img := BrokenImage{URL: deref(f.UrlFoto)}
		if f.ProdukID != nil {
			affected[*f.ProdukID] = struct{}{}
		}
		if f.Produk != nil {
			img.Product = f.Produk.NamaProduk
			img.Slug = deref(f.Produk.Slug)
		}
		stats.BrokenImages = append(stats.BrokenImages, img)
	}
	stats.TotalBroken = len(rows)
	stats.ProductsAffected = len(affected)
	return stats
}
