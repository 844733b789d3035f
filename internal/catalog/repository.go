package catalog

import (
	"context"

	"github.com/drwskincare/storefront/internal/domain"
	"github.com/drwskincare/storefront/internal/store"
	"gorm.io/gorm"
)

// Repository reads catalog rows. Every method runs through the store's retry
// wrapper, so errors are always *store.Error.
type Repository interface {
	// Products returns all products with categories and photos, newest first
	Products(ctx context.Context) ([]domain.Produk, error)

	// Packages returns all packages with categories, contents and photos
	Packages(ctx context.Context) ([]domain.PaketProduk, error)

	// ProductBySlug returns one product with its detail row and ingredients
	ProductBySlug(ctx context.Context, slug string) (*domain.Produk, error)

	// PackageBySlug returns one package with its contents
	PackageBySlug(ctx context.Context, slug string) (*domain.PaketProduk, error)

	Categories(ctx context.Context) ([]domain.Kategori, error)

	ProductSlugs(ctx context.Context) ([]string, error)
	PackageSlugs(ctx context.Context) ([]string, error)

	// SuspectImages returns photo rows with an empty or "null" URL, or
	// flagged as broken.
	SuspectImages(ctx context.Context) ([]domain.FotoProduk, error)
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	store *store.Store
}

func NewGormRepository(s *store.Store) *GormRepository {
	return &GormRepository{store: s}
}

const BrokenImageMarker = "BROKEN_IMAGE"

func orderPhotos(db *gorm.DB) *gorm.DB {
	return db.Order("urutan ASC").Order("id ASC")
}

func orderContents(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *GormRepository) Products(ctx context.Context) ([]domain.Produk, error) {
	return store.Execute(ctx, r.store, "products.list", func(tx *gorm.DB) ([]domain.Produk, error) {
		var rows []domain.Produk
		err := tx.
			Preload("ProdukKategori.Kategori").
			Preload("FotoProduk", orderPhotos).
			Order("created_at DESC").
			Find(&rows).Error
		return rows, err
	})
}

func (r *GormRepository) Packages(ctx context.Context) ([]domain.PaketProduk, error) {
	return store.Execute(ctx, r.store, "packages.list", func(tx *gorm.DB) ([]domain.PaketProduk, error) {
		var rows []domain.PaketProduk
		err := tx.
			Preload("PaketKategori.Kategori").
			Preload("PaketIsi", orderContents).
			Preload("PaketIsi.Produk").
			Preload("FotoProduk", orderPhotos).
			Order("created_at DESC").
			Find(&rows).Error
		return rows, err
	})
}

func (r *GormRepository) ProductBySlug(ctx context.Context, slug string) (*domain.Produk, error) {
	return store.Execute(ctx, r.store, "products.by_slug", func(tx *gorm.DB) (*domain.Produk, error) {
		var row domain.Produk
		err := tx.
			Preload("ProdukKategori.Kategori").
			Preload("ProdukDetail").
			Preload("ProdukBahanAktif.BahanAktif").
			Preload("FotoProduk", orderPhotos).
			Where("slug = ?", slug).
			First(&row).Error
		if err != nil {
			return nil, err
		}
		return &row, nil
	})
}

func (r *GormRepository) PackageBySlug(ctx context.Context, slug string) (*domain.PaketProduk, error) {
	return store.Execute(ctx, r.store, "packages.by_slug", func(tx *gorm.DB) (*domain.PaketProduk, error) {
		var row domain.PaketProduk
		err := tx.
			Preload("PaketKategori.Kategori").
			Preload("PaketIsi", orderContents).
			Preload("PaketIsi.Produk").
			Preload("FotoProduk", orderPhotos).
			Where("slug = ?", slug).
			First(&row).Error
		if err != nil {
			return nil, err
		}
		return &row, nil
	})
}

func (r *GormRepository) Categories(ctx context.Context) ([]domain.Kategori, error) {
	return store.Execute(ctx, r.store, "categories.list", func(tx *gorm.DB) ([]domain.Kategori, error) {
		var rows []domain.Kategori
		err := tx.Order("nama_kategori ASC").Find(&rows).Error
		return rows, err
	})
}

func (r *GormRepository) ProductSlugs(ctx context.Context) ([]string, error) {
	return store.Execute(ctx, r.store, "products.slugs", func(tx *gorm.DB) ([]string, error) {
		return pluckSlugs(tx.Model(&domain.Produk{}))
	})
}

func (r *GormRepository) PackageSlugs(ctx context.Context) ([]string, error) {
	return store.Execute(ctx, r.store, "packages.slugs", func(tx *gorm.DB) ([]string, error) {
		return pluckSlugs(tx.Model(&domain.PaketProduk{}))
	})
}

func pluckSlugs(tx *gorm.DB) ([]string, error) {
	slugs := make([]string, 0)
	err := tx.Where("slug IS NOT NULL AND slug <> ''").Order("slug ASC").Pluck("slug", &slugs).Error
	return slugs, err
}

func (r *GormRepository) SuspectImages(ctx context.Context) ([]domain.FotoProduk, error) {
	return store.Execute(ctx, r.store, "images.suspect", func(tx *gorm.DB) ([]domain.FotoProduk, error) {
		var rows []domain.FotoProduk
		err := tx.
			Preload("Produk").
			Where("url_foto LIKE ? OR url_foto = ? OR alt_text LIKE ?", "%null%", "", "%"+BrokenImageMarker+"%").
			Order("id ASC").
			Find(&rows).Error
		return rows, err
	})
}
