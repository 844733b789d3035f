package catalog

import (
	"strings"
	"time"

	"github.com/drwskincare/storefront/internal/domain"
)

// Record is the closed set of raw shapes the normalizer accepts.
type Record interface {
	RecordKind() Kind
	sealed()
}

type PriceColumns struct {
	Director   *float64
	Manager    *float64
	Supervisor *float64
	Consultant *float64
	Umum       *float64
}

type Photo struct {
	URL   *string
	Alt   *string
	Order *int
}

// ProductCopy is the optional detail row of a product.
type ProductCopy struct {
	Usage       *string
	Composition *string
	Directions  *string
	Netto       *string
	BPOM        *string
}

type ProductRecord struct {
	ID                int64
	Name              string
	Slug              *string
	ShortDescription  *string
	BPOM              *string
	Prices            PriceColumns
	MainImage         *string
	Photos            []Photo
	Categories        []Category
	Copy              *ProductCopy
	ActiveIngredients []ActiveIngredient
	CreatedAt         time.Time
}

func (ProductRecord) RecordKind() Kind { return KindProduct }
func (ProductRecord) sealed()          {}

type PackageRecord struct {
	ID          int64
	Name        string
	Slug        *string
	Description *string
	Prices      PriceColumns
	MainImage   *string
	Photos      []Photo
	Categories  []Category
	Contents    []BundleLine
	CreatedAt   time.Time
}

func (PackageRecord) RecordKind() Kind { return KindPackage }
func (PackageRecord) sealed()          {}

// FromProduk adapts a store row with its preloaded relations.
func FromProduk(p domain.Produk) ProductRecord {
	rec := ProductRecord{
		ID:               p.IDProduk,
		Name:             p.NamaProduk,
		Slug:             p.Slug,
		ShortDescription: p.DeskripsiSingkat,
		BPOM:             p.Bpom,
		Prices: PriceColumns{
			Director:   p.HargaDirector,
			Manager:    p.HargaManager,
			Supervisor: p.HargaSupervisor,
			Consultant: p.HargaConsultant,
			Umum:       p.HargaUmum,
		},
		MainImage: p.FotoUtama,
		Photos:    photosFrom(p.FotoProduk),
		CreatedAt: p.CreatedAt,
	}
	for _, pk := range p.ProdukKategori {
		rec.Categories = append(rec.Categories, Category{ID: pk.Kategori.ID, Name: pk.Kategori.NamaKategori})
	}
	if d := p.ProdukDetail; d != nil {
		rec.Copy = &ProductCopy{
			Usage:       d.Kegunaan,
			Composition: d.Komposisi,
			Directions:  d.CaraPakai,
			Netto:       d.Netto,
			BPOM:        d.NoBpom,
		}
	}
	for _, pba := range p.ProdukBahanAktif {
		rec.ActiveIngredients = append(rec.ActiveIngredients, ActiveIngredient{
			Name:     pba.BahanAktif.NamaBahan,
			Function: deref(pba.Fungsi),
		})
	}
	return rec
}

// FromPaket adapts a package row with its preloaded relations.
func FromPaket(p domain.PaketProduk) PackageRecord {
	rec := PackageRecord{
		ID:          p.IDPaket,
		Name:        p.NamaPaket,
		Slug:        p.Slug,
		Description: p.Deskripsi,
		Prices: PriceColumns{
			Director:   p.HargaDirector,
			Manager:    p.HargaManager,
			Supervisor: p.HargaSupervisor,
			Consultant: p.HargaConsultant,
			Umum:       p.HargaUmum,
		},
		MainImage: p.FotoUtama,
		Photos:    photosFrom(p.FotoProduk),
		CreatedAt: p.CreatedAt,
	}
	for _, pk := range p.PaketKategori {
		rec.Categories = append(rec.Categories, Category{ID: pk.Kategori.ID, Name: pk.Kategori.NamaKategori})
	}
	for _, isi := range p.PaketIsi {
		rec.Contents = append(rec.Contents, BundleLine{
			RefID:    formatID(isi.ProdukID),
			Name:     isi.Produk.NamaProduk,
			Quantity: isi.Jumlah,
		})
	}
	return rec
}

func photosFrom(rows []domain.FotoProduk) []Photo {
	if len(rows) == 0 {
		return nil
	}
	photos := make([]Photo, 0, len(rows))
	for _, f := range rows {
		photos = append(photos, Photo{URL: f.UrlFoto, Alt: f.AltText, Order: f.Urutan})
	}
	return photos
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
