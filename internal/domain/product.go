package domain

import "time"

// Produk is a single sellable skincare item.
type Produk struct {
	IDProduk         int64     `gorm:"column:id_produk;primaryKey;autoIncrement" json:"id_produk,string"`
	NamaProduk       string    `gorm:"column:nama_produk;index" json:"nama_produk"`
	Slug             *string   `gorm:"column:slug;uniqueIndex;size:255" json:"slug"`
	Bpom             *string   `gorm:"column:bpom;size:64" json:"bpom"`
	HargaDirector    *float64  `gorm:"column:harga_director" json:"harga_director"`
	HargaManager     *float64  `gorm:"column:harga_manager" json:"harga_manager"`
	HargaSupervisor  *float64  `gorm:"column:harga_supervisor" json:"harga_supervisor"`
	HargaConsultant  *float64  `gorm:"column:harga_consultant" json:"harga_consultant"`
	HargaUmum        *float64  `gorm:"column:harga_umum" json:"harga_umum"`
	FotoUtama        *string   `gorm:"column:foto_utama;size:1024" json:"foto_utama"`
	DeskripsiSingkat *string   `gorm:"column:deskripsi_singkat" json:"deskripsi_singkat"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updated_at"`

	ProdukKategori   []ProdukKategori   `gorm:"foreignKey:ProdukID;references:IDProduk" json:"produk_kategori,omitempty"`
	ProdukDetail     *ProdukDetail      `gorm:"foreignKey:ProdukID;references:IDProduk" json:"produk_detail,omitempty"`
	ProdukBahanAktif []ProdukBahanAktif `gorm:"foreignKey:ProdukID;references:IDProduk" json:"produk_bahan_aktif,omitempty"`
	FotoProduk       []FotoProduk       `gorm:"foreignKey:ProdukID;references:IDProduk" json:"foto_produk,omitempty"`
}

func (Produk) TableName() string {
	return "produk"
}

// ProdukDetail carries the long-form product copy shown on the detail page.
type ProdukDetail struct {
	ProdukID  int64   `gorm:"column:produk_id;primaryKey;autoIncrement:false" json:"produk_id,string"`
	Kegunaan  *string `gorm:"column:kegunaan" json:"kegunaan"`
	Komposisi *string `gorm:"column:komposisi" json:"komposisi"`
	CaraPakai *string `gorm:"column:cara_pakai" json:"cara_pakai"`
	Netto     *string `gorm:"column:netto;size:64" json:"netto"`
	NoBpom    *string `gorm:"column:no_bpom;size:64" json:"no_bpom"`
}

func (ProdukDetail) TableName() string {
	return "produk_detail"
}

type BahanAktif struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id,string"`
	NamaBahan string `gorm:"column:nama_bahan;size:255" json:"nama_bahan"`
}

func (BahanAktif) TableName() string {
	return "bahan_aktif"
}

type ProdukBahanAktif struct {
	ProdukID     int64      `gorm:"column:produk_id;primaryKey;autoIncrement:false" json:"produk_id,string"`
	BahanAktifID int64      `gorm:"column:bahan_aktif_id;primaryKey;autoIncrement:false" json:"bahan_aktif_id,string"`
	Fungsi       *string    `gorm:"column:fungsi" json:"fungsi"`
	BahanAktif   BahanAktif `gorm:"foreignKey:BahanAktifID;references:ID" json:"bahan_aktif"`
}

func (ProdukBahanAktif) TableName() string {
	return "produk_bahan_aktif"
}

// FotoProduk is a gallery photo owned by either a product or a package.
type FotoProduk struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id,string"`
	ProdukID *int64  `gorm:"column:produk_id;index" json:"produk_id,string,omitempty"`
	PaketID  *int64  `gorm:"column:paket_id;index" json:"paket_id,string,omitempty"`
	UrlFoto  *string `gorm:"column:url_foto;size:1024" json:"url_foto"`
	AltText  *string `gorm:"column:alt_text;size:255" json:"alt_text"`
	Urutan   *int    `gorm:"column:urutan" json:"urutan"`

	Produk *Produk `gorm:"foreignKey:ProdukID;references:IDProduk" json:"produk,omitempty"`
}

func (FotoProduk) TableName() string {
	return "foto_produk"
}
