package domain

import "time"

// PaketProduk is a bundle of several products sold as one item.
type PaketProduk struct {
	IDPaket         int64     `gorm:"column:id_paket;primaryKey;autoIncrement" json:"id_paket,string"`
	NamaPaket       string    `gorm:"column:nama_paket;index" json:"nama_paket"`
	Slug            *string   `gorm:"column:slug;uniqueIndex;size:255" json:"slug"`
	Deskripsi       *string   `gorm:"column:deskripsi" json:"deskripsi"`
	FotoUtama       *string   `gorm:"column:foto_utama;size:1024" json:"foto_utama"`
	HargaDirector   *float64  `gorm:"column:harga_director" json:"harga_director"`
	HargaManager    *float64  `gorm:"column:harga_manager" json:"harga_manager"`
	HargaSupervisor *float64  `gorm:"column:harga_supervisor" json:"harga_supervisor"`
	HargaConsultant *float64  `gorm:"column:harga_consultant" json:"harga_consultant"`
	HargaUmum       *float64  `gorm:"column:harga_umum" json:"harga_umum"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`

	PaketKategori []PaketKategori `gorm:"foreignKey:PaketID;references:IDPaket" json:"paket_kategori,omitempty"`
	PaketIsi      []PaketIsi      `gorm:"foreignKey:PaketID;references:IDPaket" json:"paket_isi,omitempty"`
	FotoProduk    []FotoProduk    `gorm:"foreignKey:PaketID;references:IDPaket" json:"foto_produk,omitempty"`
}

func (PaketProduk) TableName() string {
	return "paket_produk"
}

// PaketIsi is one line of a bundle: a product reference and its quantity.
type PaketIsi struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id,string"`
	PaketID  int64  `gorm:"column:paket_id;index" json:"paket_id,string"`
	ProdukID int64  `gorm:"column:produk_id;index" json:"produk_id,string"`
	Jumlah   int    `gorm:"column:jumlah" json:"jumlah"`
	Produk   Produk `gorm:"foreignKey:ProdukID;references:IDProduk" json:"produk"`
}

func (PaketIsi) TableName() string {
	return "paket_isi"
}
