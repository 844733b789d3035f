package domain

import "time"

type Kategori struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id,string"`
	NamaKategori string    `gorm:"column:nama_kategori;uniqueIndex;size:255" json:"nama_kategori"`
	Deskripsi    *string   `gorm:"column:deskripsi" json:"deskripsi"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Kategori) TableName() string {
	return "kategori"
}

type ProdukKategori struct {
	ProdukID   int64    `gorm:"column:produk_id;primaryKey;autoIncrement:false" json:"produk_id,string"`
	KategoriID int64    `gorm:"column:kategori_id;primaryKey;autoIncrement:false" json:"kategori_id,string"`
	Kategori   Kategori `gorm:"foreignKey:KategoriID;references:ID" json:"kategori"`
}

func (ProdukKategori) TableName() string {
	return "produk_kategori"
}

type PaketKategori struct {
	PaketID    int64    `gorm:"column:paket_id;primaryKey;autoIncrement:false" json:"paket_id,string"`
	KategoriID int64    `gorm:"column:kategori_id;primaryKey;autoIncrement:false" json:"kategori_id,string"`
	Kategori   Kategori `gorm:"foreignKey:KategoriID;references:ID" json:"kategori"`
}

func (PaketKategori) TableName() string {
	return "paket_kategori"
}
