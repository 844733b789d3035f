package domain

var Tables = []interface{}{
	// Catalog
	&Kategori{},
	&BahanAktif{},
	&Produk{},
	&ProdukDetail{},
	&ProdukKategori{},
	&ProdukBahanAktif{},
	// Packages
	&PaketProduk{},
	&PaketKategori{},
	&PaketIsi{},
	// Media
	&FotoProduk{},
}
