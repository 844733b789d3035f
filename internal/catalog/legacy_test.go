package catalog

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snakeFeed = `[
  {
    "id_produk": 9007199254740993,
    "nama_produk": "Acne Cream",
    "slug": "acne-cream",
    "bpom": "NA123",
    "harga_umum": 150000,
    "harga_director": null,
    "foto_utama": "null",
    "deskripsi_singkat": "Krim jerawat",
    "created_at": "2024-02-01T08:00:00.000Z",
    "foto_produk": [
      {"url_foto": "/b.jpg", "urutan": 2},
      {"url_foto": "/a.jpg", "urutan": 1}
    ],
    "produk_kategori": [{"kategori": {"id": 3, "nama_kategori": "Acne"}}]
  },
  {
    "id_paket": "pkg_4",
    "nama_paket": "Paket Acne",
    "slug": "paket-acne",
    "harga_umum": "300000",
    "paket_isi": [
      {"produk_id": 9, "jumlah": 2, "produk": {"nama_produk": "Acne Cream"}}
    ],
    "created_at": ""
  }
]`

func TestDecodeLegacyFeedSnakeCase(t *testing.T) {
	records, err := DecodeLegacyFeed([]byte(snakeFeed))
	require.NoError(t, err)
	require.Len(t, records, 2)

	product, ok := records[0].(ProductRecord)
	require.True(t, ok)
	item := Normalize(product)
	assert.Equal(t, "9007199254740993", item.ID)
	assert.Equal(t, "Acne Cream", item.DisplayName)
	assert.Equal(t, "NA123", item.RegulatoryCode)
	assert.Equal(t, PriceTiers{RoleUmum: 150000}, item.PriceTiers)
	assert.Equal(t, "/a.jpg", item.PrimaryImage)
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, item.Gallery)
	assert.Equal(t, []Category{{ID: 3, Name: "Acne"}}, item.Categories)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), item.CreatedAt.UTC())

	pkg, ok := records[1].(PackageRecord)
	require.True(t, ok)
	item = Normalize(pkg)
	assert.Equal(t, "pkg_4", item.ID)
	assert.Equal(t, KindPackage, item.Kind)
	assert.Equal(t, PriceTiers{RoleUmum: 300000}, item.PriceTiers)
	assert.Equal(t, []BundleLine{{RefID: "9", Name: "Acne Cream", Quantity: 2}}, item.BundleContents)
	assert.True(t, item.CreatedAt.IsZero())
}

func TestAdaptLegacyCamelCase(t *testing.T) {
	records, err := DecodeLegacyFeed([]byte(`{"data": [
	  {"id": "21", "namaProduk": "Vitamin Serum", "hargaUmum": 99000, "gambar": "https://cdn.example.com/v.jpg",
	   "deskripsi": "Serum vitamin C", "categories": {"name": "Serum"}},
	  {"id": "pkg_8", "namaProduk": "Paket Serum", "type": "package", "gambar": "undefined"}
	]}`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, KindProduct, records[0].RecordKind())
	item := Normalize(records[0])
	assert.Equal(t, "21", item.ID)
	assert.Equal(t, "Vitamin Serum", item.DisplayName)
	assert.Equal(t, "Serum vitamin C", item.ShortDescription)
	assert.Equal(t, PriceTiers{RoleUmum: 99000}, item.PriceTiers)
	assert.Equal(t, "https://cdn.example.com/v.jpg", item.PrimaryImage)
	require.NotNil(t, item.PrimaryCategory)
	assert.Equal(t, "Serum", item.PrimaryCategory.Name)

	assert.Equal(t, KindPackage, records[1].RecordKind())
	item = Normalize(records[1])
	assert.Equal(t, "pkg_8", item.ID)
	assert.Empty(t, item.PrimaryImage)
	assert.Empty(t, item.PriceTiers)
}

func TestAdaptLegacyRejectsMissingID(t *testing.T) {
	_, err := AdaptLegacy(map[string]interface{}{"nama_produk": "Tanpa ID"})
	assert.Error(t, err)

	_, err = DecodeLegacyFeed([]byte(`[{"id_produk": "abc"}]`))
	assert.Error(t, err)

	_, err = DecodeLegacyFeed([]byte(`not json`))
	assert.Error(t, err)
}

func TestAdaptLegacyMixedConventions(t *testing.T) {
	records, err := DecodeLegacyFeed([]byte(`[{
	  "id_produk": 5,
	  "nama_produk": "Serum Lama",
	  "namaProduk": "Serum Baru",
	  "harga_umum": 100000,
	  "hargaUmum": 120000,
	  "harga_director": 80000,
	  "harga_manager": 90000,
	  "foto_utama": "/old.jpg",
	  "gambar": "/new.jpg",
	  "foto_produk": [{"url_foto": "/g.jpg", "urutan": 1}],
	  "produk_kategori": [
	    {"kategori": {"id": 2, "nama_kategori": "Serum"}},
	    {"kategori": {"id": 7, "nama_kategori": "Brightening"}}
	  ],
	  "categories": {"name": "Brightening"}
	}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	item := Normalize(records[0])
	assert.Equal(t, "5", item.ID)
	assert.Equal(t, "Serum Baru", item.DisplayName)
	assert.Equal(t, PriceTiers{RoleUmum: 120000, RoleDirector: 80000, RoleManager: 90000}, item.PriceTiers)
	assert.Equal(t, "/new.jpg", item.PrimaryImage)
	assert.Equal(t, []string{"/g.jpg"}, item.Gallery)
	assert.Equal(t, []Category{{Name: "Brightening"}, {ID: 2, Name: "Serum"}}, item.Categories)
	require.NotNil(t, item.PrimaryCategory)
	assert.Equal(t, "Brightening", item.PrimaryCategory.Name)
}

func TestAdaptLegacyCamelFallsBackToSnakeFields(t *testing.T) {
	rec, err := AdaptLegacy(map[string]interface{}{
		"id_produk":   "6",
		"nama_produk": "Toner",
		"namaProduk":  "",
		"harga_umum":  50000.0,
		"hargaUmum":   0.0,
		"foto_utama":  "/toner.jpg",
		"gambar":      "",
	})
	require.NoError(t, err)

	item := Normalize(rec)
	assert.Equal(t, "Toner", item.DisplayName)
	assert.Equal(t, PriceTiers{RoleUmum: 50000}, item.PriceTiers)
	assert.Equal(t, "/toner.jpg", item.PrimaryImage)
}

func TestAdaptLegacyCategoryIDs(t *testing.T) {
	_, err := DecodeLegacyFeed([]byte(`[{"id_produk": 1, "produk_kategori": [{"kategori": {"id": "abc", "nama_kategori": "Serum"}}]}]`))
	assert.Error(t, err)

	rec, err := AdaptLegacy(map[string]interface{}{
		"id_produk":       "1",
		"produk_kategori": []interface{}{map[string]interface{}{"kategori": map[string]interface{}{"nama_kategori": "Serum"}}},
	})
	require.NoError(t, err)
	item := Normalize(rec)
	assert.Equal(t, []Category{{Name: "Serum"}}, item.Categories)
	assert.JSONEq(t, `{"name":"Serum"}`, mustJSON(t, item.Categories[0]))
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := jsoniter.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
