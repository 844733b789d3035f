package catalog

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

var feedJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type legacyCategory struct {
	ID           string `mapstructure:"id"`
	NamaKategori string `mapstructure:"nama_kategori"`
	Name         string `mapstructure:"name"`
}

func (c legacyCategory) category() (Category, error) {
	cat := Category{Name: firstNonEmpty(c.NamaKategori, c.Name)}
	if strings.TrimSpace(c.ID) == "" {
		return cat, nil
	}
	id, err := parseID(c.ID)
	if err != nil {
		return Category{}, errors.Wrap(err, "category")
	}
	cat.ID = id
	return cat, nil
}

func joinedCategories(joins []legacyJoin) ([]Category, error) {
	var cats []Category
	for _, j := range joins {
		cat, err := j.Kategori.category()
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

type legacyJoin struct {
	Kategori legacyCategory `mapstructure:"kategori"`
}

type legacyPhoto struct {
	UrlFoto *string `mapstructure:"url_foto"`
	AltText *string `mapstructure:"alt_text"`
	Urutan  *int    `mapstructure:"urutan"`
}

type legacyBundleLine struct {
	ProdukID string `mapstructure:"produk_id"`
	Jumlah   int    `mapstructure:"jumlah"`
	Produk   struct {
		NamaProduk string `mapstructure:"nama_produk"`
	} `mapstructure:"produk"`
}

type snakeRecord struct {
	ID               string             `mapstructure:"id"`
	IDProduk         string             `mapstructure:"id_produk"`
	IDPaket          string             `mapstructure:"id_paket"`
	Type             string             `mapstructure:"type"`
	NamaProduk       string             `mapstructure:"nama_produk"`
	NamaPaket        string             `mapstructure:"nama_paket"`
	Slug             *string            `mapstructure:"slug"`
	Bpom             *string            `mapstructure:"bpom"`
	DeskripsiSingkat *string            `mapstructure:"deskripsi_singkat"`
	Deskripsi        *string            `mapstructure:"deskripsi"`
	FotoUtama        *string            `mapstructure:"foto_utama"`
	HargaDirector    *float64           `mapstructure:"harga_director"`
	HargaManager     *float64           `mapstructure:"harga_manager"`
	HargaSupervisor  *float64           `mapstructure:"harga_supervisor"`
	HargaConsultant  *float64           `mapstructure:"harga_consultant"`
	HargaUmum        *float64           `mapstructure:"harga_umum"`
	FotoProduk       []legacyPhoto      `mapstructure:"foto_produk"`
	ProdukKategori   []legacyJoin       `mapstructure:"produk_kategori"`
	PaketKategori    []legacyJoin       `mapstructure:"paket_kategori"`
	PaketIsi         []legacyBundleLine `mapstructure:"paket_isi"`
	CreatedAt        time.Time          `mapstructure:"created_at"`
}

type camelRecord struct {
	NamaProduk string          `mapstructure:"namaProduk"`
	Gambar     *string         `mapstructure:"gambar"`
	HargaUmum  *float64        `mapstructure:"hargaUmum"`
	Categories *legacyCategory `mapstructure:"categories"`
	CreatedAt  time.Time       `mapstructure:"createdAt"`
}

var camelKeys = []string{"namaProduk", "hargaUmum", "gambar", "categories", "createdAt"}

func hasCamelFields(raw map[string]interface{}) bool {
	for _, k := range camelKeys {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}

// AdaptLegacy turns one loosely-shaped record into a Record variant. Legacy
// feeds mix two field-naming conventions, sometimes on the same object: the
// snake_case fields build the record and any camelCase fields that are set
// take precedence.
func AdaptLegacy(raw map[string]interface{}) (Record, error) {
	var snake snakeRecord
	if err := decodeLegacy(raw, &snake); err != nil {
		return nil, err
	}
	rec, err := snake.record()
	if err != nil {
		return nil, err
	}
	if !hasCamelFields(raw) {
		return rec, nil
	}
	var camel camelRecord
	if err := decodeLegacy(raw, &camel); err != nil {
		return nil, err
	}
	switch r := rec.(type) {
	case ProductRecord:
		if err := camel.overlay(&r.Name, &r.MainImage, &r.Prices, &r.Categories, &r.CreatedAt); err != nil {
			return nil, err
		}
		rec = r
	case PackageRecord:
		if err := camel.overlay(&r.Name, &r.MainImage, &r.Prices, &r.Categories, &r.CreatedAt); err != nil {
			return nil, err
		}
		rec = r
	}
	return rec, nil
}

// DecodeLegacyFeed reads a JSON array of legacy records, or an object that
// carries one under "data".
func DecodeLegacyFeed(data []byte) ([]Record, error) {
	var rows []map[string]interface{}
	if err := feedJSON.Unmarshal(data, &rows); err != nil {
		var envelope struct {
			Data []map[string]interface{} `json:"data"`
		}
		if err2 := feedJSON.Unmarshal(data, &envelope); err2 != nil {
			return nil, errors.Wrap(err, "decode legacy feed")
		}
		rows = envelope.Data
	}
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := AdaptLegacy(row)
		if err != nil {
			return nil, errors.Wrapf(err, "legacy record %d", i)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeLegacy(raw map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       stringToTimeHook,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrap(dec.Decode(raw), "decode legacy record")
}

func stringToTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (r snakeRecord) record() (Record, error) {
	prices := PriceColumns{
		Director:   r.HargaDirector,
		Manager:    r.HargaManager,
		Supervisor: r.HargaSupervisor,
		Consultant: r.HargaConsultant,
		Umum:       r.HargaUmum,
	}
	photos := make([]Photo, 0, len(r.FotoProduk))
	for _, f := range r.FotoProduk {
		photos = append(photos, Photo{URL: f.UrlFoto, Alt: f.AltText, Order: f.Urutan})
	}

	if r.Type == string(KindPackage) || r.IDPaket != "" || r.NamaPaket != "" {
		id, err := parseID(firstNonEmpty(r.IDPaket, r.ID))
		if err != nil {
			return nil, err
		}
		rec := PackageRecord{
			ID:          id,
			Name:        firstNonEmpty(r.NamaPaket, r.NamaProduk),
			Slug:        r.Slug,
			Description: r.Deskripsi,
			Prices:      prices,
			MainImage:   r.FotoUtama,
			Photos:      photos,
			CreatedAt:   r.CreatedAt,
		}
		cats, err := joinedCategories(r.PaketKategori)
		if err != nil {
			return nil, err
		}
		rec.Categories = cats
		for _, line := range r.PaketIsi {
			rec.Contents = append(rec.Contents, BundleLine{
				RefID:    strings.TrimPrefix(line.ProdukID, PackageIDPrefix),
				Name:     line.Produk.NamaProduk,
				Quantity: line.Jumlah,
			})
		}
		return rec, nil
	}

	id, err := parseID(firstNonEmpty(r.IDProduk, r.ID))
	if err != nil {
		return nil, err
	}
	desc := r.DeskripsiSingkat
	if desc == nil {
		desc = r.Deskripsi
	}
	rec := ProductRecord{
		ID:               id,
		Name:             r.NamaProduk,
		Slug:             r.Slug,
		ShortDescription: desc,
		BPOM:             r.Bpom,
		Prices:           prices,
		MainImage:        r.FotoUtama,
		Photos:           photos,
		CreatedAt:        r.CreatedAt,
	}
	cats, err := joinedCategories(r.ProdukKategori)
	if err != nil {
		return nil, err
	}
	rec.Categories = cats
	return rec, nil
}

// overlay applies the camelCase fields that are set. A zero hargaUmum only
// fills an absent harga_umum.
func (r camelRecord) overlay(name *string, image **string, prices *PriceColumns, cats *[]Category, created *time.Time) error {
	if strings.TrimSpace(r.NamaProduk) != "" {
		*name = r.NamaProduk
	}
	if r.Gambar != nil && strings.TrimSpace(*r.Gambar) != "" {
		*image = r.Gambar
	}
	if r.HargaUmum != nil && (*r.HargaUmum != 0 || prices.Umum == nil) {
		prices.Umum = r.HargaUmum
	}
	if !r.CreatedAt.IsZero() {
		*created = r.CreatedAt
	}
	if r.Categories == nil {
		return nil
	}
	cat, err := r.Categories.category()
	if err != nil {
		return err
	}
	if strings.TrimSpace(cat.Name) == "" {
		return nil
	}
	// the named category leads; a join row with the same name is dropped
	merged := []Category{cat}
	for _, c := range *cats {
		if !strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(cat.Name)) {
			merged = append(merged, c)
		}
	}
	*cats = merged
	return nil
}

// parseID accepts plain decimal keys and the pkg_ prefixed form.
func parseID(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), PackageIDPrefix)
	if s == "" {
		return 0, errors.New("record has no id")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid record id %q", s)
	}
	return id, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
