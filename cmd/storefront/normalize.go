package main

import (
	"io"
	"os"

	"github.com/drwskincare/storefront/internal/catalog"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// runNormalize prints the catalog items of a legacy feed file as JSON.
func runNormalize(file string, out io.Writer) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "read feed")
	}
	records, err := catalog.DecodeLegacyFeed(data)
	if err != nil {
		return err
	}
	items := make([]catalog.CatalogItem, 0, len(records))
	for _, rec := range records {
		items = append(items, catalog.Normalize(rec))
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
