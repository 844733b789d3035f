package whatsapp

import (
	"math"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	baseURL        = "https://wa.me/"
	PriceOnRequest = "Hubungi Kami"
)

// FormatPrice renders an amount the way Indonesian shoppers read it,
// e.g. "Rp 150.000". A missing price reads "Hubungi Kami".
func FormatPrice(amount float64, ok bool) string {
	if !ok || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return PriceOnRequest
	}
	p := message.NewPrinter(language.Indonesian)
	return p.Sprintf("Rp %d", int64(math.Round(amount)))
}

// LinkRequest describes the item a shopper wants to order.
type LinkRequest struct {
	Name     string
	Kind     string // "product" or "package"
	Price    float64
	HasPrice bool
	BPOM     string
	Slug     string
	Phone    string
	SiteName string
	SiteURL  string
}

// Message builds the prefilled chat text.
func Message(req LinkRequest) string {
	noun, linkLabel := "produk", "Link produk"
	if req.Kind == "package" {
		noun, linkLabel = "paket", "Link paket"
	}

	var b strings.Builder
	b.WriteString("Halo, saya tertarik dengan " + noun + " " + strings.TrimSpace(req.Name))
	if req.SiteName != "" {
		b.WriteString(" dari " + req.SiteName)
	}
	b.WriteString(".\n\n")
	b.WriteString("Harga: " + FormatPrice(req.Price, req.HasPrice) + "\n")
	if req.BPOM != "" && req.Kind != "package" {
		b.WriteString("BPOM: " + req.BPOM + "\n")
	}
	b.WriteString("\nMohon info lebih lanjut untuk pemesanan.")
	if req.SiteURL != "" && req.Slug != "" {
		b.WriteString("\n\n" + linkLabel + ": " + strings.TrimRight(req.SiteURL, "/") + "/" + req.Slug)
	}
	return b.String()
}

// BuildLink returns the wa.me deep link. Only digits of the phone number are
// kept; spaces in the message are encoded as %20.
func BuildLink(req LinkRequest) string {
	text := strings.ReplaceAll(url.QueryEscape(Message(req)), "+", "%20")
	return baseURL + digits(req.Phone) + "?text=" + text
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
