package receipt

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// SkipReason explains why a text line produced no item. Skips are expected
// OCR noise, never errors.
type SkipReason string

const (
	// SkipNone marks an accepted line.
	SkipNone SkipReason = ""
	// SkipNoise marks a line matching a noise pattern (totals, payment
	// methods, store metadata).
	SkipNoise SkipReason = "noise"
	// SkipNoPrice marks a line with no monetary amount on it.
	SkipNoPrice SkipReason = "no price"
	// SkipPriceRange marks a line whose price falls outside the plausible
	// single-item range.
	SkipPriceRange SkipReason = "price out of range"
	// SkipShortName marks a line whose cleaned name is too short to be a
	// product.
	SkipShortName SkipReason = "short name"
)

// Plausible price range for a single item. Amounts outside it are OCR
// artifacts, not real prices.
const (
	minItemPrice = 0.01
	maxItemPrice = 1000
)

// noiseWords identify lines that are receipt chrome rather than purchased
// items. A case-insensitive match anywhere in the line discards the line.
var noiseWords = []string{
	"total", "subtotal", "tax", "balance", "due",
	"change", "cash", "card", "visa", "mastercard",
	"amex", "receipt", "thank you", "store", "address",
	"phone", "date", "time", "cashier", "register",
}

// Parser converts raw OCR text into structured line items.
type Parser struct {
	price    *regexp.Regexp
	quantity *regexp.Regexp
	noise    *regexp.Regexp
	symbols  *regexp.Regexp
	spaces   *regexp.Regexp
}

// NewParser creates a Parser with the built-in receipt patterns.
func NewParser() *Parser {
	return &Parser{
		// Optional dollar sign, one or more digits, a decimal point and
		// exactly two decimals.
		price: regexp.MustCompile(`\$?\s*(\d+\.\d{2})`),
		// Quantity markers like "2x" or "3 x".
		quantity: regexp.MustCompile(`(\d+)\s*x\s*`),
		noise:    regexp.MustCompile(strings.Join(noiseWords, "|")),
		symbols:  regexp.MustCompile(`[^\w\s\-.]`),
		spaces:   regexp.MustCompile(`\s+`),
	}
}

// Parse converts OCR text into items, one per accepted line, in line order.
// Empty or unusable input yields an empty slice, never an error.
func (p *Parser) Parse(text string) []*LineItem {
	items := []*LineItem{}
	skipped := 0
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		item, reason := p.ParseLine(line)
		if reason != SkipNone {
			skipped++
			continue
		}
		items = append(items, item)
	}
	slog.Info("parsed receipt text", "items", len(items), "skipped", skipped)
	return items
}

// ParseLine extracts an item from a single receipt line. The returned reason
// is SkipNone when an item was produced; any other reason means the line was
// silently discarded.
func (p *Parser) ParseLine(line string) (*LineItem, SkipReason) {
	if p.noise.MatchString(strings.ToLower(line)) {
		return nil, SkipNoise
	}

	amounts := p.price.FindAllStringSubmatch(line, -1)
	if len(amounts) == 0 {
		return nil, SkipNoPrice
	}

	// OCR often picks up a unit price before the line total; the trailing
	// amount is the more reliable total for the line.
	price, err := strconv.ParseFloat(amounts[len(amounts)-1][1], 64)
	if err != nil || price < minItemPrice || price > maxItemPrice {
		return nil, SkipPriceRange
	}

	quantity := 1.0
	if m := p.quantity.FindStringSubmatch(line); m != nil {
		quantity, _ = strconv.ParseFloat(m[1], 64)
	}

	name := p.itemName(line)
	if len(name) <= 2 {
		return nil, SkipShortName
	}

	return &LineItem{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Category: Uncategorized,
	}, SkipNone
}

// Total sums the prices of all items.
func (p *Parser) Total(items []*LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// itemName derives a display name from a line by stripping the price and
// quantity substrings and normalizing what remains.
func (p *Parser) itemName(line string) string {
	name := p.price.ReplaceAllString(line, "")
	name = p.quantity.ReplaceAllString(name, "")
	name = p.symbols.ReplaceAllString(name, " ")
	name = p.spaces.ReplaceAllString(name, " ")
	return titleWords(strings.TrimSpace(name))
}

// titleWords upper-cases the first letter of each word and lower-cases the
// rest.
func titleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		for j := 1; j < len(r); j++ {
			r[j] = unicode.ToLower(r[j])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
