package vinted

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// Варианты по порядку: 1.234,56 | 1,234.56 | 1 234,56 | 12,50
	numberRe = regexp.MustCompile(`-?(?:` +
		`[0-9]{1,3}(?:\.[0-9]{3})+,[0-9]+` +
		`|[0-9]{1,3}(?:,[0-9]{3})+\.[0-9]+` +
		`|[0-9]{1,3}(?:[ \x{00a0}\x{202f}][0-9]{3})+(?:[.,][0-9]+)?` +
		`|[0-9]+(?:[.,][0-9]+)?)`)
	groupSpaces = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")
	hundred     = decimal.NewFromInt(100)
)

// NormalizePrice приводит цену площадки к строке с точкой и двумя знаками.
//
// Поддерживаются строка ("12,50"), JSON-число и объект с полем amount.
// Числовой amount и целочисленная строка amount считаются в центах,
// строка amount с разделителем считается в основных единицах.
// Нераспознанное значение даёт "0.00".
func NormalizePrice(v any) string {
	d, ok := parsePrice(v)
	if !ok {
		return decimal.Zero.StringFixed(2)
	}

	return d.StringFixed(2)
}

func parsePrice(v any) (decimal.Decimal, bool) {
	switch p := v.(type) {
	case string:
		return parseDecimalString(p)
	case json.Number:
		d, err := decimal.NewFromString(p.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(p), true
	case int:
		return decimal.NewFromInt(int64(p)), true
	case int64:
		return decimal.NewFromInt(p), true
	case map[string]any:
		return parseAmount(p["amount"])
	default:
		return decimal.Zero, false
	}
}

func parseAmount(v any) (decimal.Decimal, bool) {
	switch a := v.(type) {
	case string:
		if strings.ContainsAny(a, ".,") {
			return parseDecimalString(a)
		}
		d, ok := parseDecimalString(a)
		return d.Div(hundred), ok
	case nil:
		return decimal.Zero, false
	default:
		d, ok := parsePrice(a)
		return d.Div(hundred), ok
	}
}

func parseDecimalString(s string) (decimal.Decimal, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(toDecimalLiteral(m))
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// toDecimalLiteral убирает разделители тысяч. Десятичным считается последний из "." и ",".
func toDecimalLiteral(num string) string {
	num = groupSpaces.Replace(num)

	dot, comma := strings.LastIndexByte(num, '.'), strings.LastIndexByte(num, ',')
	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		num = strings.ReplaceAll(num, ".", "")
	case dot >= 0 && comma >= 0:
		num = strings.ReplaceAll(num, ",", "")
	}

	return strings.Replace(num, ",", ".", 1)
}

// normalizeItem собирает Listing из объекта item API. Без заголовка, цены или фото item пропускается,
// как и item с отрицательной ценой.
func normalizeItem(item map[string]any) (domain.Listing, bool) {
	title := strings.TrimSpace(stringField(item, "title"))
	if title == "" {
		return domain.Listing{}, false
	}

	rawPrice, ok := item["price"]
	if !ok || rawPrice == nil {
		return domain.Listing{}, false
	}
	if d, ok := parsePrice(rawPrice); !ok || d.IsNegative() {
		return domain.Listing{}, false
	}

	imageURL := photoURL(item["photos"])
	if imageURL == "" {
		return domain.Listing{}, false
	}

	return domain.NewListing(
		title,
		NormalizePrice(rawPrice),
		strings.TrimSpace(stringField(item, "size_title")),
		strings.TrimSpace(stringField(item, "brand_title")),
		imageURL,
	), true
}

// normalizeItems пропускает всё, что не является объектом item.
func normalizeItems(raw []any) []domain.Listing {
	out := make([]domain.Listing, 0, len(raw))
	for _, r := range raw {
		item, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if l, ok := normalizeItem(item); ok {
			out = append(out, l)
		}
	}

	return out
}

// photoURL берёт первое фото: high_resolution.url, затем full_size_url, затем url.
func photoURL(v any) string {
	photos, ok := v.([]any)
	if !ok || len(photos) == 0 {
		return ""
	}

	photo, ok := photos[0].(map[string]any)
	if !ok {
		return ""
	}

	if hr, ok := photo["high_resolution"].(map[string]any); ok {
		if u := stringField(hr, "url"); u != "" {
			return u
		}
	}
	if u := stringField(photo, "full_size_url"); u != "" {
		return u
	}

	return stringField(photo, "url")
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// decodeItems разбирает первый JSON-объект вида {"items": [...]}, сохраняя числа как json.Number.
// Данные после объекта не читаются.
func decodeItems(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var payload struct {
		Items []any `json:"items"`
	}
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}

	return payload.Items, nil
}
