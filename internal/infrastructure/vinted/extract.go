package vinted

import (
	"regexp"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"golang.org/x/net/html"
)

var (
	appStateRe = regexp.MustCompile(`window\.App\s*=\s*\{`)
	// 25,50 € | 1.234,56 € | 1\u00a0234,56 €
	cardPriceRe = regexp.MustCompile(`((?:[0-9]{1,3}(?:[.\x{00a0}\x{202f}][0-9]{3})+|[0-9]+)(?:[.,][0-9]{1,2})?)[\s\x{00a0}\x{202f}]*€`)

	cardClasses      = []string{"item-card", "feed-grid__item"}
	challengeMarkers = []string{"captcha", "cf-challenge", "datadome"}
)

// extractFromHTML достаёт объявления из страницы профиля:
// сначала из встроенного window.App, затем из карточек товаров.
func extractFromHTML(body string) []domain.Listing {
	if items, ok := extractAppItems(body); ok {
		if listings := normalizeItems(items); len(listings) > 0 {
			return listings
		}
	}

	return extractCards(body)
}

// extractAppItems декодирует объект, присвоенный window.App. Decoder читает ровно
// один JSON-объект, поэтому "};" внутри строк и код после присваивания не мешают.
func extractAppItems(body string) ([]any, bool) {
	loc := appStateRe.FindStringIndex(body)
	if loc == nil {
		return nil, false
	}

	items, err := decodeItems(strings.NewReader(body[loc[1]-1:]))
	if err != nil || len(items) == 0 {
		return nil, false
	}

	return items, true
}

// extractCards разбирает карточки товаров. Карточка: элемент, в class которого есть item-card или feed-grid__item.
func extractCards(body string) []domain.Listing {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var listings []domain.Listing
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isCard(n) {
			if l, ok := parseCard(n); ok {
				listings = append(listings, l)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return listings
}

func isCard(n *html.Node) bool {
	class := attr(n, "class")
	for _, c := range cardClasses {
		if strings.Contains(class, c) {
			return true
		}
	}
	return false
}

func parseCard(card *html.Node) (domain.Listing, bool) {
	var (
		title string
		image string
		text  strings.Builder
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if title == "" {
				title = strings.TrimSpace(attr(n, "title"))
			}
			if image == "" && n.Data == "img" {
				image = attr(n, "src")
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(card)

	m := cardPriceRe.FindStringSubmatch(text.String())
	if title == "" || image == "" || m == nil {
		return domain.Listing{}, false
	}

	return domain.NewListing(title, NormalizePrice(m[1]), "", "", image), true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// looksLikeChallenge распознаёт страницы антибот-защиты.
func looksLikeChallenge(body string) bool {
	lower := strings.ToLower(body)
	for _, m := range challengeMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
