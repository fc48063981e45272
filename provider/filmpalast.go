// Package provider implements catalog providers that locate hoster pages for human titles.
package provider

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
	"github.com/sapphirebluet/Movix/log"
	"github.com/sapphirebluet/Movix/network"
	"github.com/sapphirebluet/Movix/streaming"
)

// filmpalastBase is the catalog's canonical stream page prefix.
const filmpalastBase = "https://filmpalast.to/stream"

// hosterPrefix is the anchor target the catalog uses to link the hoster.
const hosterPrefix = "https://voe.sx/"

// Filmpalast derives catalog page URLs from title slugs and extracts the
// hoster link from the page.
type Filmpalast struct {
	fetch func(url string) (body string, status int, err error)
}

// NewFilmpalast returns a provider using the fingerprinted network client.
func NewFilmpalast() *Filmpalast {
	return &Filmpalast{fetch: network.FetchPage}
}

func (p *Filmpalast) Name() string {
	return "filmpalast"
}

// GetStreamPageURL slugs the title, fetches the catalog page and returns the
// hoster link found on it.
func (p *Filmpalast) GetStreamPageURL(title string) (string, error) {
	pageURL := filmpalastBase + "/" + Slugify(title)

	html, status, err := p.fetch(pageURL)
	if err != nil {
		return "", streaming.NetworkErr("fetch %s: %v", pageURL, err)
	}
	if status < 200 || status >= 300 {
		return "", streaming.NotFoundErr("page not found for title: %s", title)
	}

	candidate, err := extractHosterURL(html)
	if err != nil {
		return "", streaming.ParseErr("parse catalog page %s: %v", pageURL, err)
	}

	hosterURL, ok := candidate.Get()
	if !ok {
		return "", streaming.NotFoundErr("no hoster URL found on %s", pageURL)
	}

	log.Debugf("filmpalast: %q -> %s", title, hosterURL)
	return hosterURL, nil
}

// Slugify normalizes a title to the catalog's URL slug form: lowercase
// alphanumerics, every other character collapsed to a single hyphen,
// leading and trailing hyphens trimmed.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	prevDash := true
	for _, c := range strings.ToLower(title) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
			prevDash = false
			continue
		}
		if !prevDash {
			b.WriteRune('-')
			prevDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// extractHosterURL scans the catalog page for an anchor pointing at the hoster.
func extractHosterURL(html string) (mo.Option[string], error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return mo.None[string](), err
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if strings.HasPrefix(href, hosterPrefix) {
			found = href
			return false
		}
		return true
	})

	if found == "" {
		return mo.None[string](), nil
	}
	return mo.Some(found), nil
}
