package scrape

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

const maxCollectedImages = 10

// imageURLs gathers candidate image URLs in preference order: the page's
// og:image first, then inline <img> sources, absolutized against the base
// URL and deduplicated.
func imageURLs(og *opengraph.OpenGraph, doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var urls []string
	seen := make(map[string]bool)
	add := func(src string) {
		if len(urls) >= maxCollectedImages {
			return
		}
		abs := absoluteURL(base, src)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		urls = append(urls, abs)
	}

	if og != nil {
		for _, img := range og.Images {
			add(img.URL)
		}
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			add(src)
		}
	})

	return urls
}

func absoluteURL(base *url.URL, src string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	u, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
