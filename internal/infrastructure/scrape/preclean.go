package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

type cleanConfig struct {
	tagsToRemove  []string
	attrsToRemove []string
	maxOutputSize int
}

var defaultCleanConfig = cleanConfig{
	tagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe",
		"link", "meta",
	},
	attrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
	},
	maxOutputSize: 500_000,
}

// cleanHTML strips script/style noise, comments and junk attributes before
// extraction so text heuristics run over content only.
func cleanHTML(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML // fallback
	}

	cleanNode(doc, &defaultCleanConfig)

	result := renderNode(doc)
	if len(result) > defaultCleanConfig.maxOutputSize {
		result = result[:defaultCleanConfig.maxOutputSize]
	}
	return result
}

func cleanNode(n *html.Node, cfg *cleanConfig) {
	if n.Type == html.CommentNode {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if n.Type == html.ElementNode {
		if isOneOf(n.Data, cfg.tagsToRemove...) {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return
		}
		n.Attr = filterAttributes(n.Attr, cfg)
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanNode(c, cfg)
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg *cleanConfig) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range attrs {
		if shouldRemoveAttr(attr, cfg) {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func shouldRemoveAttr(attr html.Attribute, cfg *cleanConfig) bool {
	key := attr.Key
	for _, r := range cfg.attrsToRemove {
		if key == r {
			return true
		}
	}
	return strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "aria-") || strings.HasPrefix(key, "on")
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
