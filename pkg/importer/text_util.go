package importer

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	slugRe       = regexp.MustCompile(`[^a-z0-9]+`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s*\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
		regexp.MustCompile(`(?i)\b(?:Spring|Summer|Fall|Winter)\s+\d{4}\b`),
	}
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bDr\.`),
		regexp.MustCompile(`(?i)\bPh\.?D\.?`),
		regexp.MustCompile(`(?i)\bD\.?E\.?D\.?\b`),
		regexp.MustCompile(`(?i)\bM\.?D\.?\b`),
	}
)

func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// textOf joins every text node under the selection with spaces, so <br> and
// adjacent blocks do not glue words together.
func textOf(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return cleanText(strings.Join(parts, " "))
}

func firstText(sel *goquery.Selection, selector string) string {
	return textOf(sel.Find(selector).First())
}

func slugify(heading string) string {
	s := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(heading), "-"), "-")
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}

func stripHTML(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}

func looksLikeDate(text string) bool {
	for _, re := range datePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func looksLikeName(text string) bool {
	for _, re := range namePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// pickIcon chooses a card emoji from keywords in its heading.
func pickIcon(heading string) string {
	h := strings.ToLower(heading)
	switch {
	case containsAny(h, "problem", "challenge", "gap", "issue"):
		return "⚠️"
	case containsAny(h, "solution", "approach", "method"):
		return "💡"
	case containsAny(h, "deliver", "output", "result"):
		return "📦"
	case containsAny(h, "team", "people", "who"):
		return "👥"
	case containsAny(h, "budget", "cost", "invest", "money"):
		return "💰"
	case containsAny(h, "fund", "grant", "pathway", "scale"):
		return "🚀"
	case containsAny(h, "data", "stat", "number", "index"):
		return "📊"
	case containsAny(h, "aim", "research", "study"):
		return "🎯"
	case containsAny(h, "close", "conclusion", "summary", "thank"):
		return "🏁"
	case containsAny(h, "question", "q&a", "discuss"):
		return "❓"
	}
	return "📋"
}

func fallbackTitle(filename string) string {
	if filename == "" {
		return "Imported Session"
	}
	return filepath.Base(filename)
}
