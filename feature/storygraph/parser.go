package storygraph

import (
	"regexp"
	"strconv"
	"strings"

	"storygrabber/core/normalize"

	"github.com/PuerkitoBio/goquery"
)

var resultsCountPattern = regexp.MustCompile(`<p class="search-results-count">(\d+) books</p>`)

// parseResultsCount extracts the total book count from the list page.
// The second result is false when the page carries no count marker.
func parseResultsCount(html string) (int, bool) {
	m := resultsCountPattern.FindStringSubmatch(html)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseBooks extracts books from one rendered list page. Relative links
// are made absolute against base. The seen set is shared across pages
// so duplicates from nested panes or overlapping pagination are dropped;
// only books new to the set are returned.
func parseBooks(html, base string, seen map[string]struct{}) ([]Book, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	blocks := doc.Find("div.book-pane, div.book-pane-content, div.book-title-author-and-series, article.book-tile")
	if blocks.Length() == 0 {
		// The site markup shifts now and then; fall back to any block
		// that looks like a title heading with an author line.
		blocks = doc.Find("div, article, section").FilterFunction(func(_ int, s *goquery.Selection) bool {
			if s.Find("h3").Length() == 0 {
				return false
			}
			return s.Find("p.font-body").Length() > 0 || s.Find("a[href^='/authors/']").Length() > 0
		})
	}

	var books []Book
	blocks.Each(func(_ int, block *goquery.Selection) {
		link := block.Find("a[href^='/books/']").First()
		if link.Length() == 0 {
			link = block.Find("h3 a").First()
		}
		if link.Length() == 0 {
			link = block.Find("a").First()
		}
		if link.Length() == 0 {
			return
		}

		href, _ := link.Attr("href")
		if strings.HasPrefix(href, "/") {
			href = base + href
		}

		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}

		author := ""
		if a := block.Find("a[href^='/authors/']").First(); a.Length() > 0 {
			author = strings.TrimSpace(a.Text())
		} else if a := block.Find("p.font-body a").First(); a.Length() > 0 {
			author = strings.TrimSpace(a.Text())
		}

		identifier := href
		if identifier == "" {
			identifier = normalize.Key(title, author)
		}
		if _, dup := seen[identifier]; dup {
			return
		}
		seen[identifier] = struct{}{}

		books = append(books, Book{Link: href, Title: title, Author: author})
	})

	return books, nil
}
