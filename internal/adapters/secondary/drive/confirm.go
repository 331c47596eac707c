package drive

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// confirmURL extracts the real download link from the host's "file too large
// to scan for viruses" page. Newer pages carry a GET form with hidden inputs,
// older ones a plain anchor.
func confirmURL(resp *http.Response, fileID string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse confirmation page: %w", err)
	}
	base := resp.Request.URL

	if form := doc.Find("form#download-form").First(); form.Length() > 0 {
		action, ok := form.Attr("action")
		if !ok || action == "" {
			return "", errors.New("confirmation form has no action")
		}
		target, err := base.Parse(action)
		if err != nil {
			return "", fmt.Errorf("confirmation form action: %w", err)
		}
		q := target.Query()
		form.Find(`input[type="hidden"]`).Each(func(_ int, in *goquery.Selection) {
			name, _ := in.Attr("name")
			value, _ := in.Attr("value")
			if name != "" {
				q.Set(name, value)
			}
		})
		if q.Get("id") == "" {
			q.Set("id", fileID)
		}
		target.RawQuery = q.Encode()
		return target.String(), nil
	}

	var href string
	doc.Find("a#uc-download-link, a[href*='confirm=']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ = a.Attr("href")
		return href == ""
	})
	if href != "" {
		target, err := base.Parse(href)
		if err != nil {
			return "", fmt.Errorf("confirmation link: %w", err)
		}
		return target.String(), nil
	}

	if msg := strings.TrimSpace(doc.Find("title").First().Text()); msg != "" {
		return "", fmt.Errorf("file host returned a web page: %s", msg)
	}
	return "", errors.New("file host returned a web page without a download link")
}
