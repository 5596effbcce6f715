package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// linkRegex matches Link header entries: <url>; rel="type".
var linkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// ParseNextLink extracts the "next" URL from a Link header.
// Returns empty string if no next link is found.
func ParseNextLink(linkHeader string) string {
	return ParseAllLinks(linkHeader)["next"]
}

// ParseAllLinks extracts all URLs from a Link header by relationship type.
func ParseAllLinks(linkHeader string) map[string]string {
	links := make(map[string]string)
	if linkHeader == "" {
		return links
	}

	for _, part := range strings.Split(linkHeader, ",") {
		matches := linkRegex.FindStringSubmatch(strings.TrimSpace(part))
		if len(matches) == 3 {
			links[matches[2]] = matches[1]
		}
	}
	return links
}

// HasNextPage checks if there is a next page available.
func HasNextPage(linkHeader string) bool {
	return ParseNextLink(linkHeader) != ""
}

// PageURL returns rawURL with per_page and page set.
func PageURL(rawURL string, perPage, page int) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("per_page", strconv.Itoa(normalizePerPage(perPage)))
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ListAll fetches every page of a list endpoint and decodes each page as a
// JSON array of T. It stops at the first empty page or at the first page
// without a rel="next" link. Any failing page fails the whole listing.
func ListAll[T any](ctx context.Context, c *Client, rawURL string, perPage int) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageURL, err := PageURL(rawURL, perPage, page)
		if err != nil {
			return nil, err
		}

		resp, err := c.Get(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		var items []T
		if err := json.Unmarshal(resp.Body, &items); err != nil {
			return nil, fmt.Errorf("%w: decode page %d: %v", ErrUnexpectedResponse, page, err)
		}
		if len(items) == 0 {
			break
		}
		all = append(all, items...)

		if !HasNextPage(resp.Header.Get("Link")) {
			break
		}
	}

	return all, nil
}
