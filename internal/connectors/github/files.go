package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/logger"
)

// ListFiles returns the blob entries of the recursive tree at branch.
func (c *Client) ListFiles(ctx context.Context, owner, repo, branch string) ([]domain.FileEntry, error) {
	resp, err := c.Get(ctx, c.cfg.Endpoints.Tree(owner, repo, branch))
	if err != nil {
		return nil, fmt.Errorf("get tree %s/%s@%s: %w", owner, repo, branch, err)
	}

	var tree gh.Tree
	if err := json.Unmarshal(resp.Body, &tree); err != nil {
		return nil, fmt.Errorf("%w: decode tree %s/%s: %v", ErrUnexpectedResponse, owner, repo, err)
	}
	if tree.GetTruncated() {
		logger.Warn("tree for %s/%s@%s is truncated, some files are not listed", owner, repo, branch)
	}

	files := make([]domain.FileEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != string(domain.EntryBlob) {
			continue
		}
		files = append(files, domain.FileEntry{
			Path: entry.GetPath(),
			Kind: domain.EntryBlob,
			Size: entry.GetSize(),
			SHA:  entry.GetSHA(),
		})
	}
	return files, nil
}

// FetchContent returns the decoded text of a file at branch. Directories,
// non-base64 encodings and undecodable payloads yield nil content.
func (c *Client) FetchContent(ctx context.Context, owner, repo, path, branch string) (*domain.FileContent, error) {
	resp, err := c.Get(ctx, c.cfg.Endpoints.Contents(owner, repo, path, branch))
	if err != nil {
		return nil, fmt.Errorf("get contents %s/%s/%s: %w", owner, repo, path, err)
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) > 0 && body[0] == '[' {
		logger.Debug("%s/%s/%s is a directory", owner, repo, path)
		return nil, nil
	}

	var content gh.RepositoryContent
	if err := json.Unmarshal(body, &content); err != nil {
		return nil, fmt.Errorf("%w: decode contents %s: %v", ErrUnexpectedResponse, path, err)
	}
	if content.GetEncoding() != "base64" {
		logger.Debug("%s/%s/%s has encoding %q, skipping", owner, repo, path, content.GetEncoding())
		return nil, nil
	}

	decoded, err := content.GetContent()
	if err != nil {
		logger.Debug("%s/%s/%s: decode content: %v", owner, repo, path, err)
		return nil, nil
	}

	return &domain.FileContent{
		Path: path,
		Text: strings.ToValidUTF8(decoded, "\uFFFD"),
		Raw:  []byte(decoded),
	}, nil
}
