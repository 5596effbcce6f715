package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// document is the structured form of a ScanReport.
type document struct {
	ID           string               `json:"id" yaml:"id"`
	User         string               `json:"user" yaml:"user"`
	StartedAt    time.Time            `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time            `json:"finished_at" yaml:"finished_at"`
	Repositories orderedRepos         `json:"repositories" yaml:"repositories"`
	Failures     []domain.RepoFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Stats        domain.ScanStats     `json:"stats" yaml:"stats"`
}

func newDocument(r *domain.ScanReport) document {
	return document{
		ID:           r.ID,
		User:         r.User,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		Repositories: orderedRepos(r.Result.Repos),
		Failures:     r.Failures,
		Stats:        r.Stats,
	}
}

// orderedRepos encodes as a repository -> paths mapping in scan order.
type orderedRepos []domain.RepoMatches

// MarshalJSON writes the mapping with keys in slice order.
func (o orderedRepos) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Repo)
		if err != nil {
			return nil, err
		}
		paths := m.Paths
		if paths == nil {
			paths = []string{}
		}
		val, err := json.Marshal(paths)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML builds a mapping node with keys in slice order.
func (o orderedRepos) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, m := range o {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, p := range m.Paths {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Repo},
			seq,
		)
	}
	return node, nil
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, report *domain.ScanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(report)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML renders the report as YAML.
func WriteYAML(w io.Writer, report *domain.ScanReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(report)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
