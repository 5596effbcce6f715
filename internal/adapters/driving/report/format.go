package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, json or yaml)", domain.ErrInvalidInput, s)
	}
}

// Write renders report to w in the given format.
func Write(w io.Writer, format Format, report *domain.ScanReport) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", domain.ErrInvalidInput)
	}
	switch format {
	case FormatText, "":
		return WriteText(w, report, NewStyles(w, nil))
	case FormatJSON:
		return WriteJSON(w, report)
	case FormatYAML:
		return WriteYAML(w, report)
	default:
		return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
	}
}

// WriteLines writes one value per line.
func WriteLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
