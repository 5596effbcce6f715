package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// WriteText renders a human-readable report.
func WriteText(w io.Writer, report *domain.ScanReport, styles *Styles) error {
	if styles == nil {
		styles = NewStyles(w, nil)
	}

	var b strings.Builder

	result := &report.Result
	if result.Len() == 0 {
		fmt.Fprintln(&b, styles.Title.Render(fmt.Sprintf("No translation files found for %s", report.User)))
	} else {
		fmt.Fprintln(&b, styles.Title.Render(fmt.Sprintf("Translation files for %s (%s, %s)",
			report.User,
			plural(result.Len(), "repository", "repositories"),
			plural(result.TotalFiles(), "file", "files"))))
	}

	for _, m := range result.Repos {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, styles.Repo.Render(m.Repo))
		for _, p := range m.Paths {
			fmt.Fprintln(&b, styles.Path.Render(p))
		}
	}

	if len(report.Failures) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, styles.Error.Render("Failed repositories"))
		for _, f := range report.Failures {
			fmt.Fprintln(&b, styles.Path.Render(fmt.Sprintf("%s: %s", f.Repo, f.Message)))
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, styles.Muted.Render(fmt.Sprintf("Scanned %s, %s, %s in %s",
		plural(report.Stats.Repositories, "repository", "repositories"),
		plural(report.Stats.FilesListed, "file", "files"),
		plural(report.Stats.Candidates, "candidate", "candidates"),
		report.Duration().Round(time.Millisecond))))

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
