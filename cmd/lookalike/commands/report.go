package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/ui/style"
)

// printReport writes the scan outcome to w, as human-readable text or as
// JSON.
func printReport(w io.Writer, result *domain.ScanResult, asJSON bool) error {
	if asJSON {
		return printJSON(w, result)
	}
	printText(w, result)
	return nil
}

// printText renders the duplicate groups with the representative first and
// every other member annotated with its distance from it.
func printText(w io.Writer, result *domain.ScanResult) {
	// termenv picks colors only when w is a terminal, so piped reports stay
	// plain.
	out := termenv.NewOutput(w)

	if len(result.Groups) == 0 {
		_, _ = fmt.Fprintf(w, "No duplicates found among %d image(s).\n", result.Stats.Candidates)
	} else {
		header := fmt.Sprintf("Found %d duplicate group(s):", len(result.Groups))
		_, _ = fmt.Fprintln(w, out.String(header).Bold().String())

		for i, group := range result.Groups {
			_, _ = fmt.Fprintf(w, "\nGroup %d (%d images):\n", i+1, group.Len())
			for j, member := range group.Members {
				if j == 0 {
					_, _ = fmt.Fprintf(w, "  %s\n", member.Record.Path)
					continue
				}
				annotation := out.String(fmt.Sprintf("(distance %d)", member.Distance)).Faint().String()
				_, _ = fmt.Fprintf(w, "  %s %s\n", member.Record.Path, annotation)
			}
		}
	}

	if len(result.Issues) > 0 {
		symbol := out.String(style.Warning).Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(w, "\n%s Skipped %d file(s):\n", symbol, len(result.Issues))
		for _, issue := range result.Issues {
			_, _ = fmt.Fprintf(w, "  %s: %v\n", issue.Path, issue.Err)
		}
	}

	stats := result.Stats
	_, _ = fmt.Fprintf(w, "\nScanned %d image(s) in %s: %d cached, %d computed, %d failed.\n",
		stats.Candidates, stats.Elapsed.Round(time.Millisecond),
		stats.CacheHits, stats.Computed, stats.Failures)
}

type jsonMember struct {
	Path     string `json:"path"`
	Distance int    `json:"distance"`
}

type jsonGroup struct {
	Representative string       `json:"representative"`
	Members        []jsonMember `json:"members"`
}

type jsonIssue struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonStats struct {
	Candidates int   `json:"candidates"`
	CacheHits  int   `json:"cache_hits"`
	Computed   int   `json:"computed"`
	Failures   int   `json:"failures"`
	Duplicates int   `json:"duplicates"`
	ElapsedMS  int64 `json:"elapsed_ms"`
}

type jsonReport struct {
	Groups []jsonGroup `json:"groups"`
	Issues []jsonIssue `json:"issues,omitempty"`
	Stats  jsonStats   `json:"stats"`
}

func printJSON(w io.Writer, result *domain.ScanResult) error {
	report := jsonReport{
		Groups: make([]jsonGroup, 0, len(result.Groups)),
		Stats: jsonStats{
			Candidates: result.Stats.Candidates,
			CacheHits:  result.Stats.CacheHits,
			Computed:   result.Stats.Computed,
			Failures:   result.Stats.Failures,
			Duplicates: result.Stats.Duplicates,
			ElapsedMS:  result.Stats.Elapsed.Milliseconds(),
		},
	}

	for _, group := range result.Groups {
		members := make([]jsonMember, 0, group.Len())
		for _, member := range group.Members {
			members = append(members, jsonMember{
				Path:     member.Record.Path,
				Distance: member.Distance,
			})
		}
		report.Groups = append(report.Groups, jsonGroup{
			Representative: group.Representative().Path,
			Members:        members,
		})
	}

	for _, issue := range result.Issues {
		report.Issues = append(report.Issues, jsonIssue{
			Path:  issue.Path,
			Error: issue.Err.Error(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
