package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mouxlas21/football-db/internal/usecase"
)

const maxPrintedRowErrors = 5

var (
	okLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel = color.New(color.FgYellow).SprintFunc()
	dimLabel  = color.New(color.Faint).SprintFunc()
)

func renderPlan(w io.Writer, items []usecase.PlanItem, withRows bool) {
	if len(items) == 0 {
		return
	}

	header := []string{"#", "Phase", "Entity", "File"}
	if withRows {
		header = append(header, "Rows")
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	for i, item := range items {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(item.Phase),
			item.Entity.String(),
			item.Path,
		}
		if withRows {
			rows := "?"
			if item.Rows != nil {
				rows = strconv.Itoa(*item.Rows)
			}
			row = append(row, rows)
		}
		table.Append(row)
	}
	table.Render()
}

func renderUnrecognized(w io.Writer, paths []string) {
	for _, path := range paths {
		fmt.Fprintf(w, "%s %s\n", warnLabel("skipped"), path)
	}
}

func renderMessage(w io.Writer, msg string) {
	if msg != "" {
		fmt.Fprintln(w, warnLabel(msg))
	}
}

func renderSummary(w io.Writer, summary usecase.RunSummary) {
	renderMessage(w, summary.Message)

	for _, r := range summary.Results {
		name := filepath.Base(r.Path)
		if !r.OK {
			fmt.Fprintf(w, "%s %-12s %s: %s\n", failLabel("FAIL"), r.Entity.String(), name, r.Error)
			continue
		}
		fmt.Fprintf(w, "%s %-12s %s inserted=%d updated=%d skipped=%d\n",
			okLabel("OK  "), r.Entity.String(), name, r.Inserted, r.Updated, r.Skipped)
		for i, rowErr := range r.Errors {
			if i == maxPrintedRowErrors {
				fmt.Fprintf(w, "     %s\n", dimLabel(fmt.Sprintf("... %d more row errors", len(r.Errors)-maxPrintedRowErrors)))
				break
			}
			fmt.Fprintf(w, "     %s\n", dimLabel(rowErr))
		}
	}

	status := okLabel("ok")
	if !summary.OK {
		status = failLabel("failed")
	}
	fmt.Fprintf(w, "run %s %s (%d files, %s)\n", summary.RunID, status, len(summary.Results), summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
}

func renderTeamSync(w io.Writer, result usecase.TeamSyncResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Teams", "Created", "Renamed"})
	table.Append([]string{"club", strconv.Itoa(result.ClubTeamsCreated), strconv.Itoa(result.ClubTeamsRenamed)})
	table.Append([]string{"national", strconv.Itoa(result.NationalTeamsCreated), strconv.Itoa(result.NationalTeamsRenamed)})
	table.Render()
}
