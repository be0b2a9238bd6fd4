package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/backmassage/m4v2mkv/internal/planner"
)

// RenderPlan prints the dry-run view of a multiplex plan: one table row per
// track group, the global tag summary, and the full mkvmerge argv.
func RenderPlan(w io.Writer, plan *planner.Plan, argv []string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Type", "Codec", "Language", "Title", "Flags", "Source"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})

	for _, t := range plan.Tracks {
		source := "main"
		if t.ExtractedPath != "" {
			source = "srt extract"
		}
		tw.AppendRow(table.Row{
			t.SourceIndex,
			string(t.Type),
			t.Codec,
			t.Language,
			t.Title,
			trackFlags(t),
			source,
		})
	}
	tw.Render()

	fmt.Fprintf(w, "Global tags: %d", len(plan.GlobalTags))
	if title, ok := plan.GlobalTags["title"]; ok {
		fmt.Fprintf(w, " (title=%q)", title)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Chapters:    %d\n", plan.ChapterCount)
	fmt.Fprintf(w, "Destination: %s\n", plan.OutputPath)
	fmt.Fprintf(w, "\nmkvmerge %s\n", strings.Join(argv, " "))
}

func trackFlags(t planner.TrackPlan) string {
	var flags []string
	if t.Default {
		flags = append(flags, "default")
	}
	if t.Forced {
		flags = append(flags, "forced")
	}
	if len(t.Tags) > 0 {
		flags = append(flags, fmt.Sprintf("%d tags", len(t.Tags)))
	}
	return strings.Join(flags, ", ")
}
