package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scurve/internal/contract"
)

// FormatProgress renders the reconciled progress of a service with its checklist.
func FormatProgress(v *contract.ProgressView) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(v.ServiceName) + "  " + TruncID(v.ServiceID) + "\n\n")
	b.WriteString(RenderProgress(v.Percent, 24) + "  " + SourceBadge(v.Source) + "\n")
	if !v.At.IsZero() {
		b.WriteString(Dim("as of "+v.At.UTC().Format("2006-01-02 15:04 MST")) + "\n")
	}
	if v.Overlay != nil {
		b.WriteString(Dim(fmt.Sprintf("manual entry overrides checklist (%s)", strings.TrimSpace(FormatPercent(v.ChecklistPercent)))) + "\n")
	}

	if len(v.Items) > 0 {
		b.WriteString("\n")
		headers := []string{"ITEM", "TITLE", "WEIGHT", "PROGRESS"}
		align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft}
		rows := make([][]string, 0, len(v.Items))
		for _, it := range v.Items {
			rows = append(rows, []string{
				StyleDim.Render(it.ID),
				it.Title,
				fmt.Sprintf("%.0f", it.Weight),
				RenderProgress(it.Progress, 10),
			})
		}
		b.WriteString(RenderTableAligned(headers, rows, align))
	}

	if v.EventID != "" {
		b.WriteString("\n" + Dim("recorded event "+v.EventID) + "\n")
	}

	return RenderBox("Progress", b.String())
}
