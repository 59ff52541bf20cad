package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scurve/internal/contract"
)

// FormatImportResult summarizes what an import created.
func FormatImportResult(r *contract.ImportResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ Imported ") + Bold(r.Package.Name) + "  " + TruncID(r.Package.ID) + "\n\n")
	row := func(label string, n int) {
		b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render(label), n))
	}
	row("SUBPACKAGES", r.SubpackageCount)
	row("SERVICES   ", r.ServiceCount)
	row("CHECKLIST  ", r.ChecklistCount)
	row("REPORTS    ", r.ReportCount)
	return RenderBox("Import", b.String())
}
