package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scurve/internal/contract"
)

// FormatPackageList renders the package listing inside a bordered box.
func FormatPackageList(rows []contract.PackageSummary) string {
	if len(rows) == 0 {
		return RenderBox("Packages", Dim("No packages yet. Run `scurve import <file>` to add one."))
	}
	headers := []string{"ID", "NAME", "SUBPACKAGES", "SERVICES", "HOURS"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			TruncID(r.Package.ID),
			Bold(r.Package.Name),
			fmt.Sprintf("%d", r.SubpackageCount),
			fmt.Sprintf("%d", r.ServiceCount),
			FormatHours(r.TotalHours),
		})
	}
	return RenderBox("Packages", RenderTableAligned(headers, cells, align))
}

// FormatPackageTree renders the package hierarchy with each service's
// reconciled progress and planned range.
func FormatPackageTree(tree *contract.PackageTree) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(tree.Package.Name) + "  " + TruncID(tree.Package.ID) + "\n")
	b.WriteString(Dim(fmt.Sprintf("%d subpackage(s), %s weighted", len(tree.Subpackages), FormatHours(tree.TotalHours))) + "\n\n")

	if len(tree.Subpackages) == 0 {
		b.WriteString(Dim("No subpackages"))
		return RenderBox("Package", b.String())
	}

	b.WriteString(RenderTree(PackageTreeItems(tree)))
	return RenderBox("Package", b.String())
}

// PackageTreeItems flattens a package tree into TreeItems.
func PackageTreeItems(tree *contract.PackageTree) []TreeItem {
	var items []TreeItem
	for i, sp := range tree.Subpackages {
		lastSub := i == len(tree.Subpackages)-1
		items = append(items, TreeItem{
			Title:  sp.Subpackage.Name,
			Level:  1,
			IsLast: lastSub && len(sp.Services) == 0,
			Detail: FormatHours(sp.TotalHours),
		})
		for j, svc := range sp.Services {
			items = append(items, TreeItem{
				Title:  svc.Service.Name,
				Code:   svc.Service.Code,
				Level:  2,
				IsLast: j == len(sp.Services)-1,
				Done:   svc.Percent >= 100,
				Detail: serviceDetail(svc),
			})
		}
	}
	return items
}

func serviceDetail(n contract.ServiceNode) string {
	s := n.Service
	return fmt.Sprintf("%s · %s..%s · %s",
		strings.TrimSpace(FormatPercent(n.Percent)),
		FormatDayPtr(s.PlannedStart), FormatDayPtr(s.PlannedEnd),
		FormatHours(s.TotalHours))
}
