package app

import "github.com/alexanderramin/scurve/internal/domain"

// PackageSummary is one row of the package listing.
type PackageSummary struct {
	Package         domain.Package
	SubpackageCount int
	ServiceCount    int
	TotalHours      float64
}

// PackageTree is a package with its subpackages and their services in
// display order, each service carrying its reconciled progress.
type PackageTree struct {
	Package     domain.Package
	TotalHours  float64
	Subpackages []SubpackageNode
}

type SubpackageNode struct {
	Subpackage domain.Subpackage
	TotalHours float64
	Services   []ServiceNode
}

type ServiceNode struct {
	Service        domain.Service
	ChecklistCount int
	Percent        float64
	Source         domain.ProgressSource
}
