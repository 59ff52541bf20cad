package importer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/alexanderramin/scurve/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.Package.Name == "" {
		errs = append(errs, fmt.Errorf("package.name is required"))
	}

	subRefs := make(map[string]bool)
	errs = append(errs, validateSubpackages(schema.Subpackages, subRefs)...)
	errs = append(errs, validateServices(schema.Services, subRefs)...)

	return errs
}

func validateSubpackages(subs []SubpackageImport, refs map[string]bool) []error {
	var errs []error
	if len(subs) == 0 {
		errs = append(errs, fmt.Errorf("at least one subpackage is required"))
	}
	for i, sp := range subs {
		prefix := fmt.Sprintf("subpackages[%d]", i)
		if sp.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[sp.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, sp.Ref))
		} else {
			refs[sp.Ref] = true
		}
		if sp.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}
	return errs
}

func validateServices(services []ServiceImport, subRefs map[string]bool) []error {
	var errs []error
	refs := make(map[string]bool)
	for i, s := range services {
		prefix := fmt.Sprintf("services[%d]", i)
		if s.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[s.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, s.Ref))
		} else {
			refs[s.Ref] = true
		}
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if !subRefs[s.SubpackageRef] {
			errs = append(errs, fmt.Errorf("%s.subpackage_ref %q not found", prefix, s.SubpackageRef))
		}
		if s.TotalHours < 0 || math.IsNaN(s.TotalHours) || math.IsInf(s.TotalHours, 0) {
			errs = append(errs, fmt.Errorf("%s.total_hours must be a non-negative number", prefix))
		}

		start, startErr := parsePlanDate(prefix+".planned_start", s.PlannedStart)
		end, endErr := parsePlanDate(prefix+".planned_end", s.PlannedEnd)
		for _, err := range []error{startErr, endErr} {
			if err != nil {
				errs = append(errs, err)
			}
		}
		if start != nil && end != nil && end.Before(*start) {
			errs = append(errs, fmt.Errorf("%s.planned_end %q is before planned_start %q", prefix, *s.PlannedEnd, *s.PlannedStart))
		}

		for j, v := range s.PlannedDailySeries {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = append(errs, fmt.Errorf("%s.planned_daily_series[%d] must be finite", prefix, j))
			}
		}

		errs = append(errs, validateChecklist(prefix, s.Checklist)...)

		for j, r := range s.Reports {
			if mode, ok := r["mode"].(string); ok && !domain.ValidEventModes[strings.ToLower(mode)] {
				errs = append(errs, fmt.Errorf("%s.reports[%d].mode %q is not a known channel", prefix, j, mode))
			}
		}
	}
	return errs
}

func validateChecklist(prefix string, items []ChecklistImport) []error {
	var errs []error
	ids := make(map[string]bool)
	for i, c := range items {
		p := fmt.Sprintf("%s.checklist[%d]", prefix, i)
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", p))
		} else if ids[c.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", p, c.ID))
		} else {
			ids[c.ID] = true
		}
		if c.Weight < 0 || c.Weight > 100 {
			errs = append(errs, fmt.Errorf("%s.weight must be in [0, 100], got %g", p, c.Weight))
		}
		if c.Progress < 0 || c.Progress > 100 {
			errs = append(errs, fmt.Errorf("%s.progress must be in [0, 100], got %g", p, c.Progress))
		}
	}
	return errs
}

// parsePlanDate accepts any calendar-date format the temporal normalizer reads.
func parsePlanDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	day, ok := curve.NormalizeDay(*s, time.UTC)
	if !ok {
		return nil, fmt.Errorf("%s: invalid date %q", field, *s)
	}
	return &day, nil
}
