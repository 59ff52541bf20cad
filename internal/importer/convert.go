package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/google/uuid"
)

// Generated holds the domain records produced from one import file.
type Generated struct {
	Package     *domain.Package
	Subpackages []*domain.Subpackage
	Services    []*domain.Service
	Checklist   []*domain.ChecklistItem
	Reports     []Report
}

// Report is a raw progress record bound to the service it belongs to.
type Report struct {
	ServiceID string
	Raw       domain.RawEvent
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*Generated, error) {
	now := time.Now().UTC()

	gen := &Generated{
		Package: &domain.Package{
			ID:        uuid.New().String(),
			Name:      schema.Package.Name,
			CreatedAt: now,
		},
	}

	subIDs := make(map[string]string) // ref -> UUID
	for _, sp := range schema.Subpackages {
		id := uuid.New().String()
		subIDs[sp.Ref] = id
		gen.Subpackages = append(gen.Subpackages, &domain.Subpackage{
			ID:         id,
			PackageID:  gen.Package.ID,
			Name:       sp.Name,
			OrderIndex: sp.Order,
			CreatedAt:  now,
		})
	}

	for _, s := range schema.Services {
		subID, ok := subIDs[s.SubpackageRef]
		if !ok {
			return nil, fmt.Errorf("subpackage_ref %q not found for service %q", s.SubpackageRef, s.Ref)
		}
		start, err := parsePlanDate("planned_start", s.PlannedStart)
		if err != nil {
			return nil, err
		}
		end, err := parsePlanDate("planned_end", s.PlannedEnd)
		if err != nil {
			return nil, err
		}

		svc := &domain.Service{
			ID:                 uuid.New().String(),
			SubpackageID:       subID,
			Code:               s.Code,
			Name:               s.Name,
			TotalHours:         s.TotalHours,
			PlannedStart:       start,
			PlannedEnd:         end,
			PlannedDailySeries: s.PlannedDailySeries,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		gen.Services = append(gen.Services, svc)

		for i, c := range s.Checklist {
			gen.Checklist = append(gen.Checklist, &domain.ChecklistItem{
				ID:         c.ID,
				ServiceID:  svc.ID,
				Title:      domain.CoalesceStr(c.Title, c.ID),
				Weight:     c.Weight,
				Progress:   c.Progress,
				OrderIndex: i,
				UpdatedAt:  now,
			})
		}

		for _, r := range s.Reports {
			gen.Reports = append(gen.Reports, Report{ServiceID: svc.ID, Raw: domain.RawEvent(r)})
		}
	}

	return gen, nil
}
