package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/scurve/internal/app"
	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/alexanderramin/scurve/internal/repository"
	"github.com/google/uuid"
)

type progressService struct {
	services  repository.ServiceRepo
	checklist repository.ChecklistRepo
	overlays  repository.OverlayRepo
	uow       db.UnitOfWork
	loc       *time.Location
	now       func() time.Time
	observer  UseCaseObserver
}

func NewProgressService(
	services repository.ServiceRepo,
	checklist repository.ChecklistRepo,
	overlays repository.OverlayRepo,
	uow db.UnitOfWork,
	loc *time.Location,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		services:  services,
		checklist: checklist,
		overlays:  overlays,
		uow:       uow,
		loc:       loc,
		now:       time.Now,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// txRepos are the repositories a progress write touches, bound to one transaction.
type txRepos struct {
	services  repository.ServiceRepo
	checklist repository.ChecklistRepo
	events    repository.ProgressEventRepo
	overlays  repository.OverlayRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		services:  repository.NewSQLiteServiceRepo(tx),
		checklist: repository.NewSQLiteChecklistRepo(tx),
		events:    repository.NewSQLiteProgressEventRepo(tx),
		overlays:  repository.NewSQLiteOverlayRepo(tx),
	}
}

func validPercent(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0 && p <= 100
}

func (s *progressService) LogManual(ctx context.Context, req app.ManualEntryRequest) (view *app.ProgressView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"service_id": req.ServiceID, "percent": req.Percent}
	defer func() {
		if view != nil {
			fields["source"] = string(view.Source)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "progress.log_manual",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if !validPercent(req.Percent) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPercent, req.Percent)
	}

	at := s.now().UTC()
	if req.At != nil {
		at = req.At.UTC()
	}
	day := curve.DayOf(at, s.loc)
	if req.Day != nil {
		day = curve.DayOf(*req.Day, time.UTC)
	}

	eventID := uuid.New().String()
	raw := domain.RawEvent{
		"id":          eventID,
		"serviceId":   req.ServiceID,
		"workedDay":   day.Format("2006-01-02"),
		"submittedAt": at.Format(time.RFC3339Nano),
		"percent":     req.Percent,
		"mode":        string(domain.ModeManual),
	}
	if req.Author != "" {
		raw["author"] = req.Author
	}
	if req.Description != "" {
		raw["description"] = req.Description
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)
		svc, err := repos.services.GetByID(ctx, req.ServiceID)
		if err != nil {
			return err
		}
		if _, err := repos.events.Append(ctx, svc.ID, eventID, raw); err != nil {
			return err
		}

		manual := &curve.TimedPercent{Percent: req.Percent, At: at}
		if existing, err := manualOverlay(ctx, repos.overlays, svc.ID); err != nil {
			return err
		} else if existing != nil && existing.At.After(at) {
			manual = existing
		}

		view, err = reconcileAndStore(ctx, repos, svc, manual)
		return err
	})
	if err != nil {
		return nil, err
	}
	view.EventID = eventID
	return view, nil
}

func (s *progressService) SetChecklistItem(ctx context.Context, serviceID, itemID string, progress float64) (view *app.ProgressView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"service_id": serviceID, "item_id": itemID, "progress": progress}
	defer func() {
		if view != nil {
			fields["source"] = string(view.Source)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "progress.set_checklist_item",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if !validPercent(progress) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPercent, progress)
	}
	now := s.now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)
		svc, err := repos.services.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}
		item, err := repos.checklist.Get(ctx, serviceID, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w %q on service %s", ErrUnknownChecklistItem, itemID, serviceID)
			}
			return err
		}
		item.Progress = progress
		item.UpdatedAt = now
		if err := repos.checklist.Upsert(ctx, item); err != nil {
			return err
		}

		items, err := repos.checklist.ListByService(ctx, serviceID)
		if err != nil {
			return err
		}
		// Every checklist mutation is also a dated snapshot so the realized curve sees it.
		snapshot := make(map[string]any, len(items))
		for _, it := range items {
			snapshot[it.ID] = it.Progress
		}
		eventID := uuid.New().String()
		raw := domain.RawEvent{
			"id":          eventID,
			"serviceId":   serviceID,
			"workedDay":   curve.DayOf(now, s.loc).Format("2006-01-02"),
			"submittedAt": now.Format(time.RFC3339Nano),
			"items":       snapshot,
			"mode":        string(domain.ModeChecklist),
		}
		if _, err := repos.events.Append(ctx, serviceID, eventID, raw); err != nil {
			return err
		}

		manual, err := manualOverlay(ctx, repos.overlays, serviceID)
		if err != nil {
			return err
		}
		view, err = reconcileAndStore(ctx, repos, svc, manual)
		if view != nil {
			view.EventID = eventID
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *progressService) Current(ctx context.Context, serviceID string) (*app.ProgressView, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	items, err := s.checklist.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	manual, err := manualOverlay(ctx, s.overlays, serviceID)
	if err != nil {
		return nil, err
	}
	checklist := checklistState(items)
	rec := curve.Reconcile(checklist, manual)
	return progressView(svc, items, checklist, rec), nil
}

// manualOverlay returns the stored manual entry, or nil when there is none.
func manualOverlay(ctx context.Context, overlays repository.OverlayRepo, serviceID string) (*curve.TimedPercent, error) {
	o, err := overlays.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if o.Source != domain.SourceManual {
		return nil, nil
	}
	return &curve.TimedPercent{Percent: o.Percent, At: o.RecordedAt}, nil
}

func checklistState(items []domain.ChecklistItem) curve.TimedPercent {
	var at time.Time
	for _, it := range items {
		at = domain.LaterTime(at, it.UpdatedAt)
	}
	return curve.TimedPercent{Percent: curve.ChecklistProgress(items), At: at}
}

// reconcileAndStore keeps the overlay only while the manual entry wins.
func reconcileAndStore(ctx context.Context, repos txRepos, svc *domain.Service, manual *curve.TimedPercent) (*app.ProgressView, error) {
	items, err := repos.checklist.ListByService(ctx, svc.ID)
	if err != nil {
		return nil, err
	}
	checklist := checklistState(items)
	rec := curve.Reconcile(checklist, manual)

	if rec.ManualOverride {
		err = repos.overlays.Upsert(ctx, &domain.ProgressOverlay{
			ServiceID:  svc.ID,
			Percent:    rec.Percent,
			Source:     domain.SourceManual,
			RecordedAt: rec.At,
		})
	} else {
		err = repos.overlays.Delete(ctx, svc.ID)
	}
	if err != nil {
		return nil, err
	}
	return progressView(svc, items, checklist, rec), nil
}

func progressView(svc *domain.Service, items []domain.ChecklistItem, checklist curve.TimedPercent, rec curve.Reconciliation) *app.ProgressView {
	view := &app.ProgressView{
		ServiceID:        svc.ID,
		ServiceName:      svc.Name,
		Percent:          rec.Percent,
		Source:           rec.Source,
		At:               rec.At,
		ChecklistPercent: checklist.Percent,
		Items:            items,
	}
	if rec.ManualOverride {
		view.Overlay = &domain.ProgressOverlay{
			ServiceID:  svc.ID,
			Percent:    rec.Percent,
			Source:     domain.SourceManual,
			RecordedAt: rec.At,
		}
	}
	return view
}
