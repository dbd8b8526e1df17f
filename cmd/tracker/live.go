package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/shenikar/ojt_tracker/internal/liveview"
	"github.com/shenikar/ojt_tracker/internal/mapview"
)

// snapshotter - общий интерфейс живой карты компании и карточки стажера
type snapshotter interface {
	Snapshot(now time.Time) liveview.View
}

// runLive следит за стажерами компании; опрос сервера идет раз в POLL_INTERVAL
func (a *app) runLive(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("live", flag.ContinueOnError)
	companyFlag := fs.String("company", uuidFlag(a.cfg.CompanyID), "company to follow (default: first company)")
	subjectFlag := fs.String("subject", "", "follow a single student of the company")
	once := fs.Bool("once", false, "print one snapshot and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	companyID, err := parseOptionalUUID(*companyFlag)
	if err != nil {
		return fmt.Errorf("invalid -company: %w", err)
	}
	subjectID, err := parseOptionalUUID(*subjectFlag)
	if err != nil {
		return fmt.Errorf("invalid -subject: %w", err)
	}

	clock := clockwork.NewRealClock()
	viewer := liveview.NewViewer(a.client, clock, a.log, liveview.Options{PollInterval: a.cfg.PollInterval})

	var (
		source  snapshotter
		closeFn func()
	)
	if subjectID != uuid.Nil {
		if companyID == uuid.Nil {
			return fmt.Errorf("-subject requires -company")
		}
		modal := liveview.NewSubjectModal(viewer)
		modal.Open(ctx, companyID, subjectID)
		source, closeFn = modal, modal.Close
	} else {
		tracker := liveview.NewTracker(viewer, a.client, a.log)
		if companyID != uuid.Nil {
			tracker.Select(ctx, companyID)
		}
		if err := tracker.Load(ctx); err != nil {
			a.log.WithError(err).Warn("Company list unavailable")
		}
		source, closeFn = tracker, tracker.Close
	}
	defer closeFn()

	surface := mapview.NewSurface(mapview.Options{
		Mode:      mapview.ReadOnly,
		TileURL:   a.cfg.TileURL,
		ShowLabel: true,
	}, a.log)
	defer surface.Close()

	// Первый снимок печатается после первого опроса
	if err := viewer.Refresh(ctx); err != nil {
		a.log.WithError(err).Warn("Initial refresh failed")
	}

	ticker := clock.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()
	for {
		renderLive(os.Stdout, surface, source.Snapshot(clock.Now()))
		if *once {
			return nil
		}
		fmt.Fprintln(os.Stdout)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}

func renderLive(w io.Writer, surface *mapview.Surface, view liveview.View) {
	surface.SetZone(view.CompanyID.String(), view.Zone)
	markers := make([]mapview.Marker, len(view.Markers))
	for i, m := range view.Markers {
		markers[i] = mapview.Marker{
			ID:       m.SubjectID.String(),
			Position: m.Position,
			Title:    m.Name,
			Popup:    m.Staleness,
		}
	}
	surface.SetMarkers(markers)

	name := view.CompanyName
	if name == "" {
		name = view.CompanyID.String()
	}
	fmt.Fprintf(w, "%s: %d of %d students located\n", name, view.Located, view.Total)
	if layer := surface.ZoneLayer(); layer != nil {
		fmt.Fprintf(w, "  zone %q, %d corners\n", layer.Label, len(layer.Ring)-1)
	}
	for _, m := range view.Markers {
		stale := ""
		if m.Stale {
			stale = " (stale)"
		}
		fmt.Fprintf(w, "  %-24s %s  %s%s\n", m.Name, m.Position, m.Staleness, stale)
	}
	if !view.LastUpdated.IsZero() {
		fmt.Fprintf(w, "  refreshed %s\n", view.LastUpdated.Local().Format("15:04:05"))
	}
}
