package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/apiclient"
	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/mapview"
)

// scriptedToolkit - инструмент рисования для терминала: фигуры приходят из флагов
type scriptedToolkit struct {
	mu      sync.Mutex
	handler func(mapview.ShapeEvent)
	removed []string
}

func (t *scriptedToolkit) Attach(handler func(mapview.ShapeEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
}

func (t *scriptedToolkit) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = nil
}

func (t *scriptedToolkit) Remove(shapeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removed = append(t.removed, shapeID)
}

func (t *scriptedToolkit) emit(ev mapview.ShapeEvent) bool {
	t.mu.Lock()
	handler := t.handler
	t.mu.Unlock()
	if handler == nil {
		return false
	}
	handler(ev)
	return true
}

// zoneUploader сохраняет нарисованную зону на сервере
type zoneUploader struct {
	ctx       context.Context
	client    *apiclient.Client
	companyID uuid.UUID
	label     string
	log       *logrus.Logger

	called bool
	err    error
}

func (u *zoneUploader) OnZoneDrawn(zone geo.Geometry) {
	u.save(&zone)
}

func (u *zoneUploader) OnZoneCleared() {
	u.save(nil)
}

func (u *zoneUploader) save(zone *geo.Geometry) {
	u.called = true
	company, err := u.client.UpdateSafeZone(u.ctx, u.companyID, zone, u.label)
	if err != nil {
		u.err = err
		return
	}
	u.log.WithFields(logrus.Fields{
		"company_id": company.ID,
		"cleared":    zone == nil,
	}).Info("Safe zone saved")
}

// runZone рисует, очищает зону компании или ищет место на карте
func (a *app) runZone(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("zone", flag.ContinueOnError)
	companyFlag := fs.String("company", uuidFlag(a.cfg.CompanyID), "company whose zone is edited")
	rect := fs.String("rect", "", "rectangle zone as \"south,west,north,east\"")
	polygon := fs.String("polygon", "", "polygon zone as \"lat,lng;lat,lng;...\"")
	clearZone := fs.Bool("clear", false, "remove the safe zone")
	label := fs.String("label", "", "zone label (default: keep current)")
	search := fs.String("search", "", "find a known zone or a place and print the map view")
	if err := fs.Parse(args); err != nil {
		return err
	}

	companyID, err := parseOptionalUUID(*companyFlag)
	if err != nil {
		return fmt.Errorf("invalid -company: %w", err)
	}
	if companyID == uuid.Nil {
		return errors.New("-company is required")
	}

	shapes := 0
	for _, set := range []bool{*rect != "", *polygon != "", *clearZone} {
		if set {
			shapes++
		}
	}
	if shapes > 1 {
		return errors.New("use only one of -rect, -polygon and -clear")
	}

	company, err := a.client.Company(ctx, companyID)
	if err != nil {
		return err
	}
	if *label == "" {
		*label = company.SafeZoneLabel
	}

	toolkit := &scriptedToolkit{}
	uploader := &zoneUploader{ctx: ctx, client: a.client, companyID: companyID, label: *label, log: a.log}
	surface := mapview.NewSurface(mapview.Options{
		Mode:     mapview.Editable,
		TileURL:  a.cfg.TileURL,
		Geocoder: mapview.NewNominatim(a.cfg.GeocoderURL, a.cfg.UserAgent, a.cfg.RequestTimeout),
		Toolkit:  toolkit,
		Listener: uploader,
	}, a.log)
	defer surface.Close()

	surface.SetZone(companyID.String(), company.Zone())

	if *search != "" {
		a.loadKnownZones(ctx, surface)
		res, err := surface.Search(ctx, *search)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s (%s)\n", res.Name, res.Source)
		printView(os.Stdout, surface)
	}

	var ev *mapview.ShapeEvent
	switch {
	case *rect != "":
		b, err := parseBounds(*rect)
		if err != nil {
			return err
		}
		ev = &mapview.ShapeEvent{
			Kind:    mapview.ShapeCreated,
			Shape:   mapview.ShapeRectangle,
			ShapeID: "cli-rect",
			LatLngs: []geo.AppCoordinate{{Lat: b.South, Lng: b.West}, {Lat: b.North, Lng: b.East}},
		}
	case *polygon != "":
		pts, err := parseLatLngList(*polygon)
		if err != nil {
			return err
		}
		ev = &mapview.ShapeEvent{Kind: mapview.ShapeCreated, Shape: mapview.ShapePolygon, ShapeID: "cli-polygon", LatLngs: pts}
	case *clearZone:
		ev = &mapview.ShapeEvent{Kind: mapview.ShapeDeleted}
	}
	if ev == nil {
		if *search == "" {
			printZone(os.Stdout, surface)
		}
		return nil
	}

	if ev.Kind == mapview.ShapeCreated {
		if _, err := mapview.ShapeGeometry(ev.Shape, ev.LatLngs); err != nil {
			return err
		}
	}
	toolkit.emit(*ev)
	if uploader.err != nil {
		return uploader.err
	}
	if !uploader.called {
		return errors.New("zone was not changed")
	}
	printZone(os.Stdout, surface)
	return nil
}

// loadKnownZones - зоны всех компаний для поиска по названию
func (a *app) loadKnownZones(ctx context.Context, surface *mapview.Surface) {
	companies, err := a.client.Companies(ctx)
	if err != nil {
		a.log.WithError(err).Warn("Company list unavailable, searching places only")
		return
	}
	known := make([]mapview.NamedZone, 0, len(companies))
	for i := range companies {
		zone := companies[i].Zone()
		if !zone.Restricts() {
			continue
		}
		known = append(known, mapview.NamedZone{Name: companies[i].Name, Zone: zone})
	}
	surface.SetKnownZones(known)
}

func printZone(w io.Writer, surface *mapview.Surface) {
	layer := surface.ZoneLayer()
	if layer == nil {
		fmt.Fprintln(w, "no safe zone: time-in is allowed anywhere")
		return
	}
	name := layer.Label
	if name == "" {
		name = "safe zone"
	}
	fmt.Fprintf(w, "%s:\n", name)
	for _, c := range layer.Ring {
		fmt.Fprintf(w, "  %s\n", c)
	}
	printView(w, surface)
}

func printView(w io.Writer, surface *mapview.Surface) {
	v := surface.View()
	fmt.Fprintf(w, "view: center %s, zoom %d\n", v.Center, v.Zoom)
	for _, u := range surface.TileURLs() {
		fmt.Fprintf(w, "  %s\n", u)
	}
}
