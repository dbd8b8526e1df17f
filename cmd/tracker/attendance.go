package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/gate"
	"github.com/shenikar/ojt_tracker/internal/mapview"
	"github.com/shenikar/ojt_tracker/internal/models"
	"github.com/shenikar/ojt_tracker/internal/sampler"
)

// session - смонтированный гейт и карта стажера
type session struct {
	gate    *gate.Gate
	cell    *sampler.Cell
	surface *mapview.Surface
	company uuid.UUID
}

// mountSession монтирует гейт. Без requireFix (уход) сессия работает и без источника координат.
func (a *app) mountSession(ctx context.Context, name string, args []string, requireFix bool) (*session, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var loc locationFlags
	loc.register(fs, a.cfg.GPSTimeout, a.cfg.GPSMaxAge)
	companyID := fs.String("company", uuidFlag(a.cfg.CompanyID), "company whose safe zone gates time-in")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	company, err := parseOptionalUUID(*companyID)
	if err != nil {
		return nil, fmt.Errorf("invalid -company: %w", err)
	}

	clock := clockwork.NewRealClock()
	provider, err := loc.provider(clock)
	if err != nil {
		if requireFix || !errors.Is(err, errNoProvider) {
			return nil, err
		}
		provider = sampler.UnsupportedProvider{}
	}

	cell := sampler.NewCell()
	s := sampler.New(provider, loc.options(), cell, clock, a.log)
	g := gate.New(a.client, a.client, s, clock, a.log, gate.Options{
		CompanyID:         company,
		BroadcastInterval: a.cfg.BroadcastInterval,
		Location:          a.cfg.Timezone,
	})

	if err := g.Mount(ctx); err != nil {
		a.log.WithError(err).Warn("Continuing with partial data")
	}

	surface := mapview.NewSurface(mapview.Options{
		Mode:      mapview.ReadOnly,
		TileURL:   a.cfg.TileURL,
		ShowLabel: true,
	}, a.log)

	sess := &session{gate: g, cell: cell, surface: surface, company: company}
	if err := sess.waitForFix(ctx, loc.timeout); err != nil {
		if requireFix {
			sess.close()
			return nil, err
		}
		a.log.WithError(err).Warn("Continuing without location")
	}
	return sess, nil
}

func (s *session) close() {
	s.gate.Unmount()
	s.surface.Close()
}

// waitForFix ждет первую отметку сэмплера или ошибку геолокации
func (s *session) waitForFix(ctx context.Context, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	poll := time.NewTicker(250 * time.Millisecond)
	defer poll.Stop()

	for {
		st := s.gate.Status()
		if st.Sample != nil {
			return nil
		}
		if st.LocationError != "" {
			return errors.New(st.LocationError)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return errors.New(gate.UserMessage(gate.ErrNoLocation))
		case <-s.cell.Changed():
		case <-poll.C:
		}
	}
}

// render обновляет карту по статусу и печатает его
func (s *session) render(w io.Writer) {
	st := s.gate.Status()
	s.surface.SetZone(s.company.String(), s.gate.Zone())
	if st.Sample != nil {
		c := st.Sample.Coordinate()
		s.surface.SetUserLocation(&c)
	}
	printStatus(w, st, s.surface)
}

func printStatus(w io.Writer, st gate.Status, surface *mapview.Surface) {
	fmt.Fprintf(w, "state:    %s\n", st.State)
	if st.Record != nil {
		fmt.Fprintf(w, "record:   %s %s\n", st.Record.Date, recordTimes(st.Record))
	}
	if st.Sample != nil {
		fmt.Fprintf(w, "location: %s", st.Sample.Coordinate())
		if st.Sample.Accuracy != nil {
			fmt.Fprintf(w, " ±%.0fm", *st.Sample.Accuracy)
		}
		fmt.Fprintln(w)
	}
	switch {
	case !st.ZoneRestricted:
		fmt.Fprintln(w, "zone:     none (time-in allowed anywhere)")
	case st.InsideZone:
		fmt.Fprintf(w, "zone:     inside %q\n", st.ZoneLabel)
	default:
		fmt.Fprintf(w, "zone:     outside %q\n", st.ZoneLabel)
	}
	if layer := surface.ZoneLayer(); layer != nil {
		fmt.Fprintf(w, "outline:  %d corners, color %s\n", len(layer.Ring)-1, layer.Style.Color)
	}
	view := surface.View()
	fmt.Fprintf(w, "map:      center %s zoom %d, %d tiles\n", view.Center, view.Zoom, len(surface.TileURLs()))
	if st.LocationError != "" {
		fmt.Fprintf(w, "gps:      %s\n", st.LocationError)
	}
	if st.LastError != "" {
		fmt.Fprintf(w, "error:    %s\n", st.LastError)
	}
}

func recordTimes(rec *models.AttendanceRecord) string {
	in, out := "-", "-"
	if rec.TimeIn != nil {
		in = rec.TimeIn.Local().Format("15:04:05")
	}
	if rec.TimeOut != nil {
		out = rec.TimeOut.Local().Format("15:04:05")
	}
	return fmt.Sprintf("in %s out %s", in, out)
}

func (a *app) runTimeIn(ctx context.Context, args []string) error {
	sess, err := a.mountSession(ctx, "timein", args, true)
	if err != nil {
		return err
	}
	defer sess.close()

	_, err = sess.gate.TimeIn(ctx)
	sess.render(os.Stdout)
	if err != nil {
		return errors.New(gate.UserMessage(err))
	}
	fmt.Fprintln(os.Stdout, "Timed in.")
	return nil
}

func (a *app) runTimeOut(ctx context.Context, args []string) error {
	sess, err := a.mountSession(ctx, "timeout", args, false)
	if err != nil {
		return err
	}
	defer sess.close()

	_, err = sess.gate.TimeOut(ctx)
	sess.render(os.Stdout)
	if err != nil {
		return errors.New(gate.UserMessage(err))
	}
	fmt.Fprintln(os.Stdout, "Timed out.")
	return nil
}

// runWatch держит гейт смонтированным: точка уходит на сервер каждые BROADCAST_INTERVAL.
// Enter или SIGHUP - действие "Retry GPS".
func (a *app) runWatch(ctx context.Context, args []string) error {
	sess, err := a.mountSession(ctx, "watch", args, true)
	if err != nil {
		return err
	}
	defer sess.close()

	retries := retryRequests(ctx, os.Stdin)
	fmt.Fprintln(os.Stderr, "press Enter to retry GPS")

	ticker := time.NewTicker(a.cfg.BroadcastInterval)
	defer ticker.Stop()
	for {
		sess.render(os.Stdout)
		fmt.Fprintln(os.Stdout)
		select {
		case <-ctx.Done():
			return nil
		case <-retries:
			retryGPS(sess.gate, a.log)
		case <-ticker.C:
		}
	}
}

// gpsRetrier - действие пользователя "Retry GPS"
type gpsRetrier interface {
	RetryGPS() error
}

func retryGPS(g gpsRetrier, log *logrus.Logger) {
	if err := g.RetryGPS(); err != nil {
		log.WithError(err).Warn("GPS retry failed")
		return
	}
	log.Info("GPS restarted")
}

// retryRequests превращает строки ввода и SIGHUP в запросы повтора; лишние запросы схлопываются
func retryRequests(ctx context.Context, in io.Reader) <-chan struct{} {
	out := make(chan struct{}, 1)
	request := func() {
		select {
		case out <- struct{}{}:
		default:
		}
	}

	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			request()
		}
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				request()
			}
		}
	}()
	return out
}

func uuidFlag(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
