// Package address resolves the address under the map pin while the user
// drags it. Lookups are best-effort enrichment: only a pin position that
// rested for the debounce window is geocoded, and failures surface through
// the picker's alert feed.
package address

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/navkit/pkg/navkit/alert"
	"github.com/BrandonKowalski/navkit/pkg/navkit/constants"
	"github.com/BrandonKowalski/navkit/pkg/navkit/debounce"
	"github.com/BrandonKowalski/navkit/pkg/navkit/internal"
)

// Coordinate is a WGS84 position.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Address is a geocoded place.
type Address struct {
	Line       string
	City       string
	PostalCode string
	Coordinate Coordinate
}

// Geocoder reverse-geocodes a coordinate.
type Geocoder interface {
	Lookup(ctx context.Context, c Coordinate) (Address, error)
}

// GeocoderFunc adapts a function to Geocoder.
type GeocoderFunc func(ctx context.Context, c Coordinate) (Address, error)

func (f GeocoderFunc) Lookup(ctx context.Context, c Coordinate) (Address, error) {
	return f(ctx, c)
}

// Poster marshals work onto the dispatch loop.
type Poster interface {
	Post(fn func()) bool
}

// Option configures a Picker.
type Option func(*Picker)

// WithClock replaces the debounce clock. Defaults to time.AfterFunc.
func WithClock(clock debounce.Clock) Option {
	return func(p *Picker) {
		p.clock = clock
	}
}

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) Option {
	return func(p *Picker) {
		p.window = d
	}
}

// WithTimeout bounds each lookup.
func WithTimeout(d time.Duration) Option {
	return func(p *Picker) {
		p.timeout = d
	}
}

// WithLogger overrides the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Picker) {
		p.logger = logger
	}
}

// Picker debounces pin movements and resolves the resting position.
type Picker struct {
	loop     Poster
	geocoder Geocoder
	feed     *alert.Feed
	clock    debounce.Clock
	window   time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	pins     *debounce.Debouncer[Coordinate]

	// Loop-only state.
	seq        uint64
	inflight   context.CancelFunc
	address    Address
	resolved   bool
	closed     bool
	onResolved func(Address)
}

// NewPicker creates a Picker. Resolved addresses and errors are applied on
// loop.
func NewPicker(loop Poster, geocoder Geocoder, opts ...Option) *Picker {
	p := &Picker{
		loop:     loop,
		geocoder: geocoder,
		feed:     alert.NewFeed(),
		clock:    debounce.RealClock,
		window:   constants.AddressLookupDebounce,
		timeout:  constants.AddressLookupTimeout,
		logger:   internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.pins = debounce.New(p.window, p.clock, func(c Coordinate) {
		p.loop.Post(func() { p.startLookup(c) })
	})
	return p
}

// Feed carries lookup failures. Attach an alert.Bridge to show them.
func (p *Picker) Feed() *alert.Feed {
	return p.feed
}

// Move records a new pin position. Safe from any goroutine.
func (p *Picker) Move(c Coordinate) {
	p.pins.Push(c)
}

// OnResolved sets the callback for each resolved address. Must run on the
// loop.
func (p *Picker) OnResolved(fn func(Address)) {
	p.onResolved = fn
}

// Address returns the last resolved address. Must run on the loop.
func (p *Picker) Address() (Address, bool) {
	return p.address, p.resolved
}

// Close cancels the pending debounce and any in-flight lookup. Must run on
// the loop.
func (p *Picker) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.pins.Stop()
	if p.inflight != nil {
		p.inflight()
		p.inflight = nil
	}
}

func (p *Picker) startLookup(c Coordinate) {
	if p.closed {
		return
	}
	if p.inflight != nil {
		p.inflight()
	}
	p.seq++
	seq := p.seq

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	p.inflight = cancel
	p.logger.Debug("address lookup", "coordinate", c.String())

	go func() {
		addr, err := p.geocoder.Lookup(ctx, c)
		p.loop.Post(func() {
			p.finishLookup(seq, c, addr, err)
		})
	}()
}

func (p *Picker) finishLookup(seq uint64, c Coordinate, addr Address, err error) {
	if p.closed || seq != p.seq {
		return
	}
	p.inflight()
	p.inflight = nil

	if err != nil {
		p.logger.Warn("address lookup failed", "coordinate", c.String(), "error", err)
		p.feed.Fail(fmt.Errorf("address lookup: %w", err))
		return
	}
	p.feed.Clear()
	addr.Coordinate = c
	p.address = addr
	p.resolved = true
	if p.onResolved != nil {
		p.onResolved(addr)
	}
}
