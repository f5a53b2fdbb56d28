// Package session holds the event set for the lifetime of a process.
//
// A Session performs one fetch per Load, substitutes the fallback list when the
// feed yields nothing and publishes the result with a single pointer swap, so
// readers always see either the previous set or the new one.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/sheet-events/internal/event"
	"github.com/pfrederiksen/sheet-events/internal/logger"
	"github.com/pfrederiksen/sheet-events/internal/metrics"
)

// Source is where events are loaded from. It never fails: errors are logged by the
// source and reported as an empty slice.
type Source interface {
	Events(ctx context.Context) []*event.Event
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) []*event.Event

// Events calls f
func (f SourceFunc) Events(ctx context.Context) []*event.Event {
	return f(ctx)
}

// Origin records where the events in a Set came from
type Origin string

const (
	OriginFeed     Origin = "feed"
	OriginFallback Origin = "fallback"
)

// Set is one loaded generation of events. A Set is never modified after it is
// published.
type Set struct {
	Events   []*event.Event
	Source   Origin
	FetchID  string
	LoadedAt time.Time

	// Changes compares this set with the one it replaced; nil for the first load
	Changes *event.DiffResult
}

// Find returns the event with the given id
func (s *Set) Find(id string) (*event.Event, bool) {
	if s == nil {
		return nil, false
	}
	for _, evt := range s.Events {
		if evt.ID == id {
			return evt, true
		}
	}
	return nil, false
}

// Session serializes loads and publishes their results
type Session struct {
	source   Source
	fallback func() []*event.Event
	metrics  *metrics.Metrics
	now      func() time.Time

	mu         sync.Mutex // serializes loads
	loading    atomic.Bool
	generation atomic.Uint64 // bumped after every published set
	current    atomic.Pointer[Set]

	ready     chan struct{}
	readyOnce sync.Once
}

// Option configures a Session
type Option func(*Session)

// WithMetrics sets where the loaded gauge is recorded
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithClock sets the time source for LoadedAt
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session. fallback is called each time the feed yields no events;
// a nil fallback means an empty set is published instead.
func New(source Source, fallback func() []*event.Event, opts ...Option) *Session {
	s := &Session{
		source:   source,
		fallback: fallback,
		metrics:  metrics.Default,
		now:      time.Now,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load performs one fetch and publishes the result. When another load is already
// running, Load waits for it and returns its set instead of fetching again.
func (s *Session) Load(ctx context.Context) *Set {
	gen := s.generation.Load()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation.Load() != gen {
		return s.current.Load()
	}
	return s.load(ctx)
}

// Refresh fetches again and replaces the current set
func (s *Session) Refresh(ctx context.Context) *Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// load must be called with mu held
func (s *Session) load(ctx context.Context) *Set {
	s.loading.Store(true)
	defer s.loading.Store(false)

	fetchID := uuid.NewString()
	ctx = logger.WithFields(ctx, logger.Fields{"fetch_id": fetchID})

	set := &Set{
		Events:  s.source.Events(ctx),
		Source:  OriginFeed,
		FetchID: fetchID,
	}
	if len(set.Events) == 0 {
		set.Source = OriginFallback
		set.Events = nil
		if s.fallback != nil {
			set.Events = s.fallback()
		}
		if set.Events == nil {
			set.Events = []*event.Event{}
		}
		logger.WarnCtx(ctx, "Feed returned no events, using fallback", logger.Fields{
			"count": len(set.Events),
		})
	}
	set.LoadedAt = s.now()

	if prev := s.current.Load(); prev != nil {
		set.Changes = event.Diff(prev.Events, set.Events)
		if !set.Changes.Empty() {
			logger.InfoCtx(ctx, "Events changed since last load", logger.Fields{
				"added":   len(set.Changes.Added),
				"removed": len(set.Changes.Removed),
				"changed": len(set.Changes.Changes),
			})
		}
	}

	s.current.Store(set)
	s.generation.Add(1)
	s.readyOnce.Do(func() { close(s.ready) })
	s.metrics.SetLoaded(string(set.Source), len(set.Events))

	logger.InfoCtx(ctx, "Events loaded", logger.Fields{
		"source": string(set.Source),
		"count":  len(set.Events),
	})
	return set
}

// Loading reports whether a load is in progress
func (s *Session) Loading() bool {
	return s.loading.Load()
}

// Ready is closed once the first load has published a set
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Current returns the published set, or nil before the first load completes
func (s *Session) Current() *Set {
	return s.current.Load()
}

// Find looks up an event in the current set
func (s *Session) Find(id string) (*event.Event, bool) {
	return s.current.Load().Find(id)
}
