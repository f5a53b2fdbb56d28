package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pfrederiksen/sheet-events/internal/calendar"
	"github.com/pfrederiksen/sheet-events/internal/event"
	"github.com/pfrederiksen/sheet-events/internal/filter"
	"github.com/pfrederiksen/sheet-events/internal/session"
)

// currentSet returns the published set, loading it on first use
func (s *Server) currentSet(r *http.Request) *session.Set {
	if set := s.session.Current(); set != nil {
		return set
	}
	return s.session.Load(context.WithoutCancel(r.Context()))
}

// filterFromQuery reads q, when, category and status from the query string
func filterFromQuery(r *http.Request) (filter.Filter, error) {
	q := r.URL.Query()
	when, err := filter.ParseWhen(q.Get("when"))
	if err != nil {
		return filter.Filter{}, err
	}
	return filter.Filter{
		Query:    q.Get("q"),
		When:     when,
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}, nil
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := s.currentSet(r)
	respondJSON(w, http.StatusOK, set.Envelope(f.Apply(set.Events, s.now())))
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	evt, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, evt)
}

func (s *Server) eventICS(w http.ResponseWriter, r *http.Request) {
	evt, ok := s.lookup(w, r)
	if !ok {
		return
	}

	ics, err := calendar.GenerateICS(evt, s.now())
	if errors.Is(err, calendar.ErrNoDate) {
		respondError(w, http.StatusUnprocessableEntity, "event has no calendar date")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate calendar")
		return
	}

	writeCalendar(w, fmt.Sprintf("event-%s.ics", evt.ID), ics)
}

func (s *Server) calendarFeed(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := s.currentSet(r)
	ics := calendar.GenerateBulkICS(f.Apply(set.Events, s.now()), "Campus Events", s.now())
	if ics == "" {
		respondError(w, http.StatusNotFound, "no events with calendar dates")
		return
	}
	writeCalendar(w, "events.ics", ics)
}

// refresh reloads the feed. The fetch outlives the request so a client that
// disconnects mid-fetch cannot swap the live set for the fallback list.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	set := s.session.Refresh(context.WithoutCancel(r.Context()))
	env := set.Envelope(set.Events)
	env.Changes = set.Summary()
	respondJSON(w, http.StatusOK, env)
}

type healthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Loading bool   `json:"loading"`
	Source  string `json:"source,omitempty"`
	Events  int    `json:"events"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Loading: s.session.Loading()}
	if set := s.session.Current(); set != nil {
		resp.Ready = true
		resp.Source = string(set.Source)
		resp.Events = len(set.Events)
	}
	respondJSON(w, http.StatusOK, resp)
}

// lookup resolves the {id} route variable, writing a 404 when it is unknown
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*event.Event, bool) {
	id := mux.Vars(r)["id"]
	evt, ok := s.currentSet(r).Find(id)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("event %q not found", id))
		return nil, false
	}
	return evt, true
}

func writeCalendar(w http.ResponseWriter, filename, ics string) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics))
}
