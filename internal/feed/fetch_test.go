package feed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pfrederiksen/sheet-events/internal/event"
	"github.com/pfrederiksen/sheet-events/internal/logger"
	"github.com/pfrederiksen/sheet-events/internal/metrics"
	"github.com/pfrederiksen/sheet-events/internal/sheet"
)

func TestMain(m *testing.M) {
	logger.SetDefault(logger.New(logger.LevelError, io.Discard))
	os.Exit(m.Run())
}

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return b
}

func serve(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(url string, m *metrics.Metrics, opts ...Option) *Client {
	base := []Option{
		WithURL(url),
		WithClock(func() time.Time { return testNow }),
		WithMetrics(m),
	}
	return New(append(base, opts...)...)
}

// counterValue sums a counter family's series whose labels include want
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	series:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue series
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	if c.URL() != DefaultURL {
		t.Errorf("URL() = %q, want default", c.URL())
	}
	if c.Transport() != TransportCSV {
		t.Errorf("Transport() = %q, want csv", c.Transport())
	}
	if c.client.Timeout != Timeout {
		t.Errorf("timeout = %v, want %v", c.client.Timeout, Timeout)
	}
	if c.userAgent != UserAgent {
		t.Errorf("userAgent = %q, want %q", c.userAgent, UserAgent)
	}
}

func TestFetch_CSV(t *testing.T) {
	server := serve(t, http.StatusOK, loadFixture(t, "sample_events.csv"))
	m := metrics.New()

	events, err := newTestClient(server.URL, m).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Fetch() returned %d events, want 3", len(events))
	}

	var ids []string
	for _, evt := range events {
		ids = append(ids, evt.ID)
	}
	if !reflect.DeepEqual(ids, []string{"1", "3", "4"}) {
		t.Errorf("ids = %v, want [1 3 4]", ids)
	}

	tech := events[0]
	if tech.ImageURL != "https://lh3.googleusercontent.com/d/ABC123" {
		t.Errorf("ImageURL = %q", tech.ImageURL)
	}
	wantSchedule := []event.ScheduleItem{
		{Time: "10:00 AM", Activity: "Registration"},
		{Time: "11:00 AM", Activity: "Keynote"},
	}
	if !reflect.DeepEqual(tech.Schedule, wantSchedule) {
		t.Errorf("Schedule = %+v, want %+v", tech.Schedule, wantSchedule)
	}
	if tech.Description != "Talks, demos and a keynote" {
		t.Errorf("Description = %q", tech.Description)
	}
	if left, ok := tech.Spots(); !ok || left != 53 {
		t.Errorf("Spots() = %d, %v; want 53, true", left, ok)
	}

	craft := events[1]
	if craft.RegistrationStatus != event.StatusClosed {
		t.Errorf("craft status = %q, want closed", craft.RegistrationStatus)
	}
	if !reflect.DeepEqual(craft.Tags, []string{"Workshop"}) {
		t.Errorf("craft tags = %v, want [Workshop]", craft.Tags)
	}
	if craft.Description != "Bring scissors\nand glue" {
		t.Errorf("craft description = %q", craft.Description)
	}

	hack := events[2]
	if hack.Date != "2025-03-01" {
		t.Errorf("hackathon date = %q, want 2025-03-01", hack.Date)
	}
	if hack.RegistrationStatus != event.StatusUpcoming {
		t.Errorf("hackathon status = %q, want upcoming", hack.RegistrationStatus)
	}
	if hack.Category != event.DefaultCategory {
		t.Errorf("hackathon category = %q", hack.Category)
	}

	if got := counterValue(t, m.Registry, "sheet_events_fetch_total", map[string]string{"outcome": metrics.OutcomeOK}); got != 1 {
		t.Errorf("ok fetches = %v, want 1", got)
	}
	if got := counterValue(t, m.Registry, "sheet_events_rows_total", map[string]string{"result": metrics.RowDropped}); got != 1 {
		t.Errorf("dropped rows = %v, want 1", got)
	}
	if got := counterValue(t, m.Registry, "sheet_events_rows_total", map[string]string{"result": metrics.RowKept}); got != 3 {
		t.Errorf("kept rows = %v, want 3", got)
	}
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("Title\nA\n"))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL, metrics.New()).Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(gotUA, "sheet-events") {
		t.Errorf("User-Agent = %q, want it to identify sheet-events", gotUA)
	}

	if _, err := newTestClient(server.URL, metrics.New(), WithUserAgent("custom/2.0")).Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotUA != "custom/2.0" {
		t.Errorf("User-Agent = %q, want custom/2.0", gotUA)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusInternalServerError},
		{"not found", http.StatusNotFound},
		{"not modified", http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serve(t, tt.status, []byte("Title\nShould not appear\n"))
			m := metrics.New()
			client := newTestClient(server.URL, m)

			_, err := client.Fetch(context.Background())
			if !errors.Is(err, ErrUnexpectedStatus) {
				t.Errorf("Fetch() error = %v, want ErrUnexpectedStatus", err)
			}

			events := client.Events(context.Background())
			if events == nil || len(events) != 0 {
				t.Errorf("Events() = %v, want empty non-nil slice", events)
			}

			got := counterValue(t, m.Registry, "sheet_events_fetch_total", map[string]string{"outcome": metrics.OutcomeTransportError})
			if got != 2 {
				t.Errorf("transport errors = %v, want 2", got)
			}
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	events := newTestClient(url, metrics.New(), WithTimeout(time.Second)).Events(context.Background())
	if len(events) != 0 {
		t.Errorf("Events() = %d events, want 0", len(events))
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	server := serve(t, http.StatusOK, []byte("Title\nA\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL, metrics.New()).Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestFetch_HeaderOnly(t *testing.T) {
	server := serve(t, http.StatusOK, []byte("Event Title,Date\n"))

	events, err := newTestClient(server.URL, metrics.New()).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Fetch() = %d events, want 0", len(events))
	}
}

const gvizPrefix = "/*O_o*/\ngoogle.visualization.Query.setResponse("

func TestFetch_GViz(t *testing.T) {
	payload := gvizPrefix + `{"version":"0.6","status":"ok","table":{"cols":[` +
		`{"id":"A","label":"Event Title","type":"string"},` +
		`{"id":"B","label":"Date","type":"date"},` +
		`{"id":"C","label":"Max Participants","type":"number"}],` +
		`"rows":[` +
		`{"c":[{"v":"Quiz Night"},{"v":"Date(2025,0,25)","f":"1/25/2025"},{"v":40.0,"f":"40"}]},` +
		`{"c":[{"v":"---"},null,null]}` +
		`]}});`

	server := serve(t, http.StatusOK, []byte(payload))
	m := metrics.New()

	events, err := newTestClient(server.URL, m, WithTransport(TransportGViz)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Fetch() returned %d events, want 1", len(events))
	}
	evt := events[0]
	if evt.Title != "Quiz Night" || evt.Date != "2025-01-25" {
		t.Errorf("event = %q on %q, want Quiz Night on 2025-01-25", evt.Title, evt.Date)
	}
	if evt.MaxParticipants == nil || *evt.MaxParticipants != 40 {
		t.Errorf("MaxParticipants = %v, want 40", deref(evt.MaxParticipants))
	}
}

func TestFetch_GVizWrapperMismatch(t *testing.T) {
	payload := "google.visualization.Query.setResponse(" + `{"status":"ok","table":{"cols":[],"rows":[]}});`
	server := serve(t, http.StatusOK, []byte(payload))
	m := metrics.New()
	client := newTestClient(server.URL, m, WithTransport(TransportGViz))

	_, err := client.Fetch(context.Background())
	if !errors.Is(err, sheet.ErrWrapperMismatch) {
		t.Errorf("Fetch() error = %v, want ErrWrapperMismatch", err)
	}
	if events := client.Events(context.Background()); len(events) != 0 {
		t.Errorf("Events() = %d events, want 0", len(events))
	}
	if got := counterValue(t, m.Registry, "sheet_events_fetch_total", map[string]string{"outcome": metrics.OutcomeDecodeError}); got != 2 {
		t.Errorf("decode errors = %v, want 2", got)
	}
}

func TestFetch_GVizCustomWrapper(t *testing.T) {
	payload := "cb(" + `{"status":"ok","table":{"cols":[{"id":"A","label":"Title"}],"rows":[{"c":[{"v":"Chess"}]}]}}` + ")"
	server := serve(t, http.StatusOK, []byte(payload))

	events, err := newTestClient(server.URL, metrics.New(),
		WithTransport(TransportGViz),
		WithWrapper(sheet.Wrapper{PrefixLen: 3, SuffixLen: 1}),
	).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(events) != 1 || events[0].Title != "Chess" {
		t.Errorf("Fetch() = %+v, want one Chess event", events)
	}
}

func TestFetch_HTML(t *testing.T) {
	server := serve(t, http.StatusOK, loadFixture(t, "sample_events.html"))

	events, err := newTestClient(server.URL, metrics.New(), WithTransport(TransportHTML)).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Fetch() returned %d events, want 2", len(events))
	}

	expo := events[0]
	if expo.Title != "Robotics Expo" || expo.ID != "1" {
		t.Errorf("first event = %s %q", expo.ID, expo.Title)
	}
	if len(expo.Schedule) != 2 || expo.Schedule[1].Activity != "Judging" {
		t.Errorf("Schedule = %+v, want two entries ending in Judging", expo.Schedule)
	}

	mic := events[1]
	if mic.ID != "3" {
		t.Errorf("second event id = %q, want 3", mic.ID)
	}
	if mic.RegistrationStatus != event.StatusClosed {
		t.Errorf("Open Mic status = %q, want closed", mic.RegistrationStatus)
	}
}
