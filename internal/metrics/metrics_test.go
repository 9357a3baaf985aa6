package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/litescript/ls-orbit/internal/render"
)

func TestFrameRendered(t *testing.T) {
	m := NewCollector(false)
	m.FrameRendered(render.Stats{StarsCulled: 12, SamplesCulled: 30, PlanetsDrawn: 3, PlanetsCulled: 1})
	m.FrameRendered(render.Stats{StarsCulled: 8, PlanetsDrawn: 4})

	if got := testutil.ToFloat64(m.framesTotal); got != 2 {
		t.Errorf("frames = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.culledTotal.WithLabelValues("star")); got != 20 {
		t.Errorf("culled stars = %v, want 20", got)
	}
	if got := testutil.ToFloat64(m.culledTotal.WithLabelValues("orbit_sample")); got != 30 {
		t.Errorf("culled samples = %v, want 30", got)
	}
	if got := testutil.ToFloat64(m.planetsDrawn); got != 4 {
		t.Errorf("planets drawn = %v, want 4", got)
	}
}

func TestProgressAndInteractions(t *testing.T) {
	m := NewCollector(false)
	m.Interaction("drag")
	m.Interaction("drag")
	m.Interaction("wheel")
	m.ProgressChanged(0.2007, true)
	m.ProgressChanged(0.2016, false)

	if got := testutil.ToFloat64(m.interactions.WithLabelValues("drag")); got != 2 {
		t.Errorf("drag = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.progress); got != 0.2016 {
		t.Errorf("progress = %v, want 0.2016", got)
	}
	if got := testutil.ToFloat64(m.writesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("failed writes = %v, want 1", got)
	}
}

func TestOverlayGauge(t *testing.T) {
	m := NewCollector(false)
	m.OverlayActive(true)
	if testutil.ToFloat64(m.overlayActive) != 1 {
		t.Error("overlay gauge should be 1")
	}
	m.OverlayActive(false)
	if testutil.ToFloat64(m.overlayActive) != 0 {
		t.Error("overlay gauge should be 0")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewCollector(true)
	m.Interaction("refocus")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`ls_orbit_interactions_total{kind="refocus"} 1`,
		"ls_orbit_frames_rendered_total",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
