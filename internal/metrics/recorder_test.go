package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.ObserveRepository("query", 150*time.Millisecond, nil)
	r.ObserveRepository("query", 10*time.Millisecond, errors.New("boom"))
	r.IncCacheLookup("doc", true)
	r.IncCacheLookup("doc", false)
	r.IncVerdict("store", "redirect")
	r.IncRefChange()

	mfs, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "patisserie_page_verdicts_total") {
		t.Errorf("metrics output lacks page verdicts:\n%s", rec.Body.String())
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveRepository("query", time.Second, nil)
	r.IncCacheLookup("doc", true)
	r.IncVerdict("store", "ok")
	r.IncRefChange()
	if r.Registry() != nil {
		t.Error("nil recorder should have no registry")
	}
}
