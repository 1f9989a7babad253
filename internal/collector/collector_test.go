package collector

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubCollector struct {
	name   string
	gauges []Gauge
	err    error
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(context.Context) ([]Gauge, error) { return s.gauges, s.err }

func TestRegistry_CollectAllPreservesOrder(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	r.Register(&stubCollector{name: "a", gauges: []Gauge{{Name: "net-rx", Value: 1}, {Name: "net-tx", Value: 2}}})
	r.Register(&stubCollector{name: "b", gauges: []Gauge{{Name: "uptime", Value: 3}}})

	got := r.CollectAll(context.Background())
	want := []string{"net-rx", "net-tx", "uptime"}
	if len(got) != len(want) {
		t.Fatalf("got %d gauges, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("gauge[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestRegistry_FailedCollectorIsSkipped(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	r.Register(&stubCollector{name: "broken", err: errors.New("boom")})
	r.Register(&stubCollector{name: "ok", gauges: []Gauge{{Name: "load", Value: 5}}})

	got := r.CollectAll(context.Background())
	if len(got) != 1 || got[0].Name != "load" {
		t.Errorf("gauges = %v, want only the healthy collector's gauge", got)
	}
}

func TestMemoryCollector(t *testing.T) {
	gauges, err := NewMemoryCollector().Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gauges) != 1 || gauges[0].Name != "availmem" {
		t.Fatalf("gauges = %v, want one availmem gauge", gauges)
	}
	if v := gauges[0].Value; v < 0 || v > 100 {
		t.Errorf("availmem = %d, want a percentage", v)
	}
}

func TestUptimeCollector(t *testing.T) {
	gauges, err := NewUptimeCollector().Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gauges) != 1 || gauges[0].Name != "uptime" {
		t.Fatalf("gauges = %v, want one uptime gauge", gauges)
	}
	if gauges[0].Value <= 0 {
		t.Errorf("uptime = %d, want positive", gauges[0].Value)
	}
}

func TestLoadCollector(t *testing.T) {
	gauges, err := NewLoadCollector().Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gauges) != 1 || gauges[0].Name != "load" {
		t.Fatalf("gauges = %v, want one load gauge", gauges)
	}
	if gauges[0].Value < 0 {
		t.Errorf("load = %d, want non-negative", gauges[0].Value)
	}
}

func TestDiskCollector(t *testing.T) {
	c := NewDiskCollector(t.TempDir(), zap.NewNop())
	gauges, err := c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gauges) != 1 || gauges[0].Name != "diskfree" {
		t.Fatalf("gauges = %v, want one diskfree gauge", gauges)
	}
	if v := gauges[0].Value; v < 0 || v > 100 {
		t.Errorf("diskfree = %d, want a percentage", v)
	}
}

func TestDiskCollector_InaccessiblePathReportsZero(t *testing.T) {
	c := NewDiskCollector("/no/such/filesystem/path", zap.NewNop())
	gauges, err := c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gauges) != 1 || gauges[0].Value != 0 {
		t.Errorf("gauges = %v, want diskfree 0", gauges)
	}
}

func TestNetworkCollector(t *testing.T) {
	c := NewNetworkCollector("lo")
	gauges, err := c.Collect(context.Background())
	if err != nil {
		t.Skipf("loopback interface not available: %v", err)
	}
	if len(gauges) != 2 || gauges[0].Name != "net-rx" || gauges[1].Name != "net-tx" {
		t.Fatalf("gauges = %v, want net-rx then net-tx", gauges)
	}
	// First collection establishes the baseline.
	if gauges[0].Value != 0 || gauges[1].Value != 0 {
		t.Errorf("first collection = %v, want zero deltas", gauges)
	}

	// Second collection reports deltas against the baseline.
	gauges, err = c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if gauges[0].Value < 0 || gauges[1].Value < 0 {
		t.Errorf("deltas = %v, want non-negative", gauges)
	}
}

func TestNetworkCollector_MissingInterface(t *testing.T) {
	if _, err := NewNetworkCollector("no-such-if0").Collect(context.Background()); err == nil {
		t.Error("err = nil, want error for missing interface")
	}
}
