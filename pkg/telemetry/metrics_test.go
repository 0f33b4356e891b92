package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

func gatherFamilies(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	sums := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				sums[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				sums[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return sums
}

func TestMetricsObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	patches := []vdom.Patch{
		vdom.NewRemoveNodePatch("a"),
		vdom.NewRemoveNodePatch("b"),
		vdom.NewSetTextPatch("t", "t", "x"),
	}
	m.ObserveDiff(5*time.Millisecond, patches)
	m.ObserveDiff(2*time.Millisecond, nil)
	m.ObserveBatch()
	m.ObserveRender(1024)

	sums := gatherFamilies(t, reg)
	checks := map[string]float64{
		"arbor_diffs_total":           2,
		"arbor_patches_total":         3,
		"arbor_batches_total":         1,
		"arbor_diff_duration_seconds": 2,
		"arbor_render_bytes":          1,
	}
	for name, want := range checks {
		if got := sums[name]; got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestMetricsPerOpLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	m.ObserveDiff(time.Millisecond, []vdom.Patch{
		vdom.NewRemoveNodePatch("a"),
		vdom.NewRemoveNodePatch("b"),
		vdom.NewInsertNodePatch("p", 0, &vdom.VNode{ID: "n", Kind: vdom.KindElement, Tag: "li"}),
	})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	perOp := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != "arbor_patches_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "op" {
					perOp[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if perOp[vdom.PatchRemoveNode.String()] != 2 {
		t.Errorf("RemoveNode count = %v, want 2", perOp[vdom.PatchRemoveNode.String()])
	}
	if perOp[vdom.PatchInsertNode.String()] != 1 {
		t.Errorf("InsertNode count = %v, want 1", perOp[vdom.PatchInsertNode.String()])
	}
}

func TestMetricsOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(
		WithRegistry(reg),
		WithNamespace("custom"),
		WithConstLabels(prometheus.Labels{"instance": "test"}),
		WithBuckets([]float64{0.001, 0.01, 0.1}),
	)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "custom_diffs_total" {
			found = true
			labels := mf.GetMetric()[0].GetLabel()
			if len(labels) != 1 || labels[0].GetValue() != "test" {
				t.Errorf("const labels = %v", labels)
			}
		}
	}
	if !found {
		t.Error("namespaced counter not registered")
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveDiff(time.Second, []vdom.Patch{vdom.NewRemoveNodePatch("a")})
	m.ObserveBatch()
	m.ObserveRender(10)
}
