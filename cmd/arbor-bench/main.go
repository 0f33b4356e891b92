package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/pkg/telemetry"
	"github.com/arbor-dev/arbor/pkg/vdom"
)

// item is one row of the benchmarked keyed list.
type item struct {
	key  string
	text string
}

// workload mutates the item list for one cycle.
type workload func(r *rand.Rand, items []item) []item

var workloads = map[string]workload{
	// Two-element swap: the LIS sweet spot, O(1) structural patches.
	"swap": func(r *rand.Rand, items []item) []item {
		next := append([]item(nil), items...)
		if len(next) >= 2 {
			i := r.Intn(len(next))
			j := r.Intn(len(next))
			for j == i {
				j = r.Intn(len(next))
			}
			next[i], next[j] = next[j], next[i]
		}
		return next
	},
	// Full reversal: the accepted O(n) worst case.
	"reverse": func(r *rand.Rand, items []item) []item {
		next := make([]item, len(items))
		for i, it := range items {
			next[len(items)-1-i] = it
		}
		return next
	},
	// Random shuffle: typically sublinear stable run.
	"shuffle": func(r *rand.Rand, items []item) []item {
		next := append([]item(nil), items...)
		r.Shuffle(len(next), func(i, j int) {
			next[i], next[j] = next[j], next[i]
		})
		return next
	},
	// Append one row at the tail.
	"append": func(r *rand.Rand, items []item) []item {
		next := append([]item(nil), items...)
		next = append(next, item{
			key:  fmt.Sprintf("k%d-%d", len(next), r.Int63()),
			text: fmt.Sprintf("row %d", len(next)),
		})
		return next
	},
	// Rewrite the text of one random row, order unchanged.
	"update": func(r *rand.Rand, items []item) []item {
		next := append([]item(nil), items...)
		if len(next) > 0 {
			next[r.Intn(len(next))].text = fmt.Sprintf("updated %d", r.Int63())
		}
		return next
	},
}

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		workloadName = flag.String("workload", cfg.Bench.Workload, "workload: swap, reverse, shuffle, append, update")
		listSize     = flag.Int("size", cfg.Bench.ListSize, "keyed list size")
		cycles       = flag.Int("cycles", cfg.Bench.Cycles, "number of diff cycles")
		batch        = flag.Bool("batch", cfg.Diff.Batch, "use batched diffing")
		seed         = flag.Uint64("seed", 1, "random seed")
		dumpMetrics  = flag.Bool("metrics", false, "dump Prometheus metrics after the run")
		traced       = flag.Bool("trace", false, "emit an otel span per cycle")
	)
	flag.Parse()

	mutate, ok := workloads[*workloadName]
	if !ok {
		names := make([]string, 0, len(workloads))
		for name := range workloads {
			names = append(names, name)
		}
		sort.Strings(names)
		log.Fatalf("unknown workload %q (have %v)", *workloadName, names)
	}

	rng := rand.New(rand.NewSource(int64(*seed)))
	faker := gofakeit.New(*seed)

	items := make([]item, *listSize)
	for i := range items {
		items[i] = item{key: fmt.Sprintf("k%d", i), text: faker.Word()}
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(telemetry.WithRegistry(registry))
	tracer := telemetry.NewTracer()
	ctx := context.Background()

	// Latency in nanoseconds, 1us to 10s, 3 significant digits.
	hist := hdrhistogram.New(1_000, 10_000_000_000, 3)
	opCounts := make(map[string]int)
	totalPatches := 0

	prevTree := buildList(items)

	start := time.Now()
	for cycle := 0; cycle < *cycles; cycle++ {
		nextItems := mutate(rng, items)
		nextTree := buildList(nextItems)
		vdom.Align(prevTree, nextTree)

		cycleStart := time.Now()
		var patches []vdom.Patch
		if *traced {
			_, sp := tracer.StartDiff(ctx)
			if *batch {
				patches = vdom.DiffBatched(prevTree, nextTree)
			} else {
				patches = vdom.Diff(prevTree, nextTree)
			}
			tracer.End(sp, patches, nil)
		} else if *batch {
			patches = vdom.DiffBatched(prevTree, nextTree)
		} else {
			patches = vdom.Diff(prevTree, nextTree)
		}
		elapsed := time.Since(cycleStart)

		if err := hist.RecordValue(elapsed.Nanoseconds()); err != nil {
			log.Fatalf("record latency: %v", err)
		}
		metrics.ObserveDiff(elapsed, patches)
		if *batch {
			metrics.ObserveBatch()
		}
		for i := range patches {
			opCounts[patches[i].Op.String()]++
		}
		totalPatches += len(patches)

		items = nextItems
		prevTree = nextTree
	}
	wall := time.Since(start)

	report(*workloadName, *listSize, *cycles, *batch, wall, hist, opCounts, totalPatches)

	if *dumpMetrics {
		dumpRegistry(registry)
	}
}

// buildList builds the benchmark tree: a ul of keyed li rows, each holding
// one text node. Every build assigns fresh IDs; Align carries identity
// forward exactly like a real render loop.
func buildList(items []item) *vdom.VNode {
	b := vdom.NewBuilder()
	children := make([]*vdom.VNode, len(items))
	for i, it := range items {
		children[i] = b.KeyedElement(it.key, "li", nil, b.Text(it.text))
	}
	return b.Element("ul", []vdom.Attr{b.Attr("class", "bench")}, children...)
}

// report prints the run summary and latency percentiles.
func report(name string, size, cycles int, batch bool, wall time.Duration, hist *hdrhistogram.Histogram, opCounts map[string]int, totalPatches int) {
	fmt.Printf("workload=%s size=%d cycles=%d batch=%v wall=%s\n", name, size, cycles, batch, wall.Round(time.Millisecond))
	fmt.Printf("latency  p50=%s p90=%s p99=%s max=%s\n",
		time.Duration(hist.ValueAtQuantile(50)),
		time.Duration(hist.ValueAtQuantile(90)),
		time.Duration(hist.ValueAtQuantile(99)),
		time.Duration(hist.Max()))
	fmt.Printf("patches  total=%d per-cycle=%.1f\n", totalPatches, float64(totalPatches)/float64(cycles))

	ops := make([]string, 0, len(opCounts))
	for op := range opCounts {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		fmt.Printf("  %-14s %d\n", op, opCounts[op])
	}
}

// dumpRegistry prints every gathered metric family.
func dumpRegistry(registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gather metrics: %v\n", err)
		return
	}
	fmt.Println()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			label := ""
			for _, lp := range m.GetLabel() {
				label += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s%s %v\n", mf.GetName(), label, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Printf("%s%s count=%d sum=%v\n", mf.GetName(), label, m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			}
		}
	}
}
