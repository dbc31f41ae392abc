package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tideui/tide/internal/errors"
	"github.com/tideui/tide/pkg/reactive"
	tideruntime "github.com/tideui/tide/pkg/runtime"
	"github.com/tideui/tide/pkg/vdom"
	"github.com/tideui/tide/pkg/wire"
)

type benchProfile struct {
	Name       string
	Iterations int
	ListSize   int
}

var benchProfiles = map[string]benchProfile{
	"fast":     {Name: "fast", Iterations: 1_000, ListSize: 20},
	"standard": {Name: "standard", Iterations: 10_000, ListSize: 50},
	"stress":   {Name: "stress", Iterations: 100_000, ListSize: 100},
}

type benchResult struct {
	Profile     string            `json:"profile"`
	Iterations  int               `json:"iterations"`
	ListSize    int               `json:"listSize"`
	Elapsed     string            `json:"elapsed"`
	UpdatesPerS float64           `json:"updatesPerSecond"`
	HostOps     int               `json:"hostOps"`
	PatchOps    map[string]uint64 `json:"patchOps"`
	AllocMiB    float64           `json:"allocMiB"`
	GOMAXPROCS  int               `json:"gomaxprocs"`
	GoVersion   string            `json:"goVersion"`
}

func benchCmd() *cobra.Command {
	var (
		profileName string
		iterations  int
		listSize    int
		jsonOutput  string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the reconciler",
		Long: `Run an in-process benchmark of the reactive update cycle.

Each iteration flips one signal and one list row, flushes the
scheduler, and reconciles the resulting tree against an in-memory
host through the patch recorder. The report counts host mutations
and patch ops, so regressions in the block fast path show up as
op-count inflation rather than just slower wall time.

Profiles:
  fast      1k updates,   20-row list
  standard  10k updates,  50-row list
  stress    100k updates, 100-row list

Examples:
  tide bench
  tide bench --profile=stress
  tide bench --iterations=50000 --json=bench.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(profileName, iterations, listSize, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "standard", "Benchmark profile (fast, standard, stress)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Override iteration count")
	cmd.Flags().IntVarP(&listSize, "list-size", "l", 0, "Override list size")
	cmd.Flags().StringVarP(&jsonOutput, "json", "j", "", "Write the report as JSON to a file")

	return cmd
}

// benchApp renders a dynamic row list plus a hot counter cell.
type benchApp struct {
	count *reactive.Signal[int]
	rows  *reactive.List
}

func (b *benchApp) Render() *vdom.VNode {
	rows := b.rows.Values()
	children := make([]*vdom.VNode, 0, len(rows))
	for _, row := range rows {
		label, _ := row.(string)
		children = append(children, vdom.Li(vdom.Key(label), vdom.TextDyn(label)))
	}
	return vdom.Div(
		vdom.Span(vdom.Textf("tick %d", b.count.Get())),
		vdom.Ul(children),
	)
}

func runBench(profileName string, iterations, listSize int, jsonOutput string) error {
	p, ok := benchProfiles[profileName]
	if !ok {
		return errors.New("T081").WithDetailf("unknown profile %q", profileName)
	}
	if iterations > 0 {
		p.Iterations = iterations
	}
	if listSize > 0 {
		p.ListSize = listSize
	}

	printBanner()
	info("bench profile %s: %d iterations, %d rows", p.Name, p.Iterations, p.ListSize)

	rows := make([]any, p.ListSize)
	for i := range rows {
		rows[i] = fmt.Sprintf("row-%d", i)
	}
	root := &benchApp{
		count: reactive.NewSignal(0),
		rows:  reactive.NewList(rows...),
	}

	rec := wire.NewRecorder()
	app := tideruntime.NewApp(rec, root)
	app.Mount(rec.Container())
	app.FlushSync()
	rec.Take()

	opCounts := make(map[string]uint64)
	var memBefore runtime.MemStats
	runtime.ReadMemStats(&memBefore)

	start := time.Now()
	for i := 0; i < p.Iterations; i++ {
		root.count.Set(i + 1)
		root.rows.SetAt(i%p.ListSize, fmt.Sprintf("row-%d-gen-%d", i%p.ListSize, i))
		app.FlushSync()
		for _, patch := range rec.Take() {
			opCounts[patch.Op.String()]++
		}
	}
	elapsed := time.Since(start)

	var memAfter runtime.MemStats
	runtime.ReadMemStats(&memAfter)

	result := benchResult{
		Profile:     p.Name,
		Iterations:  p.Iterations,
		ListSize:    p.ListSize,
		Elapsed:     elapsed.String(),
		UpdatesPerS: float64(p.Iterations) / elapsed.Seconds(),
		PatchOps:    opCounts,
		AllocMiB:    float64(memAfter.TotalAlloc-memBefore.TotalAlloc) / (1 << 20),
		GOMAXPROCS:  runtime.GOMAXPROCS(0),
		GoVersion:   runtime.Version(),
		HostOps:     rec.Mirror().Ops().Counters().Total(),
	}

	printBenchResult(result)

	if jsonOutput != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errors.Wrap(err, "T081", "encoding report")
		}
		if err := os.WriteFile(jsonOutput, append(data, '\n'), 0644); err != nil {
			return errors.Wrap(err, "T081", "writing "+jsonOutput)
		}
		success("report written to %s", jsonOutput)
	}
	return nil
}

func printBenchResult(r benchResult) {
	fmt.Println()
	info("elapsed:      %s", r.Elapsed)
	info("updates/sec:  %.0f", r.UpdatesPerS)
	info("host ops:     %d", r.HostOps)
	info("alloc:        %.1f MiB", r.AllocMiB)

	ops := make([]string, 0, len(r.PatchOps))
	for op := range r.PatchOps {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		info("  %-16s %d", op, r.PatchOps[op])
	}
	fmt.Println()
}
