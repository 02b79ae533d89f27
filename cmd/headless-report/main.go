package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"fogwalk/internal/fog"
	"fogwalk/internal/track"
)

type walkParams struct {
	lat      float64
	lng      float64
	radiusM  float64
	speedMPS float64
	roamM    float64
}

type checkpoint struct {
	step     int
	coverage int
	cells    int
}

type runStats struct {
	runIndex int
	seed     int64
	steps    int

	firstNewCellStep int
	cellsRevealed    int
	revealingSamples int
	redundantSamples int
	walkedMeters     float64
	finalCoverage    int

	checkpoints []checkpoint
}

func main() {
	var runs int
	var steps int
	var seedBase int64
	var seedStep int64
	var lat float64
	var lng float64
	var radiusM float64
	var speedMPS float64
	var roamM float64

	flag.IntVar(&runs, "runs", 3, "number of headless walk runs")
	flag.IntVar(&steps, "steps", 2000, "one-second walk samples per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&lat, "lat", 42.6977, "walk start latitude")
	flag.Float64Var(&lng, "lng", 23.3219, "walk start longitude")
	flag.Float64Var(&radiusM, "radius-m", 500, "coverage region radius in meters")
	flag.Float64Var(&speedMPS, "speed-mps", 0, "walking speed override in m/s (0 = default)")
	flag.Float64Var(&roamM, "roam-m", 0, "roam radius override in meters (0 = default)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if steps <= 0 {
		fmt.Println("error: -steps must be > 0")
		return
	}
	if radiusM <= 0 {
		fmt.Println("error: -radius-m must be > 0")
		return
	}

	fmt.Printf("=== Headless Walk Report ===\n")
	fmt.Printf("start=%.6f,%.6f radius_m=%.0f runs=%d steps=%d seed_base=%d seed_step=%d\n\n",
		lat, lng, radiusM, runs, steps, seedBase, seedStep)

	p := walkParams{lat: lat, lng: lng, radiusM: radiusM, speedMPS: speedMPS, roamM: roamM}
	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runWalk(i+1, seed, steps, p)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runWalk steps one seeded walker against a fresh in-memory explored
// set, one sample per simulated second, and distills the event log into
// run stats.
func runWalk(runIndex int, seed int64, steps int, p walkParams) runStats {
	set := fog.NewExploredSet()
	engine := fog.NewEngine(nil, fog.DefaultRevealRadius)
	logbook := track.NewLog()

	opts := []track.WalkerOption{track.WithSeed(seed)}
	if p.speedMPS > 0 {
		opts = append(opts, track.WithSpeedMPS(p.speedMPS))
	}
	if p.roamM > 0 {
		opts = append(opts, track.WithRoamRadiusM(p.roamM))
	}
	w := track.NewWalker(p.lat, p.lng, opts...)

	marks := checkpointSteps(steps)
	cps := make([]checkpoint, 0, len(marks))
	prevLat, prevLng := w.Position()
	walked := 0.0
	for step := 1; step <= steps; step++ {
		lat, lng := w.Step(1)
		walked += geo.Distance(orb.Point{prevLng, prevLat}, orb.Point{lng, lat})
		prevLat, prevLng = lat, lng

		before := set.Size()
		if engine.RevealAt(lat, lng, set) {
			logbook.Add(step, "reveal", "new_cells", strconv.Itoa(set.Size()-before))
		} else {
			logbook.Add(step, "reveal", "redundant", "")
		}
		for _, m := range marks {
			if step == m {
				cov := fog.Coverage(set, p.lat, p.lng, p.radiusM)
				logbook.Add(step, "coverage", "checkpoint", fmt.Sprintf("%d%%", cov))
				cps = append(cps, checkpoint{step: step, coverage: cov, cells: set.Size()})
			}
		}
	}

	final := 0
	if len(cps) > 0 {
		final = cps[len(cps)-1].coverage
	}
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		steps:            steps,
		firstNewCellStep: firstStep(logbook.Entries(), "reveal", "new_cells"),
		cellsRevealed:    set.Size(),
		revealingSamples: logbook.Count("reveal", "new_cells"),
		redundantSamples: logbook.Count("reveal", "redundant"),
		walkedMeters:     walked,
		finalCoverage:    final,
		checkpoints:      cps,
	}
}

// checkpointSteps picks the quarter marks of a run, deduplicated for
// very short runs.
func checkpointSteps(steps int) []int {
	out := make([]int, 0, 4)
	for q := 1; q <= 4; q++ {
		s := steps * q / 4
		if s < 1 {
			s = 1
		}
		if len(out) == 0 || out[len(out)-1] != s {
			out = append(out, s)
		}
	}
	return out
}

func firstStep(entries []track.Entry, event, key string) int {
	for _, e := range entries {
		if e.Event == event && e.Key == key {
			return e.Step
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_new_cell=%d\n", rs.firstNewCellStep)
	fmt.Printf("sample_totals: revealing=%d redundant=%d cells=%d walked_m=%.0f\n",
		rs.revealingSamples, rs.redundantSamples, rs.cellsRevealed, rs.walkedMeters)
	fmt.Printf("coverage_checkpoints: %s\n", formatCheckpoints(rs.checkpoints))
	fmt.Println()
}

func formatCheckpoints(cps []checkpoint) string {
	if len(cps) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(cps))
	for _, cp := range cps {
		parts = append(parts, fmt.Sprintf("s%d=%d%%(%d cells)", cp.step, cp.coverage, cp.cells))
	}
	return strings.Join(parts, "  ")
}

func printAggregate(all []runStats) {
	totalRevealing := 0
	totalRedundant := 0
	totalCells := 0
	totalCoverage := 0
	totalWalked := 0.0
	firstSteps := make([]int, 0, len(all))

	for _, rs := range all {
		totalRevealing += rs.revealingSamples
		totalRedundant += rs.redundantSamples
		totalCells += rs.cellsRevealed
		totalCoverage += rs.finalCoverage
		totalWalked += rs.walkedMeters
		if rs.firstNewCellStep >= 0 {
			firstSteps = append(firstSteps, rs.firstNewCellStep)
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("avg_per_run: revealing=%.1f redundant=%.1f cells=%.1f walked_m=%.0f\n",
		avg(totalRevealing, n), avg(totalRedundant, n), avg(totalCells, n), avgF(totalWalked, n))
	fmt.Printf("avg_final_coverage=%.1f%%\n", avg(totalCoverage, n))
	fmt.Printf("first_new_cell_avg_step=%s\n", avgStepString(firstSteps))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgF(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func avgStepString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
