package arena

import (
	"fmt"
	"sort"
	"strings"
)

// BattleReport summarizes one headless run from the battle's event log.
type BattleReport struct {
	Seed    int64
	Outcome Outcome
	Score   int
	Elapsed float64
	Ticks   int

	FightersPlaced int
	FightersAlive  int
	CommanderAlive bool

	AnimalType   string
	AnimalHP     float64 // ratio remaining
	EnrageCycles int

	CommanderHits   int
	RallyCount      int
	StateChanges    int
	BehaviorChanges int
	BehaviorUsage   map[BehaviorKind]int
}

// BuildReport collects a report from a finished (or interrupted) harness run.
func BuildReport(ts *TestSim) BattleReport {
	b := ts.Battle
	log := b.Log()

	usage := make(map[BehaviorKind]int)
	for _, e := range log.Filter("animal") {
		if e.Key == "behavior_change" {
			usage[BehaviorKind(e.Value)]++
		}
	}

	return BattleReport{
		Seed:            b.Seed(),
		Outcome:         b.Outcome(),
		Score:           b.Score(),
		Elapsed:         b.Elapsed(),
		Ticks:           b.tick,
		FightersPlaced:  len(b.Fighters()),
		FightersAlive:   b.aliveFighters(),
		CommanderAlive:  b.Commander().Alive(),
		AnimalType:      b.Animal().Profile.Type,
		AnimalHP:        b.Animal().HealthRatio(),
		EnrageCycles:    log.Count("animal", "enrage"),
		CommanderHits:   log.Count("combat", "commander_hit"),
		RallyCount:      log.Count("command", "rally"),
		StateChanges:    log.Count("state", "change"),
		BehaviorChanges: log.Count("animal", "behavior_change"),
		BehaviorUsage:   usage,
	}
}

// Format renders the report as a fixed-order text block.
func (r BattleReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "seed=%d outcome=%s score=%d elapsed=%.1fs ticks=%d\n",
		r.Seed, r.Outcome, r.Score, r.Elapsed, r.Ticks)
	fmt.Fprintf(&sb, "fighters: placed=%d alive=%d commander_alive=%v\n",
		r.FightersPlaced, r.FightersAlive, r.CommanderAlive)
	fmt.Fprintf(&sb, "animal: type=%s hp=%.0f%% enrage_cycles=%d\n",
		r.AnimalType, r.AnimalHP*100, r.EnrageCycles)
	fmt.Fprintf(&sb, "events: commander_hits=%d rallies=%d state_changes=%d behavior_changes=%d\n",
		r.CommanderHits, r.RallyCount, r.StateChanges, r.BehaviorChanges)

	kinds := make([]string, 0, len(r.BehaviorUsage))
	for k := range r.BehaviorUsage {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&sb, "  behavior %-10s x%d\n", k, r.BehaviorUsage[BehaviorKind(k)])
	}
	return sb.String()
}
