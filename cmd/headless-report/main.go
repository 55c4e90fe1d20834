package main

import (
	"flag"
	"fmt"

	"github.com/Garsondee/Beast-Arena/internal/arena"
)

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var animalType string
	var fighters int

	flag.IntVar(&runs, "runs", 5, "number of headless battle runs")
	flag.IntVar(&ticks, "ticks", 10800, "max ticks per run (60/s)")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&animalType, "animal", "bear", "animal type (bear, rhino, gorilla, panther)")
	flag.IntVar(&fighters, "fighters", 20, "fighters placed per run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if fighters <= 0 {
		fmt.Println("error: -fighters must be > 0")
		return
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("animal=%s fighters=%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		animalType, fighters, runs, ticks, seedBase, seedStep)

	reports := make([]arena.BattleReport, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		r := runBattle(seed, ticks, animalType, fighters)
		reports = append(reports, r)
		fmt.Printf("--- Run %d ---\n%s\n", i+1, r.Format())
	}

	printAggregate(aggregate(reports))
}

// runBattle plays one autopilot battle: the commander holds near the fighters
// and attacks whenever the animal is in reach, rallying every ten seconds.
func runBattle(seed int64, maxTicks int, animalType string, fighters int) arena.BattleReport {
	ts := arena.NewTestSim(
		arena.WithSeed(seed),
		arena.WithAnimalType(animalType),
		arena.WithMaxFighters(fighters),
		arena.WithFighterRing(fighters, 6),
	)
	ts.Battle.SetAttackHeld(true)

	const rallyEvery = 600
	for tick := 0; tick < maxTicks; tick += rallyEvery {
		if ts.Battle.Phase() == arena.PhaseResult {
			break
		}
		ts.RunTicks(rallyEvery)
		ts.Battle.Rally()
	}
	return arena.BuildReport(ts)
}

// runAggregate summarizes a batch of runs.
type runAggregate struct {
	runs        int
	wins        int
	winScoreSum int
	winTimeSum  float64
	enrageSum   int
	survivorSum int
}

func aggregate(reports []arena.BattleReport) runAggregate {
	agg := runAggregate{runs: len(reports)}
	for _, r := range reports {
		if r.Outcome == arena.OutcomePlayerWins {
			agg.wins++
			agg.winScoreSum += r.Score
			agg.winTimeSum += r.Elapsed
		}
		agg.enrageSum += r.EnrageCycles
		agg.survivorSum += r.FightersAlive
	}
	return agg
}

func (a runAggregate) winRate() float64 {
	if a.runs == 0 {
		return 0
	}
	return float64(a.wins) / float64(a.runs) * 100
}

func (a runAggregate) avgWinScore() float64 {
	if a.wins == 0 {
		return 0
	}
	return float64(a.winScoreSum) / float64(a.wins)
}

func printAggregate(a runAggregate) {
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d wins=%d win_rate=%.0f%%\n", a.runs, a.wins, a.winRate())
	if a.wins > 0 {
		fmt.Printf("avg_win_score=%.0f avg_win_time=%.1fs\n",
			a.avgWinScore(), a.winTimeSum/float64(a.wins))
	}
	fmt.Printf("avg_enrage_cycles=%.1f avg_survivors=%.1f\n",
		float64(a.enrageSum)/float64(a.runs), float64(a.survivorSum)/float64(a.runs))
}
