package main

import (
	"testing"

	"github.com/Garsondee/Beast-Arena/internal/arena"
)

func TestAggregateCountsWinsAndAverages(t *testing.T) {
	reports := []arena.BattleReport{
		{Outcome: arena.OutcomePlayerWins, Score: 2000, Elapsed: 60, FightersAlive: 8, EnrageCycles: 2},
		{Outcome: arena.OutcomePlayerWins, Score: 1600, Elapsed: 120, FightersAlive: 4, EnrageCycles: 1},
		{Outcome: arena.OutcomePlayerLoses, Score: 0, Elapsed: 200, FightersAlive: 0, EnrageCycles: 3},
	}

	agg := aggregate(reports)
	if agg.runs != 3 || agg.wins != 2 {
		t.Fatalf("expected runs=3 wins=2, got runs=%d wins=%d", agg.runs, agg.wins)
	}
	if got := agg.avgWinScore(); got != 1800 {
		t.Fatalf("expected avg win score 1800, got %.0f", got)
	}
	if agg.enrageSum != 6 || agg.survivorSum != 12 {
		t.Fatalf("expected enrageSum=6 survivorSum=12, got %d and %d", agg.enrageSum, agg.survivorSum)
	}
}

func TestAggregateEmptyIsSafe(t *testing.T) {
	agg := aggregate(nil)
	if agg.winRate() != 0 || agg.avgWinScore() != 0 {
		t.Fatalf("expected zero rates on empty input, got rate=%.1f score=%.1f", agg.winRate(), agg.avgWinScore())
	}
}

func TestRunBattleReachesResultOrTimeout(t *testing.T) {
	r := runBattle(7, 10800, "bear", 20)
	if r.FightersPlaced != 20 {
		t.Fatalf("expected 20 fighters placed, got %d", r.FightersPlaced)
	}
	if r.Ticks <= 0 {
		t.Fatalf("expected battle to tick, got %d", r.Ticks)
	}
}
