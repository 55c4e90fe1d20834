package arena

import (
	"fmt"
	"sort"
	"strings"
)

// LogEntry is one structured simulation event.
type LogEntry struct {
	Tick     int
	Unit     int // subject unit ID; commanderID for the commander
	Category string
	Key      string
	Value    string
	NumVal   float64
}

// SimLog is an append-only structured event log kept by the battle. Tests and
// the headless report query it instead of scraping stdout.
type SimLog struct {
	entries []LogEntry
}

// NewSimLog returns an empty log.
func NewSimLog() *SimLog {
	return &SimLog{}
}

// Add appends one event. A nil log drops silently.
func (l *SimLog) Add(tick, unit int, category, key, value string, numVal float64) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, LogEntry{
		Tick:     tick,
		Unit:     unit,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns the full event list in arrival order.
func (l *SimLog) Entries() []LogEntry {
	if l == nil {
		return nil
	}
	return l.entries
}

// Filter returns every entry in a category, in arrival order.
func (l *SimLog) Filter(category string) []LogEntry {
	if l == nil {
		return nil
	}
	var out []LogEntry
	for _, e := range l.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether any entry matches the category and key.
func (l *SimLog) HasEntry(category, key string) bool {
	if l == nil {
		return false
	}
	for _, e := range l.entries {
		if e.Category == category && e.Key == key {
			return true
		}
	}
	return false
}

// Count returns how many entries match the category and key.
func (l *SimLog) Count(category, key string) int {
	n := 0
	if l == nil {
		return 0
	}
	for _, e := range l.entries {
		if e.Category == category && e.Key == key {
			n++
		}
	}
	return n
}

// Summary renders per-category/key counts, sorted, one line each. Used by the
// headless report and by verbose test runs.
func (l *SimLog) Summary() string {
	if l == nil || len(l.entries) == 0 {
		return "(no events)"
	}
	counts := make(map[string]int)
	for _, e := range l.entries {
		counts[e.Category+"/"+e.Key]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%-32s %d\n", k, counts[k])
	}
	return sb.String()
}
