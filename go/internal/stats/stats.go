// Package stats aggregates the cards revealed in a voting round.
// Special cards are skipped by Average and Median but counted by Mode and Distribution.
package stats

import (
	"sort"

	"github.com/mcdev12/planpoker/go/internal/cards"
)

// Summary bundles every statistic for one round. Nil pointers mean no numeric votes.
type Summary struct {
	Count        int            `json:"count"`
	Average      *float64       `json:"average"`
	Median       *float64       `json:"median"`
	Mode         []string       `json:"mode"`
	Distribution map[string]int `json:"distribution"`
}

// Summarize computes all statistics over votes.
func Summarize(votes []string) Summary {
	s := Summary{
		Count:        len(votes),
		Mode:         Mode(votes),
		Distribution: Distribution(votes),
	}
	if avg, ok := Average(votes); ok {
		s.Average = &avg
	}
	if med, ok := Median(votes); ok {
		s.Median = &med
	}
	return s
}

// NumericValues returns the numeric votes in input order.
func NumericValues(votes []string) []float64 {
	out := make([]float64, 0, len(votes))
	for _, v := range votes {
		if f, ok := cards.ParseNumber(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// Average is the arithmetic mean of the numeric votes.
func Average(votes []string) (float64, bool) {
	nums := NumericValues(votes)
	if len(nums) == 0 {
		return 0, false
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums)), true
}

// Median of the numeric votes, averaging the middle pair for even counts.
func Median(votes []string) (float64, bool) {
	nums := NumericValues(votes)
	if len(nums) == 0 {
		return 0, false
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], true
	}
	return (nums[mid-1] + nums[mid]) / 2, true
}

// Mode returns every most frequent raw value, in order of first appearance.
func Mode(votes []string) []string {
	counts := make(map[string]int, len(votes))
	order := make([]string, 0, len(votes))
	best := 0
	for _, v := range votes {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}

	out := []string{}
	for _, v := range order {
		if counts[v] == best {
			out = append(out, v)
		}
	}
	return out
}

// Distribution counts each raw value.
func Distribution(votes []string) map[string]int {
	dist := make(map[string]int, len(votes))
	for _, v := range votes {
		dist[v]++
	}
	return dist
}
