package ranker

import "sort"

// Selector picks non-overlapping highlights from a ranked list. Two
// strategies exist: the greedy-by-score pass the product has always used,
// and an exact weighted-interval-scheduling variant. Both honor the same
// gap and count constraints, so they are interchangeable behind this
// interface and can be property-tested against each other.
type Selector interface {
	Select(ranked []Highlight, maxHighlights int, minGap float64) []Highlight
}

// GreedySelector walks the ranked list in descending score order and accepts
// a candidate unless it overlaps, or sits within minGap seconds of, an
// already-accepted highlight. It approximates maximum-weight independent set
// on the interval graph and can be beaten by the exact schedule, but its
// picks are stable and predictable. This is the default.
type GreedySelector struct{}

// Select implements Selector.
func (GreedySelector) Select(ranked []Highlight, maxHighlights int, minGap float64) []Highlight {
	var selected []Highlight
	for _, cand := range ranked {
		if len(selected) >= maxHighlights {
			break
		}
		if conflicts(cand, selected, minGap) {
			continue
		}
		selected = append(selected, cand)
	}
	return selected
}

// ScheduleSelector solves the gap-augmented weighted interval scheduling
// problem exactly: it maximizes total composite score over all compatible
// subsets of size at most maxHighlights. Kept behind the Selector interface
// until greedy's behavior is confirmed as intended product behavior.
type ScheduleSelector struct{}

// Select implements Selector.
func (ScheduleSelector) Select(ranked []Highlight, maxHighlights int, minGap float64) []Highlight {
	n := len(ranked)
	if n == 0 || maxHighlights <= 0 {
		return nil
	}
	if maxHighlights > n {
		maxHighlights = n
	}

	byEnd := append([]Highlight(nil), ranked...)
	sort.SliceStable(byEnd, func(i, j int) bool { return byEnd[i].End < byEnd[j].End })

	// prev[i]: the rightmost j < i compatible with i (end + gap < start).
	prev := make([]int, n)
	for i := range byEnd {
		prev[i] = -1
		for j := i - 1; j >= 0; j-- {
			if byEnd[j].End+minGap < byEnd[i].Start {
				prev[i] = j
				break
			}
		}
	}

	// best[i][k]: max total score using the first i intervals with at most
	// k picks. take[i][k] records whether interval i-1 is picked.
	best := make([][]float64, n+1)
	take := make([][]bool, n+1)
	for i := 0; i <= n; i++ {
		best[i] = make([]float64, maxHighlights+1)
		take[i] = make([]bool, maxHighlights+1)
	}
	for i := 1; i <= n; i++ {
		for k := 1; k <= maxHighlights; k++ {
			skip := best[i-1][k]
			with := byEnd[i-1].CompositeScore + best[prev[i-1]+1][k-1]
			if with > skip {
				best[i][k] = with
				take[i][k] = true
			} else {
				best[i][k] = skip
			}
		}
	}

	var picks []Highlight
	for i, k := n, maxHighlights; i > 0 && k > 0; {
		if take[i][k] {
			picks = append(picks, byEnd[i-1])
			i = prev[i-1] + 1
			k--
		} else {
			i--
		}
	}

	// Output contract matches greedy: descending composite score.
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].CompositeScore > picks[j].CompositeScore
	})
	return picks
}

// conflicts reports whether cand overlaps or sits within minGap seconds of
// any accepted highlight.
func conflicts(cand Highlight, accepted []Highlight, minGap float64) bool {
	for _, a := range accepted {
		if cand.Start <= a.End+minGap && cand.End >= a.Start-minGap {
			return true
		}
	}
	return false
}
