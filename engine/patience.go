package engine

// patience marks changes with the patience strategy: lines occurring exactly
// once on both sides anchor the alignment, the longest increasing
// subsequence of those anchors splits the problem into independent gaps, and
// each gap is solved recursively. Ranges without any anchor fall back to the
// Myers search, so the result is always a complete edit script.
func (m *myers) patience(a, b []int, changedA, changedB []bool) error {
	if err := m.ctx.Err(); err != nil {
		return err
	}

	start1, start2 := 0, 0
	end1, end2 := len(a), len(b)

	for start1 < end1 && start2 < end2 && a[start1] == b[start2] {
		start1++
		start2++
	}
	for start1 < end1 && start2 < end2 && a[end1-1] == b[end2-1] {
		end1--
		end2--
	}

	a, changedA = a[start1:end1], changedA[start1:end1]
	b, changedB = b[start2:end2], changedB[start2:end2]

	if len(a) == 0 || len(b) == 0 {
		return m.compare(a, b, changedA, changedB)
	}

	anchors := longestIncreasing(uniqueCommon(a, b))
	if len(anchors) == 0 {
		return m.compare(a, b, changedA, changedB)
	}

	prevI, prevJ := 0, 0
	for _, p := range anchors {
		if err := m.patience(a[prevI:p.i], b[prevJ:p.j], changedA[prevI:p.i], changedB[prevJ:p.j]); err != nil {
			return err
		}
		prevI, prevJ = p.i+1, p.j+1
	}
	return m.patience(a[prevI:], b[prevJ:], changedA[prevI:], changedB[prevJ:])
}

// anchor pairs the position of a line unique to both sequences.
type anchor struct {
	i int // position in a
	j int // position in b
}

// uniqueCommon returns the positions of lines that occur exactly once in
// both sequences, ordered by their position in a.
func uniqueCommon(a, b []int) []anchor {
	countA := make(map[int]int)
	for _, id := range a {
		countA[id]++
	}
	countB := make(map[int]int)
	posB := make(map[int]int)
	for j, id := range b {
		countB[id]++
		posB[id] = j
	}

	var pairs []anchor
	for i, id := range a {
		if countA[id] == 1 && countB[id] == 1 {
			pairs = append(pairs, anchor{i: i, j: posB[id]})
		}
	}
	return pairs
}

// longestIncreasing filters pairs (already ascending in i) down to the
// longest subsequence that is also ascending in j, via patience sorting
// with binary search over pile tops.
func longestIncreasing(pairs []anchor) []anchor {
	if len(pairs) == 0 {
		return nil
	}

	tails := make([]int, 0, len(pairs)) // tails[n] = index of smallest j closing a run of length n+1
	prev := make([]int, len(pairs))

	for idx, p := range pairs {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if pairs[tails[mid]].j < p.j {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[idx] = tails[lo-1]
		} else {
			prev[idx] = -1
		}
		if lo == len(tails) {
			tails = append(tails, idx)
		} else {
			tails[lo] = idx
		}
	}

	out := make([]anchor, len(tails))
	k := tails[len(tails)-1]
	for n := len(tails) - 1; n >= 0; n-- {
		out[n] = pairs[k]
		k = prev[k]
	}
	return out
}
