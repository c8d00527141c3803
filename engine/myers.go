package engine

import (
	"context"
	"strings"
)

// intern maps every distinct line to a compact integer id so the edit-script
// search compares ints instead of strings. When ignoreWhitespace is set,
// lines that differ only in leading/trailing whitespace share an id.
func intern(old, new []string, ignoreWhitespace bool) (a, b []int) {
	ids := make(map[string]int, len(old)+len(new))
	key := func(s string) string {
		if ignoreWhitespace {
			return strings.TrimSpace(s)
		}
		return s
	}
	a = make([]int, len(old))
	for i, s := range old {
		k := key(s)
		id, ok := ids[k]
		if !ok {
			id = len(ids) + 1
			ids[k] = id
		}
		a[i] = id
	}
	b = make([]int, len(new))
	for i, s := range new {
		k := key(s)
		id, ok := ids[k]
		if !ok {
			id = len(ids) + 1
			ids[k] = id
		}
		b[i] = id
	}
	return a, b
}

// myers runs the linear-space variant of the Myers shortest-edit-script
// search ("An O(ND) Difference Algorithm and its Variations", Sec. 4b).
// Instead of materializing an edit script it marks changed positions in two
// bool slices, which keeps the divide-and-conquer recursion allocation-free:
// the forward/backward furthest-reaching vectors live in a single shared
// buffer sized for the top-level problem.
type myers struct {
	ctx context.Context
	v   []int
}

func newMyers(ctx context.Context, len1, len2 int) *myers {
	size := (len1+len2+1)*2 + 2
	return &myers{ctx: ctx, v: make([]int, size*2)}
}

// compare marks changed positions in a and b. It trims the common prefix and
// suffix, solves trivial remainders directly, and otherwise splits the
// problem at a middle snake found by middleSnake.
func (m *myers) compare(a, b []int, changedA, changedB []bool) error {
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

	len1, len2 := end1-start1, end2-start2

	switch {
	case len1 == 0:
		for start2 < end2 {
			changedB[start2] = true
			start2++
		}

	case len2 == 0:
		for start1 < end1 {
			changedA[start1] = true
			start1++
		}

	case len1 == 1 && len2 == 1:
		changedA[start1] = true
		changedB[start2] = true

	default:
		a, changedA = a[start1:end1], changedA[start1:end1]
		b, changedB = b[start2:end2], changedB[start2:end2]

		var x0, y0, x1, y1 int
		if len(a) == 1 {
			x0, y0 = findOne(a[0], b)
			x1, y1 = x0, y0
		} else if len(b) == 1 {
			y0, x0 = findOne(b[0], a)
			x1, y1 = x0, y0
		} else {
			var err error
			x0, y0, x1, y1, err = m.middleSnake(a, b)
			if err != nil {
				return err
			}
		}

		if err := m.compare(a[:x0], b[:y0], changedA[:x0], changedB[:y0]); err != nil {
			return err
		}
		if err := m.compare(a[x1:], b[y1:], changedA[x1:], changedB[y1:]); err != nil {
			return err
		}
	}
	return nil
}

// findOne locates a single item within a list. It returns (0, index) when
// the item matches, or (1, 0) when it does not, mirroring the coordinates a
// middle-snake search would produce for the one-item case.
func findOne(value int, list []int) (int, int) {
	for i, v := range list {
		if v == value {
			return 0, i
		}
	}
	return 1, 0
}

// middleSnake finds the middle snake of the shortest edit path by running
// the forward and backward searches simultaneously until they overlap. The
// returned coordinates (x0,y0)-(x1,y1) bound the snake in a/b space.
func (m *myers) middleSnake(a, b []int) (int, int, int, int, error) {
	end1, end2 := len(a), len(b)
	mMax := end1 + end2 + 1
	upK := end1 - end2 // diagonal of the backward search origin
	odd := (upK & 1) != 0
	downOff, upOff := mMax, mMax-upK+mMax+mMax+2
	v := m.v

	v[downOff+1] = 0
	v[downOff] = 0
	v[upOff+upK-1] = end1
	v[upOff+upK] = end1

	var k, x, u, z int

	for d := 1; ; d++ {
		if err := m.ctx.Err(); err != nil {
			return 0, 0, 0, 0, err
		}
		upKPlusD := upK + d
		upKMinusD := upK - d

		// Forward path: extend the furthest-reaching d-path on each diagonal.
		for k = -d; k <= d; k += 2 {
			x = v[downOff+k+1]
			if k > -d && (k == d || z >= x) {
				x, z = z+1, x
			} else {
				z = x
			}
			for u = x; x < end1 && x-k < end2 && a[x] == b[x-k]; x++ {
			}
			if odd && (upKMinusD < k) && (k < upKPlusD) && v[upOff+k] <= x {
				return u, u - k, x, x - k, nil
			}
			v[downOff+k] = x
		}

		// Backward path.
		z = v[upOff+upKMinusD-1]
		for k = upKMinusD; k <= upKPlusD; k += 2 {
			x = z
			if k < upKPlusD {
				z = v[upOff+k+1]
				if k == upKMinusD || z <= x {
					x = z - 1
				}
			}
			for u = x; x > 0 && x > k && a[x-1] == b[x-k-1]; x-- {
			}
			if !odd && (-d <= k) && (k <= d) && x <= v[downOff+k] {
				return x, x - k, u, u - k, nil
			}
			v[upOff+k] = x
		}
	}
}

// shiftChanges slides each run of changed positions up or down within its
// freedom of movement so that adjacent runs merge. Sliding never alters the
// number of changed positions, only which equal lines flank them, so
// minimality is preserved while hunks come out contiguous.
func shiftChanges(data []int, changed []bool) {
	start, clen := 0, len(changed)

	for start < clen {
		for start < clen && !changed[start] {
			start++
		}
		if start >= clen {
			break
		}

		end := start + 1
		for end < clen && changed[end] {
			end++
		}

		// How far can this run slide while the flanking lines keep matching?
		up, down := 0, 0
		for start-up-1 >= 0 && !changed[start-up-1] && data[start-up-1] == data[end-up-1] {
			up++
		}
		for end+down < clen && !changed[end+down] && data[end+down] == data[start+down] {
			down++
		}
		if start == 0 {
			up, down = 0, 0
		}

		upMerge := (start-up == 0) || (start-up-1 >= 0 && changed[start-up-1])
		downMerge := (end+down == clen) || (end+down < clen && changed[end+down])

		switch {
		case up > 0 && upMerge:
			applyShift(start, end, -up, changed)
			// Rescan from the top of the merged run so cascading merges are
			// picked up, unless the run now touches the start of the list.
			next := start - up
			for next-1 >= 0 && changed[next-1] {
				next--
			}
			if next > 0 {
				start = next
			}

		case down > 0 && downMerge:
			applyShift(start, end, down, changed)
			start += down

		default:
			start = end
		}
	}
}

// applyShift moves the changed run [start, end) by offset positions.
func applyShift(start, end, offset int, changed []bool) {
	if offset < 0 {
		for offset != 0 {
			start, end, offset = start-1, end-1, offset+1
			changed[start], changed[end] = true, false
		}
	} else {
		for offset != 0 {
			changed[start], changed[end] = false, true
			start, end, offset = start+1, end+1, offset-1
		}
	}
}

// editKind classifies one run of an edit script.
type editKind int

const (
	editEqual editKind = iota
	editDelete
	editInsert
)

// edit is one run-length step of an edit script. old and new index the
// respective line slices at the start of the run; n is the run length.
type edit struct {
	kind editKind
	old  int
	new  int
	n    int
}

// script converts the changed-position marks into an ordered edit script.
// At each change point deletions precede insertions.
func script(changedOld, changedNew []bool) []edit {
	var ops []edit
	i, j := 0, 0
	for i < len(changedOld) || j < len(changedNew) {
		switch {
		case i < len(changedOld) && changedOld[i]:
			start := i
			for i < len(changedOld) && changedOld[i] {
				i++
			}
			ops = append(ops, edit{kind: editDelete, old: start, new: j, n: i - start})

		case j < len(changedNew) && changedNew[j]:
			start := j
			for j < len(changedNew) && changedNew[j] {
				j++
			}
			ops = append(ops, edit{kind: editInsert, old: i, new: start, n: j - start})

		default:
			oldStart, newStart := i, j
			for i < len(changedOld) && j < len(changedNew) && !changedOld[i] && !changedNew[j] {
				i++
				j++
			}
			ops = append(ops, edit{kind: editEqual, old: oldStart, new: newStart, n: i - oldStart})
		}
	}
	return ops
}
