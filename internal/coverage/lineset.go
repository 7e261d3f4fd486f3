package coverage

import "golang.org/x/exp/slices"

// lineSet accumulates the source lines touched while traversing one scoped
// block (§4.2). It is append-only during the traversal and consumed exactly
// once, when the scope's descriptor is emitted.
type lineSet struct {
	lines map[int]struct{}
}

func newLineSet() *lineSet {
	return &lineSet{lines: make(map[int]struct{})}
}

// add inserts a line number into the set; duplicates are no-ops.
func (s *lineSet) add(line int) {
	if s == nil {
		return
	}
	s.lines[line] = struct{}{}
}

// sorted returns the set's contents in ascending order.
func (s *lineSet) sorted() []int {
	if s == nil || len(s.lines) == 0 {
		return nil
	}
	out := make([]int, 0, len(s.lines))
	for l := range s.lines {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// first returns the smallest line in the set, or 0 if it's empty.
func (s *lineSet) first() int {
	lines := s.sorted()
	if len(lines) == 0 {
		return 0
	}
	return lines[0]
}

// coalesce renders the set as a comma-separated list of inclusive ranges
// ("a", "a-b", "r1,r2,…"), per §4.2 and P6. An empty set yields "".
func (s *lineSet) coalesce() string {
	lines := s.sorted()
	if len(lines) == 0 {
		return ""
	}

	var out []byte
	first, last := lines[0], lines[0]
	flush := func() {
		if len(out) > 0 {
			out = append(out, ',')
		}
		if first == last {
			out = appendInt(out, first)
		} else {
			out = appendInt(out, first)
			out = append(out, '-')
			out = appendInt(out, last)
		}
	}

	for _, l := range lines[1:] {
		if l == last+1 {
			last = l
			continue
		}
		flush()
		first, last = l, l
	}
	flush()

	return string(out)
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, tmp[i:]...)
}
