package filter

// A tiny stdlib-only Aho-Corasick automaton for byte strings.
// Inputs are normalized lowercase UTF-8. Each node carries a fixed
// 256-way transition table to keep the scan loop free of map lookups

type acNode struct {
	// next[b] = next state or -1 if absent
	next [256]int
	fail int
	out  []int // term IDs ending at this node
}

type acAutomaton struct {
	nodes []acNode
}

func newAutomaton() *acAutomaton {
	a := &acAutomaton{nodes: make([]acNode, 1)}
	for i := range a.nodes[0].next {
		a.nodes[0].next[i] = -1
	}
	a.nodes[0].fail = 0
	return a
}

// Add inserts a term and associates it with an integer ID
func (a *acAutomaton) Add(term []byte, id int) {
	if len(term) == 0 {
		return
	}
	state := 0
	for _, b := range term {
		nxt := a.nodes[state].next[b]
		if nxt == -1 {
			nxt = len(a.nodes)
			a.nodes[state].next[b] = nxt
			var n acNode
			for i := range n.next {
				n.next[i] = -1
			}
			a.nodes = append(a.nodes, n)
		}
		state = nxt
	}
	a.nodes[state].out = append(a.nodes[state].out, id)
}

// Build finalizes failure links with a BFS over the trie
func (a *acAutomaton) Build() {
	q := make([]int, 0, 64)
	for b := range 256 {
		if s := a.nodes[0].next[byte(b)]; s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}

	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := range 256 {
			s := a.nodes[r].next[byte(b)]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].next[byte(b)] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].next[byte(b)]; nxt != -1 {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}

			a.nodes[s].out = append(a.nodes[s].out, a.nodes[a.nodes[s].fail].out...)
		}
	}
}

// Scan walks text and calls cb(endIndex, termID) per match.
// Returning false from cb stops the scan early
func (a *acAutomaton) Scan(text []byte, cb func(end int, id int) bool) {
	state := 0
	for i, b := range text {
		for state != 0 && a.nodes[state].next[b] == -1 {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].next[b]; nxt != -1 {
			state = nxt
		}
		for _, id := range a.nodes[state].out {
			if !cb(i+1, id) {
				return
			}
		}
	}
}
