// Package sop reduces the engine's control truth tables to two-level
// sum-of-products form. Minimization is Quine-McCluskey: merge adjacent
// minterms into prime implicants, then cover the on-set with the essential
// primes plus a greedy selection for the remainder. Every input point
// outside the on-set is treated as off, so a minimized expression is
// exactly equivalent to the table it came from, unrecognized encodings
// included.
//
// The expressions are a synthesis report; the engine keeps evaluating the
// structured generator.
package sop

import (
	"math/bits"
	"sort"
	"strings"
)

// Implicant is one product term over a fixed set of input variables. Mask
// bits mark don't-care positions; fixed positions carry their required
// value, with masked bits held zero so equal terms compare equal.
type Implicant struct {
	value uint32
	mask  uint32
}

// Covers reports whether the implicant covers the given input point.
func (im Implicant) Covers(point uint32) bool {
	return point&^im.mask == im.value
}

// Literals returns the number of fixed variables in the term.
func (im Implicant) Literals(numVars int) int {
	return numVars - bits.OnesCount32(im.mask)
}

// String renders the product term over the given variable names, most
// significant variable first. A term with every variable masked covers the
// whole space and renders as "1".
func (im Implicant) String(names []string) string {
	n := len(names)
	var lits []string
	for i := n - 1; i >= 0; i-- {
		bit := uint32(1) << uint(i)
		if im.mask&bit != 0 {
			continue
		}
		name := names[n-1-i]
		if im.value&bit == 0 {
			name = "~" + name
		}
		lits = append(lits, name)
	}
	if len(lits) == 0 {
		return "1"
	}
	return strings.Join(lits, " & ")
}

// Expression is one signal's minimized sum-of-products form.
type Expression struct {
	Signal string
	Terms  []Implicant
}

// Eval evaluates the expression at one input point.
func (e Expression) Eval(point uint32) bool {
	for _, t := range e.Terms {
		if t.Covers(point) {
			return true
		}
	}
	return false
}

// String renders the full expression over the given variable names.
func (e Expression) String(names []string) string {
	if len(e.Terms) == 0 {
		return e.Signal + " = 0"
	}
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		parts[i] = t.String(names)
	}
	return e.Signal + " = " + strings.Join(parts, " | ")
}

// Minimize computes a sum-of-products cover of the on-set over numVars
// input variables. The result covers exactly the on-set: no point outside
// it satisfies any returned term. The returned terms are deterministic and
// sorted.
func Minimize(numVars int, onSet []uint32) []Implicant {
	full := uint32(1)<<uint(numVars) - 1

	seen := make(map[uint32]bool, len(onSet))
	var minterms []uint32
	for _, m := range onSet {
		m &= full
		if !seen[m] {
			seen[m] = true
			minterms = append(minterms, m)
		}
	}
	if len(minterms) == 0 {
		return nil
	}
	sort.Slice(minterms, func(i, j int) bool { return minterms[i] < minterms[j] })

	primes := primeImplicants(minterms)
	return selectCover(primes, minterms)
}

// primeImplicants merges adjacent terms until nothing combines; terms that
// never merged at some round are prime.
func primeImplicants(minterms []uint32) []Implicant {
	cur := make([]Implicant, 0, len(minterms))
	for _, m := range minterms {
		cur = append(cur, Implicant{value: m})
	}

	var primes []Implicant
	for len(cur) > 0 {
		nextSet := make(map[Implicant]bool)
		combined := make([]bool, len(cur))

		for i := 0; i < len(cur); i++ {
			for j := i + 1; j < len(cur); j++ {
				a, b := cur[i], cur[j]
				if a.mask != b.mask {
					continue
				}
				diff := a.value ^ b.value
				if bits.OnesCount32(diff) != 1 {
					continue
				}
				nextSet[Implicant{value: a.value &^ diff, mask: a.mask | diff}] = true
				combined[i] = true
				combined[j] = true
			}
		}

		for i, im := range cur {
			if !combined[i] {
				primes = append(primes, im)
			}
		}

		cur = cur[:0]
		for im := range nextSet {
			cur = append(cur, im)
		}
		sortImplicants(cur)
	}

	sortImplicants(primes)
	return primes
}

// selectCover picks the essential primes, then greedily covers whatever
// minterms remain. Ties break on the sorted prime order, keeping the
// result deterministic.
func selectCover(primes []Implicant, minterms []uint32) []Implicant {
	covered := make(map[uint32]bool, len(minterms))
	taken := make(map[Implicant]bool, len(primes))
	var cover []Implicant

	take := func(im Implicant) {
		taken[im] = true
		cover = append(cover, im)
		for _, m := range minterms {
			if im.Covers(m) {
				covered[m] = true
			}
		}
	}

	for _, m := range minterms {
		var only Implicant
		count := 0
		for _, im := range primes {
			if im.Covers(m) {
				only = im
				count++
			}
		}
		if count == 1 && !taken[only] {
			take(only)
		}
	}

	for len(covered) < len(minterms) {
		best := -1
		bestGain := 0
		for i, im := range primes {
			if taken[im] {
				continue
			}
			gain := 0
			for _, m := range minterms {
				if !covered[m] && im.Covers(m) {
					gain++
				}
			}
			if gain > bestGain {
				bestGain = gain
				best = i
			}
		}
		if best < 0 {
			break
		}
		take(primes[best])
	}

	sortImplicants(cover)
	return cover
}

func sortImplicants(s []Implicant) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].value != s[j].value {
			return s[i].value < s[j].value
		}
		return s[i].mask < s[j].mask
	})
}
