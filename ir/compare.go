package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes by payload. The result is
// 0 if a==b, -1 if a < b, and +1 if a > b. Paths do not participate: two
// nodes differing only in location compare equal.
func Compare(a, b Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Kind())
	rankB := rank(b.Kind())
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch x := a.(type) {
	case *Null:
		return 0
	case *Scalar:
		return strings.Compare(x.Content, b.(*Scalar).Content)
	case *List:
		return compareLists(x, b.(*List))
	case *Map:
		return compareMaps(x, b.(*Map))
	case *Tagged:
		y := b.(*Tagged)
		if c := strings.Compare(x.Tag, y.Tag); c != 0 {
			return c
		}
		return Compare(x.Inner, y.Inner)
	}
	return 0
}

// Equal reports payload equality, ignoring paths.
func Equal(a, b Node) bool {
	return Compare(a, b) == 0
}

// rank orders kinds: Null < Scalar < List < Map < Tagged.
func rank(k Kind) int {
	switch k {
	case NullKind:
		return 0
	case ScalarKind:
		return 1
	case ListKind:
		return 2
	case MapKind:
		return 3
	case TaggedKind:
		return 4
	}
	return 100
}

func compareLists(a, b *List) int {
	lenA := len(a.Items)
	lenB := len(b.Items)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Items[i], b.Items[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareMaps(a, b *Map) int {
	lenA := len(a.Entries)
	lenB := len(b.Entries)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Entries[i].Key, b.Entries[i].Key); c != 0 {
			return c
		}
		if c := Compare(a.Entries[i].Val, b.Entries[i].Val); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
