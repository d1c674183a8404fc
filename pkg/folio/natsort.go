package folio

import (
	"sort"
	"strings"
)

// NaturalCompare orders strings so that embedded digit runs compare by
// numeric value: "1.jpg" < "02.jpg" < "10.jpg". Letters compare
// case-insensitively. Runs with equal value order the shorter run first
// and a final byte comparison keeps the order total.
func NaturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si, sj := i, j
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return compareInt(len(na), len(nb))
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			if c := compareInt(i-si, j-sj); c != 0 {
				return c
			}
			continue
		}
		la, lb := lowerASCII(ca), lowerASCII(cb)
		if la != lb {
			return compareInt(int(la), int(lb))
		}
		i++
		j++
	}
	if c := compareInt(len(a)-i, len(b)-j); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return NaturalCompare(a, b) < 0
}

// SortNatural sorts values in place in natural order.
func SortNatural(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		return NaturalLess(values[i], values[j])
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
