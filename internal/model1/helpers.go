package model1

import (
	"strconv"
	"strings"

	"github.com/fvbommel/sortorder"
)

// Less returns true if row 1 orders strictly before row 2 for the given
// column kind. Equal values fall back to positional order.
func Less(kind Kind, idx1, idx2 int, v1, v2 string) bool {
	if v1 == v2 {
		return idx1 < idx2
	}
	switch kind {
	case KindNumber:
		return lessNumber(v1, v2)
	case KindDuration:
		return lessDuration(v1, v2)
	default:
		return sortorder.NaturalLess(v1, v2)
	}
}

func lessDuration(s1, s2 string) bool {
	d1, d2 := durationToSeconds(s1), durationToSeconds(s2)
	if d1 == d2 {
		return sortorder.NaturalLess(s1, s2)
	}
	return d1 < d2
}

func lessNumber(s1, s2 string) bool {
	v1, v2 := strings.ReplaceAll(s1, ",", ""), strings.ReplaceAll(s2, ",", "")
	f1, err1 := strconv.ParseFloat(v1, 64)
	f2, err2 := strconv.ParseFloat(v2, 64)
	switch {
	case err1 == nil && err2 == nil && f1 != f2:
		return f1 < f2
	case err1 == nil && err2 != nil:
		return true
	case err1 != nil && err2 == nil:
		return false
	}
	return sortorder.NaturalLess(v1, v2)
}

func durationToSeconds(duration string) int64 {
	if duration == "" || duration == NAValue {
		return 0
	}
	num := make([]rune, 0, 5)
	var n, m int64
	for _, r := range duration {
		switch r {
		case 'y':
			m = 365 * 24 * 60 * 60
		case 'd':
			m = 24 * 60 * 60
		case 'h':
			m = 60 * 60
		case 'm':
			m = 60
		case 's':
			m = 1
		default:
			num = append(num, r)
			continue
		}
		n, num = n+runesToNum(num)*m, num[:0]
	}
	return n
}

func runesToNum(rr []rune) int64 {
	var r int64
	var m int64 = 1
	for i := len(rr) - 1; i >= 0; i-- {
		v := int64(rr[i] - '0')
		r += v * m
		m *= 10
	}
	return r
}
