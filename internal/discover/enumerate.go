// Package discover finds the serial port a temperature sensor is attached to.
// The host's reported ports are tried first, then a brute-force range of
// conventionally named ports, since virtual port pairs often do not show up
// in the host's enumeration. Each candidate is opened briefly and accepted
// only if it produces parseable numeric data.
package discover

import (
	"fmt"
	"sort"
	"strings"
)

// Candidate is one port name to try, with its provenance.
type Candidate struct {
	Name string

	// HostReported is true when the OS listed this port, false when it
	// comes from the brute-force range.
	HostReported bool
}

// Enumerate builds the ordered, deduplicated candidate list: every
// host-reported name, then every brute-force name prefix+1..prefix+maxIndex
// not already present. Host-reported names come first; within each group
// names sort by numeric suffix ascending, names without one last in their
// original order. Pure computation, no I/O.
func Enumerate(hostReported []string, prefix string, maxIndex int) []Candidate {
	seen := make(map[string]bool, len(hostReported)+maxIndex)

	var host []Candidate
	for _, name := range hostReported {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		host = append(host, Candidate{Name: name, HostReported: true})
	}
	sortBySuffix(host)

	var brute []Candidate
	for i := 1; i <= maxIndex; i++ {
		name := fmt.Sprintf("%s%d", prefix, i)
		if seen[name] {
			continue
		}
		seen[name] = true
		brute = append(brute, Candidate{Name: name})
	}

	return append(host, brute...)
}

// sortBySuffix orders candidates by trailing number, ascending. Candidates
// without a numeric suffix keep their relative order after the numbered ones.
func sortBySuffix(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		ni, oki := numericSuffix(cands[i].Name)
		nj, okj := numericSuffix(cands[j].Name)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return ni < nj
	})
}

// numericSuffix extracts the trailing decimal number of a port name,
// e.g. 7 from "COM7" or 0 from "/dev/ttyUSB0".
func numericSuffix(name string) (int, bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	digits := name[i:]
	if digits == "" || len(digits) > 9 {
		return 0, false
	}
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
	}
	// A bare number with no prefix is not a port name shape we know.
	if strings.TrimSpace(name[:i]) == "" {
		return 0, false
	}
	return n, true
}
