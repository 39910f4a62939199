package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Name
	}
	return out
}

func TestEnumerate_HostReportedFirst(t *testing.T) {
	cands := Enumerate([]string{"/dev/ttyACM0"}, "COM", 2)
	assert.Equal(t, []string{"/dev/ttyACM0", "COM1", "COM2"}, names(cands))
	assert.True(t, cands[0].HostReported)
	assert.False(t, cands[1].HostReported)
}

func TestEnumerate_HostReportedSortedByNumericSuffix(t *testing.T) {
	cands := Enumerate([]string{"COM30", "COM4", "COM11"}, "COM", 0)
	assert.Equal(t, []string{"COM4", "COM11", "COM30"}, names(cands))
}

func TestEnumerate_NonNumericNamesSortLastInOrder(t *testing.T) {
	cands := Enumerate([]string{"/dev/serial-b", "COM2", "/dev/serial-a"}, "", 0)
	assert.Equal(t, []string{"COM2", "/dev/serial-b", "/dev/serial-a"}, names(cands))
}

func TestEnumerate_Deduplicates(t *testing.T) {
	cands := Enumerate([]string{"COM2", "COM2", "COM1"}, "COM", 3)
	assert.Equal(t, []string{"COM1", "COM2", "COM3"}, names(cands))
}

func TestEnumerate_SkipsEmptyNames(t *testing.T) {
	cands := Enumerate([]string{"", "COM1"}, "", 0)
	assert.Equal(t, []string{"COM1"}, names(cands))
}

func TestEnumerate_BruteForceRange(t *testing.T) {
	cands := Enumerate(nil, "/dev/ttyUSB", 3)
	assert.Equal(t, []string{"/dev/ttyUSB1", "/dev/ttyUSB2", "/dev/ttyUSB3"}, names(cands))
}

func TestEnumerate_ZeroMaxIndex(t *testing.T) {
	assert.Empty(t, Enumerate(nil, "COM", 0))
}

func TestNumericSuffix(t *testing.T) {
	tests := []struct {
		name string
		n    int
		ok   bool
	}{
		{"COM7", 7, true},
		{"/dev/ttyUSB0", 0, true},
		{"COM", 0, false},
		{"42", 0, false},
		{"COM12345678901", 0, false},
	}
	for _, tt := range tests {
		n, ok := numericSuffix(tt.name)
		require.Equal(t, tt.ok, ok, tt.name)
		if ok {
			assert.Equal(t, tt.n, n, tt.name)
		}
	}
}
