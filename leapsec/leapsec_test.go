package leapsec

import (
	"strings"
	"testing"
)

const sample = `# comment line
0 10
63072000 11
78796800 12
`

func TestParseAndLookup(t *testing.T) {
	tab, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tab.Len())
	}
	if got := tab.LeapSeconds(-1); got != 0 {
		t.Fatalf("LeapSeconds(-1) = %d, want 0", got)
	}
	if got := tab.LeapSeconds(63072000); got != 11 {
		t.Fatalf("LeapSeconds(63072000) = %d, want 11", got)
	}
	if got := tab.LeapSeconds(100000000); got != 12 {
		t.Fatalf("LeapSeconds(100000000) = %d, want 12", got)
	}
}

func TestMalformedLine(t *testing.T) {
	_, err := Parse(strings.NewReader("not a number\n"))
	if err != ErrMalformedLine {
		t.Fatalf("Parse() error = %v, want ErrMalformedLine", err)
	}
}
