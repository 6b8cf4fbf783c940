// Package tx parses textual transaction records of the form
// "metadata:inputs:outputs", where inputs and outputs are semicolon-separated
// groups of comma-separated fields and the first field of each group is an
// address produced by an upstream indexing stage.
package tx

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Transaction holds the unique addresses of one parsed record.
type Transaction struct {
	Inputs  []int // unique input addresses, ascending
	Outputs []int // unique output addresses, first-seen order
}

// ParseLine parses a single transaction record. Parsing is permissive and
// never fails: malformed numeric fields convert like atoi, i.e. the longest
// leading integer prefix, or 0 if there is none. Records with fewer than
// three colon-separated parts contribute whatever parts exist.
func ParseLine(line string) Transaction {
	parts := strings.SplitN(line, ":", 3)
	var t Transaction
	if len(parts) > 1 {
		t.Inputs = parseAddressList(parts[1])
		sort.Ints(t.Inputs)
	}
	if len(parts) > 2 {
		t.Outputs = parseAddressList(parts[2])
	}
	return t
}

// parseAddressList extracts the first field of every semicolon-separated
// group and deduplicates the resulting addresses, preserving first-seen
// order. An empty list string yields nil.
func parseAddressList(s string) []int {
	if s == "" {
		return nil
	}
	groups := strings.Split(s, ";")
	seen := make(map[int]struct{}, len(groups))
	addrs := make([]int, 0, len(groups))
	for _, group := range groups {
		field := group
		if i := strings.IndexByte(group, ','); i >= 0 {
			field = group[:i]
		}
		addr := parseAddress(field)
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		addrs = append(addrs, addr)
	}
	return addrs
}

// parseAddress converts a field to an integer with atoi semantics: leading
// whitespace is skipped, the longest integer prefix is converted, and
// anything unconvertible yields 0.
func parseAddress(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil {
		return 0
	}
	return n
}

// maxLineSize bounds a single transaction record. Large coinjoin-style
// transactions can carry thousands of inputs, so this is well above the
// bufio default.
const maxLineSize = 64 * 1024 * 1024

// Scanner streams transactions from a reader, one record per line. The
// final line may omit its trailing newline.
type Scanner struct {
	s *bufio.Scanner
	t Transaction
}

// NewScanner returns a Scanner reading records from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Scanner{s: s}
}

// Scan advances to the next record. It returns false at end of input or on
// a read error, which is then available via Err.
func (sc *Scanner) Scan() bool {
	if !sc.s.Scan() {
		return false
	}
	sc.t = ParseLine(sc.s.Text())
	return true
}

// Transaction returns the record parsed by the last call to Scan.
func (sc *Scanner) Transaction() Transaction {
	return sc.t
}

// Err returns the first error encountered while reading.
func (sc *Scanner) Err() error {
	return sc.s.Err()
}
