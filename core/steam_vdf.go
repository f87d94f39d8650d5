package core

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/andygrunwald/vdf"
)

const maxVdfLineLength = 1024 * 1024

// KeyValue is a single `"key"  "value"` pair found on one line of a Steam
// text file.
type KeyValue struct {
	Line  int
	Key   string
	Value string
}

// ParseKeyValueLine matches one line against the grammar
//
//	[ws] "key" ws+ "value"
//
// Anything after the closing quote of the value is ignored. Escaped quotes
// (\") and backslashes (\\) are unescaped; a backslash before anything else
// is kept as is. An unescaped quote always terminates the value. Bytes that
// are not valid UTF-8 come back as U+FFFD.
func ParseKeyValueLine(line string) (KeyValue, bool) {
	s := vdf.NewScanner(strings.NewReader(line))

	tok, _ := s.Scan(false)
	if tok == vdf.WS {
		tok, _ = s.Scan(false)
	}
	if tok != vdf.QuotationMark {
		return KeyValue{}, false
	}

	key, ok := scanQuoted(s)
	if !ok {
		return KeyValue{}, false
	}

	if tok, _ = s.Scan(false); tok != vdf.WS {
		return KeyValue{}, false
	}
	if tok, _ = s.Scan(false); tok != vdf.QuotationMark {
		return KeyValue{}, false
	}

	value, ok := scanQuoted(s)
	if !ok {
		return KeyValue{}, false
	}

	return KeyValue{Key: key, Value: value}, true
}

// scanQuoted reads up to the closing quote. The opening quote has already
// been consumed.
func scanQuoted(s *vdf.Scanner) (string, bool) {
	var buf bytes.Buffer
	escaped := false
	for {
		tok, lit := s.Scan(true)
		switch {
		case tok == vdf.EOF || tok == vdf.EOL:
			return "", false
		case tok == vdf.QuotationMark && !escaped:
			return buf.String(), true
		case tok == vdf.EscapeSequence && !escaped:
			escaped = true
			continue
		case escaped && tok != vdf.QuotationMark && tok != vdf.EscapeSequence:
			buf.WriteByte('\\')
		}

		escaped = false
		buf.WriteString(lit)
	}
}

// ScanKeyValues walks r line by line and calls fn for every line that
// matches the key/value grammar. Lines that do not match are skipped.
func ScanKeyValues(r io.Reader, fn func(KeyValue) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxVdfLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		kv, ok := ParseKeyValueLine(scanner.Text())
		if !ok {
			continue
		}

		kv.Line = lineNo
		if err := fn(kv); err != nil {
			return err
		}
	}

	return scanner.Err()
}
