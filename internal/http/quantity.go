package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// quantity is a permissively parsed integer. Numbers are truncated, strings
// are read up to the first non-digit ("3 шт" is 3) and anything without a
// leading integer is 0. Out-of-range values saturate. Absent or null leaves
// it unset.
type quantity struct {
	value int
	set   bool
}

func (q *quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = quantity{}
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		text = s
	}
	*q = quantity{value: parseLeadingInt(text), set: true}
	return nil
}

// Or returns the parsed value, or def when the field was absent.
func (q quantity) Or(def int) int {
	if !q.set {
		return def
	}
	return q.value
}

func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}
