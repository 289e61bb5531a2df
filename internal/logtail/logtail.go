package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded zap JSON line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Caller  string
	Fields  map[string]string
	// Raw holds the undecoded line for entries that were not JSON.
	Raw string
}

// Field returns a named field, or "".
func (e Entry) Field(key string) string {
	return e.Fields[key]
}

// FieldKeys returns the extra field names in sorted order.
func (e Entry) FieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var reservedKeys = map[string]bool{
	"ts": true, "level": true, "msg": true, "caller": true, "logger": true, "stacktrace": true,
}

// ParseLine decodes a zap JSON line. Lines that are not JSON objects come
// back as an Entry with only Raw set.
func ParseLine(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{Raw: line}
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return Entry{Raw: line}
	}

	e := Entry{Fields: map[string]string{}}
	e.Level = strings.ToUpper(stringValue(obj["level"]))
	e.Message = stringValue(obj["msg"])
	e.Caller = stringValue(obj["caller"])
	e.Time = parseTS(obj["ts"])
	for k, v := range obj {
		if reservedKeys[k] {
			continue
		}
		e.Fields[k] = stringValue(v)
	}
	return e
}

// ParseLines decodes every line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, ParseLine(line))
	}
	return out
}

var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3, "DPANIC": 4, "PANIC": 5, "FATAL": 6}

// AtLeast keeps entries whose level is min or more severe. Non-JSON
// entries are always kept.
func AtLeast(entries []Entry, min string) []Entry {
	threshold, ok := levelRank[strings.ToUpper(min)]
	if !ok {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if e.Raw != "" {
			out = append(out, e)
			continue
		}
		if rank, known := levelRank[e.Level]; !known || rank >= threshold {
			out = append(out, e)
		}
	}
	return out
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}

func parseTS(v any) time.Time {
	switch val := v.(type) {
	case string:
		for _, layout := range []string{"2006-01-02T15:04:05.000Z0700", time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, val); err == nil {
				return t
			}
		}
	case float64:
		sec := int64(val)
		nsec := int64((val - float64(sec)) * 1e9)
		return time.Unix(sec, nsec)
	}
	return time.Time{}
}
