// Package selection tracks the pieces a user has marked for comparison.
package selection

import (
	"strconv"
	"strings"
)

// Set is an ordered set of ids. The zero value is empty and ready to use.
// It is not safe for concurrent use; the UI touches it only from Update.
type Set struct {
	order []int64
}

// Toggle adds id when absent and removes it when present. It reports
// whether id is selected afterwards.
func (s *Set) Toggle(id int64) bool {
	if s.Remove(id) {
		return false
	}
	s.order = append(s.order, id)
	return true
}

// Remove drops id and reports whether it was selected.
func (s *Set) Remove(id int64) bool {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the set.
func (s *Set) Clear() {
	s.order = nil
}

// Contains reports whether id is selected.
func (s *Set) Contains(id int64) bool {
	for _, v := range s.order {
		if v == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected ids.
func (s *Set) Len() int {
	return len(s.order)
}

// IDs returns the selected ids in toggle order.
func (s *Set) IDs() []int64 {
	if len(s.order) == 0 {
		return nil
	}
	dup := make([]int64, len(s.order))
	copy(dup, s.order)
	return dup
}

// Retain drops every selected id that keep rejects.
func (s *Set) Retain(keep func(int64) bool) {
	kept := s.order[:0]
	for _, v := range s.order {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	s.order = kept
	if len(s.order) == 0 {
		s.order = nil
	}
}

// ComparisonTarget joins the selected ids with commas in toggle order. It
// returns false for an empty set.
func (s *Set) ComparisonTarget() (string, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return FormatTarget(s.order), true
}

// FormatTarget joins ids with commas.
func FormatTarget(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// ParseTarget splits a comma separated id list. Tokens that are not
// integers are skipped.
func ParseTarget(target string) []int64 {
	var ids []int64
	for _, tok := range strings.Split(target, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
