package pipeline

import "sync"

// DefaultMarks returns the column indices to pre-select in the picker:
// the prior selection for this document when one exists, otherwise
// every column except the category column. Index 0 is implicit and is
// never offered as a toggle.
func DefaultMarks(headers []string, prior []int) []int {
	if len(prior) > 0 {
		return append([]int(nil), prior...)
	}
	marks := make([]int, 0, len(headers))
	for i := 1; i < len(headers); i++ {
		marks = append(marks, i)
	}
	return marks
}

// Resolve maps a confirmed pick of header labels to the final column
// selection, anchored at index 0. Labels resolve to their first match
// in header order, so duplicate header labels collapse onto the first
// occurrence; that is a documented limitation of label addressing,
// not something to repair here. An empty or cancelled pick falls back
// to the prior selection when one exists. The second return is false
// when no selection can be produced at all.
func Resolve(headers []string, picked []string, prior []int) ([]int, bool) {
	if len(picked) > 0 {
		pickedSet := make(map[string]bool, len(picked))
		for _, p := range picked {
			pickedSet[p] = true
		}
		sel := []int{0}
		seen := map[string]bool{}
		if len(headers) > 0 {
			// the category label resolves to index 0, already anchored
			seen[headers[0]] = true
		}
		for i, h := range headers {
			if i == 0 || !pickedSet[h] || seen[h] {
				continue
			}
			seen[h] = true
			sel = append(sel, i)
		}
		return sel, true
	}
	if len(prior) > 0 {
		sel := []int{0}
		for _, i := range prior {
			if i != 0 {
				sel = append(sel, i)
			}
		}
		return sel, true
	}
	return nil, false
}

// LastUsedStore remembers the last confirmed column selection per
// document for the lifetime of the process. Stored without the index
// 0 anchor, which Resolve re-adds.
type LastUsedStore struct {
	mu sync.RWMutex
	m  map[string][]int
}

func NewLastUsedStore() *LastUsedStore {
	return &LastUsedStore{m: make(map[string][]int)}
}

// Get returns a copy of the remembered selection for docID.
func (s *LastUsedStore) Get(docID string) ([]int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.m[docID]
	if !ok {
		return nil, false
	}
	return append([]int(nil), sel...), true
}

// Put overwrites the remembered selection for docID. A leading 0
// anchor is stripped before storing.
func (s *LastUsedStore) Put(docID string, sel []int) {
	if len(sel) > 0 && sel[0] == 0 {
		sel = sel[1:]
	}
	s.mu.Lock()
	s.m[docID] = append([]int(nil), sel...)
	s.mu.Unlock()
}
