package database

import "strings"

// Accepts is the in-memory counterpart of BuildConditionsFromSearch: every
// match must find its value, case-insensitively, in one of its eligible
// fields. fieldValue returns the text of a logical field.
func (s Search) Accepts(eligible []string, fieldValue func(key string) string) bool {
	for _, match := range s.Matches {
		fields := match.Fields
		if len(fields) == 0 {
			fields = eligible
		}

		value := strings.ToLower(match.Value)
		considered, found := false, false
		for _, key := range fields {
			if !contains(eligible, key) {
				continue
			}
			considered = true
			if strings.Contains(strings.ToLower(fieldValue(key)), value) {
				found = true
				break
			}
		}
		if considered && !found {
			return false
		}
	}
	return true
}

// PageSlice returns the part of items the page covers.
func PageSlice[T any](items []T, page Page) []T {
	if page.PageSize <= 0 {
		return items
	}
	return Window(items, page.Limit(), page.Offset())
}

// Window returns at most limit items starting at offset.
func Window[T any](items []T, limit, offset uint64) []T {
	n := uint64(len(items))
	if offset >= n {
		return []T{}
	}
	end := offset + limit
	if end > n {
		end = n
	}
	return items[offset:end]
}

// MergeJSON applies patch on top of stored the way a JSONMerge update does:
// top-level keys in patch replace those in stored and the rest are kept.
func MergeJSON(stored, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(stored)+len(patch))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
