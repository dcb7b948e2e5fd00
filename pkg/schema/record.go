package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one entity row keyed by logical field name. For inserts it holds
// the fields being created, for updates only the fields being changed.
type Record map[string]any

// Keys returns the record's field names in descriptor order, so generated
// SQL is stable across calls.
func (r Record) Keys(d *Descriptor) []string {
	keys := make([]string, 0, len(r))
	for _, key := range d.fieldKeys {
		if _, ok := r[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// ValidationError lists what is wrong with a record.
type ValidationError struct {
	Table   string
	Unknown []string
	Missing []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown fields: "+strings.Join(e.Unknown, ", "))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid %s record: %s", e.Table, strings.Join(parts, "; "))
}

// Validate checks a record against the descriptor. Fields that are not
// declared are always rejected. When creating is true every required field
// must be present and non-nil.
func (d *Descriptor) Validate(r Record, creating bool) error {
	verr := &ValidationError{Table: d.table}
	for key := range r {
		if !d.Has(key) {
			verr.Unknown = append(verr.Unknown, key)
		}
	}
	if creating {
		for _, key := range d.fieldKeys {
			if !d.required[key] {
				continue
			}
			if v, ok := r[key]; !ok || v == nil {
				verr.Missing = append(verr.Missing, key)
			}
		}
	}
	if len(verr.Unknown) == 0 && len(verr.Missing) == 0 {
		return nil
	}
	sort.Strings(verr.Unknown)
	return verr
}
