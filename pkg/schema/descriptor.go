package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Definition is the static description of one table, in the shape entity
// packages declare it. New turns it into a validated Descriptor.
type Definition struct {
	Table         string
	TableSingular string
	// Fields maps logical field names to physical column names.
	Fields map[string]string
	// FieldKeys lists the logical names in column order.
	FieldKeys []string
	// Required lists fields that must be present on create.
	Required []string
	// JSON lists fields stored in a jsonb column.
	JSON []string
}

// Descriptor is an immutable, validated schema description. It is safe for
// concurrent use.
type Descriptor struct {
	table         string
	tableSingular string
	fields        map[string]string
	logical       map[string]string
	fieldKeys     []string
	required      map[string]bool
	json          map[string]bool
}

// New validates a definition. Every key of Fields must appear exactly once in
// FieldKeys and every entry of FieldKeys must be a key of Fields.
func New(def Definition) (*Descriptor, error) {
	if def.Table == "" {
		return nil, fmt.Errorf("schema: table name is empty")
	}
	if len(def.FieldKeys) == 0 {
		return nil, fmt.Errorf("schema %s: no fields", def.Table)
	}

	d := &Descriptor{
		table:         def.Table,
		tableSingular: def.TableSingular,
		fields:        make(map[string]string, len(def.Fields)),
		logical:       make(map[string]string, len(def.Fields)),
		fieldKeys:     make([]string, 0, len(def.FieldKeys)),
		required:      make(map[string]bool, len(def.Required)),
		json:          make(map[string]bool, len(def.JSON)),
	}
	if d.tableSingular == "" {
		d.tableSingular = strings.TrimSuffix(def.Table, "s")
	}

	seen := make(map[string]bool, len(def.FieldKeys))
	for _, key := range def.FieldKeys {
		if seen[key] {
			return nil, fmt.Errorf("schema %s: field %q listed twice in field keys", def.Table, key)
		}
		seen[key] = true

		column, ok := def.Fields[key]
		if !ok {
			return nil, fmt.Errorf("schema %s: field key %q has no column mapping", def.Table, key)
		}
		if column == "" {
			return nil, fmt.Errorf("schema %s: field %q maps to an empty column", def.Table, key)
		}
		if other, dup := d.logical[column]; dup {
			return nil, fmt.Errorf("schema %s: column %q mapped by both %q and %q", def.Table, column, other, key)
		}
		d.fields[key] = column
		d.logical[column] = key
		d.fieldKeys = append(d.fieldKeys, key)
	}

	if len(def.Fields) != len(def.FieldKeys) {
		var missing []string
		for key := range def.Fields {
			if !seen[key] {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("schema %s: fields missing from field keys: %s", def.Table, strings.Join(missing, ", "))
	}

	for _, key := range def.Required {
		if !seen[key] {
			return nil, fmt.Errorf("schema %s: required field %q is not declared", def.Table, key)
		}
		d.required[key] = true
	}
	for _, key := range def.JSON {
		if !seen[key] {
			return nil, fmt.Errorf("schema %s: json field %q is not declared", def.Table, key)
		}
		d.json[key] = true
	}

	return d, nil
}

// MustNew is like New but panics on an invalid definition. Descriptors are
// package-level values, so a bad one is a programming error.
func MustNew(def Definition) *Descriptor {
	d, err := New(def)
	if err != nil {
		panic(err)
	}
	return d
}

// Table returns the physical table name.
func (d *Descriptor) Table() string { return d.table }

// TableSingular returns the singular entity name used in messages.
func (d *Descriptor) TableSingular() string { return d.tableSingular }

// FieldKeys returns the logical field names in column order.
func (d *Descriptor) FieldKeys() []string {
	keys := make([]string, len(d.fieldKeys))
	copy(keys, d.fieldKeys)
	return keys
}

// Fields returns a copy of the logical to physical column mapping.
func (d *Descriptor) Fields() map[string]string {
	fields := make(map[string]string, len(d.fields))
	for k, v := range d.fields {
		fields[k] = v
	}
	return fields
}

// Column returns the physical column for a logical field.
func (d *Descriptor) Column(key string) (string, bool) {
	column, ok := d.fields[key]
	return column, ok
}

// MustColumn returns the physical column for a logical field and panics when
// the field is not declared.
func (d *Descriptor) MustColumn(key string) string {
	column, ok := d.fields[key]
	if !ok {
		panic(fmt.Sprintf("schema %s: unknown field %q", d.table, key))
	}
	return column
}

// Logical returns the logical field name for a physical column.
func (d *Descriptor) Logical(column string) (string, bool) {
	key, ok := d.logical[column]
	return key, ok
}

// Has reports whether key is a declared field.
func (d *Descriptor) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// IsJSON reports whether the field is stored as jsonb.
func (d *Descriptor) IsJSON(key string) bool { return d.json[key] }

// IsRequired reports whether the field must be supplied on create.
func (d *Descriptor) IsRequired(key string) bool { return d.required[key] }
