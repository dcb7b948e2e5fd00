// Package schema holds the table descriptors and row types of the console
// database.
//
// A Descriptor binds logical field names (used by the API and by Record
// maps) to physical column names. Descriptors are validated once, when the
// package is initialised; a mismatch between Fields and FieldKeys panics at
// startup instead of failing at query time.
//
//	d := schema.Applications
//	d.Column("createdAt") // "created_at", true
//	d.Validate(schema.Record{"id": "a", "name": "Demo"}, true) // missing secret, type
package schema
