// Package database turns a schema.Descriptor into parameterized PostgreSQL
// statements and runs them on a DBTX.
//
// Each Build function is called once per entity and returns a function that
// runs the statement:
//
//	findAll := database.BuildFindAllEntities[schema.Role](pool, schema.Roles,
//		database.OrderBy{Field: "name"})
//	roles, err := findAll(ctx, database.Page{Page: 1, PageSize: 20},
//		database.BuildConditionsFromSearch(search, ids, []string{"name"}))
//
// Table and column names always go through ConvertToIdentifiers and are
// quoted. Values are always bound as $n parameters.
//
// Failures are reported with pkg/errors codes: NOT_FOUND when an update
// matches no row, CONFLICT on a unique violation, DELETION_FAILED when a
// delete by id affects no row. Other store errors are wrapped and passed on.
//
// The in-memory repositories reuse Search.Accepts, PageSlice and MergeJSON so
// they filter, page and merge the same way the SQL does.
package database
