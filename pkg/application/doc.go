// Package application manages console applications: the clients that
// authenticate against the identity service.
//
// Queries is the PostgreSQL implementation of ApplicationRepository, built
// from the generic builders in pkg/database. InMemoryApplicationRepository
// mirrors it for tests and the memory store. ApplicationService adds id and
// secret generation and turns a missing application into a NotFound error.
//
//	queries := application.NewQueries(pool)
//	service := application.NewApplicationService(queries)
//	app, err := service.CreateApplication(ctx, application.CreateApplicationParams{
//	    Name: "Dashboard",
//	    Type: schema.ApplicationTypeSPA,
//	})
//
// Metadata patches are merged into the stored objects, so a patch of
// {"customClientMetadata": {"b": 2}} keeps any other top-level keys.
package application
