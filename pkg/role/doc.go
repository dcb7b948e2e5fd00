// Package role manages console roles and who holds them.
//
// A role is granted to users (type User) or to machine-to-machine
// applications (type MachineToMachine), and carries scopes on API resources.
//
// # Overview
//
// The role package provides:
//   - Role lifecycle management (CRUD operations) with unique names
//   - Scope grants written together with the role in one transaction
//   - User-role and application-role assignments
//   - Listings that show each role's user count and up to three of its users
//
// # Basic Usage
//
//	import "github.com/tendant/idm-console/pkg/role"
//
//	// PostgreSQL
//	repo := role.NewQueries(pool)
//	// or in memory
//	repo := role.NewInMemoryRoleRepository(userService)
//
//	service := role.NewRoleService(repo, scopeService, userService, applicationService)
//
//	created, err := service.CreateRole(ctx, role.CreateRoleParams{
//		Name:        "editor",
//		Description: "Can edit content",
//		ScopeIDs:    []string{readScopeID},
//	})
//
// # Errors
//
// A name already used by another role fails with ROLE_NAME_IN_USE and an
// unknown scope with SCOPE_NOT_FOUND; both map to 422. Deleting a role that
// does not exist fails with DELETION_FAILED (404).
package role
