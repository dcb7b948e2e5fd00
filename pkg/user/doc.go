// Package user reads console users and creates them for seeding and tests.
// Role listings use FindUsersByIDs to show who holds a role.
package user
