// Package scope stores the permissions defined on API resources. Roles are
// granted scopes when they are created.
package scope
