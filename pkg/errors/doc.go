// Package errors provides structured error handling with error codes for the
// identity console.
//
// The data-access layer reports four kinds of failure:
//   - ErrCodeNotFound: an update-where matched zero rows
//   - ErrCodeConflict: a uniqueness constraint rejected an insert or update
//   - ErrCodeDeletionFailed: a delete by id affected zero rows
//   - anything else: a generic store failure, passed through unchanged
//
// # Basic Usage
//
//	import "github.com/tendant/idm-console/pkg/errors"
//
//	err := errors.DeletionError("applications", id)
//	if errors.IsCode(err, errors.ErrCodeDeletionFailed) {
//		// translate to 404
//	}
//
//	status := errors.HTTPStatus(err)
//
// Errors that are not *Error values map to ErrCodeInternal, so a raw pgx
// error reaching the HTTP boundary is rendered as a 500.
package errors
