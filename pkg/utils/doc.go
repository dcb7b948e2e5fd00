// Package utils holds the small HTTP helpers shared by the console API
// handlers: pagination parameters, the Total-Number header, JSON request
// decoding and error rendering.
//
// Errors carrying an apperrors code are rendered as
//
//	{"code": "NOT_FOUND", "message": "application not found: app1", "data": {...}}
//
// with the status MapErrorCodeToHTTPStatus assigns. Anything else is logged
// and reported as a bare 500.
package utils
