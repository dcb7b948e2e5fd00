package utils

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/tendant/idm-console/pkg/database"
	apperrors "github.com/tendant/idm-console/pkg/errors"
)

// TotalNumberHeader carries the size of the full filtered set on list
// responses.
const TotalNumberHeader = "Total-Number"

// ErrorResponse is the JSON body of every failed console request.
type ErrorResponse struct {
	Code    apperrors.ErrorCode    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// ParsePage reads the page and page_size query parameters. Missing values
// fall back to page 1 and defaultSize.
func ParsePage(r *http.Request, defaultSize, maxSize int) (database.Page, error) {
	page := database.Page{Page: 1, PageSize: defaultSize}
	query := r.URL.Query()

	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, apperrors.InvalidInput("page", "must be a positive integer")
		}
		page.Page = n
	}
	if v := query.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, apperrors.InvalidInput("page_size", "must be a positive integer")
		}
		if maxSize > 0 && n > maxSize {
			return page, apperrors.InvalidInput("page_size", fmt.Sprintf("must not exceed %d", maxSize))
		}
		page.PageSize = n
	}
	return page, nil
}

// SetTotalNumber sets the Total-Number header.
func SetTotalNumber(w http.ResponseWriter, total int64) {
	w.Header().Set(TotalNumberHeader, strconv.FormatInt(total, 10))
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid request body")
	}
	return nil
}

// RenderError writes err with the status its code maps to. Unstructured
// errors are logged and reported without their text.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)

	var e *apperrors.Error
	resp := ErrorResponse{Code: apperrors.ErrCodeInternal, Message: http.StatusText(http.StatusInternalServerError)}
	if errors.As(err, &e) && status != http.StatusInternalServerError {
		resp = ErrorResponse{Code: e.Code, Message: e.Message, Data: e.Details}
	} else {
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// GenerateSecret returns a random alphanumeric string of length n.
func GenerateSecret(n int) (string, error) {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	max := big.NewInt(int64(len(alphabet)))

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate secret: %w", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
