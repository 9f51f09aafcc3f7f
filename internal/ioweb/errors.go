package ioweb

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrorBody is the JSON body of a rejected request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the message of the error, its numeric code and the
// name of its class.
type ErrorDetail struct {
	Message string       `json:"message"`
	Code    gn.ErrorCode `json:"code"`
	Class   string       `json:"class"`
}

// status maps an error class to the HTTP status of the response.
func status(code gn.ErrorCode) int {
	if code == errcode.InvalidInputError {
		return http.StatusBadRequest
	}
	switch errcode.ClassOf(code) {
	case errcode.ClassConstraint, errcode.ClassBusinessRule:
		return http.StatusUnprocessableEntity
	case errcode.ClassUniqueness:
		return http.StatusConflict
	case errcode.ClassNotFound:
		return http.StatusNotFound
	case errcode.ClassUnknownField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errcode.Code(err)
	class := errcode.ClassOf(code)
	s.metrics.errors.WithLabelValues(class.String()).Inc()

	msg := errcode.Message(err)
	if class == errcode.ClassInternal {
		slog.Error("Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		slog.Debug("Request rejected",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}

	s.writeJSON(w, status(code), ErrorBody{
		Error: ErrorDetail{Message: msg, Code: code, Class: class.String()},
	})
}

// BadIDError is returned for ids in the path that are not positive
// integers.
func BadIDError(id string) error {
	msg := "id %q is not a positive integer."
	vars := []any{id}
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf(msg, vars...),
	}
}

// BodyError is returned for request bodies that are not JSON objects.
func BodyError(err error) error {
	msg := "The request body must be a JSON object."
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  msg,
		Err:  fmt.Errorf("request body: %w", err),
	}
}

// ServeError is returned when the gateway can not listen or shut down.
func ServeError(addr string, err error) error {
	msg := `Cannot serve HTTP on <em>%s</em>

<em>How to fix:</em>
  1. Check that no other process listens on the address
  2. Use --addr or server.address in the config file`
	vars := []any{addr}
	return &gn.Error{
		Code: errcode.ServeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("serve %s: %w", addr, err),
	}
}
