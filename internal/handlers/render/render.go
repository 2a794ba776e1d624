package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report on 'TagName' json tag instead of struct name
	// Look at documentation of 'RegisterTagNameFunc' for more details
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		// skip if tag key says it should be ignored
		if name == "-" {
			return ""
		}
		return name
	})
}

type Struct any

// Every response is wrapped the same way: success flag plus either data or error
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON sends data in the success envelope with status 200
func JSON(w http.ResponseWriter, data any) {
	JSONWithStatus(w, data, http.StatusOK)
}

// JSONWithStatus sends data in the success envelope and enforces status code
func JSONWithStatus(w http.ResponseWriter, data any, code int) {
	jsonWithStatus(w, successResponse{Success: true, Data: data}, code)
}

// Error sends the error envelope with the given message and status code
func Error(w http.ResponseWriter, error string, code int) {
	jsonWithStatus(w, errorResponse{Success: false, Error: error}, code)
}

// Render json decode error
func DecodeError(w http.ResponseWriter, err error) {
	var message string

	// Try to provide more specific error message based on error type
	switch err := err.(type) {
	case *json.UnmarshalTypeError:
		message = fmt.Sprintf("Invalid data type for field '%s'", err.Field)
	default:
		message = "Failed to parse request body"
	}

	Error(w, message, http.StatusBadRequest)
}

// Render validation errors as one user readable message
func ValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	parts := make([]string, 0, len(errs))

	for _, fieldError := range errs {
		var message string
		switch fieldError.Tag() {
		case "required":
			message = "is required"
		case "min":
			message = fmt.Sprintf("is too short (minimum %s)", fieldError.Param())
		case "max":
			message = fmt.Sprintf("is too long (maximum %s)", fieldError.Param())
		default:
			message = "is invalid"
		}

		parts = append(parts, fmt.Sprintf("'%s' %s", fieldError.Field(), message))
	}

	Error(w, "Validation failed: "+strings.Join(parts, "; "), http.StatusBadRequest)
}

// BindAndValidate decodes JSON request body into type T and validates it using struct tags.
// Returns the decoded value and writes appropriate error responses for decoding or validation failures.
func BindAndValidate[T Struct](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	err := json.NewDecoder(r.Body).Decode(&value)
	if err != nil {
		DecodeError(w, err)
		return value, err
	}

	err = validate.Struct(value)
	if err != nil {
		// pretty sure cast will be ok cause expecting T is valid struct
		errs := err.(validator.ValidationErrors)
		ValidationErrors(w, errs)
		return value, err
	}

	return value, nil
}

// jsonWithStatus sends data as json and enforces status code
func jsonWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
