package request

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// RouteInt64Param returns an URL route parameter as int64, 0 when missing or invalid.
func RouteInt64Param(r *http.Request, param string) int64 {
	vars := mux.Vars(r)
	value, err := strconv.ParseInt(vars[param], 10, 64)
	if err != nil {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

// QueryStringParam returns a query string parameter as string.
func QueryStringParam(r *http.Request, param, defaultValue string) string {
	value := r.URL.Query().Get(param)
	if value == "" {
		value = defaultValue
	}
	return value
}

// FormStringParam returns a trimmed form value, parsing the form if needed.
func FormStringParam(r *http.Request, param string) string {
	return strings.TrimSpace(r.FormValue(param))
}
