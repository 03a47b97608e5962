package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// decodeOptionalJSON accepts an empty body
func decodeOptionalJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt returns nil when the parameter is absent or not a number
func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func pagination(r *http.Request) (page, limit int) {
	page = 1
	if p := queryInt(r, "page"); p != nil && *p > 0 {
		page = *p
	}
	limit = 20
	if l := queryInt(r, "limit"); l != nil && *l > 0 {
		limit = *l
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
