package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
)

const tagParam = "tag"

// requireTag reads the clan tag from the query string and answers 400 when it
// is missing.
func requireTag(w http.ResponseWriter, r *http.Request) (string, bool) {
	tag := r.URL.Query().Get(tagParam)
	if tag == "" {
		http.Error(w, "Missing tag", http.StatusBadRequest)
		return "", false
	}
	return tag, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}
