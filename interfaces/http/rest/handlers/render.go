package handlers

import (
	"encoding/json"
	"net/http"

	"catalog-backend/application/catalog"
)

// Render writes a use-case response: Raw as plain text, Body as JSON.
func Render(w http.ResponseWriter, resp catalog.Response) {
	if resp.Raw != "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write([]byte(resp.Raw))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_ = json.NewEncoder(w).Encode(resp.Body)
}

// RenderMessage writes {"message": msg} with the given status.
func RenderMessage(w http.ResponseWriter, status int, msg string) {
	Render(w, catalog.Response{StatusCode: status, Body: catalog.MessageBody{Message: msg}})
}
