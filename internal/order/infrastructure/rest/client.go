package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

const clientTimeout = 5 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: clientTimeout}
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decodeErrorBody(resp *http.Response) errorBody {
	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return body
}
