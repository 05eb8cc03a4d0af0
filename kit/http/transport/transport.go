package transport

import (
	"context"
	"net/http"
)

func DecodeEmptyRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}

func EncodeTextResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	text, _ := response.(string)
	WriteText(w, http.StatusOK, text)
	return nil
}

func WriteText(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	w.Write([]byte(text))
}
