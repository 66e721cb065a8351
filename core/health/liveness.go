package health

import (
	"io"
	"net/http"
)

// Liveness answers 200 ALIVE as long as the process serves HTTP.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ALIVE")
}
