package web

import (
	"encoding/json"
	"errors"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail renders err per the error taxonomy: field-map body for validation
// failures, plain message for business and not-found failures, 502 for
// transport failures and 500 otherwise.
func Fail(w http.ResponseWriter, err error) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		JSON(w, http.StatusBadRequest, map[string]any{"errors": fe})
		return
	}
	var be *BusinessError
	if errors.As(err, &be) {
		JSON(w, http.StatusBadRequest, map[string]string{"message": be.Msg})
		return
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		JSON(w, http.StatusNotFound, map[string]string{"message": nf.Msg})
		return
	}
	var te *TransportError
	if errors.As(err, &te) {
		JSON(w, http.StatusBadGateway, map[string]string{"message": te.Error()})
		return
	}
	JSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
}
