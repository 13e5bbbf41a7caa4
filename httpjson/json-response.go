package httpjson

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/programme-lv/contactform/srvcerror"
)

type JsonResponse struct {
	Ok    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func writeJson(w http.ResponseWriter, statusCode int, resp JsonResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func WriteSuccessJson(w http.ResponseWriter, id string) {
	writeJson(w, http.StatusOK, JsonResponse{Ok: true, ID: id})
}

func WriteErrorJson(w http.ResponseWriter, errMsg string, statusCode int) {
	writeJson(w, statusCode, JsonResponse{Ok: false, Error: errMsg})
}

func writeInternalErrorJson(w http.ResponseWriter) {
	srvcErr := srvcerror.ErrInternalSE()
	WriteErrorJson(w, srvcErr.Error(), srvcErr.HttpStatusCode())
}

// HandleError writes err as an {ok:false} response. Only the public message
// of a *srvcerror.Error reaches the client; anything else becomes a generic 500.
func HandleError(logger *slog.Logger, w http.ResponseWriter, err error) {
	srvcErr := &srvcerror.Error{}
	if errors.As(err, &srvcErr) {
		if srvcErr.HttpStatusCode() >= http.StatusInternalServerError {
			logger.Error("internal server error",
				"error", srvcErr.DebugInfo(),
				"code", srvcErr.ErrorCode())
		} else {
			logger.Debug("request rejected",
				"code", srvcErr.ErrorCode(),
				"message", srvcErr.Error())
		}
		WriteErrorJson(w, srvcErr.Error(), srvcErr.HttpStatusCode())
		return
	}
	logger.Error("internal server error", "error", err)
	writeInternalErrorJson(w)
}
