package http

import (
	"io"
	"net/http"

	"github.com/programme-lv/contactform/contact"
	"github.com/programme-lv/contactform/httpjson"
	"github.com/programme-lv/contactform/logger"
	"github.com/programme-lv/contactform/srvcerror"
)

const maxBodyBytes = 64 << 10

func (h *ContactHttpHandler) PostSubmission(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if h.contactSrvc == nil {
		httpjson.HandleError(log, w, contact.NewErrStorageNotConfigured())
		return
	}

	record, err := h.contactSrvc.Submit(r.Context(), contact.SubmitParams{
		Body:      contact.ParseBody(readBody(r)),
		Source:    firstHeader(r, "Origin", "Referer"),
		UserAgent: r.Header.Get("User-Agent"),
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, record.SubmissionID)
}

func (h *ContactHttpHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	srvcErr := srvcerror.ErrMethodNotAllowed()
	w.Header().Set("Allow", http.MethodPost)
	httpjson.WriteErrorJson(w, srvcErr.Error(), srvcErr.HttpStatusCode())
}

// readBody returns at most maxBodyBytes of the request body. A declared
// Content-Length of zero, or a read error, yields no body.
func readBody(r *http.Request) []byte {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil
	}
	return raw
}

func firstHeader(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.Header.Get(name); v != "" {
			return v
		}
	}
	return ""
}
