package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

const maxBodyBytes = 16 << 10

type envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// Responder writes every response in the uniform envelope.
type Responder struct {
	logger      *logrus.Logger
	development bool
}

func NewResponder(logger *logrus.Logger, development bool) *Responder {
	return &Responder{
		logger:      logger,
		development: development,
	}
}

func (responder *Responder) JSON(writer http.ResponseWriter, status int, data interface{}, message string) {
	responder.write(writer, status, envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error reports err with the status of its kind. Internal failures are logged
// and, outside development, shown only as a generic message.
func (responder *Responder) Error(writer http.ResponseWriter, req *http.Request, err error) {
	appErr := errors.From(err)
	status := appErr.StatusCode()
	message := appErr.Message

	entry := responder.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": status,
	})
	if appErr.Kind == errors.KindInternal {
		entry.WithError(appErr.Err).Error("request failed")
		if responder.development && appErr.Err != nil {
			message = appErr.Err.Error()
		}
	} else {
		entry.Debug(message)
	}

	details := appErr.Errors
	if details == nil {
		details = []string{}
	}
	responder.write(writer, status, errorEnvelope{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     details,
	})
}

func (responder *Responder) write(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		responder.logger.WithError(err).Error("encode response")
	}
}

// decodeJSON reads a body of at most 16 KiB into dst. An empty body leaves
// dst untouched.
func decodeJSON(writer http.ResponseWriter, req *http.Request, dst interface{}) error {
	req.Body = http.MaxBytesReader(writer, req.Body, maxBodyBytes)
	err := json.NewDecoder(req.Body).Decode(dst)
	if err == nil || stderrors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.Validation(errors.InvalidRequestFormatError, "request body must not exceed 16KB")
	}
	return errors.Validation(errors.InvalidRequestFormatError, err.Error())
}
