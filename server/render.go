package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is returned to the caller as the JSON body of every non 2xx response
type APIError struct {
	RequestID string `json:"requestID"`
	Status    int    `json:"status"`
	ErrType   string `json:"type"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}

var (
	// ErrAPIEncodeJSONBody must be used when a JSON encoding error occurs
	ErrAPIEncodeJSONBody = APIError{Status: http.StatusInternalServerError, ErrType: "ParsingError", Code: 1001, Message: `Failed to encode the JSON response`}
	// ErrAPIParsingInteger must be used when an integer query parameter can't be parsed
	ErrAPIParsingInteger = APIError{Status: http.StatusBadRequest, ErrType: "ParsingError", Code: 1002, Message: `Failed to parse a query param of type 'integer'`}
	// ErrAPIProcessError must be used when the experiment or one of its renderings fails
	ErrAPIProcessError = APIError{Status: http.StatusInternalServerError, ErrType: "ProcessError", Code: 5000, Message: `Internal error has occurred during the process`}
)

// displayedErrorDetails always carry the error text, verbose or not
var displayedErrorDetails = []APIError{
	ErrAPIParsingInteger,
}

// JSON encodes data as the response body, or renders an internal error
func JSON(w http.ResponseWriter, r *http.Request, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("Render JSON encode", zap.Error(err))
		Error(w, r, ErrAPIEncodeJSONBody, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(b, '\n'))
}

// Error renders apiError with its HTTP status. With verbose_errors set the error text is
// added to the body.
func Error(w http.ResponseWriter, r *http.Request, apiError APIError, err error) {
	apiError.RequestID = middleware.GetReqID(r.Context())

	if err != nil {
		if viper.GetBool("verbose_errors") {
			apiError.Details = err.Error()
		} else {
			for _, detail := range displayedErrorDetails {
				if detail.Code == apiError.Code {
					apiError.Details = err.Error()
					break
				}
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiError.Status)

	if encodeErr := json.NewEncoder(w).Encode(apiError); encodeErr != nil {
		zap.L().Error("Error JSON encode", zap.Error(encodeErr))
	}
}

// File sends data as a download named filename
func File(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	w.Header().Set("Content-Type", contentType)

	if _, err := w.Write(data); err != nil {
		zap.L().Error("Error during file write to http response", zap.Error(err))
	}
}
