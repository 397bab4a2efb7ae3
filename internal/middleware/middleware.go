package middleware

import (
	"net/http"
	"strconv"

	"github.com/dkasturi/docuchat/internal/handlers"
	"github.com/dkasturi/docuchat/internal/metrics"
	"github.com/dkasturi/docuchat/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var IndexPageHandler = Wrap(handlers.IndexPageHandler)
var UploadHandler = Wrap(handlers.UploadHandler)
var ProcessDocumentHandler = Wrap(handlers.ProcessDocumentHandler)
var StartChatHandler = Wrap(handlers.StartChatHandler)
var ChatMessageHandler = Wrap(handlers.ChatMessageHandler)
var ChatStreamHandler = Wrap(handlers.ChatStreamHandler)
var ChatHistoryHandler = Wrap(handlers.ChatHistoryHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	re = rateLimiter(re)
	return re
}

func handleBadRequest(re requestResponseStruct) {
	re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
	handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorMessage)
}
