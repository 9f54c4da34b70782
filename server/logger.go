package server

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ZapRequestLogger logs one zap entry per served request
var ZapRequestLogger = chimiddleware.RequestLogger(&ZapLogFormatter{})

// ZapLogFormatter builds request log entries on the global zap logger
type ZapLogFormatter struct{}

func (l *ZapLogFormatter) NewLogEntry(r *http.Request) chimiddleware.LogEntry {
	entry := &zapLogEntry{
		ZapLogger: zap.L(),
		ZapFields: make([]zap.Field, 0, 10),
	}

	if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
		entry.ZapFields = append(entry.ZapFields, zap.String("requestid", reqID))
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	entry.ZapFields = append(entry.ZapFields,
		zap.String("method", r.Method),
		zap.String("scheme", scheme),
		zap.String("host", r.Host),
		zap.String("path", r.RequestURI),
		zap.String("proto", r.Proto),
		zap.String("remoteaddr", r.RemoteAddr),
	)
	return entry
}

type zapLogEntry struct {
	ZapLogger *zap.Logger
	ZapFields []zap.Field
}

func (l *zapLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	fields := append(l.ZapFields,
		zap.Duration("lat", elapsed),
		zap.Int("http_status", status),
		zap.Int("size", bytes),
	)
	l.ZapLogger.Info("request served", fields...)
}

func (l *zapLogEntry) Panic(v interface{}, stack []byte) {
	l.ZapLogger.Error("request panicked", zap.Any("reason", v), zap.String("stack", string(stack)))
}
