// Package common holds beans shared across the web layer.
package common

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger tags every line with an ID and the URL of the request it
// belongs to. It is request scoped: one instance per request, created on
// first use and closed when the request ends.
type RequestLogger struct {
	log *zap.Logger

	mu         sync.Mutex
	id         string
	requestURL string
}

func NewRequestLogger(log *zap.Logger) *RequestLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &RequestLogger{log: log}
}

// Init assigns the logger's ID. Registered as the init hook.
func (l *RequestLogger) Init() error {
	l.mu.Lock()
	l.id = uuid.NewString()
	l.mu.Unlock()
	l.log.Info("request scope bean create", zap.String("uuid", l.id))
	return nil
}

func (l *RequestLogger) SetRequestURL(url string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requestURL = url
}

func (l *RequestLogger) Log(message string) {
	l.mu.Lock()
	id, url := l.id, l.requestURL
	l.mu.Unlock()
	l.log.Info(message, zap.String("uuid", id), zap.String("url", url))
}

// Close is registered as the destroy hook.
func (l *RequestLogger) Close() error {
	l.log.Info("request scope bean close", zap.String("uuid", l.ID()))
	return nil
}

func (l *RequestLogger) ID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.id
}

func (l *RequestLogger) RequestURL() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requestURL
}
