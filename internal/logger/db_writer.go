package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	common_models "go-coursecreator/internal/common/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	IpAddress string
	UserId    string
	Caller    string
}

// DBLogWriter persists log entries from a buffered channel
type DBLogWriter struct {
	col     *mongo.Collection
	logChan chan LogEntry
	appId   string

	mu     sync.RWMutex
	closed bool
}

// NewDBLogWriter initializes the worker and starts draining the channel
func NewDBLogWriter(col *mongo.Collection, appId string) *DBLogWriter {
	writer := &DBLogWriter{
		col:     col,
		logChan: make(chan LogEntry, 1000),
		appId:   appId,
	}

	go writer.processLogs()

	return writer
}

// AddLog never blocks; entries are dropped when the buffer is full or the
// writer is closed
func (w *DBLogWriter) AddLog(entry LogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}

	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

// Close stops the worker once the buffered entries are drained
func (w *DBLogWriter) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.logChan)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		logRecord := common_models.Log{
			AppId:        w.appId,
			Message:      entry.Message,
			Caller:       entry.Caller,
			IpAddress:    entry.IpAddress,
			UserId:       entry.UserId,
			LogLevelId:   mapLevelToInt(entry.Level),
			CreatedOnUtc: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// Errors are ignored so a database outage never stalls the API
		_, _ = w.col.InsertOne(ctx, logRecord)
		cancel()
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
