package logging

import (
	"os"
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger builds the global logger from config. Calling it again replaces the previous instance.
func InitLogger(config *LogConfig) error {
	l, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		_ = instance.Close()
	}
	instance = l
	return nil
}

// GetGlobalLogger returns the global logger.
// Before InitLogger has run it returns a stdout logger at info level.
func GetGlobalLogger() *Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = NewLoggerWithWriter(os.Stdout, LevelInfo)
	}
	return instance
}
