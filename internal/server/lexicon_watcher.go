package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"atscore/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// LexiconMetrics tracks lexicon reload statistics
type LexiconMetrics struct {
	ReloadCount        int64
	ReloadSuccessCount int64
	ReloadFailureCount int64
	LastReloadTime     time.Time
	LastReloadSuccess  bool
	LastReloadError    string
}

// LexiconWatcher watches the custom lexicon file for changes and triggers
// reloads. Reloads are debounced so editors that write in several steps
// trigger a single reload.
type LexiconWatcher struct {
	mu sync.RWMutex

	lexiconFile string
	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	// reloadCallback loads the lexicon and swaps the matcher. Errors keep
	// the previous lexicon active.
	reloadCallback func() error
	logger         *errors.Logger

	metrics LexiconMetrics
	running bool
}

// NewLexiconWatcher creates a new lexicon file watcher
func NewLexiconWatcher(lexiconFile string, debounceDelay time.Duration, reloadCallback func() error, logger *errors.Logger) (*LexiconWatcher, error) {
	if lexiconFile == "" {
		return nil, fmt.Errorf("lexicon file path is required")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second // Default 1 second debounce
	}

	return &LexiconWatcher{
		lexiconFile:    lexiconFile,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching the lexicon file for changes
func (lw *LexiconWatcher) Start() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.running {
		return fmt.Errorf("lexicon watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	lw.fsWatcher = watcher

	if stat, err := os.Stat(lw.lexiconFile); err == nil {
		lw.lastModTime = stat.ModTime()
	}

	if err := lw.addFileToWatcher(); err != nil {
		if closeErr := lw.fsWatcher.Close(); closeErr != nil && lw.logger != nil {
			lw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return err
	}

	lw.running = true
	go lw.watchLoop()

	if lw.logger != nil {
		lw.logger.Info("Lexicon file watcher started",
			"file", lw.lexiconFile,
			"debounce_delay", lw.debounceDelay)
	}
	return nil
}

// Stop stops the lexicon file watcher
func (lw *LexiconWatcher) Stop() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if !lw.running {
		return nil
	}

	close(lw.stopChan)

	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}

	if lw.fsWatcher != nil {
		if err := lw.fsWatcher.Close(); err != nil {
			if lw.logger != nil {
				lw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	lw.running = false

	if lw.logger != nil {
		lw.logger.Info("Lexicon file watcher stopped")
	}
	return nil
}

// addFileToWatcher adds the lexicon file and its directory to the watcher
func (lw *LexiconWatcher) addFileToWatcher() error {
	if err := lw.fsWatcher.Add(lw.lexiconFile); err != nil {
		// If the file doesn't exist yet, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(lw.lexiconFile)
			if err := lw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if lw.logger != nil {
				lw.logger.Info("Watching directory for lexicon file",
					"file", lw.lexiconFile, "directory", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", lw.lexiconFile, err)
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(lw.lexiconFile)
	if err := lw.fsWatcher.Add(dir); err != nil {
		if lw.logger != nil {
			lw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

// hasFileChanged checks if the lexicon file was modified since last check
func (lw *LexiconWatcher) hasFileChanged() bool {
	stat, err := os.Stat(lw.lexiconFile)
	if err != nil {
		return false
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()
	if stat.ModTime().After(lw.lastModTime) {
		lw.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// watchLoop is the main event loop for file watching
func (lw *LexiconWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-lw.fsWatcher.Events:
			if !ok {
				return
			}

			if lw.shouldProcessEvent(event) {
				lw.scheduleReload()
			}

		case err, ok := <-lw.fsWatcher.Errors:
			if !ok {
				return
			}
			if lw.logger != nil {
				lw.logger.LogError(err, "File watcher error")
			}

		case <-lw.reloadChan:
			// Debounced reload trigger
			if lw.hasFileChanged() {
				lw.reload()
			}

		case <-lw.stopChan:
			return
		}
	}
}

// reload runs the reload callback and records the outcome
func (lw *LexiconWatcher) reload() {
	if lw.logger != nil {
		lw.logger.Info("Lexicon file changed, reloading", "file", lw.lexiconFile)
	}

	err := lw.reloadCallback()

	lw.mu.Lock()
	lw.metrics.ReloadCount++
	lw.metrics.LastReloadTime = time.Now()
	lw.metrics.LastReloadSuccess = err == nil
	if err != nil {
		lw.metrics.ReloadFailureCount++
		lw.metrics.LastReloadError = err.Error()
	} else {
		lw.metrics.ReloadSuccessCount++
		lw.metrics.LastReloadError = ""
	}
	lw.mu.Unlock()

	if lw.logger != nil {
		if err != nil {
			lw.logger.LogError(err, "Lexicon reload failed, keeping previous lexicon")
		} else {
			lw.logger.Info("Lexicon reloaded successfully", "file", lw.lexiconFile)
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (lw *LexiconWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != lw.lexiconFile && filepath.Base(event.Name) != filepath.Base(lw.lexiconFile) {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (lw *LexiconWatcher) scheduleReload() {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	// Reset the debounce timer
	if lw.debounceTimer != nil {
		lw.debounceTimer.Stop()
	}

	lw.debounceTimer = time.AfterFunc(lw.debounceDelay, func() {
		select {
		case lw.reloadChan <- struct{}{}:
			// Reload scheduled
		default:
			// Channel is full, reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (lw *LexiconWatcher) IsRunning() bool {
	lw.mu.RLock()
	defer lw.mu.RUnlock()
	return lw.running
}

// GetMetrics returns a snapshot of the reload statistics
func (lw *LexiconWatcher) GetMetrics() LexiconMetrics {
	lw.mu.RLock()
	defer lw.mu.RUnlock()
	return lw.metrics
}
