package clipboard

import (
	"time"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/storage"
)

// Monitor polls the clipboard and archives every new image it sees. One
// monitor per process: the clipboard is an exclusive system resource and the
// poll is its only driver, so open/close pairs never interleave.
type Monitor struct {
	cfg      *config.Config
	reader   *Reader
	history  *storage.HistoryStore
	logger   *zap.Logger
	lastHash string
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewMonitor creates a monitor over the given reader and history store.
func NewMonitor(cfg *config.Config, reader *Reader, history *storage.HistoryStore, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		cfg:     cfg,
		reader:  reader,
		history: history,
		logger:  logger,
	}
}

// Start begins polling in a background goroutine.
func (m *Monitor) Start() error {
	// Seed the change detector from history so a restart doesn't re-announce
	// whatever is still sitting on the clipboard.
	latest, err := m.history.GetLatest()
	if err != nil {
		m.logger.Warn("failed to load latest capture from history", zap.Error(err))
	} else if latest != nil {
		m.lastHash = latest.Hash
	}

	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	go m.run()

	m.logger.Info("clipboard monitor started",
		zap.Duration("interval", m.pollInterval()))
	return nil
}

// Stop halts polling and waits for the poll loop to exit.
func (m *Monitor) Stop() {
	if m.stopCh == nil {
		return
	}
	close(m.stopCh)
	<-m.doneCh
	m.stopCh = nil
	m.logger.Info("clipboard monitor stopped")
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll performs one capture attempt. Reads only happen when an image format
// is advertised, so an idle clipboard costs one availability query per tick.
func (m *Monitor) poll() {
	if !m.reader.HasImage() {
		return
	}

	record, err := m.reader.ReadImage()
	if err != nil {
		m.logger.Error("failed to read clipboard image", zap.Error(err))
		return
	}
	if record == nil || record.Hash == m.lastHash {
		return
	}

	if err := m.history.SaveRecord(record); err != nil {
		m.logger.Error("failed to save capture record", zap.Error(err))
		return
	}
	m.lastHash = record.Hash

	m.logger.Info("captured clipboard image",
		zap.String("path", record.Path),
		zap.Uint32("width", record.Width),
		zap.Uint32("height", record.Height),
		zap.Uint64("bytes", record.Size))
}

func (m *Monitor) pollInterval() time.Duration {
	if m.cfg == nil || m.cfg.PollingInterval <= 0 {
		return time.Second
	}
	return time.Duration(m.cfg.PollingInterval) * time.Millisecond
}
