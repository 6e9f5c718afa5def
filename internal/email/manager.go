package email

import (
	"sync"

	"go.uber.org/zap"
)

// Manager owns the email dialog lifecycle. Opening the dialog creates a
// fresh session; closing it discards the session, so reopening always
// starts again at the download step with the downloaded flag cleared.
type Manager struct {
	mu        sync.Mutex
	exporter  Exporter
	source    DraftSource
	clipboard Clipboard
	logger    *zap.Logger

	session *Session
}

// NewManager creates a dialog manager.
func NewManager(exporter Exporter, source DraftSource, clipboard Clipboard, logger *zap.Logger) *Manager {
	return &Manager{
		exporter:  exporter,
		source:    source,
		clipboard: clipboard,
		logger:    logger,
	}
}

// Open starts a new composition session, discarding any previous one.
func (m *Manager) Open() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = NewSession(m.exporter, m.source, m.clipboard, m.logger)
	m.logger.Debug("Email dialog opened")
	return m.session
}

// Current returns the active session, if the dialog is open.
func (m *Manager) Current() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, false
	}
	return m.session, true
}

// Close discards the active session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.session = nil
		m.logger.Debug("Email dialog closed")
	}
}

// OpenEmailClient performs the terminal handoff: it builds the mail-compose
// link from the active session's draft and closes the dialog immediately,
// without waiting for any confirmation.
func (m *Manager) OpenEmailClient() (string, error) {
	session, ok := m.Current()
	if !ok {
		return "", ErrNoSession
	}

	link, err := session.OpenEmailClient()
	if err != nil {
		return "", err
	}

	m.Close()
	return link, nil
}
