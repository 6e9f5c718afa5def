package email

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/export"
	"github.com/lightspeedlabs/invoicegen/internal/workflow"
)

// copiedAckWindow is how long the transient "copied" acknowledgment lasts.
const copiedAckWindow = 2 * time.Second

// Exporter runs the full export-and-save sequence for the download step.
type Exporter interface {
	ExportAndSave(ctx context.Context) (*export.Artifact, error)
}

// DraftSource derives the default draft fields at seeding time.
type DraftSource interface {
	DraftContext() DraftContext
}

// Session is one guided email-composition session. The mail-compose handoff
// cannot attach a file, so the session forces the PDF onto disk first: the
// only way out of the download step is a successful export-and-save.
type Session struct {
	mu        sync.Mutex
	machine   workflow.Machine
	exporter  Exporter
	source    DraftSource
	clipboard Clipboard

	draft      Draft
	seeded     bool
	downloaded bool
	artifact   *export.Artifact
	copiedAt   time.Time

	now    func() time.Time
	logger *zap.Logger
}

// NewSession creates a session starting at the download step.
func NewSession(exporter Exporter, source DraftSource, clipboard Clipboard, logger *zap.Logger) *Session {
	machine := workflow.NewBuilder().
		Permit(workflow.StateDownload, workflow.TriggerCompleteDownload, workflow.StateCompose).
		Build(workflow.StateDownload)

	return &Session{
		machine:   machine,
		exporter:  exporter,
		source:    source,
		clipboard: clipboard,
		now:       time.Now,
		logger:    logger,
	}
}

// State returns the current session step.
func (s *Session) State() workflow.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// Downloaded reports whether the export-and-save sequence has succeeded.
// The flag only discourages repeat downloads in the UI; it never blocks them.
func (s *Session) Downloaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloaded
}

// Artifact returns the artifact produced by the download step, if any.
func (s *Session) Artifact() *export.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact
}

// CompleteDownload runs the export-and-save sequence. On success the session
// advances to the compose step and the draft defaults are seeded. On failure
// the session stays at the download step; nothing retries automatically, the
// user simply re-invokes.
func (s *Session) CompleteDownload(ctx context.Context) (*export.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.machine.CanFire(workflow.TriggerCompleteDownload) {
		return nil, fmt.Errorf("%w: download already completed", workflow.ErrInvalidTransition)
	}

	artifact, err := s.exporter.ExportAndSave(ctx)
	if err != nil {
		s.logger.Warn("Download step failed", zap.Error(err))
		return nil, err
	}

	if err := s.machine.Fire(ctx, workflow.TriggerCompleteDownload); err != nil {
		return nil, err
	}

	s.downloaded = true
	s.artifact = artifact
	s.seedDraft()

	s.logger.Info("Download step completed",
		zap.String("filename", artifact.Filename))
	return artifact, nil
}

// seedDraft fills the draft defaults exactly once per session, on entry to
// the compose step. Later edits are never overwritten.
func (s *Session) seedDraft() {
	if s.seeded {
		return
	}
	s.draft = DefaultDraft(s.source.DraftContext())
	s.seeded = true
}

// Draft returns the current draft fields.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// UpdateDraft applies a partial edit. Draft fields are only editable in the
// compose step.
func (s *Session) UpdateDraft(p DraftPatch) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.State() != workflow.StateCompose {
		return Draft{}, fmt.Errorf("%w: draft not editable before download completes", workflow.ErrInvalidTransition)
	}

	if p.Recipient != nil {
		s.draft.Recipient = *p.Recipient
	}
	if p.Subject != nil {
		s.draft.Subject = *p.Subject
	}
	if p.Body != nil {
		s.draft.Body = *p.Body
	}
	return s.draft, nil
}

// OpenEmailClient builds the mail-compose invocation for the current draft.
// The handoff is fire-and-forget: whether the user sends the email, or
// attaches the artifact, is unknowable from here. The caller closes the
// session immediately after the invocation.
func (s *Session) OpenEmailClient() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.State() != workflow.StateCompose {
		return "", fmt.Errorf("%w: cannot compose before download completes", workflow.ErrInvalidTransition)
	}

	link := ComposeURL(s.draft)
	s.logger.Info("Handing off to mail client", zap.String("recipient", s.draft.Recipient))
	return link, nil
}

// CopySubject copies the draft subject to the clipboard.
func (s *Session) CopySubject() error {
	return s.copy(func() string { return s.draft.Subject })
}

// CopyBody copies the draft body to the clipboard.
func (s *Session) CopyBody() error {
	return s.copy(func() string { return s.draft.Body })
}

func (s *Session) copy(text func() string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clipboard.Copy(text()); err != nil {
		return err
	}
	s.copiedAt = s.now()
	return nil
}

// Copied reports the transient acknowledgment shown after a copy.
func (s *Session) Copied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.copiedAt.IsZero() && s.now().Sub(s.copiedAt) < copiedAckWindow
}
