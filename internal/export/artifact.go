package export

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Artifact is the generated PDF binary plus its addressable handle and
// suggested filename. Artifacts are ephemeral: they live for one session at
// most and are never persisted.
type Artifact struct {
	Data        []byte    `json:"-"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Registry hands out addressable handles for artifacts and owns their
// lifecycle. Handles must be revoked when superseded or when the session
// ends; otherwise they accumulate without bound.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Artifact
	logger  *zap.Logger
}

// NewRegistry creates an empty artifact registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*Artifact),
		logger:  logger,
	}
}

// Publish stores the artifact under a fresh opaque handle and records the
// handle on the artifact itself.
func (r *Registry) Publish(artifact *Artifact) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := "/artifacts/" + uuid.NewString()
	artifact.URL = handle
	r.entries[handle] = artifact

	r.logger.Debug("Artifact published",
		zap.String("url", handle),
		zap.String("filename", artifact.Filename),
		zap.Int("size", len(artifact.Data)))
	return handle
}

// Resolve looks up an artifact by handle.
func (r *Registry) Resolve(handle string) (*Artifact, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artifact, ok := r.entries[handle]
	return artifact, ok
}

// Revoke releases the artifact behind the handle. Revoking an unknown
// handle is a no-op.
func (r *Registry) Revoke(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[handle]; ok {
		delete(r.entries, handle)
		r.logger.Debug("Artifact revoked", zap.String("url", handle))
	}
}

// Close revokes every outstanding handle.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for handle := range r.entries {
		delete(r.entries, handle)
	}
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
