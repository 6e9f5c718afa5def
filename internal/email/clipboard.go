package email

import "sync"

// Clipboard is the platform copy primitive used for the draft's subject and
// body text.
type Clipboard interface {
	Copy(text string) error
}

// MemoryClipboard is an in-process clipboard. It stands in for the platform
// clipboard in deployments and tests where no OS integration is available.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// NewMemoryClipboard creates an empty clipboard.
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

// Copy stores the text, replacing any previous content.
func (c *MemoryClipboard) Copy(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// Text returns the last copied text.
func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
