package capture

import "sync"

// Draft is the unsaved title and content of a note being composed.
// It is safe for concurrent use: a Recorder writes the content while the
// caller reads it.
type Draft struct {
	mu      sync.RWMutex
	title   string
	content string
}

// NewDraft creates a draft with an initial title and content.
func NewDraft(title, content string) *Draft {
	return &Draft{title: title, content: content}
}

func (d *Draft) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

func (d *Draft) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

func (d *Draft) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

func (d *Draft) SetContent(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = content
}

// Snapshot returns title and content read together.
func (d *Draft) Snapshot() (title, content string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title, d.content
}

// Empty reports whether the draft has no content to save.
func (d *Draft) Empty() bool {
	return d.Content() == ""
}

// Reset clears the draft after it has been saved or discarded.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = ""
	d.content = ""
}
