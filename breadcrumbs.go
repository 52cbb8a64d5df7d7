package main

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// BreadcrumbType represents the type of breadcrumb event
type BreadcrumbType string

const (
	BreadcrumbKeyboard   BreadcrumbType = "keyboard"
	BreadcrumbMouse      BreadcrumbType = "mouse"
	BreadcrumbNavigation BreadcrumbType = "navigation"
	BreadcrumbCommand    BreadcrumbType = "command"
)

// aggregateWindow is how close together two identical events must be to merge.
const aggregateWindow = 100 * time.Millisecond

// BreadcrumbEntry represents a single breadcrumb event
type BreadcrumbEntry struct {
	Type      BreadcrumbType
	Message   string
	Data      map[string]any
	Timestamp time.Time
	Level     sentry.Level
	Count     int
}

// BreadcrumbBuffer is a thread-safe ring buffer of recent UI events. Bursts of
// the same event (key repeat, mode flapping) collapse into one counted entry.
type BreadcrumbBuffer struct {
	mu      sync.Mutex
	entries []BreadcrumbEntry
	next    int
	count   int
	now     func() time.Time
}

// NewBreadcrumbBuffer creates a new breadcrumb buffer with the given max size
func NewBreadcrumbBuffer(maxSize int) *BreadcrumbBuffer {
	return &BreadcrumbBuffer{
		entries: make([]BreadcrumbEntry, maxSize),
		now:     time.Now,
	}
}

func (b *BreadcrumbBuffer) add(typ BreadcrumbType, level sentry.Level, message string, data map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := BreadcrumbEntry{
		Type:      typ,
		Message:   message,
		Data:      data,
		Timestamp: b.now(),
		Level:     level,
		Count:     1,
	}

	if b.count > 0 {
		last := &b.entries[(b.next-1+len(b.entries))%len(b.entries)]
		if last.Type == entry.Type && last.Message == entry.Message &&
			entry.Timestamp.Sub(last.Timestamp) <= aggregateWindow {
			last.Count++
			last.Timestamp = entry.Timestamp
			return
		}
	}

	b.entries[b.next] = entry
	b.next = (b.next + 1) % len(b.entries)
	if b.count < len(b.entries) {
		b.count++
	}
}

// RecordKeyboard records a keyboard event
func (b *BreadcrumbBuffer) RecordKeyboard(key, modifiers string) {
	b.add(BreadcrumbKeyboard, sentry.LevelDebug, fmt.Sprintf("Key: %s%s", modifiers, key),
		map[string]any{"key": key, "modifiers": modifiers})
}

// RecordMouse records a mouse event
func (b *BreadcrumbBuffer) RecordMouse(action string) {
	b.add(BreadcrumbMouse, sentry.LevelDebug, "Mouse: "+action,
		map[string]any{"action": action})
}

// RecordNavigation records a change of editing mode or an opened dialog
func (b *BreadcrumbBuffer) RecordNavigation(mode, description string) {
	b.add(BreadcrumbNavigation, sentry.LevelInfo, fmt.Sprintf("Navigation: %s - %s", mode, description),
		map[string]any{"mode": mode, "description": description})
}

// RecordCommand records a state machine command and whether it was applied
func (b *BreadcrumbBuffer) RecordCommand(name string, err error) {
	level, outcome := sentry.LevelInfo, "applied"
	if err != nil {
		level, outcome = sentry.LevelWarning, "rejected"
	}
	b.add(BreadcrumbCommand, level, fmt.Sprintf("Command: %s (%s)", name, outcome),
		map[string]any{"command": name, "outcome": outcome})
}

// Entries returns the buffered entries oldest first
func (b *BreadcrumbBuffer) Entries() []BreadcrumbEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

func (b *BreadcrumbBuffer) snapshot() []BreadcrumbEntry {
	out := make([]BreadcrumbEntry, 0, b.count)
	start := (b.next - b.count + len(b.entries)) % len(b.entries)
	for i := 0; i < b.count; i++ {
		out = append(out, b.entries[(start+i)%len(b.entries)])
	}
	return out
}

// Flush hands the buffered breadcrumbs to the Sentry scope and empties the buffer
func (b *BreadcrumbBuffer) Flush() {
	b.mu.Lock()
	entries := b.snapshot()
	b.next, b.count = 0, 0
	b.mu.Unlock()

	if len(entries) == 0 {
		return
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		for _, e := range entries {
			message, data := e.Message, e.Data
			if e.Count > 1 {
				message = fmt.Sprintf("%s (x%d)", e.Message, e.Count)
				data = maps.Clone(e.Data)
				data["count"] = e.Count
			}
			scope.AddBreadcrumb(&sentry.Breadcrumb{
				Message:   message,
				Category:  string(e.Type),
				Data:      data,
				Timestamp: e.Timestamp,
				Level:     e.Level,
			}, len(b.entries))
		}
	})
}

// Global breadcrumb buffer instance
var breadcrumbs *BreadcrumbBuffer

// InitBreadcrumbs initializes the global breadcrumb buffer
func InitBreadcrumbs(maxSize int) {
	breadcrumbs = NewBreadcrumbBuffer(maxSize)
}
