package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Log facilities. Every record written by this package carries one.
const (
	FacilityComponent     = "COMPONENT"
	FacilityContainer     = "CONTAINER"
	FacilityContainerList = "CONTAINER_LIST"
	FacilityContext       = "CONTEXT"
	FacilityWidget        = "WIDGET"
	FacilityTraverse      = "TRAVERSE"
)

// Attribute keys used on log records.
const (
	FacilityKey = "facility"
	OpKey       = "op"
)

// DefaultRingSize is the number of records kept for the on-screen log.
const DefaultRingSize = 20

var discardLogger = slog.New(slog.DiscardHandler)

// RingHandler is a slog.Handler that keeps the last records as formatted
// lines so they can be drawn on screen. Records are also passed to next,
// when set.
type RingHandler struct {
	ring  *ring
	next  slog.Handler
	level slog.Leveler
	attrs []slog.Attr
	// Dotted group path qualifying the keys of later attributes.
	prefix string
}

type ring struct {
	mu    sync.Mutex
	size  int
	lines []string
}

// NewRingHandler returns a handler keeping size lines at or above level.
// A size below one uses DefaultRingSize.
func NewRingHandler(size int, level slog.Leveler, next slog.Handler) *RingHandler {
	if size < 1 {
		size = DefaultRingSize
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &RingHandler{
		ring:  &ring{size: size},
		next:  next,
		level: level,
	}
}

func (h *RingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= h.level.Level() {
		return true
	}
	return h.next != nil && h.next.Enabled(ctx, level)
}

func (h *RingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level.Level() {
		h.ring.push(h.format(r))
	}
	if h.next != nil && h.next.Enabled(ctx, r.Level) {
		// The overlay must keep working when the sink fails.
		_ = h.next.Handle(ctx, r)
	}
	return nil
}

func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		nh.attrs = append(nh.attrs, a)
	}
	if h.next != nil {
		nh.next = h.next.WithAttrs(attrs)
	}
	return &nh
}

// WithGroup qualifies the keys of later attributes with name, the way
// slog.TextHandler does: "group.key=value".
func (h *RingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	if h.next != nil {
		nh.next = h.next.WithGroup(name)
	}
	return &nh
}

// Lines returns the retained lines, oldest first.
func (h *RingHandler) Lines() []string {
	h.ring.mu.Lock()
	defer h.ring.mu.Unlock()
	return append([]string(nil), h.ring.lines...)
}

// format lays a record out as "LEVEL FACILITY op message key=value ...".
func (h *RingHandler) format(r slog.Record) string {
	var facility, op string
	var rest []string
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case FacilityKey:
			facility = a.Value.String()
		case OpKey:
			op = a.Value.String()
		default:
			rest = append(rest, a.Key+"="+a.Value.String())
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		return collect(a)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-16.16s %-24.24s %s", r.Level, facility, op, r.Message)
	for _, kv := range rest {
		b.WriteByte(' ')
		b.WriteString(kv)
	}
	return b.String()
}

func (r *ring) push(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lines) == r.size {
		copy(r.lines, r.lines[1:])
		r.lines = r.lines[:r.size-1]
	}
	r.lines = append(r.lines, line)
}
