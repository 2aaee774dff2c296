package builder

import "strings"

// PipeSeparator joins pipeline segments.
const PipeSeparator = " | "

// Pipeline is an ordered list of selections joined with pipes. One segment
// is active at a time; it always holds at least one segment.
type Pipeline struct {
	segments []Selection
	active   int
}

// NewPipeline returns a pipeline with a single empty segment.
func NewPipeline() Pipeline {
	return Pipeline{segments: []Selection{{}}}
}

func (p Pipeline) normalized() Pipeline {
	if len(p.segments) == 0 {
		return NewPipeline()
	}
	return p
}

// Segments returns a copy of the segments.
func (p Pipeline) Segments() []Selection {
	p = p.normalized()
	return append([]Selection(nil), p.segments...)
}

// Len returns the number of segments.
func (p Pipeline) Len() int { return len(p.normalized().segments) }

// Active returns the index of the active segment.
func (p Pipeline) Active() int { return p.normalized().active }

// Current returns the active segment.
func (p Pipeline) Current() Selection {
	p = p.normalized()
	return p.segments[p.active]
}

// AddSegment appends an empty segment and makes it active.
func (p Pipeline) AddSegment() Pipeline {
	p = p.normalized()
	segments := append(append([]Selection(nil), p.segments...), Selection{})
	return Pipeline{segments: segments, active: len(segments) - 1}
}

// RemoveSegment drops the active segment. The last remaining segment is
// reset instead of removed.
func (p Pipeline) RemoveSegment() Pipeline {
	p = p.normalized()
	if len(p.segments) == 1 {
		return NewPipeline()
	}
	segments := make([]Selection, 0, len(p.segments)-1)
	segments = append(segments, p.segments[:p.active]...)
	segments = append(segments, p.segments[p.active+1:]...)
	active := p.active
	if active >= len(segments) {
		active = len(segments) - 1
	}
	return Pipeline{segments: segments, active: active}
}

// Focus makes segment i active; out-of-range indexes are ignored.
func (p Pipeline) Focus(i int) Pipeline {
	p = p.normalized()
	if i < 0 || i >= len(p.segments) {
		return p
	}
	p.active = i
	return p
}

// Update applies a transition to the active segment.
func (p Pipeline) Update(fn func(Selection) (Selection, bool)) (Pipeline, bool) {
	p = p.normalized()
	next, ok := fn(p.segments[p.active])
	if !ok {
		return p, false
	}
	segments := append([]Selection(nil), p.segments...)
	segments[p.active] = next
	return Pipeline{segments: segments, active: p.active}, true
}

// RenderPipeline renders every resolved segment joined with " | ". Without a
// resolved first segment there is no command and Placeholder is returned.
func RenderPipeline(p Pipeline, policy EmptyValuePolicy) (string, bool) {
	p = p.normalized()
	if p.segments[0].Cmdlet() == "" {
		return Placeholder, false
	}
	parts := make([]string, 0, len(p.segments))
	for _, s := range p.segments {
		if out, ok := Render(s, policy); ok {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, PipeSeparator), true
}
