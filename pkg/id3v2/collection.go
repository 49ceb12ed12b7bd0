package id3v2

import "sort"

// FrameCollection holds a tag's frames keyed by Frame.Key, preserving the
// order frames were first seen. Keys are unique; what happens on a key
// collision depends on whether Add or Insert is used.
type FrameCollection struct {
	keys   []string
	frames map[string]Frame
}

// NewFrameCollection returns an empty collection.
func NewFrameCollection() *FrameCollection {
	return &FrameCollection{frames: make(map[string]Frame)}
}

// Add inserts f, merging on key collision: when both frames are the same
// text-like kind (text, user text, credits) their values concatenate in
// encounter order; any other collision keeps the existing frame.
func (c *FrameCollection) Add(f Frame) {
	existing, ok := c.frames[f.Key()]
	if !ok {
		c.Insert(f)
		return
	}

	switch have := existing.(type) {
	case *TextFrame:
		if add, ok := f.(*TextFrame); ok {
			have.Text = append(have.Text, add.Text...)
		}
	case *UserTextFrame:
		if add, ok := f.(*UserTextFrame); ok {
			have.Text = append(have.Text, add.Text...)
		}
	case *CreditsFrame:
		if add, ok := f.(*CreditsFrame); ok {
			have.Credits = append(have.Credits, add.Credits...)
		}
	}
}

// Insert stores f, overwriting any frame sharing its key.
func (c *FrameCollection) Insert(f Frame) {
	key := f.Key()
	if _, ok := c.frames[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.frames[key] = f
}

// Get returns the frame stored under key, or nil.
func (c *FrameCollection) Get(key string) Frame {
	return c.frames[key]
}

// GetAll returns every frame carrying the given 4-character ID, regardless
// of key disambiguators, in encounter order.
func (c *FrameCollection) GetAll(id FrameID) []Frame {
	var out []Frame
	for _, key := range c.keys {
		if f := c.frames[key]; f.ID() == id {
			out = append(out, f)
		}
	}
	return out
}

// Remove deletes the frame stored under key, reporting whether one existed.
func (c *FrameCollection) Remove(key string) bool {
	if _, ok := c.frames[key]; !ok {
		return false
	}
	delete(c.frames, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// RemoveAll deletes every frame carrying the given 4-character ID and
// returns the removed frames in encounter order.
func (c *FrameCollection) RemoveAll(id FrameID) []Frame {
	var removed []Frame
	kept := c.keys[:0]
	for _, key := range c.keys {
		f := c.frames[key]
		if f.ID() == id {
			removed = append(removed, f)
			delete(c.frames, key)
		} else {
			kept = append(kept, key)
		}
	}
	c.keys = kept
	return removed
}

// Len returns the number of frames held.
func (c *FrameCollection) Len() int {
	return len(c.keys)
}

// Keys returns the frame keys in encounter order.
func (c *FrameCollection) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Frames returns the frames in encounter order.
func (c *FrameCollection) Frames() []Frame {
	out := make([]Frame, 0, len(c.keys))
	for _, key := range c.keys {
		out = append(out, c.frames[key])
	}
	return out
}

// renderPriority ranks the handful of frames players look for first so they
// sit at the front of the tag. TDRC and TYER share the date slot across
// versions; a tag never carries both.
var renderPriority = map[string]int{
	"TIT2": 0,
	"TPE1": 1,
	"TALB": 2,
	"TRCK": 3,
	"TPOS": 4,
	"TDRC": 5,
	"TYER": 5,
	"TCON": 6,
}

// render emits every non-empty frame in the collection's deterministic
// output order: the priority IDs first in their fixed order, then the rest
// by rendered size ascending, ties broken by key.
func (c *FrameCollection) render(v Version) []byte {
	type rendered struct {
		key      string
		priority int
		data     []byte
	}

	frames := make([]rendered, 0, len(c.keys))
	for _, key := range c.keys {
		f := c.frames[key]
		if f.Empty() {
			continue
		}
		priority, ok := renderPriority[f.ID().String()]
		if !ok {
			priority = len(renderPriority)
		}
		frames = append(frames, rendered{key: key, priority: priority, data: renderFrame(v, f)})
	}

	sort.SliceStable(frames, func(i, j int) bool {
		a, b := frames[i], frames[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if a.priority < len(renderPriority) {
			// Both are priority frames in the same slot.
			return a.key < b.key
		}
		if len(a.data) != len(b.data) {
			return len(a.data) < len(b.data)
		}
		return a.key < b.key
	})

	var out []byte
	for _, f := range frames {
		out = append(out, f.data...)
	}
	return out
}
