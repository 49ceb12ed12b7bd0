package id3v2

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// EventType classifies one entry of an event timing frame. Unlisted values
// read as EventPadding.
type EventType byte

const (
	EventPadding             EventType = 0x00
	EventEndOfInitialSilence EventType = 0x01
	EventIntroStart          EventType = 0x02
	EventMainPartStart       EventType = 0x03
	EventOutroStart          EventType = 0x04
	EventOutroEnd            EventType = 0x05
	EventVerseStart          EventType = 0x06
	EventRefrainStart        EventType = 0x07
	EventInterludeStart      EventType = 0x08
	EventThemeStart          EventType = 0x09
	EventVariationStart      EventType = 0x0A
	EventKeyChange           EventType = 0x0B
	EventTimeChange          EventType = 0x0C
	EventMomentaryNoise      EventType = 0x0D
	EventSustainedNoise      EventType = 0x0E
	EventSustainedNoiseEnd   EventType = 0x0F
	EventIntroEnd            EventType = 0x10
	EventMainPartEnd         EventType = 0x11
	EventVerseEnd            EventType = 0x12
	EventRefrainEnd          EventType = 0x13
	EventThemeEnd            EventType = 0x14
	EventProfanity           EventType = 0x15
	EventProfanityEnd        EventType = 0x16
	EventAudioEnd            EventType = 0xFD
	EventAudioFileEnd        EventType = 0xFE
)

func parseEventType(b byte) EventType {
	switch {
	case b <= 0x16:
		return EventType(b)
	case b >= 0xE0 && b <= 0xEF:
		// Sync slots reserved for private use.
		return EventType(b)
	case b == 0xFD || b == 0xFE:
		return EventType(b)
	default:
		return EventPadding
	}
}

// TimedEvent is one entry of an event timing frame.
type TimedEvent struct {
	Type EventType
	// Time is in the frame's TimestampFormat unit.
	Time uint32
}

// EventTimingFrame is an ETCO frame: key points of the audio (intro start,
// outro end, and so on) stamped with times.
type EventTimingFrame struct {
	Format TimestampFormat
	Events []TimedEvent
}

func parseEventTimingFrame(s *stream) (*EventTimingFrame, error) {
	formatByte, err := s.u8()
	if err != nil {
		return nil, err
	}
	f := &EventTimingFrame{Format: parseTimestampFormat(formatByte)}
	for !s.empty() {
		typ, err := s.u8()
		if err != nil {
			return nil, err
		}
		time, err := s.u32()
		if err != nil {
			return nil, fmt.Errorf("event timestamp: %w", err)
		}
		f.Events = append(f.Events, TimedEvent{Type: parseEventType(typ), Time: time})
	}
	return f, nil
}

func (f *EventTimingFrame) ID() FrameID { return mustFrameID("ETCO") }

func (f *EventTimingFrame) Key() string { return "ETCO" }

func (f *EventTimingFrame) Empty() bool { return len(f.Events) == 0 }

func (f *EventTimingFrame) String() string {
	parts := make([]string, len(f.Events))
	for i, e := range f.Events {
		parts[i] = fmt.Sprintf("0x%02x@%d", byte(e.Type), e.Time)
	}
	return strings.Join(parts, ", ")
}

func (f *EventTimingFrame) renderBody(Version) []byte {
	out := []byte{byte(f.Format)}
	for _, e := range f.Events {
		out = append(out, byte(e.Type))
		out = binary.BigEndian.AppendUint32(out, e.Time)
	}
	return out
}
