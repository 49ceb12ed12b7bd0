package id3v2

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Channel identifies which speaker a volume adjustment applies to.
type Channel byte

const (
	ChannelOther Channel = iota
	ChannelMasterVolume
	ChannelFrontRight
	ChannelFrontLeft
	ChannelBackRight
	ChannelBackLeft
	ChannelFrontCentre
	ChannelBackCentre
	ChannelSubwoofer
)

var channelNames = []string{
	"Other", "Master", "Front right", "Front left", "Back right",
	"Back left", "Front centre", "Back centre", "Subwoofer",
}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", byte(c))
}

// VolumeAdjustment is one channel entry of an RVA2 frame.
type VolumeAdjustment struct {
	Channel Channel
	// Gain is the volume adjustment in dB, carried at 1/512 dB precision.
	Gain float64
	// Peak is the peak volume normalized so 1.0 is full scale. The wire
	// format allows arbitrary bit widths; rendering always writes 16 bits.
	Peak float64
}

// RelativeVolumeFrame is an RVA2 frame: per-channel replay-gain style
// volume adjustments, identified by a description.
type RelativeVolumeFrame struct {
	Desc        string
	Adjustments []VolumeAdjustment
}

func parseRelativeVolumeFrame(s *stream) (*RelativeVolumeFrame, error) {
	f := &RelativeVolumeFrame{Desc: readTerminated(EncodingLatin1, s)}

	for !s.empty() {
		channel, err := s.u8()
		if err != nil {
			return nil, err
		}
		gain, err := s.i16()
		if err != nil {
			return nil, err
		}
		bits, err := s.u8()
		if err != nil {
			return nil, err
		}
		peakBytes, err := s.read((int(bits) + 7) / 8)
		if err != nil {
			return nil, fmt.Errorf("peak volume: %w", err)
		}

		f.Adjustments = append(f.Adjustments, VolumeAdjustment{
			Channel: Channel(channel),
			Gain:    float64(gain) / 512,
			Peak:    decodePeak(bits, peakBytes),
		})
	}
	return f, nil
}

// decodePeak normalizes a peak field of arbitrary declared bit width. The
// most significant 32 bits are kept and scaled so that a full-scale value
// becomes 1.0.
func decodePeak(bits uint8, peakBytes []byte) float64 {
	if bits == 0 || len(peakBytes) == 0 {
		return 0
	}

	saneLen := len(peakBytes)
	if saneLen > 4 {
		peakBytes = peakBytes[:4]
		saneLen = 4
	}
	var peakInt uint32
	for _, b := range peakBytes {
		peakInt = peakInt<<8 | uint32(b)
	}

	// Compensate for the partial final byte and for fields narrower than 32
	// bits so every width lands on the same scale.
	shift := uint((8-(int(bits)&7))&7) + uint(4-saneLen)*8
	return float64(peakInt) * float64(uint64(1)<<shift) / float64(math.MaxInt32)
}

func (f *RelativeVolumeFrame) ID() FrameID { return mustFrameID("RVA2") }

func (f *RelativeVolumeFrame) Key() string { return "RVA2:" + f.Desc }

func (f *RelativeVolumeFrame) Empty() bool { return len(f.Adjustments) == 0 }

func (f *RelativeVolumeFrame) String() string {
	parts := make([]string, len(f.Adjustments))
	for i, a := range f.Adjustments {
		parts[i] = fmt.Sprintf("%s: %+.2f dB", a.Channel, a.Gain)
	}
	return strings.Join(parts, ", ")
}

func (f *RelativeVolumeFrame) renderBody(Version) []byte {
	out := renderTerminated(EncodingLatin1, f.Desc)
	for _, a := range f.Adjustments {
		out = append(out, byte(a.Channel))
		out = binary.BigEndian.AppendUint16(out, uint16(int16(math.Round(a.Gain*512))))
		// Always write a 16-bit peak. Decoded peaks can sit above full scale,
		// so clamp before converting; out of range float to uint conversion
		// is implementation-defined.
		peak := a.Peak * 32768
		if peak < 0 {
			peak = 0
		} else if peak > math.MaxUint16 {
			peak = math.MaxUint16
		}
		out = append(out, 0x10)
		out = binary.BigEndian.AppendUint16(out, uint16(peak))
	}
	return out
}

// EqBand is one frequency point of an EQU2 frame.
type EqBand struct {
	// Frequency is in 1/2 Hz units.
	Frequency uint16
	// Volume is the adjustment in 1/512 dB units.
	Volume int16
}

// InterpolationMethod declares how EQU2 points connect.
type InterpolationMethod byte

const (
	// InterpolationBand holds each adjustment flat until the next point.
	InterpolationBand InterpolationMethod = 0x00
	// InterpolationLinear draws straight lines between points.
	InterpolationLinear InterpolationMethod = 0x01
)

// EqualisationFrame is an EQU2 frame: an equalisation curve identified by a
// description.
type EqualisationFrame struct {
	Method InterpolationMethod
	Desc   string
	Bands  []EqBand
}

func parseEqualisationFrame(s *stream) (*EqualisationFrame, error) {
	method, err := s.u8()
	if err != nil {
		return nil, err
	}
	f := &EqualisationFrame{
		Method: InterpolationMethod(method),
		Desc:   readTerminated(EncodingLatin1, s),
	}
	for !s.empty() {
		freq, err := s.u16()
		if err != nil {
			return nil, err
		}
		volume, err := s.i16()
		if err != nil {
			return nil, fmt.Errorf("band volume: %w", err)
		}
		f.Bands = append(f.Bands, EqBand{Frequency: freq, Volume: volume})
	}
	return f, nil
}

func (f *EqualisationFrame) ID() FrameID { return mustFrameID("EQU2") }

func (f *EqualisationFrame) Key() string { return "EQU2:" + f.Desc }

func (f *EqualisationFrame) Empty() bool { return len(f.Bands) == 0 }

func (f *EqualisationFrame) String() string {
	parts := make([]string, len(f.Bands))
	for i, b := range f.Bands {
		parts[i] = fmt.Sprintf("%.1f Hz: %+.2f dB", float64(b.Frequency)/2, float64(b.Volume)/512)
	}
	return strings.Join(parts, ", ")
}

func (f *EqualisationFrame) renderBody(Version) []byte {
	out := []byte{byte(f.Method)}
	out = append(out, renderTerminated(EncodingLatin1, f.Desc)...)
	for _, b := range f.Bands {
		out = binary.BigEndian.AppendUint16(out, b.Frequency)
		out = binary.BigEndian.AppendUint16(out, uint16(b.Volume))
	}
	return out
}
