package samples

import "fmt"

// DefaultCapacity is the number of samples kept per channel.
const DefaultCapacity = 600

// Buffer is a ring of Frames stored column-wise: one fixed-length slice per
// channel, all sharing a single write cursor, so index i refers to the same
// instant in every channel.
//
// Once full, each Record overwrites the oldest sample. Buffer is not safe for
// concurrent use; the host drives sampling and drawing from one goroutine.
type Buffer struct {
	capacity int
	cursor   int
	wrapped  bool
	data     [NumChannels][]float32
}

// New allocates a zeroed buffer holding capacity samples per channel.
func New(capacity int) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("invalid sample capacity %d", capacity)
	}
	b := &Buffer{capacity: capacity}
	for c := range b.data {
		b.data[c] = make([]float32, capacity)
	}
	return b, nil
}

// Record stores f at the cursor and advances it, wrapping to 0 at capacity.
// It returns the slot that was written.
func (b *Buffer) Record(f *Frame) int {
	slot := b.cursor
	for c := range b.data {
		b.data[c][slot] = f[c]
	}
	b.cursor++
	if b.cursor == b.capacity {
		b.cursor = 0
		b.wrapped = true
	}
	return slot
}

// Purge zero-fills every channel and rewinds the cursor.
func (b *Buffer) Purge() {
	for c := range b.data {
		clear(b.data[c])
	}
	b.cursor = 0
	b.wrapped = false
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Cursor returns the next slot to be written. Once the ring has wrapped it
// is also the slot of the oldest sample.
func (b *Buffer) Cursor() int { return b.cursor }

// Wrapped reports whether the ring has been filled at least once.
func (b *Buffer) Wrapped() bool { return b.wrapped }

// Len returns the number of valid samples.
func (b *Buffer) Len() int {
	if b.wrapped {
		return b.capacity
	}
	return b.cursor
}

// Raw returns the channel's backing slice in slot order. Callers must not
// retain it across Record or Purge if they expect a stable snapshot.
func (b *Buffer) Raw(c Channel) []float32 {
	return b.data[c]
}

// slot maps the i-th oldest valid sample to its ring index.
func (b *Buffer) slot(i int) int {
	if !b.wrapped {
		return i
	}
	return (b.cursor + i) % b.capacity
}

// At returns the i-th oldest valid sample of channel c.
func (b *Buffer) At(c Channel, i int) float32 {
	return b.data[c][b.slot(i)]
}

// Latest returns the most recent sample of c, or false when empty.
func (b *Buffer) Latest(c Channel) (float32, bool) {
	n := b.Len()
	if n == 0 {
		return 0, false
	}
	return b.At(c, n-1), true
}

// Chronological copies channel c oldest-first.
func (b *Buffer) Chronological(c Channel) []float32 {
	n := b.Len()
	out := make([]float32, n)
	if !b.wrapped {
		copy(out, b.data[c][:n])
		return out
	}
	k := copy(out, b.data[c][b.cursor:])
	copy(out[k:], b.data[c][:b.cursor])
	return out
}

// Series returns a live, oldest-first view of channel c. The view reads
// the buffer on every call, so it stays valid as samples arrive.
func (b *Buffer) Series(c Channel) View {
	return View{buf: b, ch: c}
}

// View is a non-owning read-only window onto one channel.
type View struct {
	buf *Buffer
	ch  Channel
}

// Channel returns the viewed channel.
func (v View) Channel() Channel { return v.ch }

// Len returns the number of valid samples.
func (v View) Len() int { return v.buf.Len() }

// At returns the i-th oldest sample.
func (v View) At(i int) float64 { return float64(v.buf.At(v.ch, i)) }

// Slots returns a live view of the ring index of each valid sample, oldest
// first. These are the indices the log file records.
func (b *Buffer) Slots() SlotView {
	return SlotView{buf: b}
}

// SlotView is the series of ring indices behind Slots.
type SlotView struct {
	buf *Buffer
}

func (v SlotView) Len() int         { return v.buf.Len() }
func (v SlotView) At(i int) float64 { return float64(v.buf.slot(i)) }
