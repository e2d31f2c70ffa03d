// Package savefile encodes and decodes session saves.
//
// A save is a version byte followed by big-endian fields in a fixed order:
//
//	int32   level, score, lives, destroyed
//	float64 ballX, ballY, paddleX, paddleY, paddleCenterX
//	int64   time, goldTime
//	float64 vX
//	bool    heartPlaced, gold, down, right, then eight collision flags
//	int32   block count, then count × (int32 row, col, kind)
//
// Booleans take one byte each. Block colors are not stored.
package savefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"fortio.org/safecast"
)

// Version is the format version written by Marshal.
const Version byte = 1

// MaxBlocks bounds the block count accepted on decode.
const MaxBlocks = 4096

var (
	// ErrTruncated means the data ended before the layout was complete.
	ErrTruncated = errors.New("savefile: truncated data")
	// ErrCorrupt means the data is complete but malformed.
	ErrCorrupt = errors.New("savefile: corrupt data")
	// ErrUnsupportedVersion means the version byte is not Version.
	ErrUnsupportedVersion = errors.New("savefile: unsupported version")
)

// BlockRecord is one surviving block.
type BlockRecord struct {
	Row  int32
	Col  int32
	Kind int32
}

// State is the persisted form of a session.
type State struct {
	Level     int32
	Score     int32
	Lives     int32
	Destroyed int32

	BallX         float64
	BallY         float64
	PaddleX       float64
	PaddleY       float64
	PaddleCenterX float64

	Time     int64
	GoldTime int64

	VX float64

	HeartPlaced bool
	Gold        bool
	Down        bool
	Right       bool
	Flags       [8]bool // Collision flags in file order

	Blocks []BlockRecord
}

const (
	headerSize = 1 + 4*4 + 8*5 + 8*2 + 8 + 12 + 4
	recordSize = 4 * 3
)

// Marshal encodes the state.
func Marshal(st State) ([]byte, error) {
	count, err := safecast.Convert[int32](len(st.Blocks))
	if err != nil || count > MaxBlocks {
		return nil, fmt.Errorf("savefile: cannot encode %d blocks", len(st.Blocks))
	}

	buf := make([]byte, 0, headerSize+len(st.Blocks)*recordSize)
	be := binary.BigEndian

	buf = append(buf, Version)
	for _, v := range []int32{st.Level, st.Score, st.Lives, st.Destroyed} {
		buf = be.AppendUint32(buf, uint32(v)) //#nosec G115 -- two's complement round-trips
	}
	for _, v := range []float64{st.BallX, st.BallY, st.PaddleX, st.PaddleY, st.PaddleCenterX} {
		buf = be.AppendUint64(buf, math.Float64bits(v))
	}
	buf = be.AppendUint64(buf, uint64(st.Time))     //#nosec G115 -- two's complement round-trips
	buf = be.AppendUint64(buf, uint64(st.GoldTime)) //#nosec G115 -- two's complement round-trips
	buf = be.AppendUint64(buf, math.Float64bits(st.VX))

	for _, b := range st.bools() {
		buf = append(buf, boolByte(b))
	}

	buf = be.AppendUint32(buf, uint32(count)) //#nosec G115 -- count is non-negative
	for _, rec := range st.Blocks {
		buf = be.AppendUint32(buf, uint32(rec.Row))  //#nosec G115 -- two's complement round-trips
		buf = be.AppendUint32(buf, uint32(rec.Col))  //#nosec G115 -- two's complement round-trips
		buf = be.AppendUint32(buf, uint32(rec.Kind)) //#nosec G115 -- two's complement round-trips
	}
	return buf, nil
}

// Encode writes the encoded state to w.
func Encode(w io.Writer, st State) error {
	data, err := Marshal(st)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("savefile: cannot write: %w", err)
	}
	return nil
}

// Unmarshal decodes a save. It never returns a partially filled State
// together with a nil error.
func Unmarshal(data []byte) (State, error) {
	var st State
	r := reader{data: data}

	if v := r.u8(); r.err == nil && v != Version {
		return State{}, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, v, Version)
	}

	st.Level = r.i32()
	st.Score = r.i32()
	st.Lives = r.i32()
	st.Destroyed = r.i32()

	st.BallX = r.f64()
	st.BallY = r.f64()
	st.PaddleX = r.f64()
	st.PaddleY = r.f64()
	st.PaddleCenterX = r.f64()

	st.Time = r.i64()
	st.GoldTime = r.i64()
	st.VX = r.f64()

	st.HeartPlaced = r.boolean()
	st.Gold = r.boolean()
	st.Down = r.boolean()
	st.Right = r.boolean()
	for i := range st.Flags {
		st.Flags[i] = r.boolean()
	}

	count := r.i32()
	if r.err != nil {
		return State{}, r.err
	}
	if count < 0 || count > MaxBlocks {
		return State{}, fmt.Errorf("%w: block count %d", ErrCorrupt, count)
	}
	if remaining := len(r.data) - r.off; remaining < int(count)*recordSize {
		return State{}, fmt.Errorf("%w: %d blocks declared, room for %d", ErrTruncated, count, remaining/recordSize)
	}

	st.Blocks = make([]BlockRecord, count)
	for i := range st.Blocks {
		st.Blocks[i] = BlockRecord{Row: r.i32(), Col: r.i32(), Kind: r.i32()}
	}
	if r.err != nil {
		return State{}, r.err
	}
	if r.off != len(r.data) {
		return State{}, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(r.data)-r.off)
	}
	return st, nil
}

// Decode reads a full save from r.
func Decode(r io.Reader) (State, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return State{}, fmt.Errorf("savefile: cannot read: %w", err)
	}
	return Unmarshal(buf.Bytes())
}

func (st *State) bools() [12]bool {
	var out [12]bool
	out[0], out[1], out[2], out[3] = st.HeartPlaced, st.Gold, st.Down, st.Right
	copy(out[4:], st.Flags[:])
	return out
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// reader consumes big-endian fields and remembers the first failure.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data)-r.off < n {
		r.err = fmt.Errorf("%w at offset %d", ErrTruncated, r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() byte {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) boolean() bool {
	off := r.off
	switch r.u8() {
	case 0:
		return false
	case 1:
		return true
	}
	if r.err == nil {
		r.err = fmt.Errorf("%w: bad boolean at offset %d", ErrCorrupt, off)
	}
	return false
}

func (r *reader) i32() int32 {
	if b := r.take(4); b != nil {
		return int32(binary.BigEndian.Uint32(b)) //#nosec G115 -- two's complement round-trips
	}
	return 0
}

func (r *reader) i64() int64 {
	if b := r.take(8); b != nil {
		return int64(binary.BigEndian.Uint64(b)) //#nosec G115 -- two's complement round-trips
	}
	return 0
}

func (r *reader) f64() float64 {
	if b := r.take(8); b != nil {
		return math.Float64frombits(binary.BigEndian.Uint64(b))
	}
	return 0
}
