package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
)

// chunkBits is the width of the shift register used by the Basic codec;
// the encoded payload length is always a multiple of chunkBits/8 bytes.
const chunkBits = 64
const chunkBytes = chunkBits / 8

// basicEncoder implements the Basic (bit-packed) codec from spec.md §4.2:
// a 64-bit shift register filled MSB-first, one column at a time, with
// the residual bits zero-padded into a final word at Finish.
type basicEncoder struct {
	widths []uint8
	out    []byte
	chunk  uint64
	pos    uint8 // bits filled in chunk, from the MSB side
}

func newBasicEncoder(vs []uint16) (*basicEncoder, error) {
	widths, err := checkedBitWidths(vs)
	if err != nil {
		return nil, err
	}
	return &basicEncoder{widths: widths}, nil
}

// checkedBitWidths computes BitWidths and rejects any column that would
// need more than the 8 bits the Basic codec's shift register assumes a
// single column can cost (caspec.New already guards this for values
// reaching the archive through a validated CASpec, but NewEncoder/
// NewRowDecoder can be called directly with an unvalidated vs).
func checkedBitWidths(vs []uint16) ([]uint8, error) {
	widths := BitWidths(vs)
	for _, w := range widths {
		if w > 8 {
			return nil, fmt.Errorf("codec: %w", errs.ErrBitWidthOverflow)
		}
	}
	return widths, nil
}

func (e *basicEncoder) WriteRow(values []uint16) error {
	for i, v := range values {
		e.appendBits(uint64(v), e.widths[i])
	}
	return nil
}

// appendBits appends the low `width` bits of v, MSB-first, to the shift
// register, flushing full 64-bit words to e.out as they fill.
func (e *basicEncoder) appendBits(v uint64, width uint8) {
	mask := uint64(1)<<width - 1
	v &= mask
	for width > 0 {
		free := chunkBits - e.pos
		take := width
		if take > free {
			take = free
		}
		// Place `take` of the remaining (width-take .. width) high bits
		// of v at bit position [free-take, free) from the MSB.
		shift := width - take
		bits := (v >> shift) & (uint64(1)<<take - 1)
		e.chunk |= bits << (free - take)
		e.pos += take
		width -= take
		v &= uint64(1)<<shift - 1

		if e.pos == chunkBits {
			e.flush()
		}
	}
}

func (e *basicEncoder) flush() {
	var buf [chunkBytes]byte
	binary.BigEndian.PutUint64(buf[:], e.chunk)
	e.out = append(e.out, buf[:]...)
	e.chunk = 0
	e.pos = 0
}

func (e *basicEncoder) Finish() ([]byte, error) {
	if e.pos > 0 {
		e.flush()
	}
	return e.out, nil
}

// basicDecoder mirrors basicEncoder: it maintains the shift register and
// extracts `width` bits at a time, refilling from r on demand.
type basicDecoder struct {
	r      io.Reader
	widths []uint8
	chunk  uint64
	pos    uint8 // bits already consumed from chunk, from the MSB side
	total  uint64
	done   uint64
	err    error
}

func newBasicDecoder(r io.Reader, vs []uint16, n uint64) (*basicDecoder, error) {
	widths, err := checkedBitWidths(vs)
	if err != nil {
		return nil, err
	}
	return &basicDecoder{r: r, widths: widths, total: n, pos: chunkBits}, nil
}

func (d *basicDecoder) fill() bool {
	var buf [chunkBytes]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		// XXX Hacky: see entropyDecoder.Next for why this isn't surfaced
		// as the terminating condition itself.
		if err == io.ErrUnexpectedEOF {
			d.err = fmt.Errorf("%w: %v", errs.ErrShortRead, err)
		} else if err != io.EOF {
			d.err = err
		}
		return false
	}
	d.chunk = binary.BigEndian.Uint64(buf[:])
	d.pos = 0
	return true
}

// extractBits consumes `width` bits from the register, MSB-first,
// refilling as needed, and returns them right-aligned.
func (d *basicDecoder) extractBits(width uint8) (uint64, bool) {
	var out uint64
	for width > 0 {
		if d.pos == chunkBits {
			if !d.fill() {
				return 0, false
			}
		}
		avail := chunkBits - d.pos
		take := width
		if take > avail {
			take = avail
		}
		shift := avail - take
		bits := (d.chunk >> shift) & (uint64(1)<<take - 1)
		out = (out << take) | bits
		d.pos += take
		width -= take
	}
	return out, true
}

func (d *basicDecoder) Next() (caspec.Row, bool) {
	if d.done >= d.total || d.err != nil {
		return nil, false
	}
	row := make(caspec.Row, len(d.widths))
	for i, w := range d.widths {
		v, ok := d.extractBits(w)
		if !ok {
			// Any read failure mid-row terminates iteration cleanly; no
			// partial row is ever returned (spec.md §4.2/§4.9).
			d.total = 0
			return nil, false
		}
		row[i] = uint16(v)
	}
	d.done++
	return row, true
}

func (d *basicDecoder) Err() error { return d.err }
