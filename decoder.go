package dblspace

import "fmt"

// Command tags, read as a 2-bit field.
const (
	tagStandardPair = 0
	tagLiteralHigh  = 1
	tagLiteralLow   = 2
	tagExtendedPair = 3
)

type commandKind uint8

const (
	cmdLiteral commandKind = iota // Emit one byte.
	cmdBackref                    // Copy from earlier output; length follows in the stream.
	cmdSync                       // End of stream or sector checkpoint.
)

// command is one decoded instruction of the command stream.
type command struct {
	kind    commandKind
	literal byte
	offset  uint16
}

type decodeState uint8

const (
	stateRunning decodeState = iota
	stateDone
)

// decoder runs the command stream of one cluster into dst.
type decoder struct {
	br   *BitReader
	dst  []byte
	pos  int // Write index; dst[:pos] holds decoded bytes.
	left int // Input bits left after the stream ended.

	// trailing allows bytes after the cluster. An unaligned sync marker then
	// ends the stream, and a failure after an aligned one rolls back to it.
	trailing bool
	marked   bool
	markPos  int
	markLeft int
}

// run decodes commands until the stream ends and returns the output length.
// Every command consumes at least its 2-bit tag, so the loop is bounded by
// the input size even when a command writes nothing.
func (d *decoder) run() (int, error) {
	state := stateRunning
	for state == stateRunning {
		cmd, err := d.next()
		if err == nil {
			state, err = d.apply(cmd)
		}
		if err != nil {
			if d.trailing && d.marked {
				d.pos, d.left = d.markPos, d.markLeft
				return d.pos, nil
			}
			return 0, err
		}
	}

	d.left = d.br.Remaining()
	return d.pos, nil
}

// next reads one command tag and the fields that identify it.
func (d *decoder) next() (command, error) {
	tag, err := d.br.ReadBits(commandBits)
	if err != nil {
		return command{}, err
	}

	switch tag {
	case tagLiteralHigh, tagLiteralLow:
		v, err := d.br.ReadBits(literalBits)
		if err != nil {
			return command{}, err
		}

		b := byte(v)
		if tag == tagLiteralHigh {
			b |= 0x80
		}

		return command{kind: cmdLiteral, literal: b}, nil

	case tagStandardPair:
		offset, err := readOffset(d.br, offsetStandard)
		if err != nil {
			return command{}, err
		}

		return command{kind: cmdBackref, offset: offset}, nil

	default:
		sel, err := d.br.ReadBits(selectorBits)
		if err != nil {
			return command{}, err
		}

		enc := offsetNarrow
		if sel == 1 {
			enc = offsetWide
		}

		offset, err := readOffset(d.br, enc)
		if err != nil {
			return command{}, err
		}
		if offset == SyncOffset {
			return command{kind: cmdSync}, nil
		}

		return command{kind: cmdBackref, offset: offset}, nil
	}
}

// apply executes cmd against the output and returns the next state.
func (d *decoder) apply(cmd command) (decodeState, error) {
	switch cmd.kind {
	case cmdLiteral:
		return stateRunning, d.emit(cmd.literal)
	case cmdBackref:
		return stateRunning, d.backref(int(cmd.offset))
	case cmdSync:
		return d.sync()
	default:
		return stateRunning, fmt.Errorf("%w: unknown command kind %d", ErrInvalidEncoding, cmd.kind)
	}
}

func (d *decoder) emit(b byte) error {
	if d.pos >= len(d.dst) {
		return fmt.Errorf("%w: literal at %d, capacity %d", ErrOutputOverflow, d.pos, len(d.dst))
	}

	d.dst[d.pos] = b
	d.pos++

	return nil
}

// backref validates offset, reads the length that follows it and copies
// length-1 bytes from offset bytes back.
func (d *decoder) backref(offset int) error {
	if offset == 0 || offset > d.pos {
		return fmt.Errorf("%w: offset %d at output position %d", ErrInvalidEncoding, offset, d.pos)
	}

	length, err := readLength(d.br)
	if err != nil {
		return err
	}

	count := int(length) - 1
	if d.pos+count > len(d.dst) {
		return fmt.Errorf("%w: copy of %d bytes at %d, capacity %d", ErrOutputOverflow, count, d.pos, len(d.dst))
	}

	// Overlapping back-ref (offset < count): copy byte by byte so each
	// written byte is visible to the next read. copy() does not repeat
	// the pattern.
	for range count {
		d.dst[d.pos] = d.dst[d.pos-offset]
		d.pos++
	}

	return nil
}

// sync ends the stream when less than a field's worth of input is left;
// otherwise it is a checkpoint that must fall on a sector boundary.
func (d *decoder) sync() (decodeState, error) {
	if d.br.Remaining() < syncTailBits {
		return stateDone, nil
	}

	if d.pos%SectorSize != 0 {
		if d.trailing {
			return stateDone, nil
		}
		return stateRunning, fmt.Errorf("%w: sync marker at output %d is not sector aligned", ErrInvalidEncoding, d.pos)
	}

	if d.trailing {
		d.marked, d.markPos, d.markLeft = true, d.pos, d.br.Remaining()
	}

	return stateRunning, nil
}
