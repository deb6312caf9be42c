package dblspace

import "fmt"

// offsetEncoding selects one of the three backreference offset fields.
type offsetEncoding uint8

const (
	offsetStandard offsetEncoding = iota // 6 bits, no bias.
	offsetNarrow                         // 8 bits, +64.
	offsetWide                           // 12 bits, +320.
)

var offsetFields = [...]struct {
	width uint
	bias  uint16
}{
	offsetStandard: {standardOffsetBits, 0},
	offsetNarrow:   {narrowOffsetBits, narrowOffsetBias},
	offsetWide:     {wideOffsetBits, wideOffsetBias},
}

// readOffset reads a backreference distance in the given encoding.
func readOffset(r *BitReader, enc offsetEncoding) (uint16, error) {
	field := offsetFields[enc]
	v, err := r.ReadBits(field.width)
	if err != nil {
		return 0, err
	}

	return v + field.bias, nil
}

// readLength reads a unary-prefixed length: n zero bits, a one bit, then
// an n-bit value added to lengthBase[n].
func readLength(r *BitReader) (uint16, error) {
	for n := range uint(maxLengthPrefix) {
		bit, err := r.ReadBits(1)
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			continue
		}

		v, err := r.ReadBits(n)
		if err != nil {
			return 0, err
		}

		return v + lengthBase[n], nil
	}

	return 0, fmt.Errorf("%w: length prefix longer than %d bits", ErrInvalidEncoding, maxLengthPrefix)
}
