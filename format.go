package dblspace

// DoubleSpace stream format constants.
const (
	Signature   = 0x5344 // "DS" read LSB-first from the first two bytes.
	SyncOffset  = 0x113F // Wide offset value reserved for the sync marker.
	SectorSize  = 512    // Mid-stream sync markers sit on sector boundaries.
	MaxReadBits = 16     // Widest field BitReader.ReadBits accepts.

	// DefaultOutputCapacity is the DoubleSpace cluster size.
	DefaultOutputCapacity = 8192
	// DefaultMaxInputSize bounds input read by DecompressFromReader.
	DefaultMaxInputSize = 64 << 10
)

// Field widths and biases.
const (
	signatureBits = 16
	versionBits   = 16
	commandBits   = 2
	literalBits   = 7
	selectorBits  = 1

	standardOffsetBits = 6
	narrowOffsetBits   = 8
	wideOffsetBits     = 12
	narrowOffsetBias   = 64
	wideOffsetBias     = 320

	maxLengthPrefix = 9  // Unary prefix must terminate within this many bits.
	syncTailBits    = 16 // Fewer bits left after a sync marker ends the stream.
)

// lengthBase[n] is the smallest length encoded with an n-bit payload.
var lengthBase = [maxLengthPrefix]uint16{3, 4, 6, 10, 18, 34, 66, 130, 258}
