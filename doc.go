/*
Package dblspace decompresses clusters of MS-DOS 6 DoubleSpace compressed volumes.

Format: a 16-bit "DS" signature, a 16-bit big-endian version, then a bit-packed
command stream read least significant bit first. Each command starts with a
2-bit tag:

	00  backreference, 6-bit offset
	01  literal byte with the high bit set (7 bits follow)
	10  literal byte with the high bit clear (7 bits follow)
	11  backreference, selector bit then 8-bit offset (+64) or 12-bit offset (+320)

Backreference lengths use a unary prefix of up to 9 bits followed by that many
value bits; the number of bytes copied is the decoded length minus one. Copies
may overlap the bytes they produce. The wide offset 0x113F is a sync marker: it
ends the stream when fewer than 16 bits remain and is otherwise a checkpoint
that must fall on a 512-byte output boundary.

Use DecompressInto(dst, src) to decode into a caller-owned buffer.
Use DecompressBlock(dst, src) when src may continue past the cluster (a slice of a volume image).
Use Decompress(src, opts) to decode into a newly allocated buffer.
Use DecompressFromReader(r, opts) to decode one cluster read from a stream.
Use ReadHeader(src) to probe the signature and version only.
Use NewBitReader(src) for direct access to the bit-level reader.

# Examples

Decompress into a cluster-sized buffer:

	buf := make([]byte, dblspace.DefaultOutputCapacity)
	res, err := dblspace.DecompressInto(buf, cluster)
	if err != nil {
		return err
	}
	data := buf[:res.Length]

Decompress with a larger output capacity:

	out, res, err := dblspace.Decompress(cluster, &dblspace.Options{OutputCapacity: 32 << 10})
	if err != nil {
		return err
	}
	_ = res.Version

Classify failures:

	_, err := dblspace.DecompressInto(buf, cluster)
	switch {
	case errors.Is(err, dblspace.ErrUnsupportedFormat):
		// not a DoubleSpace cluster
	case errors.Is(err, dblspace.ErrOutputOverflow):
		// buffer too small
	}
*/
package dblspace
