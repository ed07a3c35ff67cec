package section

// Fixed section sizes of a SEG-Y file.
const (
	TextHeaderSize   = 3200 // EBCDIC or ASCII card-image header
	BinaryHeaderSize = 400  // binary file header
	TraceHeaderSize  = 240  // per-trace header
	FileHeaderSize   = TextHeaderSize + BinaryHeaderSize

	TextHeaderLines    = 40 // card images per text header
	TextHeaderLineSize = 80 // characters per card image
)

// SEG-Y revision codes stored in bytes 3501-3502.
const (
	RevisionZero = 0x0000
	RevisionOne  = 0x0100
)
