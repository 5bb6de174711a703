package exif

// DataType identifies the declared field type of a tag value, using the
// TIFF 6.0 type codes shared by EXIF.
type DataType uint16

const (
	TypeByte      DataType = 1  // 8-bit unsigned
	TypeASCII     DataType = 2  // NUL-terminated 7-bit ASCII
	TypeShort     DataType = 3  // 16-bit unsigned
	TypeLong      DataType = 4  // 32-bit unsigned
	TypeRational  DataType = 5  // two LONGs: numerator, denominator
	TypeSByte     DataType = 6  // 8-bit signed
	TypeUndefined DataType = 7  // opaque bytes
	TypeSShort    DataType = 8  // 16-bit signed
	TypeSLong     DataType = 9  // 32-bit signed
	TypeSRational DataType = 10 // two SLONGs
	TypeFloat     DataType = 11 // 32-bit IEEE float
	TypeDouble    DataType = 12 // 64-bit IEEE float
)

var typeNames = map[DataType]string{
	TypeByte:      "BYTE",
	TypeASCII:     "ASCII",
	TypeShort:     "SHORT",
	TypeLong:      "LONG",
	TypeRational:  "RATIONAL",
	TypeSByte:     "SBYTE",
	TypeUndefined: "UNDEFINED",
	TypeSShort:    "SSHORT",
	TypeSLong:     "SLONG",
	TypeSRational: "SRATIONAL",
	TypeFloat:     "FLOAT",
	TypeDouble:    "DOUBLE",
}

// elementSizes maps each type to its per-element byte width.
var elementSizes = map[DataType]int{
	TypeByte:      1,
	TypeASCII:     1,
	TypeShort:     2,
	TypeLong:      4,
	TypeRational:  8,
	TypeSByte:     1,
	TypeUndefined: 1,
	TypeSShort:    2,
	TypeSLong:     4,
	TypeSRational: 8,
	TypeFloat:     4,
	TypeDouble:    8,
}

func (t DataType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ElementSize returns the byte width of a single element of this type,
// or 1 for unknown types.
func (t DataType) ElementSize() int {
	if size, ok := elementSizes[t]; ok {
		return size
	}
	return 1
}
