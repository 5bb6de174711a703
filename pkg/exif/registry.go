package exif

// Baseline TIFF and common EXIF tag identifiers.
const (
	TagImageWidth                uint16 = 256
	TagImageLength               uint16 = 257
	TagBitsPerSample             uint16 = 258
	TagCompression               uint16 = 259
	TagPhotometricInterpretation uint16 = 262
	TagImageDescription          uint16 = 270
	TagMake                      uint16 = 271
	TagModel                     uint16 = 272
	TagStripOffsets              uint16 = 273
	TagOrientation               uint16 = 274
	TagSamplesPerPixel           uint16 = 277
	TagRowsPerStrip              uint16 = 278
	TagStripByteCounts           uint16 = 279
	TagXResolution               uint16 = 282
	TagYResolution               uint16 = 283
	TagPlanarConfiguration       uint16 = 284
	TagResolutionUnit            uint16 = 296
	TagSoftware                  uint16 = 305
	TagDateTime                  uint16 = 306
	TagArtist                    uint16 = 315
	TagPredictor                 uint16 = 317
	TagTileWidth                 uint16 = 322
	TagTileLength                uint16 = 323
	TagTileOffsets               uint16 = 324
	TagTileByteCounts            uint16 = 325
	TagCopyright                 uint16 = 33432
	TagExposureTime              uint16 = 33434
	TagFNumber                   uint16 = 33437
	TagExifIFD                   uint16 = 34665
	TagISOSpeedRatings           uint16 = 34855
	TagDateTimeOriginal          uint16 = 36867
	TagFlash                     uint16 = 37385
	TagFocalLength               uint16 = 37386
	TagUserComment               uint16 = 37510
	TagPixelXDimension           uint16 = 40962
	TagPixelYDimension           uint16 = 40963
)

// Registry resolves tag identifiers to their canonical declared type and
// answers whether a tag belongs to the recognized tag space. The collection
// consults it when materializing default records and when filtering raw
// interchange records.
type Registry interface {
	// TypeOf returns the canonical data type registered for the tag.
	// Unrecognized tags resolve to TypeUndefined.
	TypeOf(tag uint16) DataType

	// Recognizes reports whether the tag is part of the canonical tag space.
	Recognizes(tag uint16) bool
}

// canonicalTypes holds the declared type for every recognized tag.
var canonicalTypes = map[uint16]DataType{
	TagImageWidth:                TypeLong,
	TagImageLength:               TypeLong,
	TagBitsPerSample:             TypeShort,
	TagCompression:               TypeShort,
	TagPhotometricInterpretation: TypeShort,
	TagImageDescription:          TypeASCII,
	TagMake:                      TypeASCII,
	TagModel:                     TypeASCII,
	TagStripOffsets:              TypeLong,
	TagOrientation:               TypeShort,
	TagSamplesPerPixel:           TypeShort,
	TagRowsPerStrip:              TypeLong,
	TagStripByteCounts:           TypeLong,
	TagXResolution:               TypeRational,
	TagYResolution:               TypeRational,
	TagPlanarConfiguration:       TypeShort,
	TagResolutionUnit:            TypeShort,
	TagSoftware:                  TypeASCII,
	TagDateTime:                  TypeASCII,
	TagArtist:                    TypeASCII,
	TagPredictor:                 TypeShort,
	TagTileWidth:                 TypeLong,
	TagTileLength:                TypeLong,
	TagTileOffsets:               TypeLong,
	TagTileByteCounts:            TypeLong,
	TagCopyright:                 TypeASCII,
	TagExposureTime:              TypeRational,
	TagFNumber:                   TypeRational,
	TagExifIFD:                   TypeLong,
	TagISOSpeedRatings:           TypeShort,
	TagDateTimeOriginal:          TypeASCII,
	TagFlash:                     TypeShort,
	TagFocalLength:               TypeRational,
	TagUserComment:               TypeUndefined,
	TagPixelXDimension:           TypeLong,
	TagPixelYDimension:           TypeLong,
}

// builtinRegistry is the default Registry backed by canonicalTypes.
type builtinRegistry struct{}

// DefaultRegistry returns the built-in registry covering the baseline TIFF
// and common EXIF tags.
func DefaultRegistry() Registry {
	return builtinRegistry{}
}

func (builtinRegistry) TypeOf(tag uint16) DataType {
	if typ, ok := canonicalTypes[tag]; ok {
		return typ
	}
	return TypeUndefined
}

func (builtinRegistry) Recognizes(tag uint16) bool {
	_, ok := canonicalTypes[tag]
	return ok
}
