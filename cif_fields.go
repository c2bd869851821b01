package vrt

// Per-(CIF number, bit) field widths, in octets, for the Context/Command
// Indicator Field fields this package understands. CIF0 bits 0-7 are the
// CIF1/2/3/7 "enable" bits and carry no field of their own; they are
// absent from this table on purpose and rejected by [Packet.offset].
//
// Fields marked width 0 are variable-width: their size is read from the
// field's own content (GPS_ASCII's length word, Context Association
// Lists' list-count prologue, the CIF1 array-of-records count word) rather
// than looked up here, by [Packet.variableFieldWidth]. The one exception is
// the flag-only Context Field Change bit, which has width 0 and no value
// octets.
type cifFieldKey struct {
	cifNum uint8
	bit    uint8
}

// Canonical bit names for CIF0, MSB (bit31) first. Index i corresponds to
// bit (31-i).
const (
	CIF0ContextFieldChange = 31
	CIF0ReferencePointID   = 30
	CIF0Bandwidth          = 29
	CIF0IFReferenceFreq    = 28
	CIF0RFReferenceFreq    = 27
	CIF0RFReferenceFreqOffset = 26
	CIF0IFBandOffset       = 25
	CIF0ReferenceLevel     = 24
	CIF0Gain               = 23
	CIF0OverRangeCount     = 22
	CIF0SampleRate         = 21
	CIF0TimestampAdjustment = 20
	CIF0TimestampCalibrationTime = 19
	CIF0Temperature        = 18
	CIF0DeviceID           = 17
	CIF0StateEventIndicators = 16
	CIF0DataPayloadFormat  = 15
	CIF0FormattedGPS       = 14
	CIF0FormattedINS       = 13
	CIF0ECEFEphemeris      = 12
	CIF0RelativeEphemeris  = 11
	CIF0EphemerisRefID     = 10
	CIF0GPSASCII           = 9
	CIF0ContextAssociationLists = 8

	CIF1PhaseOffset       = 31
	CIF1Polarization      = 30
	CIF1PointingVector    = 29
	CIF1BeamWidth         = 28
	CIF1Range             = 27

	// Array-of-records fields: the field's first 32-bit word holds a
	// record count N, and the field's total size is 4*N octets (spec.md
	// §3.2), rather than a fixed or self-describing-header width like the
	// CIF0 variable-width fields above.
	CIF1PointingVector3DStruct = 26 // POINTING_VECTOR_3D_ST
	CIF1CIFSArray              = 25 // CIFS_ARRAY
	CIF1SectorScanStep         = 24 // SECTOR_SCN_STP
	CIF1IndexList              = 23 // INDEX_LIST

	CIF2Function          = 31
	CIF2Index             = 30

	CIF3TemperatureCalibration = 31
)

var cifFieldWidths = map[cifFieldKey]int{
	{0, CIF0ContextFieldChange}: 0, // flag-only; no value octets
	{0, CIF0ReferencePointID}:        4,
	{0, CIF0Bandwidth}:               8,
	{0, CIF0IFReferenceFreq}:         8,
	{0, CIF0RFReferenceFreq}:         8,
	{0, CIF0RFReferenceFreqOffset}:   8,
	{0, CIF0IFBandOffset}:            8,
	{0, CIF0ReferenceLevel}:          4,
	{0, CIF0Gain}:                    4,
	{0, CIF0OverRangeCount}:          4,
	{0, CIF0SampleRate}:              8,
	{0, CIF0TimestampAdjustment}:     8,
	{0, CIF0TimestampCalibrationTime}: 4,
	{0, CIF0Temperature}:             4,
	{0, CIF0DeviceID}:                8,
	{0, CIF0StateEventIndicators}:    4,
	{0, CIF0DataPayloadFormat}:       8,
	{0, CIF0FormattedGPS}:            44,
	{0, CIF0FormattedINS}:            44,
	{0, CIF0ECEFEphemeris}:           52,
	{0, CIF0RelativeEphemeris}:       52,
	{0, CIF0EphemerisRefID}:          4,
	{0, CIF0GPSASCII}:                0, // variable
	{0, CIF0ContextAssociationLists}: 0, // variable

	{1, CIF1PhaseOffset}:    4,
	{1, CIF1Polarization}:   4,
	{1, CIF1PointingVector}: 8,
	{1, CIF1BeamWidth}:      8,
	{1, CIF1Range}:          4,

	{1, CIF1PointingVector3DStruct}: 0, // variable, array-of-records
	{1, CIF1CIFSArray}:              0, // variable, array-of-records
	{1, CIF1SectorScanStep}:         0, // variable, array-of-records
	{1, CIF1IndexList}:              0, // variable, array-of-records

	{2, CIF2Function}: 4,
	{2, CIF2Index}:    4,

	{3, CIF3TemperatureCalibration}: 4,
}

// cifFieldOrder lists every field key in canonical wire order: CIF0 from
// bit 31 down to bit 8, then CIF1, CIF2, CIF3 each from bit 31 down to bit
// 0. This mirrors the order fields are laid out in the field-value area
// regardless of which are actually present in a given packet.
var cifFieldOrder = buildCIFFieldOrder()

func buildCIFFieldOrder() []cifFieldKey {
	var order []cifFieldKey
	for bit := 31; bit >= 8; bit-- {
		k := cifFieldKey{0, uint8(bit)}
		if _, ok := cifFieldWidths[k]; ok {
			order = append(order, k)
		}
	}
	for _, cifNum := range []uint8{1, 2, 3} {
		for bit := 31; bit >= 0; bit-- {
			k := cifFieldKey{cifNum, uint8(bit)}
			if _, ok := cifFieldWidths[k]; ok {
				order = append(order, k)
			}
		}
	}
	return order
}

// isVariableWidth reports whether k's field size must be discovered from
// the field's own encoded content rather than the static table.
func isVariableWidth(k cifFieldKey) bool {
	w, ok := cifFieldWidths[k]
	return ok && w == 0
}
