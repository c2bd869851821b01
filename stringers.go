package vrt

// String implementations for every enum defined in this package.

func (pt PacketType) String() string {
	switch pt {
	case PacketTypeUnidentifiedData:
		return "UnidentifiedData"
	case PacketTypeData:
		return "Data"
	case PacketTypeUnidentifiedExtData:
		return "UnidentifiedExtData"
	case PacketTypeExtData:
		return "ExtData"
	case PacketTypeContext:
		return "Context"
	case PacketTypeExtContext:
		return "ExtContext"
	case PacketTypeCommand:
		return "Command"
	case PacketTypeExtCommand:
		return "ExtCommand"
	default:
		return "PacketType(?)"
	}
}

func (m TSIMode) String() string {
	switch m {
	case TSINone:
		return "None"
	case TSIUTC:
		return "UTC"
	case TSIGPS:
		return "GPS"
	case TSIOther:
		return "Other"
	default:
		return "TSIMode(?)"
	}
}

func (m TSFMode) String() string {
	switch m {
	case TSFNone:
		return "None"
	case TSFSampleCount:
		return "SampleCount"
	case TSFRealTime:
		return "RealTime"
	case TSFFreeRunningCount:
		return "FreeRunningCount"
	default:
		return "TSFMode(?)"
	}
}

func (f IdentifierFormat) String() string {
	switch f {
	case IdentifierNone:
		return "None"
	case Identifier32:
		return "Identifier32"
	case IdentifierUUID:
		return "IdentifierUUID"
	default:
		return "IdentifierFormat(?)"
	}
}

func (i TrailerIndicator) String() string {
	names := [...]string{
		"CalibratedTime", "ValidData", "ReferenceLock", "AGCMGC",
		"DetectedSignal", "SpectralInversion", "OverRange", "SampleLoss",
		"User0", "User1", "User2", "User3",
	}
	if int(i) < len(names) {
		return names[i]
	}
	return "TrailerIndicator(?)"
}

func (k BufferKind) String() string {
	if k == BufferOwned {
		return "Owned"
	}
	return "View"
}
