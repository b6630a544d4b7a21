package keyframes

// Property identifies which clip or timeline attribute a track automates.
type Property int

const (
	PropertyVolume Property = iota
	PropertyPan
	PropertyOpacity
	PropertyBrightness
	PropertyContrast
	PropertySaturation
)

// Range bounds the values a property may take and supplies the value
// returned when no automation exists.
type Range struct {
	Min     float64
	Max     float64
	Default float64
}

// Range returns the declared bounds for the property. The switch is
// exhaustive so a new property cannot silently inherit another's range.
func (p Property) Range() Range {
	switch p {
	case PropertyVolume:
		return Range{Min: 0, Max: 1, Default: 1}
	case PropertyPan:
		return Range{Min: -1, Max: 1, Default: 0}
	case PropertyOpacity:
		return Range{Min: 0, Max: 1, Default: 1}
	case PropertyBrightness:
		return Range{Min: -100, Max: 100, Default: 0}
	case PropertyContrast:
		return Range{Min: -100, Max: 100, Default: 0}
	case PropertySaturation:
		return Range{Min: -100, Max: 100, Default: 0}
	}
	return Range{Min: 0, Max: 1, Default: 0}
}

func (p Property) String() string {
	switch p {
	case PropertyVolume:
		return "volume"
	case PropertyPan:
		return "pan"
	case PropertyOpacity:
		return "opacity"
	case PropertyBrightness:
		return "brightness"
	case PropertyContrast:
		return "contrast"
	case PropertySaturation:
		return "saturation"
	}
	return "unknown"
}

// Clamp forces v into the property's declared range.
func (p Property) Clamp(v float64) float64 {
	r := p.Range()
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}
