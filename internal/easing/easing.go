package easing

import "math"

// Name identifies an easing curve. Unknown names resolve to Linear.
type Name string

const (
	Linear     Name = "linear"
	EaseIn     Name = "ease-in"
	EaseOut    Name = "ease-out"
	EaseInOut  Name = "ease-in-out"
	CubicIn    Name = "cubic-in"
	CubicOut   Name = "cubic-out"
	CubicInOut Name = "cubic-in-out"
	ElasticIn  Name = "elastic-in"
	ElasticOut Name = "elastic-out"
	BounceOut  Name = "bounce-out"
	Step       Name = "step"
)

// Func maps normalized progress t in [0,1] to eased progress in [0,1].
type Func func(t float64) float64

// Names lists every supported easing curve.
func Names() []Name {
	return []Name{
		Linear, EaseIn, EaseOut, EaseInOut,
		CubicIn, CubicOut, CubicInOut,
		ElasticIn, ElasticOut, BounceOut, Step,
	}
}

// Valid reports whether name is a known easing curve.
func Valid(name Name) bool {
	switch name {
	case Linear, EaseIn, EaseOut, EaseInOut,
		CubicIn, CubicOut, CubicInOut,
		ElasticIn, ElasticOut, BounceOut, Step:
		return true
	}
	return false
}

// Resolve returns the easing function for name, falling back to Linear
// for unknown names.
func Resolve(name Name) Func {
	switch name {
	case EaseIn:
		return easeInQuad
	case EaseOut:
		return easeOutQuad
	case EaseInOut:
		return easeInOutQuad
	case CubicIn:
		return easeInCubic
	case CubicOut:
		return easeOutCubic
	case CubicInOut:
		return easeInOutCubic
	case ElasticIn:
		return easeInElastic
	case ElasticOut:
		return easeOutElastic
	case BounceOut:
		return easeOutBounce
	case Step:
		return step
	default:
		return linear
	}
}

// Apply clamps t into [0,1] and runs it through the named curve.
func Apply(name Name, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Resolve(name)(t)
}

func linear(t float64) float64 { return t }

func easeInQuad(t float64) float64 { return t * t }

func easeOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func easeInCubic(t float64) float64 { return t * t * t }

func easeOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

const elasticPeriod = 2 * math.Pi / 3

func easeInElastic(t float64) float64 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	return -math.Pow(2, 10*t-10) * math.Sin((10*t-10.75)*elasticPeriod)
}

func easeOutElastic(t float64) float64 {
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((10*t-0.75)*elasticPeriod) + 1
}

func easeOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// step holds at 0 and jumps to 1 only exactly at the end.
func step(t float64) float64 {
	if t < 1 {
		return 0
	}
	return 1
}
