package dsp

import "math"

// Complex is a two-component complex value. Operations return new values;
// nothing mutates in place.
type Complex struct {
	Re float64
	Im float64
}

// Rect builds a complex value from rectangular components.
func Rect(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// Unit returns the point on the unit circle at the given angle in radians.
func Unit(angle float64) Complex {
	return Complex{Re: math.Cos(angle), Im: math.Sin(angle)}
}

// Add returns the componentwise sum a+b.
func (a Complex) Add(b Complex) Complex {
	return Complex{Re: a.Re + b.Re, Im: a.Im + b.Im}
}

// Sub returns the componentwise difference a-b.
func (a Complex) Sub(b Complex) Complex {
	return Complex{Re: a.Re - b.Re, Im: a.Im - b.Im}
}

// Mul returns the complex product a*b.
func (a Complex) Mul(b Complex) Complex {
	return Complex{
		Re: a.Re*b.Re - a.Im*b.Im,
		Im: a.Re*b.Im + a.Im*b.Re,
	}
}

// ScaleDiv divides both components by the real scalar d.
func (a Complex) ScaleDiv(d float64) Complex {
	return Complex{Re: a.Re / d, Im: a.Im / d}
}
