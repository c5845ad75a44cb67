package types

import "math"

// Physical constants
const (
	Eps0 = 8.854e-12 // vacuum permittivity (F/m)
	RMin = 1e-6      // distance floor for point sources (m)
)

// Default scene parameters
var (
	DefaultRn      = 1.5e-3 // cuff radius (m)
	DefaultGridN   = 400    // grid samples per axis
	DefaultTotalI  = 2e-3   // total injected current (A)
	DefaultSigmaDC = 0.3    // bulk conductivity (S/m)
	DefaultEpsR    = 5000.0 // relative permittivity
	DefaultF1      = 20e3   // pole 1 carrier (Hz)
	DefaultF2      = 22e3   // pole 2 carrier (Hz)
	DefaultPRF     = 33.0   // pulse repetition frequency (Hz)
	DefaultBD      = 250e-6 // burst duration (s)
	DefaultFs      = 1e6    // waveform sample rate (Hz)
)

// DefaultTD one pulse repetition period
func DefaultTD() float64 { return 1 / DefaultPRF }

// Deg2Rad degrees to radians
func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Rad2Deg radians to degrees
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }
