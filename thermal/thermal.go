// Package thermal estimates tissue heating and SAR from electrode waveforms.
//
// The model is deliberately coarse: all dissipated energy is resistive loss in
// the tracks during one burst, deposited in a sphere of tissue whose radius is
// the thermal diffusion length.
package thermal

import (
	"fmt"
	"math"

	"github.com/martinha-ssv/NX-422-project/types"
	"github.com/martinha-ssv/NX-422-project/waveform"
)

// Tissue thermal properties
type Tissue struct {
	Name        string
	Diffusivity float64 // thermal diffusivity (m²/s)
	HeatCap     float64 // specific heat capacity (J/(kg·K))
	Density     float64 // density (kg/m³)
}

// Reference tissues
var (
	Extracellular = Tissue{Name: "Extracel", Diffusivity: 1.4848e-7, HeatCap: 3997, Density: 1011}
	Nerve         = Tissue{Name: "Nerve", Diffusivity: 1.26e-7, HeatCap: 3613, Density: 1075}
	Skin          = Tissue{Name: "Skin", Diffusivity: 9.8389e-8, HeatCap: 3391, Density: 1109}
	Connective    = Tissue{Name: "Connective", Diffusivity: 1.6e-7, HeatCap: 2372, Density: 1027}
)

// Tissues lookup by name
var Tissues = map[string]Tissue{
	Extracellular.Name: Extracellular,
	Nerve.Name:         Nerve,
	Skin.Name:          Skin,
	Connective.Name:    Connective,
}

// Surrounding mean of the tissues around the nerve
func Surrounding() Tissue {
	ts := []Tissue{Extracellular, Skin, Connective}
	out := Tissue{Name: "Surrounding"}
	for _, t := range ts {
		out.Diffusivity += t.Diffusivity / float64(len(ts))
		out.HeatCap += t.HeatCap / float64(len(ts))
		out.Density += t.Density / float64(len(ts))
	}
	return out
}

// SARLimit exposure limit (W/kg)
var SARLimit = 0.5

// DiffusionLength μ = sqrt(D/(πf))
func DiffusionLength(d, f float64) (float64, error) {
	if !(f > 0) {
		return 0, types.NewConfigError("f_mod", f, types.ErrInvalidFrequency)
	}
	if d < 0 {
		return 0, types.NewConfigError("D", d, types.ErrInvalidMedium)
	}
	return math.Sqrt(d / (math.Pi * f)), nil
}

// HeatedVolume sphere of radius mu
func HeatedVolume(mu float64) float64 {
	return 4.0 / 3.0 * math.Pi * mu * mu * mu
}

// EnergyDissipated R·I_rms²·bd with I_rms taken from the waveform peak
func EnergyDissipated(r float64, b *waveform.Burst, bd float64) float64 {
	irms := b.Peak() / math.Sqrt2
	return r * irms * irms * bd
}

// TemperatureRise ΔT = E/(c·m)
func TemperatureRise(c, e, mass float64) (float64, error) {
	if !(c > 0) || !(mass > 0) {
		return 0, fmt.Errorf("heat capacity %g, mass %g: %w", c, mass, types.ErrInvalidMedium)
	}
	return e / (c * mass), nil
}

// SAR absorbed power per kilogram of heated tissue
func SAR(power, volume, density float64) (float64, error) {
	mass := volume * density
	if !(mass > 0) {
		return 0, fmt.Errorf("mass %g: %w", mass, types.ErrInvalidMedium)
	}
	return power / mass, nil
}

// WithinSARLimit reports sar <= limit
func WithinSARLimit(sar, limit float64) bool { return sar <= limit }
