package thermal

import (
	"github.com/martinha-ssv/NX-422-project/types"
	"github.com/martinha-ssv/NX-422-project/waveform"
)

// Budget heating estimate of one carrier pair driven on every electrode pair
type Budget struct {
	F1, F2    float64 // carriers (Hz)
	FMod      float64 // modulation frequency (Hz)
	Energy    float64 // dissipated per burst (J)
	Volume    float64 // heated volume (m³)
	Mass      float64 // heated mass (kg)
	DeltaT    float64 // temperature rise (K)
	Power     float64 // mean power over one repetition period (W)
	SAR       float64 // W/kg
	WithinSAR bool
}

// Drive waveform parameters shared by both carriers
type Drive struct {
	Amplitude  float64 // peak current per electrode (A)
	PRF        float64 // Hz
	BD         float64 // s
	Fs         float64 // Hz
	Pairs      int     // electrode pairs carrying the drive
	Resistance float64 // track resistance (Ω)
}

// Estimate heating of tissue for carriers f1/f2 over one repetition period.
// mu overrides the diffusion length when positive.
func Estimate(d Drive, f1, f2 float64, tissue Tissue, mu float64) (*Budget, error) {
	td := 1 / d.PRF
	b1, err := waveform.ElectrodeWaveform(d.Amplitude, td, d.PRF, d.BD, f1, d.Fs, 0)
	if err != nil {
		return nil, err
	}
	b2, err := waveform.ElectrodeWaveform(d.Amplitude, td, d.PRF, d.BD, f2, d.Fs, 0)
	if err != nil {
		return nil, err
	}
	pair := types.ElectrodePair{F1: f1, F2: f2}
	fmod := pair.BeatFrequency()
	if mu <= 0 {
		if mu, err = DiffusionLength(tissue.Diffusivity, fmod); err != nil {
			return nil, err
		}
	}
	n := float64(max(d.Pairs, 1))
	energy := n * (EnergyDissipated(d.Resistance, b1, d.BD) + EnergyDissipated(d.Resistance, b2, d.BD))
	volume := HeatedVolume(mu)
	mass := volume * tissue.Density
	dT, err := TemperatureRise(tissue.HeatCap, energy, mass)
	if err != nil {
		return nil, err
	}
	power := energy * d.PRF
	sar, err := SAR(power, volume, tissue.Density)
	if err != nil {
		return nil, err
	}
	return &Budget{
		F1: f1, F2: f2, FMod: fmod,
		Energy: energy, Volume: volume, Mass: mass,
		DeltaT: dT, Power: power, SAR: sar,
		WithinSAR: WithinSARLimit(sar, SARLimit),
	}, nil
}
