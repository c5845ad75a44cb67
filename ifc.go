package ifc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/martinha-ssv/NX-422-project/field"
	"github.com/martinha-ssv/NX-422-project/types"
	"github.com/martinha-ssv/NX-422-project/utils"
	"github.com/martinha-ssv/NX-422-project/waveform"
)

// BurstConfig pulsed drive settings shared by every pole
type BurstConfig struct {
	PRF float64 // pulse repetition frequency (Hz)
	BD  float64 // burst duration (s)
	TD  float64 // total duration (s)
	Fs  float64 // sample rate (Hz)
}

// Simulation IFC scene: electrode pairs around a nerve cuff and their drive
type Simulation struct {
	Pairs     []types.ElectrodePair
	Medium    types.Medium
	TotalI    float64 // total injected current (A)
	Rn        float64 // cuff radius (m)
	GridN     int     // samples per grid axis
	Burst     BurstConfig
	Normalize bool // scale weights to sum 1 before every evaluation
	Workers   int  // field engine workers

	grid *field.Grid
}

// NewSimulation empty scene with default tissue and drive
func NewSimulation() *Simulation {
	return &Simulation{
		Medium:    types.DefaultMedium(),
		TotalI:    types.DefaultTotalI,
		Rn:        types.DefaultRn,
		GridN:     types.DefaultGridN,
		Normalize: true,
		Burst: BurstConfig{
			PRF: types.DefaultPRF,
			BD:  types.DefaultBD,
			TD:  types.DefaultTD(),
			Fs:  types.DefaultFs,
		},
	}
}

// DefaultScene three balanced pairs 120° apart
func DefaultScene() *Simulation {
	sim := NewSimulation()
	for _, deg := range []float64{0, 120, 240} {
		sim.AddPair(deg, 1, 0, types.DefaultF1, types.DefaultF2)
	}
	return sim
}

// AddPair appends a pair on the cuff ring
func (sim *Simulation) AddPair(angleDeg, weight, steer, f1, f2 float64) {
	p := types.NewElectrodePair(angleDeg, weight, steer, f1, f2, sim.Rn)
	p.Label = fmt.Sprintf("P%d", len(sim.Pairs)+1)
	sim.Pairs = append(sim.Pairs, p)
}

// Load reads a scene file
func (sim *Simulation) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return sim.Parse(file)
}

// Parse reads the scene format:
//
//	# comment
//	.medium sigma_dc eps_r
//	.drive total_I
//	.grid Rn N
//	.burst PRF BD TD f_s
//	P<n> angle_deg weight steer [f1 f2]
func (sim *Simulation) Parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	pairs := make([]types.ElectrodePair, 0)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := utils.NetList(strings.Fields(text))
		if fields[0][0] == '.' {
			if err := sim.directive(fields); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}
		name, _ := fields.SeparationPrick(0)
		if name != "P" {
			return fmt.Errorf("line %d: unknown element %q", line, fields[0])
		}
		p, err := sim.parsePair(fields)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		pairs = append(pairs, p)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	// the ring radius may be declared after the pairs
	for i := range pairs {
		pairs[i].Rn = sim.Rn
	}
	sim.Pairs = pairs
	sim.grid = nil
	return nil
}

func (sim *Simulation) directive(fields utils.NetList) (err error) {
	switch strings.ToLower(fields[0]) {
	case ".medium":
		if sim.Medium.SigmaDC, err = fields.RequireFloat64(1, "sigma_dc"); err != nil {
			return err
		}
		if sim.Medium.EpsR, err = fields.RequireFloat64(2, "eps_r"); err != nil {
			return err
		}
		return sim.Medium.Validate()
	case ".drive":
		sim.TotalI, err = fields.RequireFloat64(1, "total_I")
		return err
	case ".grid":
		if sim.Rn, err = fields.RequireFloat64(1, "Rn"); err != nil {
			return err
		}
		sim.GridN, err = fields.RequireInt(2, "N")
		return err
	case ".burst":
		b := &sim.Burst
		if b.PRF, err = fields.RequireFloat64(1, "PRF"); err != nil {
			return err
		}
		if b.BD, err = fields.RequireFloat64(2, "BD"); err != nil {
			return err
		}
		if b.TD, err = fields.OptionalFloat64(3, "TD", 1/b.PRF); err != nil {
			return err
		}
		b.Fs, err = fields.OptionalFloat64(4, "f_s", types.DefaultFs)
		return err
	}
	return fmt.Errorf("unknown directive %q", fields[0])
}

func (sim *Simulation) parsePair(fields utils.NetList) (p types.ElectrodePair, err error) {
	var angle, weight, steer, f1, f2 float64
	if angle, err = fields.RequireFloat64(1, "angle"); err != nil {
		return p, err
	}
	if weight, err = fields.RequireFloat64(2, "weight"); err != nil {
		return p, err
	}
	if steer, err = fields.RequireFloat64(3, "steer"); err != nil {
		return p, err
	}
	if f1, err = fields.OptionalFloat64(4, "f1", types.DefaultF1); err != nil {
		return p, err
	}
	if f2, err = fields.OptionalFloat64(5, "f2", types.DefaultF2); err != nil {
		return p, err
	}
	p = types.NewElectrodePair(angle, weight, steer, f1, f2, sim.Rn)
	p.Label = strings.ToUpper(fields[0])
	return p, p.Validate()
}

// Export writes the scene file
func (sim *Simulation) Export(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return sim.Write(file)
}

// Write serializes the scene in the format read by Parse
func (sim *Simulation) Write(w io.Writer) error {
	writer := bufio.NewWriter(w)
	lines := []utils.NetList{
		utils.FromAnySlice([]any{".medium", sim.Medium.SigmaDC, sim.Medium.EpsR}),
		utils.FromAnySlice([]any{".drive", sim.TotalI}),
		utils.FromAnySlice([]any{".grid", sim.Rn, sim.GridN}),
		utils.FromAnySlice([]any{".burst", sim.Burst.PRF, sim.Burst.BD, sim.Burst.TD, sim.Burst.Fs}),
	}
	for k, p := range sim.Pairs {
		label := p.Label
		if label == "" {
			label = fmt.Sprintf("P%d", k+1)
		}
		lines = append(lines, utils.FromAnySlice([]any{label, types.Rad2Deg(p.Angle), p.Weight, p.Steer, p.F1, p.F2}))
	}
	writer.WriteString("# IFC scene\n")
	for _, l := range lines {
		writer.WriteString(l.String())
		writer.WriteRune('\n')
	}
	return writer.Flush()
}

// Update applies an interactive control change to pair i
func (sim *Simulation) Update(i int, angleDeg, weight, steer float64) error {
	if i < 0 || i >= len(sim.Pairs) {
		return fmt.Errorf("pair %d of %d: %w", i, len(sim.Pairs), types.ErrInvalidPair)
	}
	p := sim.Pairs[i]
	p.SetAngle(angleDeg)
	if err := p.SetWeight(weight); err != nil {
		return err
	}
	p.SetSteer(steer)
	sim.Pairs[i] = p
	return nil
}

// Grid sampling grid for the current radius and resolution
func (sim *Simulation) Grid() (*field.Grid, error) {
	if sim.grid != nil && sim.grid.Rn == sim.Rn && sim.grid.N == sim.GridN {
		return sim.grid, nil
	}
	g, err := field.NewGrid(sim.Rn, sim.GridN)
	if err != nil {
		return nil, err
	}
	sim.grid = g
	return g, nil
}

// EffectivePairs pairs as fed to the engines, weights normalized when enabled
func (sim *Simulation) EffectivePairs() ([]types.ElectrodePair, error) {
	pairs := make([]types.ElectrodePair, len(sim.Pairs))
	copy(pairs, sim.Pairs)
	for i := range pairs {
		pairs[i].Rn = sim.Rn
	}
	if sim.Normalize && len(pairs) > 0 {
		if err := types.NormalizeWeights(pairs); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}

// Field evaluates the normalized AM envelope of the scene
func (sim *Simulation) Field() (*field.AMField, error) {
	pairs, err := sim.EffectivePairs()
	if err != nil {
		return nil, err
	}
	g, err := sim.Grid()
	if err != nil {
		return nil, err
	}
	engine := field.Engine{Workers: sim.Workers}
	return engine.Compute(pairs, g, sim.TotalI, sim.Medium)
}

// Waveforms drives two electrodes per pair, pole 1 then pole 2, each carrying its
// pole current as burst amplitude on its own carrier
func (sim *Simulation) Waveforms(startT float64) (*waveform.MultiBurst, error) {
	pairs, err := sim.EffectivePairs()
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, types.ErrNoPairs
	}
	amps := make([]float64, 0, 2*len(pairs))
	freqs := make([]float64, 0, 2*len(pairs))
	for _, p := range pairs {
		i1, i2 := p.Currents(sim.TotalI)
		amps = append(amps, i1, i2)
		freqs = append(freqs, p.F1, p.F2)
	}
	b := sim.Burst
	return waveform.MultiElectrodeWaveform(
		waveform.PerElectrode(amps...),
		waveform.Scalar(b.TD),
		waveform.Scalar(b.PRF),
		waveform.Scalar(b.BD),
		waveform.PerElectrode(freqs...),
		waveform.Scalar(b.Fs),
		len(amps), startT)
}

// ElectrodeLabels column names matching Waveforms
func (sim *Simulation) ElectrodeLabels() []string {
	labels := make([]string, 0, 2*len(sim.Pairs))
	for k, p := range sim.Pairs {
		name := p.Label
		if name == "" {
			name = fmt.Sprintf("P%d", k+1)
		}
		labels = append(labels, name+"-E1", name+"-E2")
	}
	return labels
}
