package debug

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/martinha-ssv/NX-422-project/field"
	"github.com/martinha-ssv/NX-422-project/types"
	"github.com/martinha-ssv/NX-422-project/waveform"
)

func snapshot(t *testing.T) *Record {
	t.Helper()
	pairs := []types.ElectrodePair{
		types.NewElectrodePair(0, 1, 0, types.DefaultF1, types.DefaultF2, types.DefaultRn),
	}
	pairs[0].Label = "P1"
	g, err := field.NewGrid(types.DefaultRn, 21)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	f, err := field.ComputeField(pairs, g, types.DefaultTotalI, types.DefaultMedium())
	if err != nil {
		t.Fatalf("ComputeField failed: %v", err)
	}
	m, err := waveform.MultiElectrodeWaveform(waveform.PerElectrode(1e-3, 1e-3), waveform.Scalar(1e-3),
		waveform.Scalar(33), waveform.Scalar(250e-6), waveform.PerElectrode(20e3, 22e3), waveform.Scalar(1e6), 2, 0)
	if err != nil {
		t.Fatalf("MultiElectrodeWaveform failed: %v", err)
	}
	var r Record
	r.SetPairs(pairs)
	r.SetField(f)
	r.SetWaveforms(m, []string{"P1-E1", "P1-E2"})
	r.SetEnvelopes(pairs, types.DefaultTotalI)
	return &r
}

// TestRecordRender masked points are encoded as null, not NaN
func TestRecordRender(t *testing.T) {
	r := snapshot(t)
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var back struct {
		Pairs []PairInfo   `json:"pairs"`
		Field [][]*float64 `json:"field"`
		Time  []float64    `json:"time"`
	}
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Field[0][0] != nil {
		t.Errorf("Expected null corner, got %v", *back.Field[0][0])
	}
	if back.Field[10][10] == nil {
		t.Errorf("Expected value at centre")
	}
	if len(back.Pairs) != 1 || back.Pairs[0].E1[0] != types.DefaultRn*1e3 {
		t.Errorf("Unexpected pair info %+v", back.Pairs)
	}
	if len(back.Time) != 1000 {
		t.Errorf("Expected 1000 samples, got %d", len(back.Time))
	}
}

func TestChartsRender(t *testing.T) {
	c := &Charts{Record: *snapshot(t)}
	rec := httptest.NewRecorder()
	c.Handler(rec, httptest.NewRequest("GET", "/", nil))
	body := rec.Body.String()
	for _, want := range []string{"AM envelope", "Electrode currents", "P1-E2", "Beat envelope"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in page", want)
		}
	}
}

// TestRecordTotals the summed current and the beat envelope follow the electrode series
func TestRecordTotals(t *testing.T) {
	r := snapshot(t)
	if len(r.Total) != len(r.Time) {
		t.Fatalf("Expected %d total samples, got %d", len(r.Time), len(r.Total))
	}
	for k := range r.Total {
		if expected := r.Signals[0][k] + r.Signals[1][k]; math.Abs(r.Total[k]-expected) > 1e-18 {
			t.Fatalf("sample %d: expected total %g, got %g", k, expected, r.Total[k])
		}
	}
	if len(r.Beats) != 1 || len(r.Beats[0]) != len(r.Time) {
		t.Fatalf("Expected one beat envelope over the time axis, got %d", len(r.Beats))
	}
	// balanced pole currents of 1 mA each peak at 2 mA when t = 0
	if math.Abs(r.Beats[0][0]-types.DefaultTotalI) > 1e-15 {
		t.Errorf("Expected envelope %g at t=0, got %g", types.DefaultTotalI, r.Beats[0][0])
	}
}

func TestDecimate(t *testing.T) {
	old := MaxPoints
	defer func() { MaxPoints = old }()
	MaxPoints = 10
	v := make([]float64, 95)
	for i := range v {
		v[i] = float64(i)
	}
	d := decimate(v)
	if len(d) > 10 || d[0] != 0 || d[1] != 10 {
		t.Errorf("Unexpected decimation %v", d)
	}
	if got := decimate(v[:5]); len(got) != 5 {
		t.Errorf("Expected short series unchanged, got %d", len(got))
	}
}
