package stream

import (
	"encoding/json"
	"errors"
	"testing"
)

type fakeConn struct {
	subjects []string
	frames   [][]byte
	failAt   int
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.failAt > 0 && len(c.frames)+1 == c.failAt {
		return errors.New("closed")
	}
	c.subjects = append(c.subjects, subject)
	c.frames = append(c.frames, data)
	return nil
}

func TestFrameRoundTrip(t *testing.T) {
	in := []float64{0, 1, -0.5, 1e-3, 2e-3}
	b := EncodeFrame(in)
	if len(b) != 4*len(in) {
		t.Fatalf("Expected %d bytes, got %d", 4*len(in), len(b))
	}
	out, err := DecodeFrame(b)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	for i := range in {
		if out[i] != float64(float32(in[i])) {
			t.Errorf("sample %d: expected %g, got %g", i, float32(in[i]), out[i])
		}
	}
	if _, err := DecodeFrame([]byte{1, 2, 3}); err == nil {
		t.Errorf("Expected error for truncated frame")
	}
}

func TestPublishBatches(t *testing.T) {
	c := &fakeConn{}
	p := NewPublisher(c, 4)
	n, err := p.Publish(make([]float64, 10))
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 frames, got %d", n)
	}
	if len(c.frames[2]) != 8 {
		t.Errorf("Expected last frame of 2 samples, got %d bytes", len(c.frames[2]))
	}
	if c.subjects[0] != WaveSubject {
		t.Errorf("Expected subject %s, got %s", WaveSubject, c.subjects[0])
	}

	c = &fakeConn{failAt: 2}
	p = NewPublisher(c, 4)
	if n, err := p.Publish(make([]float64, 10)); err == nil || n != 1 {
		t.Errorf("Expected failure after 1 frame, got %d, %v", n, err)
	}
}

func TestPublishElectrodes(t *testing.T) {
	c := &fakeConn{}
	p := NewPublisher(c, 0)
	n, err := p.PublishElectrodes([][]float64{{1, 2}, {3, 4}}, []string{"P1-E1"})
	if err != nil {
		t.Fatalf("PublishElectrodes failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 frames, got %d", n)
	}
	if c.subjects[0] != "ifc.wave.P1-E1" || c.subjects[1] != "ifc.wave.E2" {
		t.Errorf("Unexpected subjects %v", c.subjects)
	}
}

func TestPublishParams(t *testing.T) {
	c := &fakeConn{}
	p := NewPublisher(c, 0)
	if err := p.PublishParams(map[string]float64{"peak": 1.5}); err != nil {
		t.Fatalf("PublishParams failed: %v", err)
	}
	var got map[string]float64
	if err := json.Unmarshal(c.frames[0], &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c.subjects[0] != ParamsSubject || got["peak"] != 1.5 {
		t.Errorf("Unexpected params message %s on %s", c.frames[0], c.subjects[0])
	}
}
