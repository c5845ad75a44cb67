package stream

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

// Subjects
const (
	WaveSubject   = "ifc.wave"
	ParamsSubject = "ifc.params"
)

// EncodeFrame packs samples as little-endian float32
func EncodeFrame(v []float64) []byte {
	out := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(x)))
	}
	return out
}

// DecodeFrame inverse of EncodeFrame
func DecodeFrame(b []byte) ([]float64, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("frame length %d is not a multiple of 4", len(b))
	}
	out := make([]float64, len(b)/4)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return out, nil
}

// Conn the part of *nats.Conn used for publishing
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends electrode signals in fixed-size frames
type Publisher struct {
	Conn    Conn
	Subject string // wave subject, WaveSubject when empty
	Batch   int    // samples per frame, whole signal when <= 0
}

// NewPublisher publisher on the default subjects
func NewPublisher(c Conn, batch int) *Publisher {
	return &Publisher{Conn: c, Subject: WaveSubject, Batch: batch}
}

func (p *Publisher) subject() string {
	if p.Subject == "" {
		return WaveSubject
	}
	return p.Subject
}

// Publish sends signal as consecutive frames and returns how many were sent
func (p *Publisher) Publish(signal []float64) (int, error) {
	batch := p.Batch
	if batch <= 0 || batch > len(signal) {
		batch = len(signal)
	}
	frames := 0
	for start := 0; start < len(signal); start += batch {
		end := min(start+batch, len(signal))
		if err := p.Conn.Publish(p.subject(), EncodeFrame(signal[start:end])); err != nil {
			return frames, fmt.Errorf("frame %d: %w", frames, err)
		}
		frames++
	}
	return frames, nil
}

// PublishElectrodes publishes each electrode on <subject>.<label>
func (p *Publisher) PublishElectrodes(signals [][]float64, labels []string) (int, error) {
	total := 0
	for e, s := range signals {
		label := fmt.Sprintf("E%d", e+1)
		if e < len(labels) {
			label = labels[e]
		}
		sub := &Publisher{Conn: p.Conn, Subject: p.subject() + "." + label, Batch: p.Batch}
		n, err := sub.Publish(s)
		total += n
		if err != nil {
			return total, fmt.Errorf("electrode %s: %w", label, err)
		}
	}
	return total, nil
}

// PublishParams sends v as JSON on ParamsSubject
func (p *Publisher) PublishParams(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Conn.Publish(ParamsSubject, b)
}
