package types

import "math"

// Medium bulk tissue properties
type Medium struct {
	SigmaDC float64 // DC conductivity (S/m)
	EpsR    float64 // relative permittivity
}

// DefaultMedium nerve tissue defaults
func DefaultMedium() Medium {
	return Medium{SigmaDC: DefaultSigmaDC, EpsR: DefaultEpsR}
}

// Validate rejects a medium whose admittance could vanish
func (m Medium) Validate() error {
	switch {
	case math.IsNaN(m.SigmaDC) || math.IsInf(m.SigmaDC, 0) || m.SigmaDC < 0:
		return NewConfigError("sigma_dc", m.SigmaDC, ErrInvalidMedium)
	case math.IsNaN(m.EpsR) || math.IsInf(m.EpsR, 0) || m.EpsR < 0:
		return NewConfigError("eps_r", m.EpsR, ErrInvalidMedium)
	case m.SigmaDC == 0 && m.EpsR == 0:
		return NewConfigError("medium", m, ErrInvalidMedium)
	}
	return nil
}
