package metrics

import "github.com/san-kum/chaossim/internal/dynamo"

// MeanSpeed averages |dx/dt| over observed states.
type MeanSpeed struct {
	dyn     dynamo.System
	sum     float64
	samples int
}

func NewMeanSpeed(dyn dynamo.System) *MeanSpeed {
	return &MeanSpeed{dyn: dyn}
}

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) OnStep(x dynamo.State, t float64) {
	m.sum += dynamo.Speed(m.dyn, x)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// MaxSpeed tracks the fastest observed state.
type MaxSpeed struct {
	dyn dynamo.System
	max float64
}

func NewMaxSpeed(dyn dynamo.System) *MaxSpeed {
	return &MaxSpeed{dyn: dyn}
}

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) OnStep(x dynamo.State, t float64) {
	if v := dynamo.Speed(m.dyn, x); v > m.max {
		m.max = v
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }
