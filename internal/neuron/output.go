package neuron

import "github.com/san-kum/hrneuron/internal/hr"

// Output names an observable the host can read after a tick.
type Output int

const (
	OutX Output = iota
	OutY
	OutZ
	OutVolts
	OutMillivolts
)

const (
	VoltsName      = "Membrane potential (V)"
	MillivoltsName = "Membrane potential (mV)"
)

var outputsByName = map[string]Output{
	"x":            OutX,
	"y":            OutY,
	"z":            OutZ,
	VoltsName:      OutVolts,
	MillivoltsName: OutMillivolts,
}

func ParseOutput(name string) (Output, bool) {
	o, ok := outputsByName[name]
	return o, ok
}

// ReadOutput extracts an observable from a state. Unknown outputs read 0.
func ReadOutput(v hr.Vars, o Output) float64 {
	switch o {
	case OutX, OutVolts:
		return v[hr.X]
	case OutY:
		return v[hr.Y]
	case OutZ:
		return v[hr.Z]
	case OutMillivolts:
		return v[hr.X] * 1000
	default:
		return 0
	}
}
