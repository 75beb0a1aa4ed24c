package neuron

import "fmt"

// Key names one configurable field.
type Key int

const (
	KeyX Key = iota
	KeyY
	KeyZ
	KeyE
	KeyMu
	KeyS
	KeyVh
	KeyTimeIncrement
	KeyBurstDuration
	KeyPeriodSeconds
	numKeys
)

var keyNames = [numKeys]string{
	KeyX:             "x",
	KeyY:             "y",
	KeyZ:             "z",
	KeyE:             "e",
	KeyMu:            "mu",
	KeyS:             "s",
	KeyVh:            "vh",
	KeyTimeIncrement: "time_increment",
	KeyBurstDuration: "burst_duration",
	KeyPeriodSeconds: "period_seconds",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, numKeys)
	for k, name := range keyNames {
		m[name] = Key(k)
	}
	return m
}()

func (k Key) String() string {
	if k.Valid() {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

func (k Key) Valid() bool {
	return k >= 0 && k < numKeys
}

// ParseKey maps a configuration name to its key.
func ParseKey(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}

// Keys lists every configuration key in declaration order.
func Keys() []Key {
	out := make([]Key, numKeys)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// Input names an external drive.
type Input int

const (
	InputSyn Input = iota
)

func (in Input) String() string {
	if in == InputSyn {
		return "i_syn"
	}
	return fmt.Sprintf("Input(%d)", int(in))
}

func ParseInput(name string) (Input, bool) {
	if name == "i_syn" {
		return InputSyn, true
	}
	return 0, false
}
