package eval

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownWeight is returned when an override names no weight.
var ErrUnknownWeight = errors.New("unknown weight")

// Weights is the flat parameter record shared by every evaluator variant.
// Table weights address cell classes of the weight table; the w* fields
// scale the other scorers.
type Weights struct {
	Corner float64 `yaml:"corner" json:"corner"`
	C      float64 `yaml:"c" json:"c"`
	A1     float64 `yaml:"a1" json:"a1"`
	A2     float64 `yaml:"a2" json:"a2"`
	B1     float64 `yaml:"b1" json:"b1"`
	B2     float64 `yaml:"b2" json:"b2"`
	B3     float64 `yaml:"b3" json:"b3"`
	X      float64 `yaml:"x" json:"x"`
	O1     float64 `yaml:"o1" json:"o1"`
	O2     float64 `yaml:"o2" json:"o2"`

	WP float64 `yaml:"wp" json:"wp"` // mobility
	WO float64 `yaml:"wo" json:"wo"` // openness
	WW float64 `yaml:"ww" json:"ww"` // win/lose
	WE float64 `yaml:"we" json:"we"` // edge stability
	WC float64 `yaml:"wc" json:"wc"` // corner stability
}

// DefaultWeights returns the standard weights.
func DefaultWeights() Weights {
	return Weights{
		Corner: 50,
		C:      -20,
		A1:     0,
		A2:     -1,
		B1:     -1,
		B2:     -1,
		B3:     -1,
		X:      -25,
		O1:     -5,
		O2:     -5,
		WP:     5,
		WO:     -0.75,
		WW:     10000,
		WE:     100,
		WC:     100,
	}
}

// DefaultWeightsFor returns the default weights of a named evaluator.
// A few variants were tuned with their own mobility/edge/corner weights.
func DefaultWeightsFor(name string) Weights {
	w := DefaultWeights()
	switch name {
	case "TPWEC":
		w.WC = 120
	case "PWE":
		w.WP = 10
		w.WE = 75
	}
	return w
}

// TableParams returns the table part of the weights.
func (w Weights) TableParams() TableParams {
	return TableParams{
		Corner: w.Corner, C: w.C,
		A1: w.A1, A2: w.A2,
		B1: w.B1, B2: w.B2, B3: w.B3,
		X: w.X, O1: w.O1, O2: w.O2,
	}
}

// WithOverrides returns w with the named weights replaced. Names are the
// yaml keys of Weights.
func (w Weights) WithOverrides(overrides map[string]float64) (Weights, error) {
	if len(overrides) == 0 {
		return w, nil
	}
	data, err := yaml.Marshal(overrides)
	if err != nil {
		return w, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	out := w
	if err := dec.Decode(&out); err != nil {
		return w, fmt.Errorf("%w: %v", ErrUnknownWeight, err)
	}
	return out, nil
}
