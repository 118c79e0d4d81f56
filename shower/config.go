package shower

import (
	"fmt"
	"math"
)

// pTmaxMatch modes for the starting scale of showers off the hard system.
const (
	// PTmaxMatchAuto limits ISR to the hard scale only when the hard final
	// state contains a coloured particle or a photon.
	PTmaxMatchAuto = 0
	// PTmaxMatchAlways always limits ISR to the hard scale.
	PTmaxMatchAlways = 1
	// PTmaxMatchNever lets ISR start at the kinematic limit.
	PTmaxMatchNever = 2
)

// FSRConfig groups time-like shower parameters.
type FSRConfig struct {
	PTmin        float64 `yaml:"pt_min"`          // cutoff in GeV, evolution stops below it
	AlphaSValue  float64 `yaml:"alpha_s"`         // alpha_s(MZ)
	AlphaSOrder  int     `yaml:"alpha_s_order"`   // 0 fixed, 1 one-loop running
	RecoilToBeam bool    `yaml:"recoil_to_beam"`  // allow final-initial dipoles when beams are coupled
	GluonSplit   bool    `yaml:"gluon_splitting"` // allow g -> q qbar
}

// ISRConfig groups space-like shower parameters.
type ISRConfig struct {
	PTmin       float64 `yaml:"pt_min"`
	AlphaSValue float64 `yaml:"alpha_s"`
	AlphaSOrder int     `yaml:"alpha_s_order"`
	PT0Ref      float64 `yaml:"pt0_ref"` // regularisation scale at ECMRef
	ECMRef      float64 `yaml:"ecm_ref"`
	ECMPow      float64 `yaml:"ecm_pow"`
	ZMax        float64 `yaml:"z_max"` // upper bound on the momentum fraction of a branching
}

// MIConfig groups multiple-interaction parameters.
type MIConfig struct {
	Enabled     bool    `yaml:"enabled"`
	PTmin       float64 `yaml:"pt_min"`
	AlphaSValue float64 `yaml:"alpha_s"`
	PT0Ref      float64 `yaml:"pt0_ref"`
	ECMRef      float64 `yaml:"ecm_ref"`
	ECMPow      float64 `yaml:"ecm_pow"`
	Strength    float64 `yaml:"strength"` // normalisation A of A/(pT2+pT02)^2, in GeV^2
	CosThetaMax float64 `yaml:"cos_theta_max"`
}

// Config is the immutable configuration of one generator. It is passed by
// value to every constructor; nothing reads settings from package state.
type Config struct {
	ECM     float64 `yaml:"ecm"`     // collision energy in GeV
	BeamA   int     `yaml:"beam_a"`  // PDG code of the beam moving along +z
	BeamB   int     `yaml:"beam_b"`  // PDG code of the beam moving along -z
	Process string  `yaml:"process"` // hard process name, see hardprocess.Names

	// PTHatMin is the lower transverse-momentum cut of 2 -> 2 hard processes.
	PTHatMin float64 `yaml:"pt_hat_min"`

	MaxTries          int     `yaml:"max_tries"`           // event attempts before Next gives up
	MaxCommitFailures int     `yaml:"max_commit_failures"` // consecutive failed commits before rejection
	CheckEachStep     bool    `yaml:"check_each_step"`     // run subsystem checks after every branching
	CheckEvent        bool    `yaml:"check_event"`         // run the full event check after generation
	Tolerance         float64 `yaml:"tolerance"`           // relative tolerance of conservation checks
	DecayResonances   bool    `yaml:"decay_resonances"`

	PTmaxMatch int     `yaml:"pt_max_match"` // PTmaxMatchAuto, PTmaxMatchAlways or PTmaxMatchNever
	PTmaxFudge float64 `yaml:"pt_max_fudge"` // factor on the hard scale when limiting

	FSR FSRConfig `yaml:"fsr"`
	ISR ISRConfig `yaml:"isr"`
	MI  MIConfig  `yaml:"mi"`
}

// DefaultConfig returns the settings used when nothing is overridden:
// pp collisions at 1 TeV with all three mechanisms enabled.
func DefaultConfig() Config {
	return Config{
		ECM:               1000,
		BeamA:             2212,
		BeamB:             2212,
		Process:           "gg2gg",
		PTHatMin:          20,
		MaxTries:          10,
		MaxCommitFailures: 100,
		CheckEvent:        true,
		Tolerance:         1e-6,
		DecayResonances:   true,
		PTmaxMatch:        PTmaxMatchAuto,
		PTmaxFudge:        1,
		FSR: FSRConfig{
			PTmin:        0.5,
			AlphaSValue:  0.137,
			AlphaSOrder:  1,
			RecoilToBeam: true,
			GluonSplit:   true,
		},
		ISR: ISRConfig{
			PTmin:       0.2,
			AlphaSValue: 0.137,
			AlphaSOrder: 1,
			PT0Ref:      2.2,
			ECMRef:      1800,
			ECMPow:      0.16,
			ZMax:        0.999,
		},
		MI: MIConfig{
			Enabled:     true,
			PTmin:       1.0,
			AlphaSValue: 0.127,
			PT0Ref:      2.2,
			ECMRef:      1800,
			ECMPow:      0.16,
			Strength:    12,
			CosThetaMax: 0.9,
		},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case !(c.ECM > 0) || math.IsInf(c.ECM, 0):
		return fmt.Errorf("ecm must be a positive finite energy, got %v", c.ECM)
	case !isHadronBeam(c.BeamA) || !isHadronBeam(c.BeamB):
		return fmt.Errorf("beams must be protons or antiprotons (2212, -2212), got %d and %d", c.BeamA, c.BeamB)
	case c.MaxTries < 1:
		return fmt.Errorf("max_tries must be >= 1, got %d", c.MaxTries)
	case c.MaxCommitFailures < 0:
		return fmt.Errorf("max_commit_failures must be >= 0, got %d", c.MaxCommitFailures)
	case c.Tolerance <= 0:
		return fmt.Errorf("tolerance must be positive, got %v", c.Tolerance)
	case c.PTmaxMatch < PTmaxMatchAuto || c.PTmaxMatch > PTmaxMatchNever:
		return fmt.Errorf("pt_max_match must be 0, 1 or 2, got %d", c.PTmaxMatch)
	case c.PTmaxFudge <= 0:
		return fmt.Errorf("pt_max_fudge must be positive, got %v", c.PTmaxFudge)
	case c.FSR.PTmin <= 0 || c.ISR.PTmin <= 0 || c.MI.PTmin <= 0:
		return fmt.Errorf("all pt_min cutoffs must be positive")
	case c.FSR.AlphaSValue <= 0 || c.ISR.AlphaSValue <= 0 || c.MI.AlphaSValue <= 0:
		return fmt.Errorf("all alpha_s values must be positive")
	case c.FSR.AlphaSOrder < 0 || c.FSR.AlphaSOrder > 1 || c.ISR.AlphaSOrder < 0 || c.ISR.AlphaSOrder > 1:
		return fmt.Errorf("alpha_s_order must be 0 or 1")
	case c.ISR.ZMax <= 0 || c.ISR.ZMax >= 1:
		return fmt.Errorf("isr.z_max must lie in (0,1), got %v", c.ISR.ZMax)
	case c.ISR.PT0Ref <= 0 || c.ISR.ECMRef <= 0 || c.MI.PT0Ref <= 0 || c.MI.ECMRef <= 0:
		return fmt.Errorf("pt0_ref and ecm_ref must be positive")
	case c.MI.Strength < 0:
		return fmt.Errorf("mi.strength must be >= 0, got %v", c.MI.Strength)
	case c.MI.CosThetaMax <= 0 || c.MI.CosThetaMax >= 1:
		return fmt.Errorf("mi.cos_theta_max must lie in (0,1), got %v", c.MI.CosThetaMax)
	}
	if c.PTHatMin <= 0 || c.PTHatMin >= c.ECM/2 {
		return fmt.Errorf("pt_hat_min must lie in (0, ecm/2), got %v", c.PTHatMin)
	}
	if c.ISR.PTmin >= c.ECM/2 || c.FSR.PTmin >= c.ECM/2 {
		return fmt.Errorf("pt_min cutoffs must lie below ecm/2 = %v", c.ECM/2)
	}
	return nil
}

func isHadronBeam(id int) bool {
	return id == 2212 || id == -2212
}
