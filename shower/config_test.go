package shower

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidate_RejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero ecm", func(c *Config) { c.ECM = 0 }, "ecm"},
		{"electron beam", func(c *Config) { c.BeamB = 11 }, "beams must be protons"},
		{"no tries", func(c *Config) { c.MaxTries = 0 }, "max_tries"},
		{"negative failures", func(c *Config) { c.MaxCommitFailures = -1 }, "max_commit_failures"},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }, "tolerance"},
		{"unknown match mode", func(c *Config) { c.PTmaxMatch = 3 }, "pt_max_match"},
		{"zero fudge", func(c *Config) { c.PTmaxFudge = 0 }, "pt_max_fudge"},
		{"zero fsr cutoff", func(c *Config) { c.FSR.PTmin = 0 }, "pt_min"},
		{"negative alpha", func(c *Config) { c.MI.AlphaSValue = -0.1 }, "alpha_s"},
		{"second order running", func(c *Config) { c.ISR.AlphaSOrder = 2 }, "alpha_s_order"},
		{"z max of one", func(c *Config) { c.ISR.ZMax = 1 }, "z_max"},
		{"zero pt0", func(c *Config) { c.MI.PT0Ref = 0 }, "pt0_ref"},
		{"negative strength", func(c *Config) { c.MI.Strength = -1 }, "mi.strength"},
		{"cos theta of one", func(c *Config) { c.MI.CosThetaMax = 1 }, "cos_theta_max"},
		{"pt hat above half ecm", func(c *Config) { c.PTHatMin = 600 }, "pt_hat_min"},
		{"cutoff above half ecm", func(c *Config) { c.ISR.PTmin = 501 }, "below ecm/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidate_AntiprotonBeamAccepted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BeamB = -2212

	assert.NoError(t, cfg.Validate())
}
