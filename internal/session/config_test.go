package session

import "testing"

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestConfig_ValidateAcceptsEnumeratedOptions(t *testing.T) {
	for _, d := range Durations {
		cfg := DefaultConfig()
		cfg.DurationSec = d
		if err := cfg.Validate(); err != nil {
			t.Errorf("duration %d rejected: %v", d, err)
		}
	}
	for _, c := range CursorStyles {
		cfg := DefaultConfig()
		cfg.CursorStyle = c
		if err := cfg.Validate(); err != nil {
			t.Errorf("cursor %q rejected: %v", c, err)
		}
	}
	for _, s := range Sensitivities {
		cfg := DefaultConfig()
		cfg.Sensitivity = s
		if err := cfg.Validate(); err != nil {
			t.Errorf("sensitivity %v rejected: %v", s, err)
		}
	}
	for _, n := range SoundNames {
		cfg := DefaultConfig()
		cfg.Sound = n
		if err := cfg.Validate(); err != nil {
			t.Errorf("sound %q rejected: %v", n, err)
		}
	}
	for _, m := range Modes {
		cfg := DefaultConfig()
		cfg.Mode = m
		if err := cfg.Validate(); err != nil {
			t.Errorf("mode %q rejected: %v", m, err)
		}
	}
}

func TestConfig_ValidateRejectsOffMenuValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"duration", func(c *Config) { c.DurationSec = 45 }},
		{"zero duration", func(c *Config) { c.DurationSec = 0 }},
		{"cursor", func(c *Config) { c.CursorStyle = "wand" }},
		{"sensitivity", func(c *Config) { c.Sensitivity = 2.0 }},
		{"sound", func(c *Config) { c.Sound = "airhorn" }},
		{"mode", func(c *Config) { c.Mode = "zen" }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: invalid config accepted", tc.name)
		}
	}
}
