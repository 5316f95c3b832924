package layout

import "testing"

func TestParseEdgeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    EdgeMode
		wantErr bool
	}{
		{"straight", EdgeStraight, false},
		{"Rectangular", EdgeRectangular, false},
		{" bent ", EdgeBent, false},
		{"curvy", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEdgeMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseEdgeMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseNodeIdentity(t *testing.T) {
	for _, id := range []NodeIdentity{IdentityEndpoint, IdentityChainHead} {
		got, err := ParseNodeIdentity(id.String())
		if err != nil || got != id {
			t.Errorf("ParseNodeIdentity(%q) = %v, %v", id, got, err)
		}
	}
	if _, err := ParseNodeIdentity("tail"); err == nil {
		t.Error("ParseNodeIdentity(tail) should fail")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero column", func(c *Config) { c.ColumnWidth = 0 }, true},
		{"negative step", func(c *Config) { c.LineStep = -1 }, true},
		{"negative node", func(c *Config) { c.NodeHeight = -3 }, true},
		{"colour overflow", func(c *Config) { c.NodeColor = 0x1000000 }, true},
		{"edge mode", func(c *Config) { c.EdgeMode = 9 }, true},
		{"identity", func(c *Config) { c.Identity = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBendOffset(t *testing.T) {
	cfg := DefaultConfig()
	if _, bent := cfg.bendOffset(); bent {
		t.Error("straight mode should not bend")
	}
	cfg.EdgeMode = EdgeRectangular
	if off, _ := cfg.bendOffset(); off != -cfg.LineStep {
		t.Errorf("rectangular offset = %g, want %g", off, -cfg.LineStep)
	}
}
