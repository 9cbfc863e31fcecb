package profile

import "testing"

func TestGetKnownProfiles(t *testing.T) {
	for _, name := range Names() {
		p, ok := Get(name)
		if !ok {
			t.Fatalf("preset %q not found", name)
		}
		if p.Name != name {
			t.Errorf("preset %q has name %q", name, p.Name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
}

func TestGetUnknownProfile(t *testing.T) {
	if _, ok := Get("nope"); ok {
		t.Error("unknown profile name should not resolve")
	}
}

func TestDefaultProfile(t *testing.T) {
	p, ok := Get(Default)
	if !ok {
		t.Fatal("default profile missing")
	}
	if p.Quality != 65 || p.MaxDimension != 1920 {
		t.Errorf("default parameters: quality=%d max=%d", p.Quality, p.MaxDimension)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		p       Profile
		wantErr bool
	}{
		{"valid", Profile{Quality: 65, MaxDimension: 1920}, false},
		{"quality floor", Profile{Quality: 1, MaxDimension: 1}, false},
		{"quality ceiling", Profile{Quality: 100, MaxDimension: 1}, false},
		{"quality zero", Profile{Quality: 0, MaxDimension: 1920}, true},
		{"quality high", Profile{Quality: 150, MaxDimension: 1920}, true},
		{"quality negative", Profile{Quality: -5, MaxDimension: 1920}, true},
		{"dimension zero", Profile{Quality: 65, MaxDimension: 0}, true},
		{"dimension negative", Profile{Quality: 65, MaxDimension: -10}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}
