package astro

import (
	"testing"
)

func TestGenerateStars_Count(t *testing.T) {
	cfg := DefaultShellConfig()
	stars := GenerateStars(cfg)

	if len(stars) != cfg.Count {
		t.Errorf("GenerateStars() returned %d stars, want %d", len(stars), cfg.Count)
	}

	cfg.Count = 0
	if got := GenerateStars(cfg); got != nil {
		t.Errorf("expected nil for zero count, got %d stars", len(got))
	}
}

func TestGenerateStars_OnShell(t *testing.T) {
	cfg := DefaultShellConfig()

	for i, s := range GenerateStars(cfg) {
		r := s.Pos.Norm()
		if r < cfg.MinRadius-1e-9 || r > cfg.MaxRadius+1e-9 {
			t.Errorf("star %d at radius %v, want %v-%v", i, r, cfg.MinRadius, cfg.MaxRadius)
		}
		if s.Brightness < cfg.MinBright || s.Brightness > 1 {
			t.Errorf("star %d brightness %v out of range", i, s.Brightness)
		}
	}
}

func TestGenerateStars_Deterministic(t *testing.T) {
	cfg := DefaultShellConfig()
	a := GenerateStars(cfg)
	b := GenerateStars(cfg)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs between calls with the same seed", i)
		}
	}

	cfg.Seed++
	c := GenerateStars(cfg)
	if c[0] == a[0] {
		t.Error("different seeds should produce different fields")
	}
}

func TestGenerateStars_BothHemispheres(t *testing.T) {
	var front, back int
	for _, s := range GenerateStars(DefaultShellConfig()) {
		if s.Pos.Z > 0 {
			front++
		} else {
			back++
		}
	}
	if front == 0 || back == 0 {
		t.Errorf("expected stars on both sides, got front=%d back=%d", front, back)
	}
}
