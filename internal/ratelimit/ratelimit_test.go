package ratelimit

import "testing"

func TestKeyedLimiterAllow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if kl.Allow("client") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedLimiterIndependentKeys(t *testing.T) {
	kl := New(1, 1)

	kl.Allow("10.0.0.1")
	if kl.Allow("10.0.0.1") {
		t.Error("10.0.0.1 should be exhausted")
	}

	if !kl.Allow("10.0.0.2") {
		t.Error("10.0.0.2 should be independent and allowed")
	}
}
