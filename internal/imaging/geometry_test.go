package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSize(t *testing.T) {
	tests := []struct {
		name           string
		origW, origH   int
		reqW, reqH     int
		preserve       bool
		wantW, wantH   int
	}{
		{
			name:  "width only preserves aspect",
			origW: 200, origH: 100, reqW: 100, preserve: true,
			wantW: 100, wantH: 50,
		},
		{
			name:  "height only preserves aspect",
			origW: 200, origH: 100, reqH: 50, preserve: true,
			wantW: 100, wantH: 50,
		},
		{
			name:  "both given fits inside box",
			origW: 200, origH: 100, reqW: 100, reqH: 100, preserve: true,
			wantW: 100, wantH: 50,
		},
		{
			name:  "height more constraining",
			origW: 100, origH: 200, reqW: 100, reqH: 100, preserve: true,
			wantW: 50, wantH: 100,
		},
		{
			name:  "equal ratios keep requested pair",
			origW: 200, origH: 100, reqW: 100, reqH: 50, preserve: true,
			wantW: 100, wantH: 50,
		},
		{
			name:  "no aspect preservation stretches",
			origW: 200, origH: 100, reqW: 50, reqH: 75, preserve: false,
			wantW: 50, wantH: 75,
		},
		{
			name:  "no aspect width defaults to original",
			origW: 200, origH: 100, reqH: 75, preserve: false,
			wantW: 200, wantH: 75,
		},
		{
			name:  "no aspect height defaults to original",
			origW: 200, origH: 100, reqW: 50, preserve: false,
			wantW: 50, wantH: 100,
		},
		{
			name:  "fractional result truncates toward zero",
			origW: 200, origH: 100, reqW: 75, preserve: true,
			// 75 * 100 / 200 = 37.5 -> 37, not 38
			wantW: 75, wantH: 37,
		},
		{
			name:  "truncation in width derivation",
			origW: 100, origH: 300, reqH: 50, preserve: true,
			// 50 * 100 / 300 = 16.66 -> 16
			wantW: 16, wantH: 50,
		},
		{
			name:  "tiny result clamps to one",
			origW: 1000, origH: 2, reqW: 100, preserve: true,
			// 100 * 2 / 1000 = 0.2 -> 0 -> clamped to 1
			wantW: 100, wantH: 1,
		},
		{
			name:  "upscale preserves aspect",
			origW: 200, origH: 100, reqW: 400, preserve: true,
			wantW: 400, wantH: 200,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := ResolveSize(tc.origW, tc.origH, tc.reqW, tc.reqH, tc.preserve)
			assert.Equal(t, tc.wantW, w, "width")
			assert.Equal(t, tc.wantH, h, "height")
		})
	}
}

func TestResolveSizeFitsWithinBox(t *testing.T) {
	// When both dimensions are given with aspect preservation, the result
	// never exceeds either bound.
	cases := []struct{ origW, origH, reqW, reqH int }{
		{200, 100, 100, 100},
		{100, 200, 100, 100},
		{1920, 1080, 640, 480},
		{333, 777, 100, 100},
		{5000, 3, 64, 64},
	}

	for _, c := range cases {
		w, h := ResolveSize(c.origW, c.origH, c.reqW, c.reqH, true)
		assert.LessOrEqual(t, w, c.reqW)
		assert.LessOrEqual(t, h, c.reqH)
		assert.GreaterOrEqual(t, w, 1)
		assert.GreaterOrEqual(t, h, 1)
	}
}

func TestResolveSizeAlwaysPositive(t *testing.T) {
	for _, c := range []struct{ origW, origH, reqW, reqH int }{
		{1000, 1, 5, 0},
		{1, 1000, 0, 5},
		{10000, 10, 3, 3},
	} {
		w, h := ResolveSize(c.origW, c.origH, c.reqW, c.reqH, true)
		assert.Greater(t, w, 0)
		assert.Greater(t, h, 0)
	}
}
