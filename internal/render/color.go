package render

import (
	"fmt"
	"math/rand/v2"
)

// Bounds for generated badge colors. Hues skip the yellow-green band.
const (
	minLightness  = 40
	maxLightness  = 60
	minSaturation = 70
	maxSaturation = 100
	warmHueMax    = 30
	coolHueMin    = 200
	coolHueMax    = 360
)

// RandomDarkColor returns a random "hsl(h, s%, l%)" color dark enough for white text.
func RandomDarkColor() string {
	return darkColor(rand.IntN)
}

// NewColorGenerator returns a RandomDarkColor variant drawing from r.
func NewColorGenerator(r *rand.Rand) func() string {
	return func() string { return darkColor(r.IntN) }
}

// darkColor builds a color from intn, which returns a value in [0, n).
func darkColor(intn func(int) int) string {
	lightness := minLightness + intn(maxLightness-minLightness+1)
	hue := intn(warmHueMax + 1)
	if intn(2) == 1 {
		hue = coolHueMin + intn(coolHueMax-coolHueMin+1)
	}
	saturation := minSaturation + intn(maxSaturation-minSaturation+1)
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness)
}
