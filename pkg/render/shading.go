package render

import "github.com/taigrr/softcube/pkg/math3d"

// LightIntensity returns normal · normalize(light). With clamp set the
// result is limited to [0, 1]; faces turned away from the light go black
// instead of producing negative factors. A zero light vector gives 0.
func LightIntensity(normal, light math3d.Vec3, clamp bool) float64 {
	l, ok := light.Normalize()
	if !ok {
		return 0
	}
	f := normal.Dot(l)
	if clamp {
		f = max(0, min(1, f))
	}
	return f
}
