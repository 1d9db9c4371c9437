package yuletide

import (
	"context"
	"sync"
)

// SyntheticHand builds a 21-point keypoint frame with the first extended
// non-thumb fingers (index first) pointing up and the rest curled. Values
// outside [0, 4] are clamped. Useful for driving the tracker without a camera.
func SyntheticHand(extended int) []Vec3 {
	extended = max(0, min(extended, len(fingerJoints)))
	points := make([]Vec3, MinKeypoints)
	points[LandmarkWrist] = Vec3{X: 0.5, Y: 0.9}
	for i := 1; i < MinKeypoints; i++ {
		points[i] = Vec3{X: 0.3 + 0.02*float64(i), Y: 0.7}
	}
	for i, f := range fingerJoints {
		points[f[1]].Y = 0.55
		if i < extended {
			points[f[0]].Y = 0.3
		} else {
			points[f[0]].Y = 0.65
		}
	}
	return points
}

// handFor returns a synthetic frame that classifies as g. GestureNone maps to
// an empty frame (no hand).
func handFor(g Gesture) []Vec3 {
	switch g {
	case GestureOpenPalm:
		return SyntheticHand(4)
	case GestureClosedFist:
		return SyntheticHand(0)
	default:
		return nil
	}
}

// ManualSource is a KeypointSource whose frame is set by the caller, for
// example from keyboard shortcuts. Safe for concurrent use.
type ManualSource struct {
	mu     sync.Mutex
	points []Vec3
}

// SetKeypoints replaces the frame returned by Keypoints.
func (m *ManualSource) SetKeypoints(points []Vec3) {
	m.mu.Lock()
	m.points = append([]Vec3(nil), points...)
	m.mu.Unlock()
}

// SetGesture sets a synthetic frame that classifies as g.
func (m *ManualSource) SetGesture(g Gesture) {
	m.SetKeypoints(handFor(g))
}

// Keypoints returns a copy of the current frame.
func (m *ManualSource) Keypoints(context.Context) ([]Vec3, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.points) == 0 {
		return nil, nil
	}
	return append([]Vec3(nil), m.points...), nil
}

// SourceDetector is a Detector that hands out a fixed source, or Err.
type SourceDetector struct {
	Source KeypointSource
	Err    error
}

// Load implements Detector.
func (d SourceDetector) Load(context.Context) (KeypointSource, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Source, nil
}

// NopDevice is a CaptureDevice with no underlying hardware.
type NopDevice struct{}

// Open implements CaptureDevice.
func (NopDevice) Open() error { return nil }

// Close implements CaptureDevice.
func (NopDevice) Close() error { return nil }
