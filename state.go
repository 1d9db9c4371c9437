package yuletide

import "sync/atomic"

// AppState is the state shared between the render loop and the gesture
// loop. The gesture and camera flag are written by the tracker goroutine and
// read by the render loop, so both are atomic; staleness of one frame is fine.
// The hover point is owned by the render loop alone.
type AppState struct {
	gesture atomic.Int32
	camera  atomic.Bool
	hover   *Vec3
}

// NewAppState returns a state with no gesture, the camera off and no hover.
func NewAppState() *AppState {
	return &AppState{}
}

// Gesture returns the latest gesture signal.
func (s *AppState) Gesture() Gesture {
	return Gesture(s.gesture.Load())
}

// SetGesture publishes a gesture signal.
func (s *AppState) SetGesture(g Gesture) {
	s.gesture.Store(int32(g))
}

// CameraEnabled reports whether gesture input is switched on.
func (s *AppState) CameraEnabled() bool {
	return s.camera.Load()
}

func (s *AppState) setCameraEnabled(on bool) {
	s.camera.Store(on)
}

// Hover returns the current hover point, or nil.
func (s *AppState) Hover() *Vec3 {
	return s.hover
}

func (s *AppState) setHover(p Vec3) {
	s.hover = &p
}

func (s *AppState) clearHover() {
	s.hover = nil
}
