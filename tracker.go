package yuletide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrCameraUnavailable is returned when the capture device cannot be
	// opened, for example because permission was denied.
	ErrCameraUnavailable = errors.New("yuletide: camera unavailable")
	// ErrModelUnavailable is returned when the hand landmark backend failed
	// to load. Gesture input stays disabled for the tracker's lifetime.
	ErrModelUnavailable = errors.New("yuletide: hand model unavailable")
	// ErrTrackerRunning is returned when replacing a tracker whose
	// classification loop is still active.
	ErrTrackerRunning = errors.New("yuletide: tracker is running")
)

// KeypointSource supplies hand keypoints for the current camera frame. A nil
// or empty slice means no hand was detected.
type KeypointSource interface {
	Keypoints(ctx context.Context) ([]Vec3, error)
}

// CaptureDevice is the video capture resource behind a KeypointSource.
type CaptureDevice interface {
	Open() error
	Close() error
}

// Detector loads the hand landmark backend.
type Detector interface {
	Load(ctx context.Context) (KeypointSource, error)
}

// TrackerStatus is the indicator surfaced to the surrounding UI.
type TrackerStatus int32

const (
	TrackerOff         TrackerStatus = iota // camera switched off
	TrackerLoading                          // model loading or camera opening
	TrackerRunning                          // classification loop active
	TrackerUnavailable                      // camera or model failed; gestures disabled
)

func (s TrackerStatus) String() string {
	switch s {
	case TrackerOff:
		return "off"
	case TrackerLoading:
		return "loading"
	case TrackerRunning:
		return "running"
	case TrackerUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// HandTracker runs the gesture classification loop on its own goroutine. Each
// tick it pulls keypoints from the source, classifies them and publishes the
// gesture into an AppState. Failures degrade to GestureNone and never reach
// the render loop.
//
// Enable and Disable never block: model loading and device acquisition happen
// on the tracker goroutine, and progress is reported through Status and Err.
type HandTracker struct {
	detector Detector
	device   CaptureDevice
	state    *AppState
	interval time.Duration
	log      *slog.Logger

	// modelMu serializes detector loads across sessions; openMu serializes
	// device acquisition so a stale session never closes a newer one's device.
	modelMu sync.Mutex
	openMu  sync.Mutex

	mu       sync.Mutex
	source   KeypointSource
	modelErr error
	lastErr  error
	active   *trackerSession
	status   atomic.Int32
	wg       sync.WaitGroup
}

// trackerSession is one Enable..Disable span of the classification loop.
type trackerSession struct {
	ctx    context.Context
	cancel context.CancelFunc
	opened bool // device acquired and owned by this session
}

// NewHandTracker creates a stopped tracker publishing into state at the
// configured frame rate.
func NewHandTracker(detector Detector, device CaptureDevice, state *AppState, cfg TrackerConfig) *HandTracker {
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultConfig().Tracker.FPS
	}
	return &HandTracker{
		detector: detector,
		device:   device,
		state:    state,
		interval: time.Duration(float64(time.Second) / fps),
		log:      logger("tracker"),
	}
}

// Status returns the current indicator.
func (t *HandTracker) Status() TrackerStatus {
	return TrackerStatus(t.status.Load())
}

// Running reports whether a session is active, loading or classifying.
func (t *HandTracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active != nil
}

// Err returns the failure behind the last TrackerUnavailable status, or nil.
func (t *HandTracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Wait blocks until every tracker goroutine has exited, including frames
// still in flight after Disable. Never call it from the render loop.
func (t *HandTracker) Wait() {
	t.wg.Wait()
}

// LoadModel loads the landmark backend once, blocking until it is ready. A
// failure is remembered and returned, wrapped in ErrModelUnavailable, on every
// later call.
func (t *HandTracker) LoadModel(ctx context.Context) error {
	_, err := t.loadModel(ctx)
	return err
}

func (t *HandTracker) loadModel(ctx context.Context) (KeypointSource, error) {
	t.modelMu.Lock()
	defer t.modelMu.Unlock()

	t.mu.Lock()
	src, cached := t.source, t.modelErr
	t.mu.Unlock()
	if src != nil || cached != nil {
		return src, cached
	}

	src, err := t.detector.Load(ctx)
	if err == nil && src == nil {
		err = errors.New("detector returned no source")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		if ctx.Err() != nil {
			// Abandoned load; the next session tries again.
			return nil, ctx.Err()
		}
		t.modelErr = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		t.log.Warn("hand model failed to load; gestures disabled", "err", err)
		return nil, t.modelErr
	}
	t.source = src
	return src, nil
}

// Enable switches gesture input on and returns immediately. The model is
// loaded if needed and the capture device opened on the tracker goroutine,
// with Status moving from TrackerLoading to TrackerRunning, or to
// TrackerUnavailable with the cause in Err. Enabling an active tracker is a
// no-op. A model failure from an earlier session is returned right away.
//
// Cancelling ctx ends the session as if Disable had been called.
func (t *HandTracker) Enable(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return nil
	}
	if t.modelErr != nil {
		t.state.SetGesture(GestureNone)
		t.status.Store(int32(TrackerUnavailable))
		return t.modelErr
	}

	sctx, cancel := context.WithCancel(ctx)
	sess := &trackerSession{ctx: sctx, cancel: cancel}
	t.active = sess
	t.lastErr = nil
	t.status.Store(int32(TrackerLoading))
	t.state.setCameraEnabled(true)
	t.wg.Add(1)
	go t.run(sess)
	return nil
}

// Disable stops scheduling classification frames, resets the gesture to
// GestureNone and releases the capture device, without waiting for a frame
// in flight; its result is dropped. After Disable returns the tracker
// publishes no further gestures.
func (t *HandTracker) Disable() error {
	t.mu.Lock()
	sess := t.active
	if sess == nil {
		t.mu.Unlock()
		return nil
	}
	t.active = nil
	sess.cancel()
	opened := sess.opened
	sess.opened = false
	t.state.SetGesture(GestureNone)
	t.state.setCameraEnabled(false)
	t.status.Store(int32(TrackerOff))
	t.mu.Unlock()

	t.log.Info("gesture tracking stopped")
	if opened {
		return t.closeDevice()
	}
	return nil
}

func (t *HandTracker) closeDevice() error {
	if err := t.device.Close(); err != nil {
		return fmt.Errorf("close capture device: %w", err)
	}
	return nil
}

func (t *HandTracker) run(sess *trackerSession) {
	defer t.wg.Done()

	src, err := t.loadModel(sess.ctx)
	if err != nil {
		t.fail(sess, err)
		return
	}
	if !t.acquireDevice(sess) {
		return
	}
	t.log.Info("gesture tracking started", "interval", t.interval)
	defer t.finish(sess)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-sess.ctx.Done():
			return
		case <-ticker.C:
		}
		if sess.ctx.Err() != nil {
			return
		}
		t.classifyFrame(sess, src)
	}
}

// acquireDevice opens the capture device for sess and reports whether the
// session owns it and is now running.
func (t *HandTracker) acquireDevice(sess *trackerSession) bool {
	t.openMu.Lock()
	defer t.openMu.Unlock()
	if sess.ctx.Err() != nil {
		t.fail(sess, sess.ctx.Err())
		return false
	}
	if err := t.device.Open(); err != nil {
		t.log.Warn("camera unavailable", "err", err)
		t.fail(sess, fmt.Errorf("%w: %v", ErrCameraUnavailable, err))
		return false
	}

	t.mu.Lock()
	if t.active != sess {
		// Disabled while the device was opening.
		t.mu.Unlock()
		_ = t.closeDevice()
		return false
	}
	sess.opened = true
	t.status.Store(int32(TrackerRunning))
	t.mu.Unlock()
	return true
}

// fail ends a session that never reached TrackerRunning.
func (t *HandTracker) fail(sess *trackerSession, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != sess {
		return
	}
	t.active = nil
	sess.cancel()
	t.state.SetGesture(GestureNone)
	t.state.setCameraEnabled(false)
	if sess.ctx.Err() != nil {
		t.status.Store(int32(TrackerOff))
		return
	}
	t.lastErr = err
	t.status.Store(int32(TrackerUnavailable))
}

// finish cleans up a running session whose context was cancelled by the
// caller of Enable rather than by Disable.
func (t *HandTracker) finish(sess *trackerSession) {
	t.mu.Lock()
	if t.active != sess {
		t.mu.Unlock()
		return
	}
	t.active = nil
	opened := sess.opened
	sess.opened = false
	t.state.SetGesture(GestureNone)
	t.state.setCameraEnabled(false)
	t.status.Store(int32(TrackerOff))
	t.mu.Unlock()

	t.log.Info("gesture tracking stopped", "reason", context.Cause(sess.ctx))
	if opened {
		if err := t.closeDevice(); err != nil {
			t.log.Warn("release camera", "err", err)
		}
	}
}

// classifyFrame runs one frame to completion. Results that land after the
// session ended are dropped.
func (t *HandTracker) classifyFrame(sess *trackerSession, src KeypointSource) {
	points, err := src.Keypoints(sess.ctx)
	g := GestureNone
	if err != nil {
		t.log.Debug("keypoint source failed", "err", err)
	} else {
		if n := len(points); n > 0 && n < MinKeypoints {
			t.log.Debug("malformed keypoint frame", "points", n)
		}
		g = ClassifyGesture(points)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != sess || sess.ctx.Err() != nil {
		return
	}
	t.state.SetGesture(g)
}
