package yuletide

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single pose held for a number of camera frames.
type scriptStep struct {
	Hand    string `yaml:"hand,omitempty"`
	Fingers *int   `yaml:"fingers,omitempty"`
	Frames  int    `yaml:"frames,omitempty"`
}

// gestureScript is the top-level YAML structure of a gesture script.
type gestureScript struct {
	Loop  bool         `yaml:"loop"`
	Steps []scriptStep `yaml:"steps"`
}

// ScriptedSource is a KeypointSource that replays a sequence of synthetic
// poses, one keypoint frame per call. It lets demos and tests drive the
// gesture loop without a camera. Safe for concurrent use.
//
// Script format:
//
//	loop: false
//	steps:
//	  - hand: open    # open | fist | none
//	    frames: 30
//	  - fingers: 2    # 0-4 extended fingers
//	    frames: 5
type ScriptedSource struct {
	mu     sync.Mutex
	frames [][]Vec3
	counts []int
	loop   bool
	cursor int
	held   int
	done   bool
}

// LoadGestureScript parses a YAML gesture script.
func LoadGestureScript(data []byte) (*ScriptedSource, error) {
	var script gestureScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse gesture script: no steps")
	}
	s := &ScriptedSource{loop: script.Loop}
	for i, st := range script.Steps {
		points, err := st.keypoints()
		if err != nil {
			return nil, fmt.Errorf("parse gesture script: step %d: %w", i, err)
		}
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		s.frames = append(s.frames, points)
		s.counts = append(s.counts, frames)
	}
	return s, nil
}

func (st scriptStep) keypoints() ([]Vec3, error) {
	if st.Fingers != nil {
		if st.Hand != "" {
			return nil, errors.New("hand and fingers are mutually exclusive")
		}
		if *st.Fingers < 0 || *st.Fingers > 4 {
			return nil, fmt.Errorf("fingers must be in [0, 4], got %d", *st.Fingers)
		}
		return SyntheticHand(*st.Fingers), nil
	}
	switch st.Hand {
	case "open":
		return handFor(GestureOpenPalm), nil
	case "fist":
		return handFor(GestureClosedFist), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown hand %q", st.Hand)
	}
}

// Keypoints returns the current step's frame and advances the script. Once a
// non-looping script is exhausted it reports no hand.
func (s *ScriptedSource) Keypoints(context.Context) ([]Vec3, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil, nil
	}
	points := s.frames[s.cursor]
	s.held++
	if s.held >= s.counts[s.cursor] {
		s.held = 0
		s.cursor++
		if s.cursor >= len(s.frames) {
			if s.loop {
				s.cursor = 0
			} else {
				s.done = true
			}
		}
	}
	if len(points) == 0 {
		return nil, nil
	}
	return append([]Vec3(nil), points...), nil
}

// Done reports whether a non-looping script has played every step.
func (s *ScriptedSource) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Reset rewinds the script to its first step.
func (s *ScriptedSource) Reset() {
	s.mu.Lock()
	s.cursor, s.held, s.done = 0, 0, false
	s.mu.Unlock()
}
