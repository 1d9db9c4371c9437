package yuletide

// Landmark indices of the 21-point hand scheme produced by common hand
// landmark models. Coordinates are normalized with Y increasing downwards.
const (
	LandmarkWrist     = 0
	LandmarkThumbTip  = 4
	LandmarkIndexPIP  = 6
	LandmarkIndexTip  = 8
	LandmarkMiddlePIP = 10
	LandmarkMiddleTip = 12
	LandmarkRingPIP   = 14
	LandmarkRingTip   = 16
	LandmarkPinkyPIP  = 18
	LandmarkPinkyTip  = 20

	// MinKeypoints is the number of landmarks a frame needs to be classified.
	MinKeypoints = 21
)

// fingerJoints pairs each non-thumb fingertip with its proximal joint.
var fingerJoints = [4][2]int{
	{LandmarkIndexTip, LandmarkIndexPIP},
	{LandmarkMiddleTip, LandmarkMiddlePIP},
	{LandmarkRingTip, LandmarkRingPIP},
	{LandmarkPinkyTip, LandmarkPinkyPIP},
}

// CountExtendedFingers reports how many of the index, middle, ring and pinky
// fingers have their tip above the proximal joint on screen. It returns -1
// for frames with fewer than MinKeypoints points.
func CountExtendedFingers(points []Vec3) int {
	if len(points) < MinKeypoints {
		return -1
	}
	n := 0
	for _, f := range fingerJoints {
		if points[f[0]].Y < points[f[1]].Y {
			n++
		}
	}
	return n
}

// ClassifyGesture maps one frame of hand keypoints to a gesture. Four extended
// fingers is an open palm, one or none is a closed fist, anything else is
// GestureNone. Missing or short frames are GestureNone.
//
// The thumb is not checked and a hand held upside down reads inverted; this
// is a deliberate heuristic, not a full pose model.
func ClassifyGesture(points []Vec3) Gesture {
	switch n := CountExtendedFingers(points); {
	case n < 0:
		return GestureNone
	case n >= 4:
		return GestureOpenPalm
	case n <= 1:
		return GestureClosedFist
	default:
		return GestureNone
	}
}
