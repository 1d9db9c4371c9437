// Package yuletide is the animation core of an interactive particle tree for
// [Ebitengine] and other renderers.
//
// A [Scene] owns two particle groups. The primary group is a cone-shaped tree
// that blooms into a torus nebula; the secondary group is a spiral garland of
// tinsel and lights that opens into a flat ring. Every particle blends between
// its two precomputed positions by a single eased progress value.
//
// # Quick start
//
//	scene, err := yuletide.NewScene(yuletide.DefaultConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// each frame:
//	scene.Update(dt)
//	scene.Draw(renderer)
//
// A [Renderer] receives each group's transforms and particle colors; see
// examples/tree for an ebiten renderer with a perspective camera.
//
// # Gestures
//
// Gestures are the only trigger for phase changes. A [HandTracker] polls a
// [KeypointSource] on its own goroutine, classifies each frame with
// [ClassifyGesture] and publishes the result into the scene's [AppState]. An
// open palm blooms the resting tree; a closed fist collapses the expanded
// nebula. Transitions are never interrupted.
//
//	tracker := yuletide.NewHandTracker(detector, device, scene.State(), cfg.Tracker)
//	scene.SetTracker(tracker)
//	err := scene.SetCameraEnabled(ctx, true)
//
// Without a camera, [ManualSource] and [ScriptedSource] feed synthetic hands.
//
// # Configuration
//
// [Config] is loaded from YAML with [LoadConfig] and can be hot-reloaded with
// [WatchConfig] and [Scene.ApplyConfig]. Transition curves are named tweens
// (via [gween]). Phase changes can be forwarded to a [Donburi] world with the
// adapter in yuletide/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package yuletide
