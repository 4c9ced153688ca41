// Package evergreen animates a particle holiday tree on [Ebitengine].
//
// Every entity of the scene carries two positions, a chaos position scattered
// in a sphere and a target position on a cone. A global target, [TreeFormed]
// or [TreeChaos], drives a progress value per population (or per entity)
// towards 1 or 0, and each frame the entity poses are rebuilt from those
// values and written into render batches.
//
// # Quick start
//
//	scene, err := evergreen.NewScene(evergreen.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	return evergreen.Run(scene, evergreen.RunConfig{Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly. Tests and headless tools call
// [Scene.Step] with a fixed dt instead of Update.
//
// # Populations
//
//   - [Foliage]: tens of thousands of point particles sharing one progress
//     value, eased with a smoothstep.
//   - [Ornaments]: gifts, baubles and lights with one progress value each, so
//     heavy gifts lag behind the fast lights.
//   - [Star]: the tree topper, with a pop scale and a spin that slows as the
//     tree forms.
//   - [Snow]: falling flakes that ignore the target.
//
// The proportional and linear integration policies live in [Integrator];
// the easing and pose functions are pure and exported for reuse.
//
// # ECS
//
// Target changes can be forwarded to a [Donburi] world through the adapter
// in evergreen/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package evergreen
