// Package avg is a declarative scene-graph layer for [Ebitengine].
//
// Declared element trees are reconciled against a retained display tree of
// [Node] values. Host components own exactly one node each; composite views
// render other elements. The companion package state binds views to named,
// observable models and routes events through declarative handler tables.
//
// # Quick start
//
//	scene := avg.NewScene()
//	rt := avg.NewRuntime(avg.RuntimeConfig{Textures: atlas})
//	surface := avg.NewSurface(rt, scene.Root())
//	surface.Mount(
//		avg.E(avg.Layer, avg.Props{"position": []float64{40, 40}},
//			avg.E(avg.Sprite, avg.Props{"src": "bg.png"}),
//			avg.E(avg.Button, avg.Props{
//				"frames":  []string{"btn_idle", "btn_hover", "btn_down"},
//				"onClick": func() { fmt.Println("clicked") },
//			}),
//		),
//	)
//	avg.Run(scene, avg.RunConfig{Title: "Novel", Width: 1280, Height: 720})
//
// # Properties
//
// Host components apply a fixed list of properties through a
// [PropertyRegistry]: name, src, alpha, visible, cacheAsBitmap, buttonMode,
// x, y, position, width, height, size, pivot, anchor, rotation, scale, skew
// and tint. Geometry properties also accept numeric arrays of length 2, 4 or
// 9, read as a point, a rectangle or a 3x3 matrix. Updates compare values
// structurally and only touch what changed.
//
// Props named on<Event>, such as onClick or onPointerOver, install pointer
// handlers on the node. onClick also turns on ButtonMode unless buttonMode is
// false.
//
// # Lifecycle
//
// Every host lifecycle call is announced on the runtime's [Bus]: createNode
// after the node exists, and mountNode, updateNode and unmountNode before the
// kind's hook runs. Container mutations post createChild, moveChild,
// removeChild and mountChild.
//
// Custom host kinds are declared with [NewComponentType]; composite kinds with
// [NewViewType] and [NewFuncType].
//
// # Engine
//
// The display tree, transforms, tweens, frame animations, pointer routing and
// rendering live in the same package. Every node is a [Node]; children inherit
// their parent's transform and alpha. Pointer events bubble from the hit node
// to the stage until [PointerEvent.StopPropagation] is called.
//
// An [InputScript] replays clicks, waits and screenshots one step per frame,
// which is enough to walk a story without a player:
//
//	script, err := avg.LoadInputScript(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene.SetInputScript(script)
//
// Screenshots are written as PNG files under [Scene.ScreenshotDir].
//
// [Ebitengine]: https://ebitengine.org
package avg
