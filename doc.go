// Package folio is a retained-mode presentation engine for scroll-driven
// portfolio pages on [Ebitengine].
//
// It provides the scene graph, transform hierarchy, tweens, a smooth scroll
// proxy, a viewport observer, debouncing and a frame ticker. The page logic
// lives in sibling packages: scatter lays out decoration, motionpath drives
// a point along a curve from scroll progress, reveal staggers text entrances
// and portfolio ties them to a Scene.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := folio.NewScene()
//	// ... add nodes ...
//	folio.Run(scene, folio.RunConfig{
//		Title: "Portfolio", Width: 1280, Height: 800,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update], [Scene.Draw] and [Scene.Resize] directly.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Nodes carry a separate animation offset ([Node.OffsetX], [Node.OffsetY])
// so entrance animations never disturb layout positions.
//
//	block := folio.NewContainer("about")
//	scene.Root().AddChild(block)
//
//	title := folio.NewText("title", "TURNING IDEAS INTO REALITY", font)
//	block.AddChild(title)
//
// # Frame loop
//
// Each [Scene.Update] reads input into the [SmoothScroll], eases it, runs
// [Ticker] callbacks, node OnUpdate callbacks, refreshes transforms and
// finally checks the [ViewportObserver]. Everything is single-threaded;
// nothing in this package starts goroutines.
//
// # Scripted runs
//
// [LoadScript] reads a YAML list of scroll, resize, wait and screenshot
// steps. Attached with [Scene.SetScript], it plays one step per frame, which
// is enough to capture the same frames on every run.
//
// [Ebitengine]: https://ebitengine.org
package folio
