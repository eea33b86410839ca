package folio

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha, TweenOffset, TweenColor) and call Update(dt) each frame, or
// hand it to a Ticker with Scene.Play. The group writes values to the node
// and marks it dirty. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnComplete, when set, runs once after the last tween finishes.
	OnComplete func()
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
}

func newGroup(node *Node, duration float32, fn ease.TweenFunc, pairs ...*float64) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(pairs) / 2, target: node}
	for i := 0; i < g.count; i++ {
		field, to := pairs[2*i], pairs[2*i+1]
		g.tweens[i] = gween.New(float32(*field), float32(*to), duration, fn)
		g.fields[i] = field
	}
	return g
}

// TweenPosition animates node.X and node.Y to the given coordinates.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.X, &toX, &node.Y, &toY)
}

// TweenOffset animates node.OffsetX and node.OffsetY.
func TweenOffset(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.OffsetX, &toX, &node.OffsetY, &toY)
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.ScaleX, &toSX, &node.ScaleY, &toSY)
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn,
		&node.Color.R, &to.R, &node.Color.G, &to.G,
		&node.Color.B, &to.B, &node.Color.A, &to.A)
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.Alpha, &to)
}

// TweenRotation animates node.Rotation (radians).
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.Rotation, &to)
}
