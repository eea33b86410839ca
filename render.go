package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// worldGeoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func worldGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// colorScale returns a premultiplied ebiten.ColorScale for c faded by alpha.
func colorScale(c Color, alpha float64) ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := c.A * alpha
	cs.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	return cs
}

// traverse walks the node tree depth-first, updating transforms and drawing
// visible leaf nodes in ZIndex order. Nodes entirely outside the screen are
// skipped but their children are still visited.
func (s *Scene) traverse(dst *ebiten.Image, n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, draws *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.worldAlpha > 0 && n.Type != NodeTypeContainer && !s.culled(n) {
		if s.drawNode(dst, n) {
			*draws++
		}
	}

	if len(n.children) == 0 {
		return
	}
	if !n.childrenSorted || len(n.sortedChildren) != len(n.children) {
		rebuildSortedChildren(n)
	}
	for _, child := range n.sortedChildren {
		s.traverse(dst, child, n.worldTransform, n.worldAlpha, recompute, draws)
	}
}

// culled reports whether a sized node lies entirely off screen.
func (s *Scene) culled(n *Node) bool {
	if n.Type == NodeTypePath {
		return false
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return !worldAABB(n.worldTransform, w, h).Intersects(s.Viewport())
}

// drawNode draws a single node and reports whether anything was submitted.
func (s *Scene) drawNode(dst *ebiten.Image, n *Node) bool {
	switch n.Type {
	case NodeTypeRect:
		if n.Width <= 0 || n.Height <= 0 {
			return false
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(worldGeoM(n.worldTransform))
		op.ColorScale = colorScale(n.Color, n.worldAlpha)
		dst.DrawImage(WhitePixel, op)
		return true
	case NodeTypeImage:
		if n.Image == nil {
			return false
		}
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		if b := n.Image.Bounds(); n.Width > 0 && n.Height > 0 && b.Dx() > 0 && b.Dy() > 0 {
			op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
		}
		op.GeoM.Concat(worldGeoM(n.worldTransform))
		op.ColorScale = colorScale(n.Color, n.worldAlpha)
		dst.DrawImage(n.Image, op)
		return true
	case NodeTypeText:
		if n.TextBlock == nil {
			return false
		}
		return n.TextBlock.draw(dst, n.worldTransform, n.Color, n.worldAlpha)
	case NodeTypePath:
		return drawPolyline(dst, n)
	}
	return false
}

// drawPolyline strokes the node's polyline segment by segment in world space.
func drawPolyline(dst *ebiten.Image, n *Node) bool {
	if len(n.Polyline) < 2 || n.StrokeWidth <= 0 {
		return false
	}
	c := n.Color.WithAlpha(n.worldAlpha).RGBA8()
	width := float32(n.StrokeWidth)
	px, py := n.LocalToWorld(n.Polyline[0].X, n.Polyline[0].Y)
	for _, p := range n.Polyline[1:] {
		x, y := n.LocalToWorld(p.X, p.Y)
		vector.StrokeLine(dst, float32(px), float32(py), float32(x), float32(y), width, c, true)
		px, py = x, y
	}
	return true
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses a stable insertion sort: zero allocations and O(n) when already sorted.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}
