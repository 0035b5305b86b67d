package overflow

import (
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/platform"
)

// collide tests subject against every obstacle except self.
func collide(subject geom.ClientRect, self platform.Element, obstacles []middleware.Obstacle) (bool, []Intersection) {
	intersections := []Intersection{}
	for _, o := range obstacles {
		if platform.SameElement(o.Node, self) {
			continue
		}
		if !geom.Intersects(subject, o.Rect) {
			continue
		}
		intersections = append(intersections, penetration(subject, o))
	}
	return len(intersections) > 0, intersections
}

// penetration computes how deep obstacle o reaches into subject e on each
// axis. The direction names the side of e the obstacle lies on; the depth is
// measured from that side, so an obstacle fully covering one edge of e
// reports the distance e must move to clear it.
func penetration(e geom.ClientRect, o middleware.Obstacle) Intersection {
	c := o.Rect
	obstacleRight := e.CenterX() < c.CenterX()
	obstacleBelow := e.CenterY() < c.CenterY()

	xDir, yDir := geom.Left, geom.Top
	if obstacleRight {
		xDir = geom.Right
	}
	if obstacleBelow {
		yDir = geom.Bottom
	}

	left := pick(choose(obstacleRight, e.Left > c.Left, e.Left < c.Left), e.Left, c.Left)
	right := pick(choose(obstacleRight, e.Right < c.Right, e.Right > c.Right), e.Right, c.Right)
	top := pick(choose(obstacleBelow, e.Top > c.Top, e.Top < c.Top), e.Top, c.Top)
	bottom := pick(choose(obstacleBelow, e.Bottom < c.Bottom, e.Bottom > c.Bottom), e.Bottom, c.Bottom)

	return Intersection{
		X:          right - left,
		Y:          bottom - top,
		XDirection: xDir,
		YDirection: yDir,
		Obstacle:   o.Node,
	}
}

func choose(cond, a, b bool) bool {
	if cond {
		return a
	}
	return b
}

// pick returns min(a, b) when useMin is set, max(a, b) otherwise.
func pick(useMin bool, a, b float64) float64 {
	if useMin {
		return min(a, b)
	}
	return max(a, b)
}
