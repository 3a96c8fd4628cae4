// Package cubie provides a headless 3x3 cube made of 26 sub-cubes. It turns
// layers as a pivot group with quaternions and reads the stickers back as a
// net, so it can stand in for a renderer behind cubestudio.Animator.
//
// Layers turn by the right-hand rule about cubestudio.AxisAngle, so a turn
// goes the opposite way to the same move in standard notation: R carries
// the U stickers onto F, and U carries the F stickers onto R.
package cubie

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/westphae/quaternion"

	"github.com/SeamusWaldron/cubestudio"
)

// Sticker is one colored facelet glued to a cubie.
type Sticker struct {
	Normal quaternion.Vec3
	Color  cubestudio.Color
}

// Cubie is one sub-cube. Position components are -1, 0 or 1 at rest.
type Cubie struct {
	Position quaternion.Vec3
	Stickers []Sticker
}

// Frame describes one step of an animated turn.
type Frame struct {
	Move     cubestudio.Move
	Progress float64 // eased, 0..1
	Angle    float64 // radians turned so far
}

// Model is a cube of cubies. It is safe for concurrent use.
type Model struct {
	mu     sync.Mutex
	cubies []Cubie

	// pivot is the rotation applied to the layer in flight.
	pivot   quaternion.Quaternion
	layer   []int
	turning bool
	gen     uint64 // bumped by Load

	turnDuration time.Duration
	frameRate    int
	onFrame      func(Frame)
}

// Option configures a Model.
type Option func(*Model)

// WithTurnDuration animates each quarter turn over d. Zero (the default)
// applies moves at once.
func WithTurnDuration(d time.Duration) Option {
	return func(m *Model) {
		m.turnDuration = d
	}
}

// WithFrameRate sets the frames per second used for timed turns.
func WithFrameRate(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.frameRate = fps
		}
	}
}

// WithFrameCallback is called for every frame of a timed turn, outside the
// model lock.
func WithFrameCallback(fn func(Frame)) Option {
	return func(m *Model) {
		m.onFrame = fn
	}
}

// New returns a model showing the solved cube.
func New(opts ...Option) *Model {
	m := &Model{
		frameRate: 60,
		pivot:     identity(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Load(cubestudio.NewNet())
	return m
}

// Load rebuilds the cubies from a net. Any turn in flight is dropped.
func (m *Model) Load(n cubestudio.Net) {
	byPos := map[[3]int]int{}
	var cubies []Cubie
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				byPos[[3]int{x, y, z}] = len(cubies)
				cubies = append(cubies, Cubie{Position: vec(x, y, z)})
			}
		}
	}

	for slot, f := range cubestudio.Faces {
		nx, ny, nz := f.Normal()
		for i := 0; i < 9; i++ {
			idx := byPos[faceletCoord(f, i)]
			cubies[idx].Stickers = append(cubies[idx].Stickers, Sticker{
				Normal: vec(nx, ny, nz),
				Color:  n.Facelets[slot][i],
			})
		}
	}

	m.mu.Lock()
	m.cubies = cubies
	m.pivot = identity()
	m.layer = nil
	m.turning = false
	m.gen++
	m.mu.Unlock()
}

// Reset shows the solved cube again.
func (m *Model) Reset() {
	m.Load(cubestudio.NewNet())
}

// faceletCoord returns the grid position of the cubie carrying facelet i of
// face f, with the net's row-major indexing.
func faceletCoord(f cubestudio.Face, i int) [3]int {
	row, col := i/3, i%3
	switch f {
	case cubestudio.FaceU:
		return [3]int{col - 1, 1, row - 1}
	case cubestudio.FaceD:
		return [3]int{col - 1, -1, 1 - row}
	case cubestudio.FaceF:
		return [3]int{col - 1, 1 - row, 1}
	case cubestudio.FaceB:
		return [3]int{1 - col, 1 - row, -1}
	case cubestudio.FaceL:
		return [3]int{-1, 1 - row, col - 1}
	case cubestudio.FaceR:
		return [3]int{1, 1 - row, 1 - col}
	}
	return [3]int{}
}

// Net reads the stickers back into a net. A layer in flight is read at its
// resting position.
func (m *Model) Net() cubestudio.Net {
	m.mu.Lock()
	defer m.mu.Unlock()

	type key struct{ pos, normal [3]int }
	colors := make(map[key]cubestudio.Color, 54)
	for _, c := range m.cubies {
		p := grid(c.Position)
		for _, s := range c.Stickers {
			colors[key{p, grid(s.Normal)}] = s.Color
		}
	}

	var n cubestudio.Net
	for slot, f := range cubestudio.Faces {
		nx, ny, nz := f.Normal()
		for i := 0; i < 9; i++ {
			n.Facelets[slot][i] = colors[key{faceletCoord(f, i), [3]int{nx, ny, nz}}]
		}
	}
	return n
}

// Cubies returns a copy of the cubies as they would be drawn now, with the
// pivot of a turn in flight applied.
func (m *Model) Cubies() []Cubie {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Cubie, len(m.cubies))
	for i, c := range m.cubies {
		out[i] = Cubie{Position: c.Position, Stickers: append([]Sticker(nil), c.Stickers...)}
	}
	if m.turning {
		for _, i := range m.layer {
			out[i] = rotated(out[i], m.pivot)
		}
	}
	return out
}

// Apply turns a layer at once.
func (m *Model) Apply(mv cubestudio.Move) error {
	if !mv.Face.Valid() {
		return fmt.Errorf("%w: %q", cubestudio.ErrUnknownFace, byte(mv.Face))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyLocked(mv)
	return nil
}

func (m *Model) applyLocked(mv cubestudio.Move) {
	rot := cubestudio.AxisAngle(mv)
	q := axisQuaternion(rot.Axis, rot.Angle)
	for _, i := range m.selectLayer(mv.Face) {
		m.cubies[i] = snap(rotated(m.cubies[i], q))
	}
	m.pivot = identity()
	m.layer = nil
	m.turning = false
}

// Animate turns a layer. With a turn duration set it steps the pivot
// through eased frames first. If ctx ends mid-turn the layer is put back
// and the move is not applied. A Load during the turn discards it.
func (m *Model) Animate(ctx context.Context, mv cubestudio.Move) error {
	if m.turnDuration <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return m.Apply(mv)
	}
	if !mv.Face.Valid() {
		return fmt.Errorf("%w: %q", cubestudio.ErrUnknownFace, byte(mv.Face))
	}

	rot := cubestudio.AxisAngle(mv)
	total := time.Duration(mv.Turns) * m.turnDuration
	frames := int(total.Seconds() * float64(m.frameRate))
	if frames < 1 {
		frames = 1
	}

	m.mu.Lock()
	m.layer = m.selectLayer(mv.Face)
	m.turning = true
	gen := m.gen
	m.mu.Unlock()

	ticker := time.NewTicker(total / time.Duration(frames))
	defer ticker.Stop()

	for i := 1; i < frames; i++ {
		select {
		case <-ctx.Done():
			m.mu.Lock()
			if m.gen == gen {
				m.pivot = identity()
				m.layer = nil
				m.turning = false
			}
			m.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
		}

		p := easeInOut(float64(i) / float64(frames))
		m.mu.Lock()
		if m.gen != gen {
			m.mu.Unlock()
			return nil
		}
		m.pivot = axisQuaternion(rot.Axis, rot.Angle*p)
		m.mu.Unlock()
		if m.onFrame != nil {
			m.onFrame(Frame{Move: mv, Progress: p, Angle: rot.Angle * p})
		}
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return nil
	}
	m.applyLocked(mv)
	m.mu.Unlock()
	if m.onFrame != nil {
		m.onFrame(Frame{Move: mv, Progress: 1, Angle: rot.Angle})
	}
	return nil
}

// selectLayer returns the indices of the cubies in the face's outer layer.
// Must be called with the lock held.
func (m *Model) selectLayer(f cubestudio.Face) []int {
	nx, ny, nz := f.Normal()
	var layer []int
	for i, c := range m.cubies {
		p := grid(c.Position)
		if p[0]*nx+p[1]*ny+p[2]*nz == 1 {
			layer = append(layer, i)
		}
	}
	return layer
}

// IsSolved reports whether every face shows one color.
func (m *Model) IsSolved() bool {
	n := m.Net()
	for _, f := range cubestudio.Faces {
		face := n.Face(f)
		for _, c := range face {
			if c != face[4] || !c.Valid() {
				return false
			}
		}
	}
	return true
}

func (m *Model) String() string {
	return m.Net().String()
}

func identity() quaternion.Quaternion {
	return quaternion.Quaternion{W: 1}
}

func axisQuaternion(a cubestudio.Axis, angle float64) quaternion.Quaternion {
	x, y, z := a.Vector()
	s := math.Sin(angle / 2)
	return quaternion.Quaternion{W: math.Cos(angle / 2), X: x * s, Y: y * s, Z: z * s}
}

func rotated(c Cubie, q quaternion.Quaternion) Cubie {
	out := Cubie{Position: c.Position.Rotate(q), Stickers: make([]Sticker, len(c.Stickers))}
	for i, s := range c.Stickers {
		out.Stickers[i] = Sticker{Normal: s.Normal.Rotate(q), Color: s.Color}
	}
	return out
}

// snap rounds a cubie back onto the integer grid.
func snap(c Cubie) Cubie {
	c.Position = round(c.Position)
	for i := range c.Stickers {
		c.Stickers[i].Normal = round(c.Stickers[i].Normal)
	}
	return c
}

func round(v quaternion.Vec3) quaternion.Vec3 {
	return quaternion.Vec3{X: math.Round(v.X), Y: math.Round(v.Y), Z: math.Round(v.Z)}
}

func grid(v quaternion.Vec3) [3]int {
	return [3]int{int(math.Round(v.X)), int(math.Round(v.Y)), int(math.Round(v.Z))}
}

func vec(x, y, z int) quaternion.Vec3 {
	return quaternion.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}
