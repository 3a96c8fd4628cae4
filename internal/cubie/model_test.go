package cubie

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubestudio"
)

func TestNewModelIsSolved(t *testing.T) {
	m := New()
	if !m.IsSolved() {
		t.Error("new model should be solved")
	}
	if m.Net() != cubestudio.NewNet() {
		t.Error("new model should read back the solved net")
		t.Log(m.String())
	}
	if got := len(m.Cubies()); got != 26 {
		t.Errorf("got %d cubies, want 26", got)
	}
}

func TestLoadReadsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := cubestudio.NewNet()
	for i := 0; i < 100; i++ {
		n.Set(cubestudio.Faces[rng.Intn(6)], rng.Intn(9), cubestudio.Palette[rng.Intn(6)])
	}

	m := New()
	m.Load(n)
	if m.Net() != n {
		t.Errorf("Load/Net mismatch\nwant:\n%s\ngot:\n%s", n, m.Net())
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	m := New()
	m.Apply(cubestudio.R)
	if m.IsSolved() {
		t.Error("cube should not be solved after R")
	}
}

func TestFourTurnsIsIdentity(t *testing.T) {
	for _, f := range cubestudio.Faces {
		m := New()
		mv := cubestudio.Move{Face: f, Turns: cubestudio.Quarter}
		for i := 0; i < 4; i++ {
			m.Apply(mv)
		}
		if !m.IsSolved() {
			t.Errorf("%v x 4 should return to solved", f)
			t.Log(m.String())
		}
	}
}

func TestHalfTurnTwiceIsIdentity(t *testing.T) {
	for _, f := range cubestudio.Faces {
		m := New()
		mv := cubestudio.Move{Face: f, Turns: cubestudio.Half}
		m.Apply(mv)
		m.Apply(mv)
		if !m.IsSolved() {
			t.Errorf("%v2 %v2 should return to solved", f, f)
		}
	}
}

func TestMoveThenInverseRestores(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := cubestudio.NewNet()
	for i := 0; i < 30; i++ {
		n.Set(cubestudio.Faces[rng.Intn(6)], rng.Intn(9), cubestudio.Palette[rng.Intn(6)])
	}

	for _, f := range cubestudio.Faces {
		for _, turns := range []cubestudio.Turns{cubestudio.Quarter, cubestudio.Half, cubestudio.Prime} {
			m := New()
			m.Load(n)
			mv := cubestudio.Move{Face: f, Turns: turns}
			m.Apply(mv)
			m.Apply(mv.Inverse())
			if m.Net() != n {
				t.Errorf("%v then %v did not restore the net", mv, mv.Inverse())
			}
		}
	}
}

func TestUTurnKeepsUFace(t *testing.T) {
	m := New()
	m.Apply(cubestudio.U)
	n := m.Net()

	for i, c := range n.Face(cubestudio.FaceU) {
		if c != cubestudio.White {
			t.Errorf("U[%d] = %v, want white", i, c)
		}
	}

	front := n.Face(cubestudio.FaceF)
	if front[0] != front[1] || front[1] != front[2] {
		t.Errorf("F top row not uniform: %v %v %v", front[0], front[1], front[2])
	}
	if front[0] == cubestudio.Red {
		t.Error("F top row should come from a side face")
	}
	for i := 3; i < 9; i++ {
		if front[i] != cubestudio.Red {
			t.Errorf("F[%d] = %v, want red", i, front[i])
		}
	}
	for i, c := range n.Face(cubestudio.FaceD) {
		if c != cubestudio.Yellow {
			t.Errorf("D[%d] = %v, want yellow", i, c)
		}
	}
}

func TestRTurnDirection(t *testing.T) {
	m := New()
	m.Apply(cubestudio.R)
	n := m.Net()

	count := func(f cubestudio.Face, c cubestudio.Color) int {
		k := 0
		for _, got := range n.Face(f) {
			if got == c {
				k++
			}
		}
		return k
	}

	// +90 degrees about +X takes the top of the R layer to the front.
	for _, tc := range []struct {
		face cubestudio.Face
		from cubestudio.Color
	}{
		{cubestudio.FaceF, cubestudio.White},
		{cubestudio.FaceU, cubestudio.Orange},
		{cubestudio.FaceB, cubestudio.Yellow},
		{cubestudio.FaceD, cubestudio.Red},
	} {
		if got := count(tc.face, tc.from); got != 3 {
			t.Errorf("%v has %d %v stickers, want 3", tc.face, got, tc.from)
		}
	}
	if got := count(cubestudio.FaceR, cubestudio.Blue); got != 9 {
		t.Errorf("R face has %d blue stickers, want 9", got)
	}
}

func TestSexyMoveOrderSix(t *testing.T) {
	m := New()
	for i := 0; i < 6; i++ {
		for _, mv := range cubestudio.SexyMove {
			m.Apply(mv)
		}
		if i < 5 && m.IsSolved() {
			t.Fatalf("solved early after %d repetitions", i+1)
		}
	}
	if !m.IsSolved() {
		t.Error("(R U R' U') x 6 should return to solved")
		t.Log(m.String())
	}
}

func TestSolutionThenInverse(t *testing.T) {
	moves, err := cubestudio.ParseMoves(cubestudio.DemoSolution)
	if err != nil {
		t.Fatal(err)
	}
	m := New()
	for _, mv := range moves {
		m.Apply(mv)
	}
	for _, mv := range cubestudio.InvertMoves(moves) {
		m.Apply(mv)
	}
	if !m.IsSolved() {
		t.Error("sequence followed by its inverse should be identity")
	}
}

func TestAnimateFrames(t *testing.T) {
	var frames []Frame
	m := New(
		WithTurnDuration(20*time.Millisecond),
		WithFrameRate(250),
		WithFrameCallback(func(f Frame) { frames = append(frames, f) }),
	)

	if err := m.Animate(context.Background(), cubestudio.R); err != nil {
		t.Fatal(err)
	}
	if len(frames) < 2 {
		t.Fatalf("got %d frames", len(frames))
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Progress < frames[i-1].Progress {
			t.Errorf("progress went backwards at frame %d", i)
		}
	}
	if last := frames[len(frames)-1]; last.Progress != 1 {
		t.Errorf("last frame progress = %v, want 1", last.Progress)
	}

	want := New()
	want.Apply(cubestudio.R)
	if m.Net() != want.Net() {
		t.Error("animated turn should match an instant turn")
	}
}

func TestAnimateCancelled(t *testing.T) {
	m := New(WithTurnDuration(50*time.Millisecond), WithFrameRate(100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Animate(ctx, cubestudio.F); err == nil {
		t.Fatal("expected context error")
	}
	if !m.IsSolved() {
		t.Error("cancelled turn should not be applied")
	}

	instant := New()
	if err := instant.Animate(ctx, cubestudio.F); err == nil {
		t.Error("instant animate should also honor a done context")
	}
}

func TestModelAsAnimator(t *testing.T) {
	var _ cubestudio.Animator = New()

	store := cubestudio.NewStore()
	store.LoadSolution("R U R' U'")
	m := New()
	p := cubestudio.NewPlayer(store, m)

	store.Play()
	if err := p.Drain(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := New()
	for _, mv := range cubestudio.SexyMove {
		want.Apply(mv)
	}
	if m.Net() != want.Net() {
		t.Error("player should drive the model through the whole sequence")
	}
}
