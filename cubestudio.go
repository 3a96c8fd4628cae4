// Package cubestudio is the logical model behind a Rubik's cube editor and
// animator: a painted sticker net, its 54-character state string, move
// notation, and the playback state of a returned solution.
//
// # Features
//
//   - Net model with a closed six-color palette
//   - Lossless state string codec (faces in U, R, F, D, L, B order)
//   - Color-count validation
//   - Move notation parsing and inversion
//   - Axis/angle table for renderers
//   - A session Store with play, pause and edge-triggered stepping
//
// # Quick Start
//
//	store := cubestudio.NewStore(cubestudio.WithSolver(cubestudio.DemoSolver{}))
//	store.Paint(cubestudio.FaceU, 0, cubestudio.Red)
//	store.Paint(cubestudio.FaceF, 0, cubestudio.White)
//
//	if err := store.Solve(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	player := cubestudio.NewPlayer(store, animator)
//	go player.Run(ctx)
//	store.Play()
//
// # Solving
//
// There is no solving algorithm in this package. A Solver is an external
// collaborator; DemoSolver answers every well-formed state with a fixed
// move string so the rest of the pipeline can be exercised.
//
// # Rendering
//
// An Animator turns the layer of each move. The renderer takes its rotation
// from AxisAngle, and applies Inverse itself when stepping backwards.
package cubestudio
