package cubestudio

// Predefined moves for convenience.
//
// Example:
//
//	store.SetMoves([]cubestudio.Move{cubestudio.R, cubestudio.U, cubestudio.RPrime})
var (
	R      = Move{Face: FaceR, Turns: Quarter}
	RPrime = Move{Face: FaceR, Turns: Prime}
	R2     = Move{Face: FaceR, Turns: Half}

	L      = Move{Face: FaceL, Turns: Quarter}
	LPrime = Move{Face: FaceL, Turns: Prime}
	L2     = Move{Face: FaceL, Turns: Half}

	U      = Move{Face: FaceU, Turns: Quarter}
	UPrime = Move{Face: FaceU, Turns: Prime}
	U2     = Move{Face: FaceU, Turns: Half}

	D      = Move{Face: FaceD, Turns: Quarter}
	DPrime = Move{Face: FaceD, Turns: Prime}
	D2     = Move{Face: FaceD, Turns: Half}

	F      = Move{Face: FaceF, Turns: Quarter}
	FPrime = Move{Face: FaceF, Turns: Prime}
	F2     = Move{Face: FaceF, Turns: Half}

	B      = Move{Face: FaceB, Turns: Quarter}
	BPrime = Move{Face: FaceB, Turns: Prime}
	B2     = Move{Face: FaceB, Turns: Half}
)

// SexyMove is R U R' U'. Six repetitions are the identity.
var SexyMove = []Move{R, U, RPrime, UPrime}

// DemoSolution is what DemoSolver answers for every well-formed state.
const DemoSolution = "U R U' R' U' F' U F"
