package cubie

// Predefined moves for convenience.
//
// Example:
//
//	m.Do(cubie.R)
//	m.Do(cubie.UPrime)
var (
	// Right face moves
	R      = Move{Face: FaceR, Turn: CW}  // Right clockwise
	RPrime = Move{Face: FaceR, Turn: CCW} // Right counter-clockwise

	// Left face moves
	L      = Move{Face: FaceL, Turn: CW}  // Left clockwise
	LPrime = Move{Face: FaceL, Turn: CCW} // Left counter-clockwise

	// Up face moves
	U      = Move{Face: FaceU, Turn: CW}  // Up clockwise
	UPrime = Move{Face: FaceU, Turn: CCW} // Up counter-clockwise

	// Down face moves
	D      = Move{Face: FaceD, Turn: CW}  // Down clockwise
	DPrime = Move{Face: FaceD, Turn: CCW} // Down counter-clockwise

	// Front face moves
	F      = Move{Face: FaceF, Turn: CW}  // Front clockwise
	FPrime = Move{Face: FaceF, Turn: CCW} // Front counter-clockwise

	// Back face moves
	B      = Move{Face: FaceB, Turn: CW}  // Back clockwise
	BPrime = Move{Face: FaceB, Turn: CCW} // Back counter-clockwise
)

// AllMoves lists the 12 named quarter turns Shuffle draws from.
var AllMoves = [12]Move{F, FPrime, R, RPrime, L, LPrime, U, UPrime, D, DPrime, B, BPrime}

// Sugar for the named moves. Each is a no-op returning ErrBusy unless the
// machine is still.

func (m *Machine) F() error      { return m.Do(F) }
func (m *Machine) FPrime() error { return m.Do(FPrime) }
func (m *Machine) R() error      { return m.Do(R) }
func (m *Machine) RPrime() error { return m.Do(RPrime) }
func (m *Machine) L() error      { return m.Do(L) }
func (m *Machine) LPrime() error { return m.Do(LPrime) }
func (m *Machine) U() error      { return m.Do(U) }
func (m *Machine) UPrime() error { return m.Do(UPrime) }
func (m *Machine) D() error      { return m.Do(D) }
func (m *Machine) DPrime() error { return m.Do(DPrime) }
func (m *Machine) B() error      { return m.Do(B) }
func (m *Machine) BPrime() error { return m.Do(BPrime) }
