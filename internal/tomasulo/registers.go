package tomasulo

import "math/rand"

// Register is one entry of the register alias file (spec.md §3).
//
// Invariant: Ready == (Producer == NoTag). When a register is renamed,
// Busy=true, Ready=false, and Producer names the ROB slot that will deliver
// its value.
type Register struct {
	Value    float32
	Producer RobTag
	Ready    bool
	Busy     bool
}

func newRegister() Register {
	return Register{Ready: true, Producer: NoTag}
}

// RegisterFile holds the 32 integer and 32 floating-point architectural
// registers.
type RegisterFile struct {
	Int   [32]Register
	Float [32]Register
}

// NewRegisterFile builds a register file seeded per spec.md §6: each
// register gets (rand() mod 10) * 10.0, with R[i] and F[i] seeded to the
// identical value. The source seeds rand() from wall-clock time; this
// implementation takes an explicit seed so runs are reproducible (spec.md
// §9 Design Notes).
func NewRegisterFile(seed int64) *RegisterFile {
	rf := &RegisterFile{}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < 32; i++ {
		v := float32(rng.Intn(10)) * 10.0
		rf.Int[i] = newRegister()
		rf.Float[i] = newRegister()
		rf.Int[i].Value = v
		rf.Float[i].Value = v
	}
	return rf
}

// Get returns a pointer to the named register so callers can read or mutate
// it in place.
func (rf *RegisterFile) Get(ref RegRef) *Register {
	if ref.Kind == FloatReg {
		return &rf.Float[ref.Index]
	}
	return &rf.Int[ref.Index]
}
