package tomasulo

import (
	"fmt"
	"math"

	"github.com/jasonKoogler/tomasulo-sim/internal/config"
	"github.com/jasonKoogler/tomasulo-sim/internal/diag"
)

// CDBEntry is one result waiting on the common data bus: {instr_id, value,
// rob_tag} (spec.md §4.3).
type CDBEntry struct {
	InstrID int
	Value   float32
	Tag     RobTag
}

// Engine owns every piece of per-run state exclusively for the duration of
// one simulation: the instruction log, register file, reservation station
// pools, ROB, memory, and CDB queue. This is the pipeline control engine
// described in spec.md §1 — single-threaded, discrete-event, cooperative
// (spec.md §5); there is no concurrency inside Tick.
type Engine struct {
	cfg *config.Config
	log *diag.Logger

	Clock int64

	Instrs    []Instruction
	QueueHead int // 1-based id of the next instruction waiting to issue

	Registers *RegisterFile
	Mem       *Memory
	Rob       *ROB
	Pools     [4][]ReservationStation

	CDBQueue []CDBEntry
}

// New builds an Engine ready to run program. program instructions must have
// sequential 1-based IDs starting at 1 (as produced by internal/asm).
func New(cfg *config.Config, logger *diag.Logger, program []Instruction) *Engine {
	if logger == nil {
		logger = diag.Default()
	}

	e := &Engine{
		cfg:       cfg,
		log:       logger,
		Clock:     1,
		Instrs:    program,
		QueueHead: 1,
		Registers: NewRegisterFile(cfg.Seed),
		Mem:       NewMemory(cfg.MemorySize),
		Rob:       NewROB(cfg.ROBSize),
	}

	e.Pools[PoolAdd] = make([]ReservationStation, cfg.AddStations)
	e.Pools[PoolMult] = make([]ReservationStation, cfg.MultStations)
	e.Pools[PoolLoad] = make([]ReservationStation, cfg.LoadStations)
	e.Pools[PoolStore] = make([]ReservationStation, cfg.StoreStations)
	for _, pool := range e.Pools {
		for i := range pool {
			pool[i] = newStation()
		}
	}

	return e
}

func poolKindFor(op Op) PoolKind {
	switch op {
	case OpAdd, OpSub:
		return PoolAdd
	case OpMul, OpDiv:
		return PoolMult
	case OpLoad:
		return PoolLoad
	default:
		return PoolStore
	}
}

func (e *Engine) latency(op Op) int {
	switch op {
	case OpAdd:
		return e.cfg.LatencyAdd
	case OpSub:
		return e.cfg.LatencySub
	case OpMul:
		return e.cfg.LatencyMul
	case OpDiv:
		return e.cfg.LatencyDiv
	case OpLoad:
		return e.cfg.LatencyLoad
	default:
		return e.cfg.LatencyStore
	}
}

// Tick performs exactly one pipeline cycle: Commit, Writeback, Issue,
// Execute, in that order (spec.md §4.5), then advances the clock. It
// returns a narration of what happened this cycle, for the CLI/reporter.
func (e *Engine) Tick() []string {
	var events []string
	events = append(events, e.commitPhase()...)
	events = append(events, e.writebackPhase()...)
	events = append(events, e.issuePhase()...)
	events = append(events, e.executePhase()...)
	e.Clock++
	return events
}

// commitPhase retires the ROB head iff it is busy, WRITE_RESULT, and its
// value is ready (spec.md §4.4). At most one commit per cycle.
func (e *Engine) commitPhase() []string {
	if e.Rob.Free == e.Rob.Size {
		return nil
	}

	headTag := e.Rob.HeadTag()
	entry := e.Rob.At(headTag)
	if !entry.Busy || entry.State != ROBWriteResult || !entry.ValueReady {
		return nil
	}

	instr := &e.Instrs[entry.InstrID-1]

	if entry.Op != OpStore {
		reg := e.Registers.Get(entry.DestReg)
		reg.Value = entry.Value
		if reg.Producer == headTag {
			reg.Producer = NoTag
			reg.Ready = true
			reg.Busy = false
		}
	} else {
		if !e.Mem.Write(entry.Address, entry.Value) {
			e.log.Warnf("out-of-range store address %d suppressed (instr %d)", entry.Address, instr.ID)
		}
	}

	instr.CommitCycle = e.Clock
	e.Rob.RetireHead()

	return []string{fmt.Sprintf("cycle %d: commit instr %d (ROB %d)", e.Clock, instr.ID, int(headTag))}
}

// writebackPhase drains one entry from the CDB queue and broadcasts it to
// the ROB, architectural registers, and waiting reservation stations
// (spec.md §4.3). At most one entry per cycle: this models a single-port
// CDB.
func (e *Engine) writebackPhase() []string {
	if len(e.CDBQueue) == 0 {
		return nil
	}

	entry := e.CDBQueue[0]
	e.CDBQueue = e.CDBQueue[1:]

	robEntry := e.Rob.At(entry.Tag)
	if robEntry.Busy {
		robEntry.Value = entry.Value
		robEntry.ValueReady = true
		robEntry.State = ROBWriteResult
	}

	if entry.InstrID-1 >= 0 && entry.InstrID-1 < len(e.Instrs) {
		e.Instrs[entry.InstrID-1].WriteCycle = e.Clock
	}

	for i := range e.Registers.Int {
		r := &e.Registers.Int[i]
		if r.Producer == entry.Tag {
			r.Value = entry.Value
			r.Ready = true
			r.Busy = false
			r.Producer = NoTag
		}
	}
	for i := range e.Registers.Float {
		r := &e.Registers.Float[i]
		if r.Producer == entry.Tag {
			r.Value = entry.Value
			r.Ready = true
			r.Busy = false
			r.Producer = NoTag
		}
	}

	for k := range e.Pools {
		pool := e.Pools[k]
		for i := range pool {
			st := &pool[i]
			if !st.Busy {
				continue
			}
			if st.Qj == entry.Tag {
				st.Vj = entry.Value
				st.Qj = NoTag
			}
			if st.Qk == entry.Tag {
				st.Vk = entry.Value
				st.Qk = NoTag
			}
			if st.RobTag == entry.Tag {
				st.release()
			}
		}
	}

	return []string{fmt.Sprintf("cycle %d: writeback instr %d -> ROB %d value %.2f", e.Clock, entry.InstrID, int(entry.Tag), entry.Value)}
}

// issuePhase attaches the instruction at the queue head to a free
// reservation station and ROB slot, if every precondition in spec.md §4.1
// holds. At most one instruction is issued per cycle.
func (e *Engine) issuePhase() []string {
	if e.QueueHead > len(e.Instrs) {
		return nil
	}
	instr := &e.Instrs[e.QueueHead-1]

	if e.Rob.Free == 0 {
		return nil
	}

	kind := poolKindFor(instr.Op)
	pool := e.Pools[kind]
	freeIdx := -1
	for i := range pool {
		if !pool[i].Busy {
			freeIdx = i
			break
		}
	}
	if freeIdx == -1 {
		return nil
	}

	var offset int
	var base RegRef
	var haveBase bool
	if instr.Op == OpLoad || instr.Op == OpStore {
		o, b, ok := ParseMemOperand(instr.AddrText)
		offset, base, haveBase = o, b, ok
		if !ok {
			e.log.Debugf("malformed memory operand %q on instr %d, address defaults to 0", instr.AddrText, instr.ID)
		}
	}

	// Precondition 4: WAW — the architectural destination is not currently
	// renamed. STORE has no rename target, so it never stalls here.
	if instr.Op != OpStore {
		if e.Registers.Get(instr.Dest).Busy {
			return nil
		}
	}

	// Precondition 5: RAW — every source register this instruction reads
	// must be ready. The source register set for LOAD/STORE is the base
	// register named inside "offset(base)" (and, for STORE, the value
	// register in the Dest slot); the source's own string-keyed map lookup
	// of the literal "offset(base)" text was an artifact, not intended
	// semantics (spec.md §9), so this implementation checks the real
	// register operands instead.
	var sources []RegRef
	switch {
	case instr.Op.IsArithmetic():
		sources = append(sources, instr.Src1, instr.Src2)
	case instr.Op == OpLoad:
		if haveBase {
			sources = append(sources, base)
		}
	case instr.Op == OpStore:
		sources = append(sources, instr.Dest)
		if haveBase {
			sources = append(sources, base)
		}
	}
	for _, ref := range sources {
		if !e.Registers.Get(ref).Ready {
			return nil
		}
	}

	// All preconditions hold: allocate ROB + station, rename, capture.
	tag := e.Rob.Alloc(instr.ID, instr.Op)
	entry := e.Rob.At(tag)

	address := 0
	if instr.Op == OpLoad || instr.Op == OpStore {
		if haveBase {
			address = offset + int(math.Floor(float64(e.Registers.Get(base).Value)))
		}
		entry.Address = address
	}
	if instr.Op != OpStore {
		entry.DestReg = instr.Dest
	}

	station := newStation()
	station.Busy = true
	station.Op = instr.Op
	station.InstrID = instr.ID
	station.RobTag = tag
	station.CyclesLeft = e.latency(instr.Op)
	station.justIssued = true
	if instr.Op == OpLoad || instr.Op == OpStore {
		station.Address = address
	}

	switch {
	case instr.Op.IsArithmetic():
		captureOperand(&station.Vj, &station.Qj, e.Registers.Get(instr.Src1))
		captureOperand(&station.Vk, &station.Qk, e.Registers.Get(instr.Src2))
	case instr.Op == OpStore:
		captureOperand(&station.Vj, &station.Qj, e.Registers.Get(instr.Dest))
	}

	e.Pools[kind][freeIdx] = station

	if instr.Op != OpStore {
		reg := e.Registers.Get(instr.Dest)
		reg.Producer = tag
		reg.Ready = false
		reg.Busy = true
	}

	instr.IssueCycle = e.Clock
	e.QueueHead++

	return []string{fmt.Sprintf("cycle %d: issued instr %d (%s) -> ROB %d, %s%d", e.Clock, instr.ID, instr.Op, int(tag), kind, freeIdx+1)}
}

// executePhase advances every station whose operands are fully resolved,
// computes results the moment a countdown reaches zero, and pushes them
// onto the CDB queue in the fixed tie-break order of spec.md §4.2.
func (e *Engine) executePhase() []string {
	var events []string

	for _, kind := range PoolOrder {
		pool := e.Pools[kind]
		for i := range pool {
			st := &pool[i]
			if !st.Busy {
				continue
			}
			if st.justIssued {
				st.justIssued = false
				continue
			}
			if !st.operandsResolved() {
				continue
			}

			instr := &e.Instrs[st.InstrID-1]
			if instr.ExecStart == 0 {
				instr.ExecStart = e.Clock
			}

			st.CyclesLeft--
			if st.CyclesLeft > 0 {
				continue
			}

			instr.ExecEnd = e.Clock

			result := e.compute(st)

			e.CDBQueue = append(e.CDBQueue, CDBEntry{InstrID: st.InstrID, Value: result, Tag: st.RobTag})
			events = append(events, fmt.Sprintf("cycle %d: %s%d completed instr %d, result %.2f", e.Clock, kind, i+1, st.InstrID, result))

			st.release()
		}
	}

	return events
}

// compute performs the functional unit's arithmetic for a station whose
// countdown just reached zero (spec.md §4.2).
func (e *Engine) compute(st *ReservationStation) float32 {
	switch st.Op {
	case OpAdd:
		return st.Vj + st.Vk
	case OpSub:
		return st.Vj - st.Vk
	case OpMul:
		return st.Vj * st.Vk
	case OpDiv:
		if st.Vk == 0 {
			e.log.Warnf("division by zero in instr %d", st.InstrID)
			return 0
		}
		return st.Vj / st.Vk
	case OpLoad:
		v, _ := e.Mem.Read(st.Address)
		return v
	default: // OpStore
		e.Mem.Write(st.Address, st.Vj)
		return st.Vj
	}
}

// IsDone reports whether the simulation has nothing left to do: the
// instruction queue, in-flight stations, CDB queue, and ROB are all empty
// (spec.md §4.5).
func (e *Engine) IsDone() bool {
	if e.QueueHead <= len(e.Instrs) {
		return false
	}
	if len(e.CDBQueue) != 0 {
		return false
	}
	if e.Rob.Free != e.Rob.Size {
		return false
	}
	for _, pool := range e.Pools {
		for i := range pool {
			if pool[i].Busy {
				return false
			}
		}
	}
	return true
}
