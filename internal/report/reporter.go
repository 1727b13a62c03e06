// Package report renders a tomasulo.Snapshot as human-readable text: the
// same per-cycle dump the original tool printed to follow an instruction
// through the pipeline, re-expressed with fmt's fixed-width verbs instead of
// a table-drawing library (see SPEC_FULL.md for why no such library is
// wired in).
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jasonKoogler/tomasulo-sim/internal/tomasulo"
)

// Cycle writes one cycle's narration events followed by the state snapshot
// taken after that cycle.
func Cycle(w io.Writer, events []string, snap tomasulo.Snapshot) {
	fmt.Fprintf(w, "\n===== Cycle %d =====\n", snap.Clock-1)
	for _, e := range events {
		fmt.Fprintf(w, "  %s\n", e)
	}
	Stations(w, snap)
	ROB(w, snap)
	CDB(w, snap)
	Registers(w, snap)
	Memory(w, snap)
}

// Stations prints every busy reservation station, grouped by pool.
func Stations(w io.Writer, snap tomasulo.Snapshot) {
	fmt.Fprintln(w, "  Reservation Stations:")
	any := false
	for kind, pool := range snap.Pools {
		for i, st := range pool {
			if !st.Busy {
				continue
			}
			any = true
			fmt.Fprintf(w, "    %s%-2d busy=%-5v op=%-5s instr=%-3d rob=%-3d vj=%-8.2f vk=%-8.2f qj=%-3s qk=%-3s left=%d\n",
				tomasulo.PoolKind(kind), i+1, st.Busy, st.Op, st.InstrID, int(st.RobTag),
				st.Vj, st.Vk, tagString(st.Qj), tagString(st.Qk), st.CyclesLeft)
		}
	}
	if !any {
		fmt.Fprintln(w, "    (none busy)")
	}
}

// ROB prints every busy reorder buffer entry in FIFO (program) order.
func ROB(w io.Writer, snap tomasulo.Snapshot) {
	fmt.Fprintln(w, "  Reorder Buffer:")
	if len(snap.ROBEntries) == 0 {
		fmt.Fprintln(w, "    (empty)")
		return
	}
	for _, e := range snap.ROBEntries {
		fmt.Fprintf(w, "    #%-3d instr=%-3d op=%-5s state=%-12s dest=%-4s value=%-8.2f ready=%v\n",
			e.Tag, e.Entry.InstrID, e.Entry.Op, e.Entry.State, destString(e.Entry), e.Entry.Value, e.Entry.ValueReady)
	}
}

// CDB prints the pending common data bus queue.
func CDB(w io.Writer, snap tomasulo.Snapshot) {
	if len(snap.CDBQueue) == 0 {
		return
	}
	fmt.Fprintln(w, "  CDB Queue:")
	for _, c := range snap.CDBQueue {
		fmt.Fprintf(w, "    instr=%-3d rob=%-3d value=%.2f\n", c.InstrID, int(c.Tag), c.Value)
	}
}

// Registers prints every renamed (busy) register plus the always-readable
// architectural value each one currently holds.
func Registers(w io.Writer, snap tomasulo.Snapshot) {
	fmt.Fprintln(w, "  Registers:")
	any := false
	for i, r := range snap.Registers.Int {
		if !r.Busy {
			continue
		}
		any = true
		fmt.Fprintf(w, "    R%-2d value=%-8.2f producer=rob%d\n", i, r.Value, int(r.Producer))
	}
	for i, r := range snap.Registers.Float {
		if !r.Busy {
			continue
		}
		any = true
		fmt.Fprintf(w, "    F%-2d value=%-8.2f producer=rob%d\n", i, r.Value, int(r.Producer))
	}
	if !any {
		fmt.Fprintln(w, "    (none renamed)")
	}
}

// Memory prints every non-zero memory word, address-sorted.
func Memory(w io.Writer, snap tomasulo.Snapshot) {
	if len(snap.NonZeroMemory) == 0 {
		return
	}
	fmt.Fprintln(w, "  Memory (non-zero):")
	addrs := make([]int, 0, len(snap.NonZeroMemory))
	for a := range snap.NonZeroMemory {
		addrs = append(addrs, a)
	}
	sort.Ints(addrs)
	for _, a := range addrs {
		fmt.Fprintf(w, "    [%d] = %.2f\n", a, snap.NonZeroMemory[a])
	}
}

func tagString(t tomasulo.RobTag) string {
	if t == tomasulo.NoTag {
		return "-"
	}
	return fmt.Sprintf("%d", int(t))
}

func destString(e tomasulo.ROBEntry) string {
	if e.Op == tomasulo.OpStore {
		return "mem"
	}
	return e.DestReg.String()
}

// Summary prints the final program-wide timing table once the simulation
// has completed: one row per instruction with its four stage timestamps.
func Summary(w io.Writer, instrs []tomasulo.Instruction) {
	fmt.Fprintln(w, "\n===== Summary =====")
	fmt.Fprintf(w, "%-4s %-6s %-6s %-6s %-6s %-6s\n", "ID", "Op", "Issue", "ExecEnd", "Write", "Commit")
	for _, instr := range instrs {
		fmt.Fprintf(w, "%-4d %-6s %-6d %-6d %-6d %-6d\n",
			instr.ID, instr.Op, instr.IssueCycle, instr.ExecEnd, instr.WriteCycle, instr.CommitCycle)
	}
}
