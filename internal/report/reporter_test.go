package report

import (
	"strings"
	"testing"

	"github.com/jasonKoogler/tomasulo-sim/internal/config"
	"github.com/jasonKoogler/tomasulo-sim/internal/tomasulo"
)

func TestCycle_ProducesReadableOutput(t *testing.T) {
	cfg := config.DefaultConfig()
	prog := []tomasulo.Instruction{
		{ID: 1, Op: tomasulo.OpAdd, Dest: tomasulo.RegRef{Kind: tomasulo.FloatReg, Index: 1},
			Src1: tomasulo.RegRef{Kind: tomasulo.FloatReg, Index: 2},
			Src2: tomasulo.RegRef{Kind: tomasulo.FloatReg, Index: 3}, HasSrc2: true},
	}
	e := tomasulo.New(cfg, nil, prog)

	events := e.Tick()
	snap := e.Snapshot()

	var b strings.Builder
	Cycle(&b, events, snap)
	out := b.String()

	if !strings.Contains(out, "Cycle 1") {
		t.Errorf("output missing cycle header: %q", out)
	}
	if !strings.Contains(out, "Reservation Stations:") {
		t.Errorf("output missing station section: %q", out)
	}
	if !strings.Contains(out, "Add1") {
		t.Errorf("output missing busy Add station: %q", out)
	}
}

func TestSummary_ListsEveryInstruction(t *testing.T) {
	instrs := []tomasulo.Instruction{
		{ID: 1, Op: tomasulo.OpAdd, IssueCycle: 1, ExecEnd: 3, WriteCycle: 4, CommitCycle: 5},
		{ID: 2, Op: tomasulo.OpMul, IssueCycle: 2, ExecEnd: 12, WriteCycle: 13, CommitCycle: 14},
	}
	var b strings.Builder
	Summary(&b, instrs)
	out := b.String()

	if !strings.Contains(out, "ADD") || !strings.Contains(out, "MUL") {
		t.Errorf("summary missing opcode names: %q", out)
	}
}

func TestMemory_SkipsWhenEmpty(t *testing.T) {
	var b strings.Builder
	Memory(&b, tomasulo.Snapshot{})
	if b.Len() != 0 {
		t.Errorf("expected no output for an empty memory map, got %q", b.String())
	}
}
