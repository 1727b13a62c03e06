package asm

import (
	"strings"
	"testing"

	"github.com/jasonKoogler/tomasulo-sim/internal/tomasulo"
)

func TestParse_ArithmeticAndMemory(t *testing.T) {
	src := `
# a comment
ADD F1, F2, F3
MUL F4 F2 F3

LOAD F6 0(R1)
STORE F2 4(R1)
`
	instrs, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(instrs) != 4 {
		t.Fatalf("got %d instructions, want 4", len(instrs))
	}

	for i, instr := range instrs {
		if instr.ID != i+1 {
			t.Errorf("instr %d has ID %d, want %d", i, instr.ID, i+1)
		}
	}

	add := instrs[0]
	if add.Op != tomasulo.OpAdd || add.Dest != (tomasulo.RegRef{Kind: tomasulo.FloatReg, Index: 1}) {
		t.Errorf("unexpected ADD decode: %+v", add)
	}
	if !add.HasSrc2 || add.Src2 != (tomasulo.RegRef{Kind: tomasulo.FloatReg, Index: 3}) {
		t.Errorf("unexpected ADD src2: %+v", add)
	}

	load := instrs[2]
	if load.Op != tomasulo.OpLoad || load.AddrText != "0(R1)" {
		t.Errorf("unexpected LOAD decode: %+v", load)
	}

	store := instrs[3]
	if store.Op != tomasulo.OpStore || store.Dest != (tomasulo.RegRef{Kind: tomasulo.FloatReg, Index: 2}) || store.AddrText != "4(R1)" {
		t.Errorf("unexpected STORE decode: %+v", store)
	}
}

func TestParse_SkipsUnknownOpcodes(t *testing.T) {
	src := "NOP\nADD F1 F2 F3\n"
	instrs, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1 (NOP should be skipped)", len(instrs))
	}
	if instrs[0].ID != 1 {
		t.Errorf("surviving instruction ID = %d, want 1", instrs[0].ID)
	}
}

func TestParse_MalformedLineErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("ADD F1 F2\n"))
	if err == nil {
		t.Fatal("expected an error for a truncated ADD line")
	}
}

func TestLoadProgram_MissingFile(t *testing.T) {
	if _, err := LoadProgram("/nonexistent/path/to/program.asm"); err == nil {
		t.Fatal("expected an error for a missing program file")
	}
}
