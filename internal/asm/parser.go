// Package asm parses the simulator's plain-text instruction listing into
// tomasulo.Instruction values. It is the "textual front end" the core engine
// never depends on: the engine accepts []tomasulo.Instruction directly, and
// this package is just one way to produce that slice.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jasonKoogler/tomasulo-sim/internal/tomasulo"
)

var opcodes = map[string]tomasulo.Op{
	"ADD":   tomasulo.OpAdd,
	"SUB":   tomasulo.OpSub,
	"MUL":   tomasulo.OpMul,
	"DIV":   tomasulo.OpDiv,
	"LOAD":  tomasulo.OpLoad,
	"STORE": tomasulo.OpStore,
}

// LoadProgram reads a program from the file at path.
func LoadProgram(path string) ([]tomasulo.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file: %w", err)
	}
	defer f.Close()

	instrs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse program file: %w", err)
	}
	return instrs, nil
}

// Parse reads a program from r, one instruction per line. Blank lines and
// lines starting with "#" are ignored. Each remaining line must look like:
//
//	OP DEST SRC1 [SRC2]
//	LOAD DEST offset(BASE)
//	STORE SRC offset(BASE)
//
// Tokens may carry a trailing comma (as a human transcribing an assembly
// listing would write "ADD F1, F2, F3"). Lines naming an opcode this
// simulator does not model are skipped rather than rejected, so a listing
// written for a larger instruction set degrades gracefully.
func Parse(r io.Reader) ([]tomasulo.Instruction, error) {
	var instrs []tomasulo.Instruction

	scanner := bufio.NewScanner(r)
	lineNo := 0
	nextID := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitFields(line)
		op, ok := opcodes[strings.ToUpper(fields[0])]
		if !ok {
			continue
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected at least an opcode and destination, got %q", lineNo, line)
		}

		instr := tomasulo.Instruction{ID: nextID, Op: op}

		switch {
		case op.IsArithmetic():
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: %s requires dest, src1, and src2", lineNo, fields[0])
			}
			dest, err := tomasulo.ParseRegRef(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			src1, err := tomasulo.ParseRegRef(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			src2, err := tomasulo.ParseRegRef(fields[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			instr.Dest = dest
			instr.Src1 = src1
			instr.Src2 = src2
			instr.HasSrc2 = true

		case op == tomasulo.OpLoad:
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: LOAD requires dest and offset(base)", lineNo)
			}
			dest, err := tomasulo.ParseRegRef(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			instr.Dest = dest
			instr.AddrText = fields[2]

		case op == tomasulo.OpStore:
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: STORE requires src and offset(base)", lineNo)
			}
			// Grammar-wise this is the same "OP DEST ..." shape; for STORE
			// the token in the DEST position names the value being stored
			// (tomasulo.Instruction.Dest doc comment explains why).
			src, err := tomasulo.ParseRegRef(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			instr.Dest = src
			instr.AddrText = fields[2]
		}

		instrs = append(instrs, instr)
		nextID++
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	return instrs, nil
}

func splitFields(line string) []string {
	raw := strings.Fields(line)
	fields := make([]string, 0, len(raw))
	for _, f := range raw {
		fields = append(fields, strings.TrimSuffix(f, ","))
	}
	return fields
}
