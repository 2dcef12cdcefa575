package compiler

import (
	"encoding/binary"
	"fmt"
)

// Bytecode is the instruction stream produced by either compiler in this
// package: the globals/locals/jumps/scopes extension (ASTCompiler, in
// ast_compiler.go) or the minimal single-pass Compiler (compiler.go). It is
// consumed by the VM in the vm package.
//
// Fields:
//   - Instructions: the flat stream of opcodes and their operands.
//   - ConstantsPool: every literal value emitted by OP_CONSTANT, indexed by
//     the instruction's operand.
//   - NameConstants: every global variable name declared, indexed by the
//     operand of OP_GET_GLOBAL/OP_SET_GLOBAL. Locals are addressed by stack
//     slot instead and have no entry here.
//   - Lines: the source line each byte of Instructions came from, same
//     length as Instructions. The VM consults Lines[ip] to anchor a runtime
//     error to the line of the opcode it was executing.
type Bytecode struct {
	Instructions  Instructions
	ConstantsPool []any
	NameConstants []string
	Lines         []int32
}

type Opcode byte

type Instructions []byte

// opcodes
// iota generates a distinct byte for each bytecode.
const (
	// OP_CONSTANT carries a 2-byte operand: the index of a value in the
	// constants pool. A uint16 operand addresses at most 65536 constants
	// (indices 0-65535).
	OP_CONSTANT Opcode = iota
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NEGATE
	OP_NOT
	OP_EQUALITY
	OP_NOT_EQUAL
	OP_LARGER
	OP_LARGER_EQUAL
	OP_LESS
	OP_LESS_EQUAL
	OP_AND
	OP_OR
	OP_PRINT
	OP_POP
	// OP_GET_GLOBAL/OP_SET_GLOBAL carry a 2-byte operand: the index of the
	// variable's name in NameConstants.
	OP_GET_GLOBAL
	OP_SET_GLOBAL
	// OP_GET_LOCAL/OP_SET_LOCAL carry a 2-byte operand: the slot index on
	// the VM's stack where the local variable lives.
	OP_GET_LOCAL
	OP_SET_LOCAL
	// OP_SCOPE_EXIT carries a 2-byte operand: how many locals to pop from
	// the VM's stack when a block scope ends.
	OP_SCOPE_EXIT
	// OP_JUMP/OP_JUMP_IF_FALSE carry a 2-byte operand: the absolute byte
	// offset in Instructions to jump to.
	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_END
	// OP_NIL, OP_TRUE and OP_FALSE push their literal with no operand.
	OP_NIL
	OP_TRUE
	OP_FALSE
	// OP_RETURN pops the top of the stack, prints it, and ends execution.
	// It is the minimal compiler's terminator (compiler.go), distinct from
	// the richer ASTCompiler's OP_END.
	OP_RETURN
)

// Byte widths used when walking the instruction stream.
const (
	OPCODE_TOTAL_BYTES            = 1
	THREE_BYTE_INSTRUCTION_LENGTH = 3
	OP_CONSTANT_TOTAL_BYTES       = THREE_BYTE_INSTRUCTION_LENGTH
)

// OpCodeDefinition describes an opcode's human-readable name and the byte
// width of each of its operands.
type OpCodeDefinition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*OpCodeDefinition{
	OP_CONSTANT:      {Name: "OP_CONSTANT", OperandWidths: []int{2}},
	OP_ADD:           {Name: "OP_ADD", OperandWidths: []int{}},
	OP_SUBTRACT:      {Name: "OP_SUBTRACT", OperandWidths: []int{}},
	OP_MULTIPLY:      {Name: "OP_MULTIPLY", OperandWidths: []int{}},
	OP_DIVIDE:        {Name: "OP_DIVIDE", OperandWidths: []int{}},
	OP_NEGATE:        {Name: "OP_NEGATE", OperandWidths: []int{}},
	OP_NOT:           {Name: "OP_NOT", OperandWidths: []int{}},
	OP_EQUALITY:      {Name: "OP_EQUALITY", OperandWidths: []int{}},
	OP_NOT_EQUAL:     {Name: "OP_NOT_EQUAL", OperandWidths: []int{}},
	OP_LARGER:        {Name: "OP_LARGER", OperandWidths: []int{}},
	OP_LARGER_EQUAL:  {Name: "OP_LARGER_EQUAL", OperandWidths: []int{}},
	OP_LESS:          {Name: "OP_LESS", OperandWidths: []int{}},
	OP_LESS_EQUAL:    {Name: "OP_LESS_EQUAL", OperandWidths: []int{}},
	OP_AND:           {Name: "OP_AND", OperandWidths: []int{}},
	OP_OR:            {Name: "OP_OR", OperandWidths: []int{}},
	OP_PRINT:         {Name: "OP_PRINT", OperandWidths: []int{}},
	OP_POP:           {Name: "OP_POP", OperandWidths: []int{}},
	OP_GET_GLOBAL:    {Name: "OP_GET_GLOBAL", OperandWidths: []int{2}},
	OP_SET_GLOBAL:    {Name: "OP_SET_GLOBAL", OperandWidths: []int{2}},
	OP_GET_LOCAL:     {Name: "OP_GET_LOCAL", OperandWidths: []int{2}},
	OP_SET_LOCAL:     {Name: "OP_SET_LOCAL", OperandWidths: []int{2}},
	OP_SCOPE_EXIT:    {Name: "OP_SCOPE_EXIT", OperandWidths: []int{2}},
	OP_JUMP:          {Name: "OP_JUMP", OperandWidths: []int{2}},
	OP_JUMP_IF_FALSE: {Name: "OP_JUMP_IF_FALSE", OperandWidths: []int{2}},
	OP_END:           {Name: "OP_END", OperandWidths: []int{}},
	OP_NIL:           {Name: "OP_NIL", OperandWidths: []int{}},
	OP_TRUE:          {Name: "OP_TRUE", OperandWidths: []int{}},
	OP_FALSE:         {Name: "OP_FALSE", OperandWidths: []int{}},
	OP_RETURN:        {Name: "OP_RETURN", OperandWidths: []int{}},
}

// Get looks up an opcode's definition.
func Get(op Opcode) (*OpCodeDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode: '%d' undefined", op)
	}
	return def, nil
}

// AssembleInstruction constructs a bytecode instruction from an opcode and
// its operands. Operands are encoded in Big-Endian order.
//
// The resulting byte slice always begins with the opcode, followed by each
// operand encoded according to its defined width. A 2-byte operand stores
// its most significant byte first.
//
// Example: AssembleInstruction(OP_CONSTANT, 65000) -> [OP_CONSTANT, 253, 232]
func AssembleInstruction(op Opcode, operands ...int) ([]byte, error) {
	def, err := Get(op)
	if err != nil {
		return nil, err
	}

	instructionLength := OPCODE_TOTAL_BYTES
	for _, width := range def.OperandWidths {
		instructionLength += width
	}

	instruction := make([]byte, instructionLength)
	instruction[0] = byte(op)

	byteOffset := OPCODE_TOTAL_BYTES
	for i, operand := range operands {
		width := def.OperandWidths[i]
		switch width {
		case 2:
			binary.BigEndian.PutUint16(instruction[byteOffset:], uint16(operand))
		}
		byteOffset += width
	}
	return instruction, nil
}

// DiassembleInstruction renders a single instruction (opcode plus however
// many operand bytes follow it) to a human-readable line.
func DiassembleInstruction(instruction []byte) (string, error) {
	op := Opcode(instruction[0])
	def, err := Get(op)
	if err != nil {
		return "", err
	}

	if len(def.OperandWidths) == 0 {
		return fmt.Sprintf("opcode: %s, operand: None, operand widths: 0 bytes", def.Name), nil
	}

	width := def.OperandWidths[0]
	operand := binary.BigEndian.Uint16(instruction[OPCODE_TOTAL_BYTES:])
	return fmt.Sprintf("opcode: %s, operand: %d, operand widths: %d bytes", def.Name, operand, width), nil
}
