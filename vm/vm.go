package vm

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/LAK132/lox/compiler"
)

// VM is a stack based virtual-machine (VM). It is the runtime environment
// where Lox bytecode gets executed, for both the richer ASTCompiler
// extension (terminated by OP_END) and the minimal single-pass compiler
// (terminated by OP_RETURN).
type VM struct {
	stack   Stack
	ip      int
	globals map[string]any
	debug   bool
}

// New creates a new VM instance.
func New() *VM {
	return &VM{globals: make(map[string]any), debug: true}
}

// Run executes the provided bytecode on the virtual machine.
//
// It fetches and decodes each instruction starting at the VM's current
// instruction pointer (ip), processes the instruction based on its opcode,
// and modifies the VM's state accordingly (e.g. pushing constants onto the
// stack, branching, mutating a variable's slot).
//
// Execution terminates normally when OP_END (the ASTCompiler extension's
// terminator) or OP_RETURN (the minimal compiler's terminator) is reached.
// A type mismatch in an arithmetic, comparison or unary opcode surfaces as
// a RuntimeError anchored to the offending instruction's source line. An
// unknown opcode, or a stack over/underflow from a miscompiled chunk,
// surfaces as a DeveloperError: a programmer invariant violation, not
// something a Lox program can trigger by itself.
func (vm *VM) Run(bytecode compiler.Bytecode) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case RuntimeError:
				err = v
			case DeveloperError:
				err = v
			default:
				err = DeveloperError{Message: fmt.Sprintf("%v", v)}
			}
		}
	}()

	vm.ip = 0
	for {
		opIP := vm.ip
		opCode := compiler.Opcode(bytecode.Instructions[vm.ip])
		instructionLength := compiler.OPCODE_TOTAL_BYTES

		switch opCode {
		case compiler.OP_END:
			return nil

		case compiler.OP_RETURN:
			value := vm.stack.Pop()
			fmt.Println(stringify(value))
			return nil

		case compiler.OP_CONSTANT:
			operand := vm.readOperand(bytecode, vm.ip)
			vm.stack.Push(bytecode.ConstantsPool[operand])
			instructionLength = compiler.OP_CONSTANT_TOTAL_BYTES

		case compiler.OP_NIL:
			vm.stack.Push(nil)
		case compiler.OP_TRUE:
			vm.stack.Push(true)
		case compiler.OP_FALSE:
			vm.stack.Push(false)

		case compiler.OP_ADD, compiler.OP_SUBTRACT, compiler.OP_MULTIPLY, compiler.OP_DIVIDE,
			compiler.OP_LARGER, compiler.OP_LESS:
			right := vm.stack.Pop()
			left := vm.stack.Pop()
			l, r, ok := numericOperands(left, right)
			if !ok {
				panic(RuntimeError{Line: bytecode.Lines[opIP], Message: "Operands must be numbers."})
			}
			switch opCode {
			case compiler.OP_ADD:
				vm.stack.Push(l + r)
			case compiler.OP_SUBTRACT:
				vm.stack.Push(l - r)
			case compiler.OP_MULTIPLY:
				vm.stack.Push(l * r)
			case compiler.OP_DIVIDE:
				vm.stack.Push(l / r)
			case compiler.OP_LARGER:
				vm.stack.Push(l > r)
			case compiler.OP_LESS:
				vm.stack.Push(l < r)
			}

		case compiler.OP_LARGER_EQUAL:
			right := vm.stack.Pop()
			left := vm.stack.Pop()
			l, r, ok := numericOperands(left, right)
			if !ok {
				panic(RuntimeError{Line: bytecode.Lines[opIP], Message: "Operands must be numbers."})
			}
			vm.stack.Push(l >= r)

		case compiler.OP_LESS_EQUAL:
			right := vm.stack.Pop()
			left := vm.stack.Pop()
			l, r, ok := numericOperands(left, right)
			if !ok {
				panic(RuntimeError{Line: bytecode.Lines[opIP], Message: "Operands must be numbers."})
			}
			vm.stack.Push(l <= r)

		case compiler.OP_EQUALITY:
			right := vm.stack.Pop()
			left := vm.stack.Pop()
			vm.stack.Push(isEqual(left, right))

		case compiler.OP_NOT_EQUAL:
			right := vm.stack.Pop()
			left := vm.stack.Pop()
			vm.stack.Push(!isEqual(left, right))

		case compiler.OP_NOT:
			value := vm.stack.Pop()
			vm.stack.Push(!isTruthy(value))

		case compiler.OP_NEGATE:
			value := vm.stack.Peek()
			number, ok := value.(float64)
			if !ok {
				panic(RuntimeError{Line: bytecode.Lines[opIP], Message: "Operand must be a number."})
			}
			vm.stack.Pop()
			vm.stack.Push(-number)

		case compiler.OP_AND:
			right := vm.stack.Pop()
			left := vm.stack.Pop()
			vm.stack.Push(isTruthy(left) && isTruthy(right))

		case compiler.OP_OR:
			right := vm.stack.Pop()
			left := vm.stack.Pop()
			vm.stack.Push(isTruthy(left) || isTruthy(right))

		case compiler.OP_PRINT:
			value := vm.stack.Pop()
			fmt.Println(stringify(value))

		case compiler.OP_POP:
			vm.stack.Pop()

		case compiler.OP_GET_GLOBAL:
			operand := vm.readOperand(bytecode, vm.ip)
			name := bytecode.NameConstants[operand]
			value, ok := vm.globals[name]
			if !ok {
				panic(RuntimeError{Line: bytecode.Lines[opIP], Message: fmt.Sprintf("Undefined variable '%s'.", name)})
			}
			vm.stack.Push(value)
			instructionLength = compiler.THREE_BYTE_INSTRUCTION_LENGTH

		case compiler.OP_SET_GLOBAL:
			operand := vm.readOperand(bytecode, vm.ip)
			name := bytecode.NameConstants[operand]
			vm.globals[name] = vm.stack.Peek()
			instructionLength = compiler.THREE_BYTE_INSTRUCTION_LENGTH

		case compiler.OP_GET_LOCAL:
			operand := vm.readOperand(bytecode, vm.ip)
			vm.stack.Push(vm.stack.GetAt(int(operand)))
			instructionLength = compiler.THREE_BYTE_INSTRUCTION_LENGTH

		case compiler.OP_SET_LOCAL:
			operand := vm.readOperand(bytecode, vm.ip)
			vm.stack.SetAt(int(operand), vm.stack.Peek())
			instructionLength = compiler.THREE_BYTE_INSTRUCTION_LENGTH

		case compiler.OP_SCOPE_EXIT:
			operand := vm.readOperand(bytecode, vm.ip)
			vm.stack.PopN(int(operand))
			instructionLength = compiler.THREE_BYTE_INSTRUCTION_LENGTH

		case compiler.OP_JUMP:
			operand := vm.readOperand(bytecode, vm.ip)
			vm.ip = int(operand)
			continue

		case compiler.OP_JUMP_IF_FALSE:
			operand := vm.readOperand(bytecode, vm.ip)
			if !isTruthy(vm.stack.Peek()) {
				vm.ip = int(operand)
				continue
			}
			instructionLength = compiler.THREE_BYTE_INSTRUCTION_LENGTH

		default:
			return DeveloperError{Message: fmt.Sprintf("unknown opcode %v at ip %d", opCode, vm.ip)}
		}

		vm.ip += instructionLength
	}
}

// readOperand decodes the 2-byte big-endian operand following the opcode
// byte at ip.
func (vm *VM) readOperand(bytecode compiler.Bytecode, ip int) uint16 {
	start := ip + compiler.OPCODE_TOTAL_BYTES
	return binary.BigEndian.Uint16(bytecode.Instructions[start:])
}

// numericOperands reports whether both values are float64s, returning them
// unwrapped when they are.
func numericOperands(left, right any) (float64, float64, bool) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	return l, r, lok && rok
}

// isTruthy determines the "truthiness" of a value: nil and false are
// false, every other value (including 0) is true.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual implements structural equality, matching the tree-walking
// interpreter's rules: nil equals only nil, and cross-kind comparisons are
// always false.
func isEqual(left, right any) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	return left == right
}

// stringify renders a Lox value the way OP_PRINT/OP_RETURN display it:
// numbers without a forced decimal point, nil as "nil", booleans as
// "true"/"false".
func stringify(value any) string {
	if value == nil {
		return "nil"
	}
	if number, ok := value.(float64); ok {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", value)
}
