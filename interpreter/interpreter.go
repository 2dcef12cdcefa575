package interpreter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/LAK132/lox/ast"
	"github.com/LAK132/lox/token"
)

// TreeWalkInterpreter executes parsed statements and evaluates expressions.
// Locals holds the scope-distance annotations produced by a prior resolver
// pass (keyed by AST-node identity); a Variable/Assign/This/Super use absent
// from Locals is resolved against globals directly.
type TreeWalkInterpreter struct {
	globals     *Environment
	environment *Environment
	Locals      map[ast.Expression]int
}

// Make creates an instance of a "Tree-Walk Interpreter", with its global
// environment seeded with the native functions exposed to Lox programs.
func Make() *TreeWalkInterpreter {
	globals := MakeEnvironment()
	interp := &TreeWalkInterpreter{
		globals:     globals,
		environment: globals,
		Locals:      make(map[ast.Expression]int),
	}
	interp.defineNatives()
	return interp
}

// defineNatives installs the small set of host-provided functions available
// to every Lox program (e.g. "clock", used by benchmarks and tests to
// measure elapsed time without any language-level clock support).
func (i *TreeWalkInterpreter) defineNatives() {
	i.globals.define("clock", &NativeFunction{
		Name: "clock",
		Ar:   0,
		Fn: func(i *TreeWalkInterpreter, arguments []any) (any, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}

// Resolve records that the given expression occurrence resolves to a
// variable `depth` enclosing scopes up from where it appears. Called by the
// resolver pass before Interpret runs.
func (i *TreeWalkInterpreter) Resolve(expression ast.Expression, depth int) {
	i.Locals[expression] = depth
}

// Interpret executes a list of statements, returning the first runtime
// error encountered (unwound via panic/recover), or nil on success.
func (i *TreeWalkInterpreter) Interpret(statements []ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	i.executeStatements(statements)
	return nil
}

// executeStatements executes each statement by invoking its Accept method.
func (i *TreeWalkInterpreter) executeStatements(statements []ast.Stmt) {
	for _, s := range statements {
		i.executeStmt(s)
	}
}

// executeStmt executes the given AST node statement by invoking its Accept method,
// which calls the appropriate Visit method of the interpreter.
func (i *TreeWalkInterpreter) executeStmt(stmt ast.Stmt) {
	stmt.Accept(i)
}

// executeBlock runs statements inside env, restoring the interpreter's
// previous environment on every exit path (including a propagating panic).
func (i *TreeWalkInterpreter) executeBlock(statements []ast.Stmt, env *Environment) {
	previous := i.environment
	defer func() { i.environment = previous }()
	i.environment = env
	i.executeStatements(statements)
}

// VisitBlockStmt executes all statements in the given ast.BlockStmt within a
// new environment nested under the current one.
func (i *TreeWalkInterpreter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	i.executeBlock(blockStmt.Statements, MakeNestedEnvironment(i.environment))
	return nil
}

// VisitExpressionStmt visits an ExpressionStmt node.
// Evaluates the expression but does not return a value.
func (i *TreeWalkInterpreter) VisitExpressionStmt(exprStatement ast.ExpressionStmt) any {
	i.evaluate(exprStatement.Expression)
	return nil
}

// VisitIfStmt evaluates the condition of the given ast.IfStmt.
// If the condition evaluates to true (according to interpreter semantics),
// it executes the 'Then' branch. If an 'Else' branch is present and the
// condition is false, that branch is executed instead.
func (i *TreeWalkInterpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if i.isTrue(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Then)
	} else if stmt.Else != nil {
		i.executeStmt(stmt.Else)
	}
	return nil
}

// VisitWhileStmt repeatedly executes the body while the condition is truthy.
func (i *TreeWalkInterpreter) VisitWhileStmt(stmt ast.WhileStmt) any {
	for i.isTrue(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Body)
	}
	return nil
}

// VisitPrintStmt visits a PrintStmt node.
// Evaluates the expression and prints the result.
func (i *TreeWalkInterpreter) VisitPrintStmt(printStmt ast.PrintStmt) any {
	value := i.evaluate(printStmt.Expression)
	fmt.Println(stringify(value))
	return nil
}

// VisitVarStmt visits a VarStmt node.
// It evaluates the initialiser expression of the statement if it contains one
// and binds the name of the variable to its evaluated value (nil otherwise).
func (i *TreeWalkInterpreter) VisitVarStmt(varStmt ast.VarStmt) any {
	var value any = nil
	if varStmt.Initializer != nil {
		value = i.evaluate(varStmt.Initializer)
	}
	i.environment.define(varStmt.Name.Lexeme, value)
	return nil
}

// VisitFunctionStmt declares a named function, capturing the current
// environment as its closure so later calls see the lexical scope active
// at the point of declaration.
func (i *TreeWalkInterpreter) VisitFunctionStmt(stmt ast.FunctionStmt) any {
	function := &InterpretedFunction{Declaration: stmt, Closure: i.environment}
	i.environment.define(stmt.Name.Lexeme, function)
	return nil
}

// VisitReturnStmt evaluates the return value (if any) and propagates it via
// panic, to be recovered by the enclosing InterpretedFunction.Call.
func (i *TreeWalkInterpreter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	var value any
	if stmt.Value != nil {
		value = i.evaluate(stmt.Value)
	}
	panic(&returnSignal{value: value})
}

// VisitClassStmt declares a class: predeclares its name, wires up the
// optional superclass scope (exposing "super"), builds the method table in
// source order, and finally binds the constructed Type to its name.
func (i *TreeWalkInterpreter) VisitClassStmt(stmt ast.ClassStmt) any {
	var superclass *Type
	if stmt.Superclass != nil {
		value := i.evaluate(*stmt.Superclass)
		sc, ok := value.(*Type)
		if !ok {
			msg := "Superclass must be a class."
			panic(CreateRuntimeErrorAt(stmt.Superclass.Name, msg))
		}
		superclass = sc
	}

	i.environment.define(stmt.Name.Lexeme, nil)

	enclosingEnv := i.environment
	if stmt.Superclass != nil {
		enclosingEnv = MakeNestedEnvironment(i.environment)
		enclosingEnv.define("super", superclass)
	}

	methods := make(map[string]*InterpretedFunction, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = &InterpretedFunction{
			Declaration:   method,
			Closure:       enclosingEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	class := MakeType(stmt.Name.Lexeme, superclass, methods)
	if err := i.environment.assign(stmt.Name, class); err != nil {
		panic(err)
	}
	return nil
}

// VisitAssignExpression evaluates an assignment expression node and updates
// the value of the corresponding variable, using the resolver distance when
// one was recorded, otherwise assigning directly against globals.
func (i *TreeWalkInterpreter) VisitAssignExpression(assign ast.Assign) any {
	value := i.evaluate(assign.Value)
	if distance, ok := i.Locals[assign]; ok {
		i.environment.assignAt(distance, assign.Name, value)
	} else if err := i.globals.assign(assign.Name, value); err != nil {
		panic(err)
	}
	return value
}

// VisitLogicalExpression evaluates a short-circuiting "and"/"or" expression.
// The result is the last evaluated operand, not coerced to a boolean.
func (i *TreeWalkInterpreter) VisitLogicalExpression(logical ast.Logical) any {
	left := i.evaluate(logical.Left)

	if logical.Operator.TokenType == token.OR {
		if i.isTrue(left) {
			return left
		}
	} else {
		if !i.isTrue(left) {
			return left
		}
	}

	return i.evaluate(logical.Right)
}

// VisitCall evaluates the callee and arguments (left-to-right), then
// invokes the callee, enforcing arity and requiring a Callable target.
func (i *TreeWalkInterpreter) VisitCall(call ast.Call) any {
	callee := i.evaluate(call.Callee)

	arguments := make([]any, 0, len(call.Arguments))
	for _, argument := range call.Arguments {
		arguments = append(arguments, i.evaluate(argument))
	}

	callable, ok := callee.(Callable)
	if !ok {
		msg := "Can only call functions and classes."
		panic(CreateRuntimeErrorAt(call.Paren, msg))
	}

	if len(arguments) != callable.Arity() {
		msg := fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(arguments))
		panic(CreateRuntimeErrorAt(call.Paren, msg))
	}

	result, err := callable.Call(i, arguments)
	if err != nil {
		panic(err)
	}
	return result
}

// VisitGet reads a property off an instance, falling through to a bound
// method. Only instances have properties.
func (i *TreeWalkInterpreter) VisitGet(get ast.Get) any {
	object := i.evaluate(get.Object)
	instance, ok := object.(*Instance)
	if !ok {
		msg := "Only instances have properties."
		panic(CreateRuntimeErrorAt(get.Name, msg))
	}
	value, ok := instance.Get(get.Name.Lexeme)
	if !ok {
		msg := fmt.Sprintf("Undefined property '%s'.", get.Name.Lexeme)
		panic(CreateRuntimeErrorAt(get.Name, msg))
	}
	return value
}

// VisitSet assigns a property on an instance. Only instances have fields.
func (i *TreeWalkInterpreter) VisitSet(set ast.Set) any {
	object := i.evaluate(set.Object)
	instance, ok := object.(*Instance)
	if !ok {
		msg := "Only instances have fields."
		panic(CreateRuntimeErrorAt(set.Name, msg))
	}
	value := i.evaluate(set.Value)
	instance.Set(set.Name.Lexeme, value)
	return value
}

// VisitThis resolves the "this" keyword the same way as any other variable.
func (i *TreeWalkInterpreter) VisitThis(this ast.This) any {
	return i.lookUpVariable(this.Keyword, this)
}

// VisitSuper resolves "super.method": the enclosing method's "this" lives
// exactly one scope closer than "super" itself.
func (i *TreeWalkInterpreter) VisitSuper(super ast.Super) any {
	distance, ok := i.Locals[super]
	if !ok {
		msg := "Undefined 'super'."
		panic(CreateRuntimeErrorAt(super.Keyword, msg))
	}
	superclass := i.environment.getAt(distance, "super").(*Type)
	instance := i.environment.getAt(distance-1, "this").(*Instance)

	method, found := superclass.findMethod(super.Method.Lexeme)
	if !found {
		msg := fmt.Sprintf("Undefined property '%s'.", super.Method.Lexeme)
		panic(CreateRuntimeErrorAt(super.Method, msg))
	}
	return method.bind(instance)
}

// VisitBinary evaluates a binary expression node.
func (i *TreeWalkInterpreter) VisitBinary(binary ast.Binary) any {
	leftResult := i.evaluate(binary.Left)
	rightResult := i.evaluate(binary.Right)
	operator := binary.Operator.TokenType

	switch operator {
	case token.STAR:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue * rightValue

	case token.SLASH:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue / rightValue

	case token.MINUS:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue - rightValue

	case token.PLUS:
		leftValString, leftIsString := leftResult.(string)
		rightValString, rightIsString := rightResult.(string)
		if leftIsString && rightIsString {
			return leftValString + rightValString
		}
		leftValue, leftIsNumber := leftResult.(float64)
		rightValue, rightIsNumber := rightResult.(float64)
		if leftIsNumber && rightIsNumber {
			return leftValue + rightValue
		}
		message := "Operands must be two numbers or two strings."
		panic(CreateRuntimeErrorAt(binary.Operator, message))

	case token.EQUAL_EQUAL:
		return isEqual(leftResult, rightResult)

	case token.NOT_EQUAL:
		return !isEqual(leftResult, rightResult)

	case token.LARGER:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue > rightValue

	case token.LARGER_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue >= rightValue

	case token.LESS:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue < rightValue

	case token.LESS_EQUAL:
		leftValue, rightValue, err := isOperandsNumeric(operator, leftResult, rightResult, binary.Operator)
		if err != nil {
			panic(err)
		}
		return leftValue <= rightValue

	default:
		message := fmt.Sprintf("operator '%s' not supported", operator)
		panic(CreateRuntimeErrorAt(binary.Operator, message))
	}
}

// VisitUnary evaluates a unary expression node.
func (i *TreeWalkInterpreter) VisitUnary(unary ast.Unary) any {
	rightResult := i.evaluate(unary.Right)
	operator := unary.Operator.TokenType
	switch operator {
	case token.MINUS:
		r, ok := rightResult.(float64)
		if !ok {
			message := "Operand must be a number."
			panic(CreateRuntimeErrorAt(unary.Operator, message))
		}
		return -r
	case token.BANG:
		return !i.isTrue(rightResult)
	default:
		message := fmt.Sprintf("operator '%s' not supported for unary operations", operator)
		panic(CreateRuntimeErrorAt(unary.Operator, message))
	}
}

// isTrue determines the "truthiness" of the given object: nil and false are
// false, every other value (including 0 and "") is true.
func (i *TreeWalkInterpreter) isTrue(object any) bool {
	if object == nil {
		return false
	}
	if value, isBool := object.(bool); isBool {
		return value
	}
	return true
}

// isEqual implements structural equality, with cross-kind comparisons
// always false. Instance equality compares the containing Type by
// reference identity, not the instance itself.
func isEqual(left, right any) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	if li, ok := left.(*Instance); ok {
		ri, ok := right.(*Instance)
		return ok && li.Type == ri.Type
	}
	return left == right
}

// lookUpVariable resolves name at the distance recorded for expression, or
// falls back to the global environment when no distance was recorded
// (meaning the resolver treated this as a global reference).
func (i *TreeWalkInterpreter) lookUpVariable(name token.Token, expression ast.Expression) any {
	if distance, ok := i.Locals[expression]; ok {
		return i.environment.getAt(distance, name.Lexeme)
	}
	value, err := i.globals.get(name)
	if err != nil {
		panic(err)
	}
	return value
}

// VisitVariableExpression retrieves the value bound to a variable.
func (i *TreeWalkInterpreter) VisitVariableExpression(expression ast.Variable) any {
	return i.lookUpVariable(expression.Name, expression)
}

// VisitLiteral returns the value of a Literal node.
func (i *TreeWalkInterpreter) VisitLiteral(literal ast.Literal) any {
	return literal.Value
}

// VisitGrouping evaluates a Grouping expression by evaluating its inner expression.
func (i *TreeWalkInterpreter) VisitGrouping(grouping ast.Grouping) any {
	return i.evaluate(grouping.Expression)
}

// evaluate evaluates any expression node by invoking its Accept method
// with the Interpreter visitor.
func (i *TreeWalkInterpreter) evaluate(expression ast.Expression) any {
	return expression.Accept(i)
}

// stringify renders a value the way "print" displays it.
func stringify(value any) string {
	if value == nil {
		return "nil"
	}
	if number, ok := value.(float64); ok {
		text := strconv.FormatFloat(number, 'f', -1, 64)
		return text
	}
	return fmt.Sprintf("%v", value)
}

// isOperandsNumeric validates that both operands are numeric float64s.
func isOperandsNumeric(operator token.TokenType, left any, right any, tok token.Token) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if lok && rok {
		return l, r, nil
	}
	message := "Operands must be numbers."
	return 0, 0, CreateRuntimeErrorAt(tok, message)
}
