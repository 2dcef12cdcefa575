// Package resolver implements the static analysis pass that runs between
// parsing and evaluation. It walks the AST once, computing, for every
// variable/assignment/this/super occurrence, the number of enclosing
// lexical scopes to skip to find its binding — work the tree-walking
// evaluator would otherwise have to redo dynamically on every access.
package resolver

import (
	"fmt"

	"github.com/LAK132/lox/ast"
	"github.com/LAK132/lox/token"
)

// functionKind tracks what kind of function body (if any) is currently
// being resolved, used to validate "return" and "this" usage.
type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkMethod
	fkInitializer
)

// classKind tracks what kind of class body (if any) is currently being
// resolved, used to validate "this" and "super" usage.
type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

// ResolveError reports a semantic misuse of scope or keywords (e.g. reading
// a local in its own initializer, "return" outside a function). Unlike scan
// and parse errors, resolution is fail-fast at the caller's discretion, but
// the resolver itself still accumulates every error it finds in one pass.
type ResolveError struct {
	Token   token.Token
	Message string
}

func (e ResolveError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Token.Line, e.Message)
}

// DiagnosticInfo implements diagnostics.Positioned.
func (e ResolveError) DiagnosticInfo() (int32, *token.Token, string) {
	tok := e.Token
	return tok.Line, &tok, e.Message
}

// Resolver performs the static scope-resolution pass. Resolve returns a map
// from AST-node identity to scope distance, to be handed to the
// interpreter via TreeWalkInterpreter.Resolve before evaluation begins.
type Resolver struct {
	scopes          []map[string]bool
	currentFunction functionKind
	currentClass    classKind
	locals          map[ast.Expression]int
	errors          []error
}

// New creates a Resolver ready to resolve a fresh program.
func New() *Resolver {
	return &Resolver{
		locals: make(map[ast.Expression]int),
	}
}

// Resolve walks the given statements, returning the accumulated scope
// distances and any resolution errors encountered.
func (r *Resolver) Resolve(statements []ast.Stmt) (map[ast.Expression]int, []error) {
	r.resolveStatements(statements)
	return r.locals, r.errors
}

func (r *Resolver) resolveStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	expr.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) reportError(tok token.Token, message string) {
	r.errors = append(r.errors, ResolveError{Token: tok, Message: message})
}

// declare marks name as present in the innermost scope but not yet ready
// to be read (distinguishes "var a = a;" as a self-reference error).
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.reportError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as fully initialised in the innermost scope.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal records, for expression, the distance from the innermost
// scope to the one declaring name, if any local scope declares it.
func (r *Resolver) resolveLocal(expression ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expression] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope: treated as a global, no distance recorded.
}

func (r *Resolver) resolveFunction(stmt ast.FunctionStmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range stmt.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(stmt.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// --- Stmt visitor ---

func (r *Resolver) VisitBlockStmt(stmt ast.BlockStmt) any {
	r.beginScope()
	r.resolveStatements(stmt.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitVarStmt(stmt ast.VarStmt) any {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		r.resolveExpr(stmt.Initializer)
	}
	r.define(stmt.Name)
	return nil
}

func (r *Resolver) VisitFunctionStmt(stmt ast.FunctionStmt) any {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, fkFunction)
	return nil
}

func (r *Resolver) VisitExpressionStmt(stmt ast.ExpressionStmt) any {
	r.resolveExpr(stmt.Expression)
	return nil
}

func (r *Resolver) VisitIfStmt(stmt ast.IfStmt) any {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Then)
	if stmt.Else != nil {
		r.resolveStmt(stmt.Else)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(stmt ast.PrintStmt) any {
	r.resolveExpr(stmt.Expression)
	return nil
}

func (r *Resolver) VisitReturnStmt(stmt ast.ReturnStmt) any {
	if r.currentFunction == fkNone {
		r.reportError(stmt.Keyword, "Can't return from top-level code.")
	}
	if stmt.Value != nil {
		if r.currentFunction == fkInitializer {
			r.reportError(stmt.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(stmt.Value)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(stmt ast.WhileStmt) any {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Body)
	return nil
}

func (r *Resolver) VisitClassStmt(stmt ast.ClassStmt) any {
	enclosingClass := r.currentClass
	r.currentClass = ckClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.reportError(stmt.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = ckSubclass
			r.resolveExpr(*stmt.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.Methods {
		kind := fkMethod
		if method.Name.Lexeme == "init" {
			kind = fkInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

// --- Expression visitor ---

func (r *Resolver) VisitVariableExpression(expr ast.Variable) any {
	if len(r.scopes) != 0 {
		if declared, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !declared {
			r.reportError(expr.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil
}

func (r *Resolver) VisitAssignExpression(expr ast.Assign) any {
	r.resolveExpr(expr.Value)
	r.resolveLocal(expr, expr.Name)
	return nil
}

func (r *Resolver) VisitBinary(expr ast.Binary) any {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitUnary(expr ast.Unary) any {
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitLiteral(expr ast.Literal) any {
	return nil
}

func (r *Resolver) VisitGrouping(expr ast.Grouping) any {
	r.resolveExpr(expr.Expression)
	return nil
}

func (r *Resolver) VisitLogicalExpression(expr ast.Logical) any {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitCall(expr ast.Call) any {
	r.resolveExpr(expr.Callee)
	for _, argument := range expr.Arguments {
		r.resolveExpr(argument)
	}
	return nil
}

func (r *Resolver) VisitGet(expr ast.Get) any {
	r.resolveExpr(expr.Object)
	return nil
}

func (r *Resolver) VisitSet(expr ast.Set) any {
	r.resolveExpr(expr.Value)
	r.resolveExpr(expr.Object)
	return nil
}

func (r *Resolver) VisitThis(expr ast.This) any {
	if r.currentClass == ckNone {
		r.reportError(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil
}

func (r *Resolver) VisitSuper(expr ast.Super) any {
	if r.currentClass == ckNone {
		r.reportError(expr.Keyword, "Can't use 'super' outside of a class.")
	} else if r.currentClass != ckSubclass {
		r.reportError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil
}
