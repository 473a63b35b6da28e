// Package problem generates arithmetic problems and tracks a single
// play-through as an explicit session value instead of shared mutable state.
package problem

import (
	"fmt"
	"math/rand/v2"

	"github.com/mathblitz/stats-api/internal/models"
)

// Problem is one generated question. Operands for add/mul are in [0,9],
// subtraction never goes negative, and division always has an exact integer
// quotient with a divisor in [1,9].
type Problem struct {
	Operation     models.Operation
	Operand1      int
	Operand2      int
	CorrectAnswer int
}

// Render returns the display form, e.g. "3 + 4 = ?".
func (p Problem) Render() string {
	sym := map[models.Operation]string{
		models.OpAdd: "+",
		models.OpSub: "-",
		models.OpMul: "×",
		models.OpDiv: "÷",
	}[p.Operation]
	return fmt.Sprintf("%d %s %d = ?", p.Operand1, sym, p.Operand2)
}

// Generator produces problems uniformly over its enabled operations.
type Generator struct {
	ops []models.Operation
	rng *rand.Rand
}

// NewGenerator builds a generator over the given operations. The set must be
// non-empty; a nil source selects the shared default.
func NewGenerator(ops []models.Operation, src rand.Source) (*Generator, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("at least one operation must be enabled")
	}
	for _, op := range ops {
		if !op.Valid() {
			return nil, fmt.Errorf("unknown operation %q", op)
		}
	}
	g := &Generator{ops: append([]models.Operation(nil), ops...)}
	if src != nil {
		g.rng = rand.New(src)
	}
	return g, nil
}

func (g *Generator) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Next generates one problem.
func (g *Generator) Next() Problem {
	op := g.ops[g.intN(len(g.ops))]

	switch op {
	case models.OpAdd:
		a, b := g.intN(10), g.intN(10)
		return Problem{Operation: op, Operand1: a, Operand2: b, CorrectAnswer: a + b}
	case models.OpSub:
		a := g.intN(10)
		b := g.intN(a + 1) // second operand <= first, result never negative
		return Problem{Operation: op, Operand1: a, Operand2: b, CorrectAnswer: a - b}
	case models.OpMul:
		a, b := g.intN(10), g.intN(10)
		return Problem{Operation: op, Operand1: a, Operand2: b, CorrectAnswer: a * b}
	default: // div: operand1 constructed as divisor * quotient
		divisor := g.intN(9) + 1
		quotient := g.intN(10)
		return Problem{Operation: op, Operand1: divisor * quotient, Operand2: divisor, CorrectAnswer: quotient}
	}
}
