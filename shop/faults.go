package shop

import (
	"sync"

	ai "github.com/globomantics/agentlab"
)

// Op identifies a backend operation for fault injection.
type Op string

const (
	OpOrder  Op = "order"
	OpStock  Op = "stock"
	OpRefund Op = "refund"
)

// fault is a scripted failure for one operation/key pair.
type fault struct {
	code      string
	remaining int // -1 means fail forever
}

// FaultPlan injects transient failures into backend operations.
//
// A fault is keyed by operation and record ID, so "time out the first two
// lookups of ORD-67890" is a single line in a demonstration. Faults with a
// bounded count recover, which is how the retry-then-succeed scenario works.
type FaultPlan struct {
	mu     sync.Mutex
	faults map[string]*fault
}

// NewFaultPlan creates an empty fault plan.
func NewFaultPlan() *FaultPlan {
	return &FaultPlan{faults: make(map[string]*fault)}
}

// Fail scripts the next n calls of op for key to fail with the given fault
// code. Pass a negative n to fail every call.
func (p *FaultPlan) Fail(op Op, key, code string, n int) *FaultPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faults[string(op)+"/"+key] = &fault{code: code, remaining: n}
	return p
}

// Clear removes all scripted faults.
func (p *FaultPlan) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faults = make(map[string]*fault)
}

// check consumes one scripted failure, if any, and returns its error.
func (p *FaultPlan) check(op Op, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, ok := p.faults[string(op)+"/"+key]
	if !ok || f.remaining == 0 {
		return nil
	}
	if f.remaining > 0 {
		f.remaining--
	}
	return faultError(f.code)
}

// faultError maps a fault code to its categorized error.
func faultError(code string) error {
	switch code {
	case ai.CodeTimeout:
		return ai.NewTransientError("Request timed out", ai.CodeTimeout, nil)
	case ai.CodeRateLimit:
		return ai.NewTransientError("Too many requests", ai.CodeRateLimit, nil)
	case ai.CodeServiceUnavailable:
		return ai.NewTransientError("Service temporarily unavailable", ai.CodeServiceUnavailable, nil)
	default:
		return ai.NewPermanentError("Simulated failure: "+code, code, nil)
	}
}
