package backtest

import "fmt"

// LengthMismatchError reports a signal sequence whose length differs from the
// price series it was generated for. The engine never truncates or pads.
type LengthMismatchError struct {
	Bars    int
	Signals int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("signal sequence length %d does not match series length %d", e.Signals, e.Bars)
}

// SignalDomainError reports a signal value outside the allowed [-1, 1]
// position weight domain.
type SignalDomainError struct {
	Index int
	Value float64
}

func (e *SignalDomainError) Error() string {
	return fmt.Sprintf("signal domain violation at bar %d: value %g outside [-1, 1]", e.Index, e.Value)
}

// RuinError reports an equity curve driven to zero or below, which a short
// position does whenever the bar gains 100% or more. Ratio metrics are
// undefined on a non-positive curve, so the run fails instead of producing
// NaN downstream.
type RuinError struct {
	Index  int
	Equity float64
}

func (e *RuinError) Error() string {
	return fmt.Sprintf("equity ruined at bar %d: %g is not positive", e.Index, e.Equity)
}
