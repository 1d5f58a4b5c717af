// Package dynamo provides the numeric primitives shared by the circulation
// model, the integrators and the steady-state solver.
//
//   - [State]: ordered vector of compartment values (volumes or pressures)
//   - [System]: rate-of-change provider, dX/dt = f(P, t)
//   - [Integrator]: fixed-step numerical integrator
//
// # Example
//
//	model, _ := circulation.NewModel(circulation.DefaultParameters())
//	integ := integrators.NewRK4()
//	next := integ.Step(model, volumes, pressures, t, dt)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
package dynamo
