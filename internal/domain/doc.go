// Package domain contains the core domain entities and value objects for grove.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (rendering, timers, logging) and
// contains only pure lifecycle logic.
//
// # Entities
//
//   - [Entity]: One placeable growing item (identity, assets, state, growth duration)
//   - [State] / [Event]: The lifecycle vocabulary
//   - [Transition]: The pure transition function over (State, Event)
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction except for controller-owned fields
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
