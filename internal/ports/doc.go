// Package ports defines the interfaces (ports) that connect the lifecycle
// core to its external collaborators.
//
// Ports are the boundary between the controller and the outside world. They
// define what the core needs from the rendering surface and the timer
// facility without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Renderer]: Places, removes and hit-tests visual assets
//   - [Scheduler]: Arms and cancels one-shot growth timers
//
// The controller (internal/app) depends only on these interfaces. Adapters
// (internal/adapters) provide concrete implementations (wall-clock timers, a
// console rendering surface); tests substitute fakes.
package ports
