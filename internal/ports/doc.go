// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure.
//
// # Port Interfaces
//
//   - [Dialer]: opens a connection to the syslog collector
//   - [Conn]: one open connection that sends frames
//   - [WatermarkRepository]: persists the directory-mode watermark
//   - [Scanner]: selects candidate files in a directory
//   - [Logger]: structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// The concrete implementations live in pkg/transport, pkg/state, pkg/scan
// and pkg/log, and tests substitute in-memory fakes.
package ports
