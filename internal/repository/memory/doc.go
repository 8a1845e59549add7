// Package memory holds map-backed repositories used by the memory storage
// mode and by service tests. Every repository is safe for concurrent use.
package memory
