// Package registration builds the descriptor an instance registers with the
// service registry: the service entry (name, ID, address, port, tags, meta)
// and its optional health check.
//
// Everything here is a pure function of its inputs. Descriptors are built
// fresh for each registration attempt and never mutated afterwards.
package registration
