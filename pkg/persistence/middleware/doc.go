// Package middleware wraps a ports.MachineStore with extra behavior, such as
// encrypting snapshots at rest.
package middleware
