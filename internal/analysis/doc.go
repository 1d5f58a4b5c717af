// Package analysis derives read-only views from a converged cycle: valve
// opening and closing events and pressure-volume loop geometry.
package analysis
