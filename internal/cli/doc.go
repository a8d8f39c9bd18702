// Package cli implements the plansnapshot command line.
package cli
