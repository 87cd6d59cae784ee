// Package cli constructs the urisync command-line interface, wiring the Cobra
// root command, the layered configuration loader, structured logging and the
// propagation components that commit and push rewritten .gitmodules files.
package cli
