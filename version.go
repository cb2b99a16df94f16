// Package automata is the root of the finite automata workbench. The
// domain lives under domain/, the adapters under infrastructure/ and the
// command line under interfaces/cli.
package automata

// Version is the release of the workbench. It is reported by the version
// command and attached to traces as the service version.
const Version = "0.1.0"
