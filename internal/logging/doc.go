// Package logging provides the structured logging interface shared by the
// orchestrator, the transport and the command-line front-ends. Components
// depend on the Logger interface, which zerolog backs.
package logging
