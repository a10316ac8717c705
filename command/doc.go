// Package command implements typed command dispatch: a fixed set of
// editing commands, and a priority-ordered listener registry that lets
// multiple concerns (a toolbar plugin, a markdown auto-formatter, the
// editor's own default handling) all react to the same command without
// hard-wiring to each other. A listener that returns handled=true stops
// the walk; lower-priority listeners never see the command.
package command
