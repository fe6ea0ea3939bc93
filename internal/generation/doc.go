// Package generation defines the values exchanged with the presentation
// service: the immutable Request submitted for each generation, the Outcome
// of a successful one, and the label dictionaries used to render phase and
// slide layout names for a given language.
//
// Label lookups are total: every PhaseKind, LayoutKind and MessageKey maps to
// a display string, and kinds the dictionary does not know are passed through
// verbatim so a newer service never breaks an older client.
package generation
