// Package note turns recording candidates and their raw VTT transcript
// payloads into formatted Markdown documents and commits them to the
// document store.
//
// Filename derivation is deterministic over (topic, start time); a
// disambiguating numeric-id suffix is appended only when the plain path is
// already occupied. Documents consist of a frontmatter metadata block, a
// header, the attendee list and the transcript rendered as timestamped
// speaker entries.
package note
