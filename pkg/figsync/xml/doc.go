// Package xml models the WordprocessingML parts of a .docx report that
// figure substitution needs to see: the document body, its paragraphs,
// runs, tables, section properties, and header and footer parts.
//
// The model is deliberately partial. Only the elements the substitution
// engine reads or rewrites are decoded into typed structs; everything
// else an authoring tool may have put into the document (bookmarks,
// proofing marks, drawings, field codes, revision data) is captured as
// raw XML and written back byte-compatibly on save. Documents round-trip
// without the package having to understand the full OOXML schema.
//
// Two rules keep replacement safe for formatting:
//
//   - Runs are never added or removed. Rewriting distributes new text
//     across the existing runs of a paragraph, so character styling
//     attached to a run survives.
//   - Unknown content keeps its document order. Custom UnmarshalXML
//     implementations walk the token stream element by element instead
//     of letting encoding/xml reorder children into struct fields.
//
// Parsing starts from ParseDocument or ParseHeaderFooter and
// serialization from SerializeDocument or SerializeHeaderFooter.
package xml
