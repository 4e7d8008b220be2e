// Package review implements the interactive suggestion review: the writer
// composes text, submits it for completion, then steps through the returned
// suggestions accepting or keeping the original for each.
//
// # Modes
//
// The model moves through four modes:
//
//	compose → submitting → reviewing → summary
//
// A failed submission returns to compose with the error shown under the
// editor. From reviewing and summary, "e" returns to compose with the current
// document text so it can be edited and submitted again.
//
// # Rendering
//
// Key handlers only call navigator operations; the document and suggestion
// panel are re-rendered from the navigator's Snapshot and Current view after
// every change. The located target region is highlighted, and annotations
// inside it are styled by kind (see markStyle).
package review
