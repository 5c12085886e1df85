// Package linksum extracts readable article text from shared web links and
// hands it downstream for summarization. It classifies URLs for
// admissibility, runs a tiered extraction pipeline (static parse, then
// site-specific extractors, then a JavaScript-rendering fallback), sanitizes
// the result deterministically, and caches pending shares awaiting an
// explicit trigger.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, etree/).
package linksum
