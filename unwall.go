// Package unwall provides a CLI scraper for WAF-protected sites. It fetches
// documents through a browser-impersonating HTTP client and extracts
// structured records (Reddit threads, YouTube videos, generic articles)
// from markup whose schema drifts across site versions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, trafilatura/, sqlite/) or
// the concern they serve (reddit/, youtube/, scrape/, batch/).
package unwall
