// Package folio resolves the media attached to portfolio projects.
//
// Each project owns an asset directory named after its slug
// (projects/<slug>/ under the public root). Resolver combines explicit
// frontmatter overrides with a convention scan of that directory and
// returns a Media bundle whose URLs are site-relative and
// percent-encoded, ready for the rendering layer.
//
// Resolution Precedence
//
// For every field the first non-empty source wins: the override from
// content metadata, then the convention scan, then the field fallback
// (the cover falls back to the first gallery image, everything else is
// absent). Resolve never fails. A missing or unreadable directory only
// produces an emptier bundle.
//
// Asset sources (filesystem, memory, S3) live under storage/ and
// implement AssetSource.
package folio
