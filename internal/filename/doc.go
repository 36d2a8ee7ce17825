// Package filename synthesizes output filenames from a configurable name
// pattern and resolves file extensions from HTTP response metadata.
//
// # Placeholders
//
// A pattern mixes literal text with placeholder tokens, each substituted at
// most once per pass, in a fixed order:
//
//	{name}     filename portion of the URL path (no extension)
//	{index}    job ordinal, zero-padded to the batch size
//	{uuid}     fresh random v4 identifier per job
//	{hash}     SHA-256 hex of the partially-resolved name itself
//	{selector} display name extracted from the input entry
//
// # Extension resolution
//
// Extensions come, in order of preference, from the Content-Disposition
// filename, from the Content-Type via the MIME database, or from sniffing
// the first bytes of the body:
//
//	ext, ok := filename.Extension(resp.Header)
//	if !ok {
//	    ext, body = filename.SniffExtension(body)
//	}
//
// Unrecognized content yields no extension at all, never a bare dot.
package filename
