package filename

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	ioutils "github.com/batchdl/batchdl/internal/io"
)

// sniffLen is how many leading body bytes are consumed when falling back to
// content-based extension detection.
const sniffLen = 3072

// env carries the contextual values a single synthesis pass draws from.
type env struct {
	baseName   string
	parsedName string
	index      int
	total      int
}

// replacers is the fixed, ordered list of placeholder substitutions. Each
// runs once against the string produced by the previous step, so a token
// introduced by an earlier substitution (say a literal "{uuid}" inside an
// extracted name) is never treated as a fresh placeholder by a later one.
var replacers = []func(env) func(string) string{
	replaceName,
	replaceIndex,
	replaceUUID,
	replaceHash,
	replaceSelector,
}

// Builder synthesizes filenames from a name pattern.
//
// The pattern may contain the placeholder tokens {name}, {index}, {uuid},
// {hash} and {selector}, substituted in that order:
//
//	b := filename.NewBuilder("{name}_{index}")
//	b.Build("https://x.test/report.pdf", "", 1, 3) // "report_1"
type Builder struct {
	pattern string
}

// NewBuilder creates a Builder for the given pattern. An empty pattern
// defaults to "{name}".
func NewBuilder(pattern string) *Builder {
	if pattern == "" {
		pattern = "{name}"
	}
	return &Builder{pattern: pattern}
}

// Build runs the placeholder substitutions against the pattern and returns
// the synthesized filename, without extension.
//
// The inputs map to tokens as follows:
//   - {name}: filename portion of the URL path, extension stripped
//   - {index}: job ordinal, zero-padded to ceil(log10(total)) digits
//   - {uuid}: a fresh random v4 identifier
//   - {hash}: SHA-256 hex of the pattern string as it stands after the
//     uuid step (a self-referential hash, not a content hash)
//   - {selector}: parsedName, possibly empty
//
// The result is sanitized for cross-platform filesystem use.
func (b *Builder) Build(rawURL, parsedName string, index, total int) string {
	e := env{
		baseName:   baseName(rawURL),
		parsedName: parsedName,
		index:      index,
		total:      total,
	}

	name := b.pattern
	for _, r := range replacers {
		name = r(e)(name)
	}

	return ioutils.SanitizeFileName(name)
}

func replaceName(e env) func(string) string {
	return func(s string) string {
		return replaceOnce(s, "{name}", e.baseName)
	}
}

func replaceIndex(e env) func(string) string {
	return func(s string) string {
		return replaceOnce(s, "{index}", fmt.Sprintf("%0*d", padWidth(e.total), e.index))
	}
}

func replaceUUID(env) func(string) string {
	return func(s string) string {
		return replaceOnce(s, "{uuid}", uuid.NewString())
	}
}

func replaceHash(env) func(string) string {
	return func(s string) string {
		sum := sha256.Sum256([]byte(s))
		return replaceOnce(s, "{hash}", hex.EncodeToString(sum[:]))
	}
}

func replaceSelector(e env) func(string) string {
	return func(s string) string {
		return replaceOnce(s, "{selector}", e.parsedName)
	}
}

// replaceOnce substitutes only the first occurrence, so each token is
// consumed at most once per pass.
func replaceOnce(s, token, value string) string {
	return strings.Replace(s, token, value, 1)
}

// padWidth returns the zero-padding width for {index}: enough digits to
// render total-1, i.e. ceil(log10(total)). A batch of one needs no padding.
func padWidth(total int) int {
	if total <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log10(float64(total))))
}

// baseName extracts the filename portion of the URL's path component,
// without directory and without extension. Unparseable URLs or URLs with no
// path yield an empty string.
func baseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}

	return strings.TrimSuffix(base, path.Ext(base))
}

// Extension resolves a file extension from response headers.
//
// The filename parameter of a Content-Disposition header wins; otherwise the
// Content-Type is mapped through the MIME database. The returned extension
// includes the leading dot and is lower-cased. ok is false when neither
// header yields a usable extension, in which case callers may fall back to
// SniffExtension.
func Extension(header http.Header) (ext string, ok bool) {
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if fn := params["filename"]; fn != "" {
				if ext := strings.ToLower(filepath.Ext(fn)); ext != "" {
					return ext, true
				}
			}
		}
	}

	if ct := header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil {
			if mt := mimetype.Lookup(mediaType); mt != nil && mt.Extension() != "" {
				return mt.Extension(), true
			}
		}
	}

	return "", false
}

// SniffExtension detects an extension from the leading bytes of body. It
// returns the detected extension (empty when the content is not recognized,
// so an unidentified file is saved without an extension rather than with a
// bare dot) and a reader that replays the consumed bytes ahead of the rest
// of the body.
func SniffExtension(body io.Reader) (string, io.Reader) {
	head := make([]byte, sniffLen)
	n, _ := io.ReadFull(body, head)

	rest := io.MultiReader(bytes.NewReader(head[:n]), body)
	return mimetype.Detect(head[:n]).Extension(), rest
}
