// Package media converts attachments into displayable inline encodings.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"hash/fnv"
	"html"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

// MaxAttachmentBytes bounds a single uploaded image.
const MaxAttachmentBytes = 10 << 20

var (
	ErrEmptyAttachment   = errors.New("attachment is empty")
	ErrTooLarge          = errors.New("attachment is too large")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// Attachment is a file the user attached to a message.
type Attachment struct {
	Filename string
	Data     []byte
}

// InlineImage is decoded image data ready to be sent to a provider.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// EncodeAttachment sniffs the content type and returns a data URI.
func EncodeAttachment(a Attachment) (string, error) {
	if len(a.Data) == 0 {
		return "", ErrEmptyAttachment
	}
	if len(a.Data) > MaxAttachmentBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(a.Data))
	}
	mt := mimetype.Detect(a.Data)
	mime, ok := lo.Find(allowedImageTypes, func(t string) bool { return mt.Is(t) })
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
	}
	return DataURI(mime, a.Data), nil
}

// DataURI builds a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI decodes a base64 data URI. External URLs report false.
func ParseDataURI(uri string) (*InlineImage, bool) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, false
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mime == "" {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return &InlineImage{MIMEType: mime, Data: data}, true
}

var palette = []string{"#1a1a2e", "#16213e", "#0f3460", "#533483", "#e94560", "#2d6a4f", "#6c584c", "#3a0ca3"}

// InitialsPortrait renders a deterministic SVG placeholder with the name's initials.
func InitialsPortrait(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	bg := palette[h.Sum32()%uint32(len(palette))]

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256" viewBox="0 0 256 256">`+
		`<rect width="256" height="256" fill="%s"/>`+
		`<text x="50%%" y="50%%" dy=".35em" text-anchor="middle" font-family="sans-serif" font-size="104" fill="#dcdcdc">%s</text>`+
		`</svg>`, bg, html.EscapeString(Initials(name)))
	return DataURI("image/svg+xml", []byte(svg))
}

// Initials returns up to two upper-case initials, "?" for a blank name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
