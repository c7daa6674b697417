package validation

import (
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	// sniffLen is how many leading bytes are inspected to detect the real content type.
	sniffLen = 3072
	// zipSniffLen is the wider window used for zip containers. Office formats are told apart
	// by entry names that can sit behind a large [Content_Types].xml.
	zipSniffLen = 64 << 10
)

func init() {
	// mimetype truncates every input to its global limit, 3072 bytes unless raised.
	mimetype.SetLimit(zipSniffLen)
}

var (
	safeFilename = regexp.MustCompile(`^[\p{L}\p{N}_\-. ]+$`)

	allowedExtensions = map[string]bool{
		".pdf":  true,
		".docx": true,
		".pptx": true,
		".png":  true,
		".jpg":  true,
		".txt":  true,
	}

	// sniffed MIME type -> canonical extension
	mimeExtensions = []struct {
		mime string
		ext  string
	}{
		{"application/pdf", ".pdf"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
		{"application/vnd.openxmlformats-officedocument.presentationml.presentation", ".pptx"},
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"text/plain", ".txt"},
	}
)

// Content is what the content validator learned about an upload.
type Content struct {
	Extension   string
	ContentType string
	Size        int64
	PageCount   int
}

// ContentValidator checks an uploaded stream against size, name and type rules.
type ContentValidator struct {
	maxBytes int64
}

// NewContentValidator returns a validator enforcing the given size ceiling in bytes.
func NewContentValidator(maxBytes int64) *ContentValidator {
	return &ContentValidator{maxBytes: maxBytes}
}

// Validate inspects r and its claimed filename. declaredSize is the size reported by the transport;
// when it is zero or negative the stream is measured by seeking to its end. Only the leading bytes are
// read, and r is rewound to its start before returning so the caller can upload it.
func (v *ContentValidator) Validate(r io.ReadSeeker, filename string, declaredSize int64) (*Content, error) {
	size, err := v.measure(r, declaredSize)
	if err != nil {
		return nil, err
	}

	ext, err := checkFilename(filename)
	if err != nil {
		return nil, err
	}

	mt, err := sniff(r)
	if err != nil {
		return nil, err
	}
	sniffedExt, ok := extensionFor(mt)
	if !ok {
		return nil, &FieldError{Field: "file", Code: CodeContentMismatch,
			Message: fmt.Sprintf("file content %s is not an accepted format", mt.String())}
	}
	if sniffedExt != ext {
		return nil, &FieldError{Field: "file", Code: CodeContentMismatch,
			Message: fmt.Sprintf("file content is %s but the name claims %s", sniffedExt, ext)}
	}

	out := &Content{
		Extension:   sniffedExt,
		ContentType: contentTypeFor(sniffedExt),
		Size:        size,
	}
	if sniffedExt == ".pdf" {
		if ra, ok := r.(io.ReaderAt); ok {
			out.PageCount = pdfPageCount(ra, size)
		}
	}
	return out, nil
}

func (v *ContentValidator) measure(r io.ReadSeeker, declared int64) (int64, error) {
	size := declared
	if size <= 0 {
		end, err := r.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, fmt.Errorf("measure upload: %w", err)
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return 0, fmt.Errorf("rewind upload: %w", err)
		}
		size = end
	}
	if size == 0 {
		return 0, &FieldError{Field: "file", Code: CodeEmptyFile, Message: "file is empty"}
	}
	if v.maxBytes > 0 && size > v.maxBytes {
		return 0, &FieldError{Field: "file", Code: CodeTooLarge,
			Message: fmt.Sprintf("file too large, max upload size is %dMB", v.maxBytes/(1024*1024))}
	}
	return size, nil
}

func checkFilename(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &FieldError{Field: "file", Code: CodeMissingFilename, Message: "file must have a filename"}
	}
	if strings.Contains(name, "..") || !safeFilename.MatchString(name) {
		return "", &FieldError{Field: "file", Code: CodeUnsafeFilename, Message: "invalid file name"}
	}
	ext := strings.ToLower(path.Ext(name))
	if !allowedExtensions[ext] {
		return "", &FieldError{Field: "file", Code: CodeDisallowedExtension,
			Message: fmt.Sprintf("file type %q not allowed", ext)}
	}
	return ext, nil
}

func sniff(r io.ReadSeeker) (*mimetype.MIME, error) {
	head, err := readHead(r, sniffLen)
	if err != nil {
		return nil, err
	}
	mt := mimetype.Detect(head)
	if mt.Is("application/zip") && len(head) == sniffLen {
		if head, err = readHead(r, zipSniffLen); err != nil {
			return nil, err
		}
		mt = mimetype.Detect(head)
	}
	return mt, nil
}

// readHead reads up to limit leading bytes and rewinds r.
func readHead(r io.ReadSeeker, limit int) ([]byte, error) {
	head := make([]byte, limit)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read upload head: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	return head[:n], nil
}

func extensionFor(mt *mimetype.MIME) (string, bool) {
	for _, m := range mimeExtensions {
		if mt.Is(m.mime) {
			return m.ext, true
		}
	}
	return "", false
}

// contentTypeFor returns the canonical MIME type stored alongside an object with the given extension.
func contentTypeFor(ext string) string {
	for _, m := range mimeExtensions {
		if m.ext == ext {
			return m.mime
		}
	}
	return "application/octet-stream"
}

// pdfPageCount is best effort: malformed documents yield 0 rather than a rejection.
func pdfPageCount(ra io.ReaderAt, size int64) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	rd, err := pdf.NewReader(ra, size)
	if err != nil {
		return 0
	}
	return rd.NumPage()
}
