package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"

	"github.com/GriffinCanCode/godisk/internal/remote"
)

const uploadField = "file"

// Upload accepts a script file and returns its text as UTF-8. Binary files
// are rejected; legacy encodings are transcoded.
func (h *Handlers) Upload(c *gin.Context) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}
	if h.tooLarge(c, int(fh.Size)) {
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.fail(c, err)
		return
	}

	script, err := DecodeScript(data)
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": fh.Filename,
		"script":   script,
		"commands": len(remote.Commands(script)),
	})
}

// DecodeScript validates that data is text and returns it as UTF-8
func DecodeScript(data []byte) (string, error) {
	if !isText(mimetype.Detect(data)) {
		return "", fmt.Errorf("not a text file: %s", mimetype.Detect(data).String())
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), nil
	}

	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", fmt.Errorf("detect encoding: %w", err)
	}
	r, err := charset.NewReaderLabel(best.Charset, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %s: %w", best.Charset, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("transcode %s: %w", best.Charset, err)
	}
	return string(out), nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
