package mojinamer

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"mojinamer/describer"
)

// LoadImage reads an image file fully into memory. Target images are small
// (~500x500px), so no streaming is needed. The MIME type is derived from the
// extension, matching how the payload is labelled on the wire.
func LoadImage(path string) (describer.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return describer.Image{}, fmt.Errorf("reading image: %w", err)
	}

	mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mt == "" {
		mt = "application/octet-stream"
	}

	return describer.Image{Data: data, MIME: mt}, nil
}
