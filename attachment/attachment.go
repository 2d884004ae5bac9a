package attachment

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
)

// Attachment is a binary artifact produced while rendering a document, such
// as a rasterized diagram.
type Attachment struct {
	Name      string
	Filename  string
	MimeType  string
	FileBytes []byte
	Checksum  string
	Width     string
	Height    string
}

type Attacher interface {
	Attach(Attachment)
}

// DataURI embeds the attachment contents into a data: URL.
func (a Attachment) DataURI() string {
	return "data:" + a.MimeType + ";base64," + base64.StdEncoding.EncodeToString(a.FileBytes)
}

// Save writes attachments into dir, skipping files whose checksum did not
// change since the previous run.
func Save(dir string, attachments []Attachment) error {
	if len(attachments) == 0 {
		return nil
	}

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return karma.Format(err, "unable to create attachments directory: %s", dir)
	}

	for _, attachment := range attachments {
		path := filepath.Join(dir, attachment.Filename)

		existing, err := os.ReadFile(path)
		if err == nil {
			checksum, err := GetChecksum(bytes.NewReader(existing))
			if err == nil && checksum == attachment.Checksum {
				log.Infof(nil, "keeping unmodified attachment: %q", attachment.Filename)
				continue
			}
		}

		log.Infof(nil, "writing attachment: %q", attachment.Filename)

		err = os.WriteFile(path, attachment.FileBytes, 0o644)
		if err != nil {
			return karma.Describe("path", path).Format(
				err,
				"unable to write attachment %q",
				attachment.Name,
			)
		}
	}

	return nil
}

func GetChecksum(reader io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, reader); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
