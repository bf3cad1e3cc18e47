// storage/disk.go
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Resolver turns a request's uploaded files into retrievable URLs keyed by
// logical attachment name. Absent fields are simply omitted; a per-file
// failure is logged and skipped, never surfaced to the workflow.
type Resolver interface {
	Resolve(form *multipart.Form) map[string]string
}

// fieldTargets maps recognized upload field names (including legacy aliases)
// to the invoice attachment fields they fill. First match per target wins.
var fieldTargets = []struct{ field, target string }{
	{"logoName", "logoDataUrl"},
	{"stampName", "stampDataUrl"},
	{"signatureNameMeta", "signatureDataUrl"},
	{"logo", "logoDataUrl"},
	{"stamp", "stampDataUrl"},
	{"signature", "signatureDataUrl"},
}

// Disk stores uploads in a local directory served under /uploads.
type Disk struct {
	dir     string
	baseURL string
	log     zerolog.Logger
}

func NewDisk(dir, baseURL string, log zerolog.Logger) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{dir: dir, baseURL: baseURL, log: log}, nil
}

func (d *Disk) Resolve(form *multipart.Form) map[string]string {
	urls := make(map[string]string)
	if form == nil {
		return urls
	}
	for _, m := range fieldTargets {
		if _, done := urls[m.target]; done {
			continue
		}
		headers := form.File[m.field]
		if len(headers) == 0 {
			continue
		}
		name, err := d.save(headers[0])
		if err != nil {
			d.log.Warn().Err(err).Str("field", m.field).Msg("upload skipped")
			continue
		}
		urls[m.target] = d.baseURL + "/uploads/" + name
	}
	return urls
}

func (d *Disk) save(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("business-%d-%s%s",
		time.Now().UnixMilli(), uuid.NewString()[:8], filepath.Ext(header.Filename))

	dst, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}
