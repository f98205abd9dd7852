package dashboard

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sales-assistant/internal/workflow"
)

// OpenImage opens path as a workflow.File. The declared media type is sniffed
// from the content, falling back to the file extension.
// The caller closes the returned closer.
func OpenImage(path string) (workflow.File, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return workflow.File{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return workflow.File{}, nil, err
	}
	if info.IsDir() {
		f.Close()
		return workflow.File{}, nil, fmt.Errorf("%s is a directory", path)
	}

	var sniff [512]byte
	n, err := io.ReadFull(f, sniff[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		f.Close()
		return workflow.File{}, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return workflow.File{}, nil, fmt.Errorf("seek %s: %w", path, err)
	}

	return workflow.File{
		Name:        filepath.Base(path),
		ContentType: declaredType(path, sniff[:n]),
		Size:        info.Size(),
		Body:        f,
	}, f, nil
}

func declaredType(path string, head []byte) string {
	sniffed := http.DetectContentType(head)
	if sniffed != "application/octet-stream" {
		return strings.SplitN(sniffed, ";", 2)[0]
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return strings.SplitN(byExt, ";", 2)[0]
	}
	return sniffed
}
