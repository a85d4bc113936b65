package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// zipArtifact deflates src into a single-entry archive at dst and returns the
// archive size in bytes.
func zipArtifact(fs afero.Fs, src, dst string) (int64, error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.Create(dst)
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(out)
	entry, err := zw.CreateHeader(&zip.FileHeader{
		Name:     filepath.Base(src),
		Method:   zip.Deflate,
		Modified: nowFunc(),
	})
	if err == nil {
		_, err = io.Copy(entry, in)
	}
	if err == nil {
		err = zw.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("compress %s: %w", src, err)
	}

	st, err := fs.Stat(dst)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}
