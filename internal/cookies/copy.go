package cookies

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// snapshot copies a SQLite cookie database, together with its -wal and -shm
// companions when present, into a fresh temp directory so a running
// browser's lock never gets in the way. The caller must run cleanup.
func snapshot(srcPath string) (copied string, cleanup func(), err error) {
	tempDir, err := os.MkdirTemp("", "lotbump-cookies-*")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create temp directory: %w", err)
	}
	cleanup = func() {
		os.RemoveAll(tempDir)
	}

	copied = filepath.Join(tempDir, filepath.Base(srcPath))
	if err := copyFile(srcPath, copied); err != nil {
		cleanup()
		return "", nil, err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(srcPath + suffix); err == nil {
			_ = copyFile(srcPath+suffix, copied+suffix)
		}
	}
	return copied, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("cannot copy %s: %w", src, err)
	}
	return nil
}
