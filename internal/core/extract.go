package core

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractArchive unpacks a tar.gz or zip archive into dest.
func extractArchive(src, dest, format string) error {
	switch format {
	case "tar.gz":
		return extractTarGz(src, dest)
	case "zip":
		return extractZip(src, dest)
	default:
		return fmt.Errorf("unsupported archive format %q", format)
	}
}

func extractTarGz(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := mkdirUnder(dest, target); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(dest, target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := checkLinkTarget(dest, target, hdr.Linkname); err != nil {
				return err
			}
			if err := mkdirUnder(dest, filepath.Dir(target)); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink %s: %w", hdr.Name, err)
			}
		case tar.TypeXGlobalHeader:
			// pax metadata, nothing to write.
		default:
			return fmt.Errorf("archive entry %q has unsupported type %q", hdr.Name, string(hdr.Typeflag))
		}
	}
}

func extractZip(src, dest string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		target, err := safeJoin(dest, zf.Name)
		if err != nil {
			return err
		}
		mode := zf.Mode()
		if mode.IsDir() {
			if err := mkdirUnder(dest, target); err != nil {
				return err
			}
			continue
		}
		if !mode.IsRegular() {
			return fmt.Errorf("archive entry %q has unsupported mode %v", zf.Name, mode)
		}
		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", zf.Name, err)
		}
		err = writeEntry(dest, target, rc, mode.Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(root, target string, r io.Reader, perm os.FileMode) error {
	if err := mkdirUnder(root, filepath.Dir(target)); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return out.Close()
}

// mkdirUnder creates dir and any missing parents below root. Existing
// symlinks on the way are refused, so a link extracted earlier cannot
// redirect later entries out of root.
func mkdirUnder(root, dir string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || !withinDir(root, dir) {
		return fmt.Errorf("%s escapes the extraction directory", dir)
	}
	if rel == "." {
		return nil
	}
	cur := root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		info, err := os.Lstat(cur)
		switch {
		case os.IsNotExist(err):
			if err := os.Mkdir(cur, 0o755); err != nil {
				return err
			}
		case err != nil:
			return err
		case info.Mode()&os.ModeSymlink != 0:
			return fmt.Errorf("archive path %s passes through a symlink", cur)
		case !info.IsDir():
			return fmt.Errorf("archive path %s is not a directory", cur)
		}
	}
	return nil
}

// safeJoin joins an archive entry name onto root, rejecting names that
// would land outside it.
func safeJoin(root, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	target := filepath.Join(root, filepath.FromSlash(name))
	if !withinDir(root, target) {
		return "", fmt.Errorf("archive entry %q escapes the extraction directory", name)
	}
	return target, nil
}

func checkLinkTarget(root, link, dest string) error {
	if filepath.IsAbs(dest) {
		return fmt.Errorf("symlink %s points to absolute path %q", link, dest)
	}
	resolved := filepath.Join(filepath.Dir(link), filepath.FromSlash(dest))
	if !withinDir(root, resolved) {
		return fmt.Errorf("symlink %s points outside the extraction directory", link)
	}
	return nil
}

func withinDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
