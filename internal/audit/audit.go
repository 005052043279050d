// Package audit persists discarded paragraph tails for later review.
//
// Tails are excluded from the corpus but never thrown away: each language's
// tail is written under <dir>/<document>/<code>.txt, and a whole run's
// discarded output can be packed into a single xz-compressed tar archive.
package audit

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"coalign/core/errors"
	"coalign/core/para"
	"coalign/internal/fileutil"
	"coalign/internal/validation"
)

// WriteTails writes the non-empty discarded tails of one document set under
// dir. Languages with no discarded paragraphs produce no file.
func WriteTails(dir, docID string, discarded map[para.Language][]para.RawParagraph) error {
	safeID, err := validation.SanitizeFilename(filepath.Base(docID))
	if err != nil {
		return errors.Wrapf(err, "unsafe document ID %q", docID)
	}
	if parent := filepath.Dir(docID); parent != "." {
		safeID = filepath.Join(parent, safeID)
	}

	for _, lang := range para.Languages() {
		tail := discarded[lang]
		if len(tail) == 0 {
			continue
		}
		path := filepath.Join(dir, safeID, lang.String()+".txt")
		if err := fileutil.WriteLines(path, para.Texts(tail)); err != nil {
			return err
		}
	}
	return nil
}

// ArchiveDir packs dir into an xz-compressed tar archive at outPath. Entry
// names are relative to dir. A missing or empty directory produces an
// archive with no entries.
func ArchiveDir(dir, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return errors.NewIO("create", outPath, err)
	}
	defer out.Close()

	xzw, err := xz.NewWriter(out)
	if err != nil {
		return errors.Wrap(err, "creating xz writer")
	}
	tw := tar.NewWriter(xzw)

	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		return errors.Wrapf(walkErr, "archiving %s", dir)
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, "closing tar writer")
	}
	if err := xzw.Close(); err != nil {
		return errors.Wrap(err, "closing xz writer")
	}
	return nil
}

// ReadArchive lists the entry names of an audit archive, for verification.
func ReadArchive(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	xzr, err := xz.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "creating xz reader")
	}

	var names []string
	tr := tar.NewReader(xzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading archive %s", path)
		}
		names = append(names, hdr.Name)
	}
	return names, nil
}
