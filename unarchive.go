// unarchive.go
package main

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts a supported archive next to it and removes the
// original. Returns "" when the file is not an archive.
func unpackArchive(filePath string) (string, error) {
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackStreamArchive(filePath, ".gz", func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackStreamArchive(filePath, ".lz4", func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return "", nil
}

// unpackZipArchive extracts the largest member, spreadsheets travel with
// junk like __MACOSX entries.
func unpackZipArchive(filePath string) (string, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	var largestFile *zip.File
	var largestSize uint64
	for _, member := range archive.File {
		if member.FileInfo().IsDir() {
			continue
		}
		if member.UncompressedSize64 > largestSize {
			largestFile = member
			largestSize = member.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", nil
	}

	destPath := filepath.Join(filepath.Dir(filePath), filepath.Base(largestFile.Name))
	reader, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	if err := writeStream(destPath, reader); err != nil {
		return "", err
	}
	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func unpackStreamArchive(filePath, ext string, wrap func(io.Reader) (io.Reader, error)) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader, err := wrap(file)
	if err != nil {
		return "", err
	}

	destPath := strings.TrimSuffix(filePath, ext)
	if err := writeStream(destPath, reader); err != nil {
		return "", err
	}
	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return destPath, nil
}

func writeStream(destPath string, reader io.Reader) error {
	outFile, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	_, err = io.Copy(outFile, reader)
	return err
}
