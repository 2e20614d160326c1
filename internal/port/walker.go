package port

import "io"

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}
