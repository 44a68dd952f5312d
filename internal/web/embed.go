package web

import (
	"embed"
	"io/fs"
	"path"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// subFS serves the files below dir of an embed.FS, so template names carry no
// "templates/" prefix.
type subFS struct {
	content embed.FS
	dir     string
}

// Open implements fs.FS.
func (s subFS) Open(name string) (fs.File, error) {
	return s.content.Open(path.Join(s.dir, name))
}
