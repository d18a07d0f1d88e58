package roster

import (
	"path"
	"strings"
)

const (
	peopleDir     = "people"
	photoFileName = "photo.jpg"
	introFileName = "intro.txt"
)

// Assets are the per-person resource paths, relative to the resource root.
type Assets struct {
	Folder    string
	PhotoPath string
	IntroPath string
}

// FolderName converts a person's name to its asset folder: "Yan  Lu" -> "Yan_Lu".
// Names that differ only in whitespace share a folder.
func FolderName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// AssetsFor derives the photo and biography paths for name.
func AssetsFor(name string) Assets {
	folder := FolderName(name)
	return Assets{
		Folder:    folder,
		PhotoPath: path.Join(peopleDir, folder, photoFileName),
		IntroPath: path.Join(peopleDir, folder, introFileName),
	}
}
