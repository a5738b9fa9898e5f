package filesystem

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// NewOSFS returns a filesystem over the host filesystem that accepts
// absolute paths.
func NewOSFS() billy.Filesystem {
	return osfs.New("/")
}

// CommonDirectories returns the user's download, document and media
// directories, a DCIM folder under home, and home itself. Directories that
// do not exist are left out.
func CommonDirectories(fsys billy.Filesystem, home string) []string {
	candidates := []string{
		xdg.UserDirs.Download,
		xdg.UserDirs.Documents,
		filepath.Join(home, "DCIM"),
		xdg.UserDirs.Pictures,
		xdg.UserDirs.Videos,
		xdg.UserDirs.Music,
		home,
	}

	seen := make(map[string]bool)
	dirs := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true

		info, err := fsys.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}
