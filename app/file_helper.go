package app

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

// StdinPath is the path argument that reads source from standard input
const StdinPath = "-"

// CollectOptions controls which files are collected from directories
type CollectOptions struct {
	Recursive        bool
	RespectGitignore bool
	IncludePatterns  []string
	ExcludePatterns  []string
}

// FileHelper provides file operation utilities
type FileHelper struct {
	fs afero.Fs
}

// NewFileHelper creates a FileHelper over the real filesystem
func NewFileHelper() *FileHelper {
	return NewFileHelperWithFs(afero.NewOsFs())
}

// NewFileHelperWithFs creates a FileHelper over fs
func NewFileHelperWithFs(fs afero.Fs) *FileHelper {
	return &FileHelper{fs: fs}
}

// CollectPythonFiles expands paths into Python files. Explicit files are
// kept when they are Python sources and not excluded; directories are
// scanned with the include, exclude and .gitignore rules. Results keep
// argument order and contain no duplicates.
func (h *FileHelper) CollectPythonFiles(paths []string, opts CollectOptions) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := h.fs.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.IsPythonFile(root) && !isExcluded(filepath.Base(root), opts.ExcludePatterns) {
				add(root)
			}
			continue
		}

		var ignores *gitignoreSet
		if opts.RespectGitignore {
			ignores = h.loadGitignores(root)
		}

		err = afero.Walk(h.fs, root, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			rel, relErr := filepath.Rel(root, p)
			if relErr != nil || rel == "." {
				return nil
			}

			if fi.IsDir() {
				if !opts.Recursive || isExcluded(rel, opts.ExcludePatterns) || ignores.matches(p, true) {
					return filepath.SkipDir
				}
				return nil
			}

			if !h.IsPythonFile(p) || !matchesAny(rel, opts.IncludePatterns) {
				return nil
			}
			if isExcluded(rel, opts.ExcludePatterns) || ignores.matches(p, false) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsPythonFile checks the extension of path
func (h *FileHelper) IsPythonFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".py" || ext == ".pyi"
}

// FileExists checks if a regular file exists
func (h *FileHelper) FileExists(p string) (bool, error) {
	info, err := h.fs.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// gitignoreSet holds the .gitignore files that apply below a root
type gitignoreSet struct {
	entries []gitignoreEntry
}

type gitignoreEntry struct {
	dir     string
	matcher *ignore.GitIgnore
}

// loadGitignores compiles the .gitignore of root and of its ancestors up
// to the repository root
func (h *FileHelper) loadGitignores(root string) *gitignoreSet {
	set := &gitignoreSet{}

	dir, err := filepath.Abs(root)
	if err != nil {
		dir = root
	}
	for {
		if content, err := afero.ReadFile(h.fs, filepath.Join(dir, ".gitignore")); err == nil {
			lines := strings.Split(string(content), "\n")
			set.entries = append(set.entries, gitignoreEntry{
				dir:     dir,
				matcher: ignore.CompileIgnoreLines(lines...),
			})
		}
		if ok, _ := afero.DirExists(h.fs, filepath.Join(dir, ".git")); ok {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return set
}

// matches reports whether any loaded .gitignore ignores p
func (s *gitignoreSet) matches(p string, isDir bool) bool {
	if s == nil || len(s.entries) == 0 {
		return false
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	for _, e := range s.entries {
		rel, err := filepath.Rel(e.dir, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		if e.matcher.MatchesPath(rel) || (isDir && e.matcher.MatchesPath(rel+"/")) {
			return true
		}
	}
	return false
}

// isExcluded reports whether rel or one of its parent directories matches
// an exclude pattern
func isExcluded(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for p := rel; p != "." && p != "/" && p != ""; p = path.Dir(p) {
		if matchesAny(p, patterns) {
			return true
		}
	}
	return false
}

func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchPattern(pattern, rel) {
			return true
		}
	}
	return false
}

// matchPattern matches a slash-separated relative path against a glob.
// Patterns match at any depth: a pattern without "/" is tried against the
// base name, "**/" prefixes are ignored and a trailing "/**" matches
// everything below a directory.
func matchPattern(pattern, rel string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	rel = filepath.ToSlash(rel)

	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return isExcluded(rel, []string{prefix})
	}
	for strings.HasPrefix(pattern, "**/") {
		pattern = pattern[len("**/"):]
	}

	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(rel))
		return ok
	}

	segments := strings.Split(rel, "/")
	for i := range segments {
		if ok, _ := path.Match(pattern, strings.Join(segments[i:], "/")); ok {
			return true
		}
	}
	return false
}
