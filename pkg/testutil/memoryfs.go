package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Paths are always
// treated as absolute and cleaned.
type MemoryFS struct {
	mu    sync.RWMutex
	nodes map[string]*fileNode

	// failures maps "op:path" to the error that operation returns
	failures map[string]error
}

type fileNode struct {
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	linkDest string
}

func (n *fileNode) isDir() bool  { return n.mode.IsDir() }
func (n *fileNode) isLink() bool { return n.mode&os.ModeSymlink != 0 }

// NewMemoryFS creates an empty filesystem holding only the root directory
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*fileNode{
			"/": {mode: 0755 | os.ModeDir, modTime: time.Now()},
		},
		failures: make(map[string]error),
	}
}

// FailOn makes op ("rename", "symlink", "remove", "write", ...) fail on path with err
func (m *MemoryFS) FailOn(op, path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op+":"+clean(path)] = err
	return m
}

func (m *MemoryFS) failure(op, path string) error {
	if err, ok := m.failures[op+":"+path]; ok {
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func clean(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

// resolve follows symlinks until a non-link node is found
func (m *MemoryFS) resolve(path string) (string, *fileNode, error) {
	for i := 0; i < 40; i++ {
		node, ok := m.nodes[path]
		if !ok {
			return path, nil, fs.ErrNotExist
		}
		if !node.isLink() {
			return path, node, nil
		}
		target := node.linkDest
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = clean(target)
	}
	return path, nil, errors.New("too many levels of symbolic links")
}

func (m *MemoryFS) parentDir(path string) error {
	_, parent, err := m.resolve(filepath.Dir(path))
	if err != nil {
		return err
	}
	if !parent.isDir() {
		return errors.New("not a directory")
	}
	return nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := clean(name)
	if err := m.failure("stat", path); err != nil {
		return nil, err
	}
	_, node, err := m.resolve(path)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return &fileInfo{name: filepath.Base(path), node: node}, nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := clean(name)
	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return &fileInfo{name: filepath.Base(path), node: node}, nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := clean(name)
	if err := m.failure("read", path); err != nil {
		return nil, err
	}
	_, node, err := m.resolve(path)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: path, Err: err}
	}
	if node.isDir() {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	out := make([]byte, len(node.content))
	copy(out, node.content)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.failure("write", path); err != nil {
		return err
	}
	if err := m.parentDir(path); err != nil {
		return &fs.PathError{Op: "write", Path: path, Err: err}
	}
	if existing, ok := m.nodes[path]; ok && existing.isDir() {
		return &fs.PathError{Op: "write", Path: path, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.nodes[path] = &fileNode{mode: perm, modTime: time.Now(), content: content}
	return nil
}

func (m *MemoryFS) MkdirAll(name string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.failure("mkdir", path); err != nil {
		return err
	}

	current := "/"
	for _, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if part == "" {
			continue
		}
		current = filepath.Join(current, part)
		if _, ok := m.nodes[current]; ok {
			if _, target, err := m.resolve(current); err != nil || !target.isDir() {
				return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
			}
			continue
		}
		m.nodes[current] = &fileNode{mode: perm | os.ModeDir, modTime: time.Now()}
	}
	return nil
}

func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(newname)
	if err := m.failure("symlink", path); err != nil {
		return err
	}
	if _, ok := m.nodes[path]; ok {
		return &fs.PathError{Op: "symlink", Path: path, Err: fs.ErrExist}
	}
	if err := m.parentDir(path); err != nil {
		return &fs.PathError{Op: "symlink", Path: path, Err: err}
	}
	m.nodes[path] = &fileNode{mode: 0777 | os.ModeSymlink, modTime: time.Now(), linkDest: oldname}
	return nil
}

func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := clean(name)
	node, ok := m.nodes[path]
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: fs.ErrNotExist}
	}
	if !node.isLink() {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: errors.New("not a symbolic link")}
	}
	return node.linkDest, nil
}

// ReadDir lists a directory sorted by name, like os.ReadDir
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := clean(name)
	if err := m.failure("readdir", path); err != nil {
		return nil, err
	}
	dir, node, err := m.resolve(path)
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: err}
	}
	if !node.isDir() {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: errors.New("not a directory")}
	}

	var entries []fs.DirEntry
	for _, child := range m.children(dir) {
		info := &fileInfo{name: filepath.Base(child), node: m.nodes[child]}
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

// children returns the direct children of dir, sorted
func (m *MemoryFS) children(dir string) []string {
	var out []string
	for p := range m.nodes {
		if p != dir && filepath.Dir(p) == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.failure("remove", path); err != nil {
		return err
	}
	node, ok := m.nodes[path]
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if node.isDir() && len(m.children(path)) > 0 {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
	}
	delete(m.nodes, path)
	return nil
}

func (m *MemoryFS) RemoveAll(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := clean(name)
	if err := m.failure("removeall", path); err != nil {
		return err
	}
	for p := range m.nodes {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(m.nodes, p)
		}
	}
	return nil
}

// Rename moves a node and everything below it
func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, to := clean(oldpath), clean(newpath)
	if err := m.failure("rename", from); err != nil {
		return err
	}
	if _, ok := m.nodes[from]; !ok {
		return &fs.PathError{Op: "rename", Path: from, Err: fs.ErrNotExist}
	}
	if from == to {
		return nil
	}
	if err := m.parentDir(to); err != nil {
		return &fs.PathError{Op: "rename", Path: to, Err: err}
	}
	if existing, ok := m.nodes[to]; ok && existing.isDir() && len(m.children(to)) > 0 {
		return &fs.PathError{Op: "rename", Path: to, Err: errors.New("directory not empty")}
	}

	moved := make(map[string]*fileNode)
	for p, n := range m.nodes {
		if p == from || strings.HasPrefix(p, from+"/") {
			moved[to+strings.TrimPrefix(p, from)] = n
			delete(m.nodes, p)
		}
	}
	for p, n := range moved {
		m.nodes[p] = n
	}
	return nil
}

// Paths returns every path below root, sorted. Useful in assertions.
func (m *MemoryFS) Paths(root string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	root = clean(root)
	var out []string
	for p := range m.nodes {
		if strings.HasPrefix(p, root+"/") {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

type fileInfo struct {
	name string
	node *fileNode
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir() }
func (fi *fileInfo) Sys() interface{}   { return nil }
