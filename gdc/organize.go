package gdc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Action is what Execute does with each file.
type Action string

const (
	ActionNone Action = "none"
	ActionCopy Action = "copy"
	ActionMove Action = "move"
)

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionNone, ActionCopy, ActionMove:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Verb describes the action in progress output.
func (a Action) Verb() string {
	switch a {
	case ActionCopy:
		return "Copying"
	case ActionMove:
		return "Moving"
	}
	return "Dummy check (no action)"
}

// Step is reported to the observer before each file is handled.
type Step struct {
	N        int
	Total    int
	Verb     string
	From     string
	To       string
	Category string
}

// Plan assigns every record its unique identifier, destination name and
// destination path, then checks that no two records collide. It touches
// nothing on disk.
//
// Buckets are visited in sorted (category, type) order and records inside a
// bucket in table order, so the numbering is deterministic: the n-th record
// of a case within a bucket gets <case>_<n>, counting from zero.
func Plan(t *Table, cut Cut) error {
	var missing []string
	for r := range t.Iterate {
		if !r.HasMetadata() {
			missing = append(missing, r.FileID)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %d file(s), first is %s", ErrMissingMetadata, len(missing), missing[0])
	}
	for r := range t.Iterate {
		for _, name := range []string{r.Category, r.DataType} {
			if !plainDirName(name) {
				return fmt.Errorf("%w: %q for %s", ErrInvalidBucketName, name, r.FileID)
			}
		}
	}

	byBucket := make(map[Bucket][]*Record)
	for r := range t.Iterate {
		b := r.Bucket()
		byBucket[b] = append(byBucket[b], r)
	}
	for _, b := range t.Buckets() {
		counters := make(map[string]int)
		for _, r := range byBucket[b] {
			caseID := NormalizeCaseID(r.CaseID)
			r.UniqueID = fmt.Sprintf("%s_%d", caseID, counters[caseID])
			counters[caseID]++
			r.NewName = r.UniqueID + cut.Apply(r.FileName)
			r.NewPath = filepath.Join(b.Dir(), r.NewName)
		}
	}
	return Validate(t)
}

// plainDirName reports whether name stays a single path element under the
// organized root.
func plainDirName(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, filepath.Separator)
}

// Validate checks the planned table: unique identifiers are distinct within
// each bucket and destination paths are distinct across the run.
func Validate(t *Table) error {
	ids := make(map[Bucket]map[string]string)
	paths := make(map[string]string)
	for r := range t.Iterate {
		b := r.Bucket()
		if ids[b] == nil {
			ids[b] = make(map[string]string)
		}
		if other, ok := ids[b][r.UniqueID]; ok {
			return fmt.Errorf("%w: %s used by %s and %s in %s", ErrDuplicateIdentifier, r.UniqueID, other, r.FileID, b.Dir())
		}
		ids[b][r.UniqueID] = r.FileID
		if other, ok := paths[r.NewPath]; ok {
			return fmt.Errorf("%w: %s used by %s and %s", ErrDestinationCollision, r.NewPath, other, r.FileID)
		}
		paths[r.NewPath] = r.FileID
	}
	return nil
}

// EnsureDirs creates <base>/<category>/<type> for every bucket and returns the
// directories it had to create, relative to base.
func EnsureDirs(t *Table, base string) ([]string, error) {
	var created []string
	mkdir := func(rel string) error {
		dir := filepath.Join(base, rel)
		if info, err := os.Stat(dir); err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s exists and is not a directory", dir)
			}
			return nil
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		created = append(created, rel)
		return nil
	}
	for _, category := range t.Categories() {
		if err := mkdir(category); err != nil {
			return created, err
		}
	}
	for _, b := range t.Buckets() {
		if err := mkdir(b.Dir()); err != nil {
			return created, err
		}
	}
	return created, nil
}

// Execute performs action on every record in table order. observe, if not
// nil, is called before each file. The first filesystem error stops the run;
// files handled before it stay where they were put.
func Execute(t *Table, base string, action Action, observe func(Step)) error {
	var do func(src, dst string) error
	switch action {
	case ActionCopy:
		do = copyFile
	case ActionMove:
		do = moveFile
	case ActionNone:
		do = func(string, string) error { return nil }
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	n := 0
	for r := range t.Iterate {
		n++
		if observe != nil {
			observe(Step{
				N:        n,
				Total:    t.Len(),
				Verb:     action.Verb(),
				From:     r.Path,
				To:       r.NewPath,
				Category: r.Category,
			})
		}
		if err := do(r.SourcePath(base), filepath.Join(base, r.NewPath)); err != nil {
			return fmt.Errorf("%s %s: %w", action, r.Path, err)
		}
	}
	return nil
}

// copyFile copies content and permission bits, replacing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrExpectedFile
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}

// moveFile renames src to dst, copying and removing when they are on
// different filesystems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
