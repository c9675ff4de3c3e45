// Package scanner discovers plan artifacts under the accounts root.
//
// The expected layout is accounts/<business-unit>/<account>/, with at
// most one plan artifact somewhere below each account directory. The
// account name is the unit/account path relative to the root.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrMultipleArtifacts means an account directory holds more than one
// plan artifact; the account cannot be summarized unambiguously.
var ErrMultipleArtifacts = errors.New("more than one plan artifact in account")

// ScanError reports an unusable accounts root. It is fatal to the
// whole run; there is nothing to summarize without a root.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Target is one discovered account and its plan artifact. Err is set
// when the account was found but its artifact cannot be used; such
// targets still get a report row, flagged as unreadable.
type Target struct {
	Account string
	Path    string
	Err     error
}

// Discover walks two directory levels under root (business unit,
// then account) and locates each account's plan artifact by its fixed
// filename. Accounts without an artifact are skipped; result order
// follows directory enumeration and carries no meaning, the report
// re-sorts.
func Discover(root, filename string) ([]Target, error) {
	units, err := os.ReadDir(root)
	if err != nil {
		return nil, &ScanError{Path: root, Err: err}
	}

	var targets []Target
	for _, unit := range units {
		if !unit.IsDir() {
			continue
		}
		accounts, err := os.ReadDir(filepath.Join(root, unit.Name()))
		if err != nil {
			return nil, &ScanError{Path: filepath.Join(root, unit.Name()), Err: err}
		}
		for _, account := range accounts {
			if !account.IsDir() {
				continue
			}
			name := unit.Name() + "/" + account.Name()
			dir := filepath.Join(root, unit.Name(), account.Name())

			target, found, err := findArtifact(name, dir, filename)
			if err != nil {
				return nil, &ScanError{Path: dir, Err: err}
			}
			if found {
				targets = append(targets, target)
			}
		}
	}

	return targets, nil
}

// findArtifact searches one account directory recursively for the
// plan filename
func findArtifact(account, dir, filename string) (Target, bool, error) {
	var matches []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == filename {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return Target{}, false, err
	}

	switch len(matches) {
	case 0:
		return Target{}, false, nil
	case 1:
		return Target{Account: account, Path: matches[0]}, true, nil
	default:
		return Target{Account: account, Err: fmt.Errorf("%w: found %d", ErrMultipleArtifacts, len(matches))}, true, nil
	}
}
