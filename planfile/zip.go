package planfile

import (
	"archive/zip"
	"fmt"
	"io"
)

// innerName is the planproto payload entry inside the zip container
const innerName = "tfplan"

// Read loads and decodes the plan artifact at path. Failures are
// returned as a DecodeError carrying the offending path so callers
// can report them against the right account.
func Read(path string) (*Plan, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("not a plan container: %w", err)}
	}
	defer func() { _ = zr.Close() }()

	data, err := readInner(&zr.Reader)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	plan, err := Decode(data)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return plan, nil
}

// readInner extracts the tfplan entry from the zip container
func readInner(zr *zip.Reader) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != innerName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s entry: %w", innerName, err)
		}
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s entry: %w", innerName, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("no %s entry in plan container", innerName)
}
