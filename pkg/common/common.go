// 29 Apr 2020

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// DefaultOutput is where the cleaned file goes if no name is given.
const DefaultOutput = "new.pdb"

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
// The caller removes the file.
func WrtTemp(s string) (string, error) {
	fTmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer fTmp.Close()
	if _, err := io.WriteString(fTmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", fTmp.Name(), err)
	}
	return fTmp.Name(), nil
}
