package cmd

import (
	"fmt"
	"os"
)

// confirmIfExists checks that a file exists, and asks the user for
// confirmation before continuing. It returns true if the file doesn't
// exist, or if the user answered yes.
func confirmIfExists(path, msg string) (ok bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		fmt.Println("other error", err)
		return false, err
	}
	return askForConfirmation(msg), nil
}
