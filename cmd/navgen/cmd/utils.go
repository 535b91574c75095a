package cmd

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/arl/navgen/navmesh"
)

// fileExists returns nil if path exists, or an error describing why not.
func fileExists(path string) (err error) {
	if _, err = os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("no such file '%v'", path)
		}
	}
	return err
}

// askForConfirmation prints msg and reads a y/n answer from stdin,
// defaulting to no on a bare ENTER.
func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)
	const defaultInput = byte('N')

	for {
		input, _ := reader.ReadString('\n')
		if len(input) == 0 {
			return defaultInput == 'Y'
		}
		c := input[0]
		if c == '\n' {
			c = defaultInput
		}
		switch c {
		case 'Y', 'y':
			return true
		case 'N', 'n':
			return false
		}
	}
}

// check prints a fatal error and exits.
func check(err error) {
	if err != nil {
		fmt.Printf("error, %v\n", err)
		os.Exit(1)
	}
}

// unmarshalYAMLFile reads and decodes a YAML file into out.
func unmarshalYAMLFile(path string, out interface{}) error {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(buf, out)
}

// marshalYAMLFile encodes v as YAML and writes it to path.
func marshalYAMLFile(path string, v interface{}) error {
	buf, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, buf, 0644)
}

// loadParams reads build settings from path, falling back to
// navmesh.DefaultParams when path is empty.
func loadParams(path string) (navmesh.BuildParams, error) {
	params := navmesh.DefaultParams()
	if path == "" {
		return params, nil
	}
	if err := unmarshalYAMLFile(path, &params); err != nil {
		return params, err
	}
	return params, nil
}
