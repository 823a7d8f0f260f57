package atom

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// ReadTree decodes an atom tree from YAML. JSON input is accepted as well.
func ReadTree(r io.Reader) (*Atom, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading atom tree: %w", err)
	}
	root := &Atom{}
	if err := yaml.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("decoding atom tree: %w", err)
	}
	return root, nil
}

// WriteTree encodes root as YAML, or as indented JSON when asJSON is set.
func WriteTree(w io.Writer, root *Atom, asJSON bool) error {
	if root == nil {
		return nil
	}
	var (
		data []byte
		err  error
	)
	if asJSON {
		data, err = json.MarshalIndent(root, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(root)
	}
	if err != nil {
		return fmt.Errorf("encoding atom tree: %w", err)
	}
	_, err = w.Write(data)
	return err
}
