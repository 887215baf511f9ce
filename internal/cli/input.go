package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpggio/sena/internal/validate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InputOptions holds the flags that supply a raw field map.
type InputOptions struct {
	File string
	Set  []string
}

func (o *InputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "YAML or JSON file with field values")
	cmd.Flags().StringArrayVar(&o.Set, "set", nil, "field value as key=value (repeatable, overrides --file)")
}

// Read builds the input map from the file, then applies --set values.
func (o *InputOptions) Read() (validate.Input, error) {
	in := validate.Input{}

	if o.File != "" {
		data, err := os.ReadFile(o.File)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "read input file", err)
		}
		var fields map[string]any
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, WrapExitError(ExitCommandError, "parse input file", err)
		}
		for k, v := range fields {
			in[k] = v
		}
	}

	for _, kv := range o.Set {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid --set %q: want key=value", kv))
		}
		in[key] = value
	}
	return in, nil
}
