package options

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

func AddShowIDArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.ShowID, "id", false,
		"Show hotel ids.")
}

// Writer is where command output goes.
func (o *OutputOptions) Writer() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return color.Output
}

// HandleError reports err as a JSON object when --json is set so scripts
// always get parseable output.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(o.Writer(), string(b))
		return nil
	}
	return err
}
