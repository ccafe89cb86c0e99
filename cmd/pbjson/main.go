// Command pbjson converts between PBJSON and JSON/YAML on the command
// line, reading from stdin and writing to stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scottkmaxwell/pbjson"
	"github.com/scottkmaxwell/pbjson/bridge"
)

var (
	decode  bool
	pretty  bool
	useYAML bool
	repr    bool
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "pbjson",
		Short: "Convert between PBJSON and JSON/YAML",
		RunE:  run,
	}
	var flags *pflag.FlagSet = root.Flags()
	flags.BoolVar(&decode, "decode", false, "read PBJSON from stdin and write text to stdout (default: encode text to PBJSON)")
	flags.BoolVar(&pretty, "pretty", false, "indent JSON output")
	flags.BoolVar(&useYAML, "yaml", false, "use YAML instead of JSON for the text side")
	flags.BoolVar(&repr, "repr", false, "print the decoded value with %#v instead of re-encoding it")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	if decode {
		if repr {
			v, err := pbjson.Decode(input)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%#v\n", v)
			return err
		}
		var out []byte
		if useYAML {
			out, err = bridge.ToYAML(input)
		} else {
			out, err = bridge.ToJSON(input, pretty)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	var out []byte
	if useYAML {
		out, err = bridge.FromYAML(input)
	} else {
		out, err = bridge.FromJSON(input)
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
