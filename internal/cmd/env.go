package cmd

import (
	"os"
	"strings"
)

// OptionsEnv names the environment variable whose words are prepended to
// the command line.
const OptionsEnv = "LSF_OPTIONS"

// ArgsWithEnv returns args with the words of $LSF_OPTIONS in front.
func ArgsWithEnv(args []string) []string {
	extra := strings.Fields(os.Getenv(OptionsEnv))
	if len(extra) == 0 {
		return args
	}
	return append(extra, args...)
}
