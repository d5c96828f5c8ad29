// Package flagx lets independent components parse only the command-line
// flags they own. The config loader, for example, looks for the config file
// path before the full flag set is known.
package flagx

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// ConfigEnvVar names the environment variable consulted when no config flag
// is given.
const ConfigEnvVar = "ADMISSIONS_CONFIG"

// FilterArgs returns the subset of args made of allowedFlags and their values.
//
// Supported forms:
//
//	-c conf.json          flag and value as separate arguments
//	--config=conf.json    flag and value joined by '='
//
// A separate value is only taken when the next argument does not start with
// '-'. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag extracts the config file path from -c/--config in args,
// falling back to $ADMISSIONS_CONFIG. It returns "" when neither is set.
func ConfigFileFlag(args []string) string {
	var config string

	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&config, "config", "c", "", "path to config file (JSON or YAML)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "--config"}))

	if config == "" {
		config = os.Getenv(ConfigEnvVar)
	}
	return config
}
