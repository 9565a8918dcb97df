// Package flagx holds the small command-line helpers shared by the client and
// server config loaders: argument filtering so each loader only sees the flags
// it owns, config-file lookup, and lenient boolean parsing for switches such as
// -admin.
package flagx

import (
	"flag"
	"fmt"
	"strings"
)

// FilterArgs keeps only the allowed flags from args, in their original order.
//
// Accepted forms are "-f value", "-f=value" and "--flag=value". A flag listed in
// boolFlags never consumes the following token, so "-admin -id x" and
// "-admin positional" behave the way the flag package expects.
func FilterArgs(args []string, allowedFlags []string, boolFlags ...string) []string {
	allowed := make(map[string]bool, len(allowedFlags)+len(boolFlags))
	for _, f := range allowedFlags {
		allowed[f] = false
	}
	for _, f := range boolFlags {
		allowed[f] = true
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

		isBool, ok := allowed[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config, or
// an empty string when neither is present. Other arguments are ignored.
func JsonConfigFlags(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}

// ParseBool accepts the boolean-like spellings people put in query strings and
// environment variables. An empty value counts as true: a switch that is
// present without a value is on.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", s)
}

// BoolValue is a flag.Value backed by ParseBool.
type BoolValue struct {
	Target *bool
}

func (b BoolValue) String() string {
	if b.Target == nil {
		return "false"
	}
	return fmt.Sprint(*b.Target)
}

func (b BoolValue) Set(s string) error {
	v, err := ParseBool(s)
	if err != nil {
		return err
	}
	*b.Target = v
	return nil
}

// IsBoolFlag lets "-admin" be given without a value.
func (b BoolValue) IsBoolFlag() bool { return true }
