package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName       = "bool"
	toggleTrueLiteral        = "true"
	toggleAcceptedLiterals   = "true, false, yes, no, on, off, 1, 0"
	toggleInvalidValueFormat = "invalid boolean value %q for --%s; accepted values: %s"
	longFlagPrefix           = "--"
	flagTerminator           = "--"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

func parseToggleLiteral(input string) (bool, bool) {
	value, known := toggleLiterals[strings.ToLower(strings.TrimSpace(input))]
	return value, known
}

// toggleValue is a pflag.Value accepting the literals in toggleLiterals.
type toggleValue struct {
	target *bool
	name   string
}

func (value *toggleValue) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		input = toggleTrueLiteral
	}
	parsed, known := parseToggleLiteral(input)
	if !known {
		return fmt.Errorf(toggleInvalidValueFormat, input, value.name, toggleAcceptedLiterals)
	}
	*value.target = parsed
	return nil
}

func (value *toggleValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Type() string {
	return toggleFlagTypeName
}

// registerToggleFlag defines a boolean flag that also accepts yes/no style values.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleValue{target: target, name: name}, name, usage)
	flag := flagSet.Lookup(name)
	flag.DefValue = strconv.FormatBool(defaultValue)
	flag.NoOptDefVal = toggleTrueLiteral
}

// expandToggleArguments rewrites "--flag value" into "--flag=value" for boolean flags when
// value is a recognized literal, since pflag never consumes a separate boolean value.
func expandToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := map[string]struct{}{}
	collectToggleNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}
	expanded := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == flagTerminator {
			return append(expanded, arguments[index:]...)
		}
		name, isLongFlag := strings.CutPrefix(argument, longFlagPrefix)
		if isLongFlag && !strings.Contains(name, "=") && index+1 < len(arguments) {
			if _, isToggle := toggleNames[name]; isToggle {
				if _, known := parseToggleLiteral(arguments[index+1]); known {
					expanded = append(expanded, argument+"="+arguments[index+1])
					index++
					continue
				}
			}
		}
		expanded = append(expanded, argument)
	}
	return expanded
}

func collectToggleNames(command *cobra.Command, names map[string]struct{}) {
	collect := func(flag *pflag.Flag) {
		if flag.Value.Type() == toggleFlagTypeName {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectToggleNames(child, names)
	}
}
