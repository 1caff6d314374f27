package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterToggleFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{name: "defaults_to_false", defaultValue: false, arguments: []string{}, expected: false},
		{name: "sets_true_without_value", defaultValue: false, arguments: []string{"--readme"}, expected: true},
		{name: "sets_false_with_equals", defaultValue: true, arguments: []string{"--readme=false"}, expected: false},
		{name: "sets_false_with_no_literal", defaultValue: true, arguments: []string{"--readme", "no"}, expected: false},
		{name: "sets_true_with_on_literal", defaultValue: false, arguments: []string{"--readme", "on"}, expected: true},
		{name: "rejects_unknown_literal", defaultValue: false, arguments: []string{"--readme=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "toggle-test"}
			flagValue := !testCase.defaultValue
			registerToggleFlag(command.Flags(), &flagValue, "readme", testCase.defaultValue, "show README.md content")
			parseError := command.ParseFlags(expandToggleArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseError == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("unexpected parse error: %v", parseError)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestExpandToggleArgumentsLeavesOtherArgumentsAlone(t *testing.T) {
	t.Parallel()

	command := &cobra.Command{Use: "toggle-test"}
	var readme bool
	var color string
	registerToggleFlag(command.Flags(), &readme, "readme", false, "show README.md content")
	command.Flags().StringVar(&color, "color", "auto", "colorize output")

	arguments := []string{"--color", "never", "--readme", "yes", "--", "--readme", "no"}
	expected := []string{"--color", "never", "--readme=yes", "--", "--readme", "no"}
	if got := expandToggleArguments(command, arguments); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}
