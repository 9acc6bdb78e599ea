package cmd

import "github.com/spf13/cobra"

// Command is a vara-cs subcommand. Implementations keep their arguments and
// flags as fields so tests can set them and call Run directly.
type Command interface {
	// Register adds the command to the parent cobra command
	Register(parent *cobra.Command)
}
