package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "id3tools",
	Short: "ID3v2 tag inspection and conversion",
	Long: `id3tools - Decode, inspect and rewrite ID3v2.3/ID3v2.4 metadata tags
embedded in audio files.

Features:
  - Tag location anywhere in the stream, not just at offset 0
  - Typed decoding of text, comment, lyrics, picture, chapter, volume
    and two dozen other frame kinds
  - Unknown, compressed and encrypted frames preserved byte-for-byte
  - Bidirectional ID3v2.3 <-> ID3v2.4 frame migration

Commands:
  - info: Locate and print the decoded tag of a file
  - convert: Rewrite a file's tag at another ID3v2 version`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
