package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/drgolem/id3tools/pkg/id3v2"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <input_file>",
	Short: "Locate and print a file's ID3v2 tag",
	Long: `Locate the ID3v2 tag in a file and print its header fields and decoded
frames. The tag is searched for anywhere in the stream, so files with
leading junk or non-standard layouts still resolve.

Examples:
  # Print the tag of an MP3 file
  id3tools info song.mp3

  # Include hex previews of unknown frames
  id3tools info song.mp3 --raw`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().Bool("raw", false, "Print hex previews of unknown frames")
}

func runInfo(cmd *cobra.Command, args []string) {
	inFileName := args[0]

	showRaw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		slog.Error("Failed to get raw flag", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(inFileName)
	if err != nil {
		slog.Error("Failed to open input file", "path", inFileName, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	tag, offset, err := id3v2.SearchTag(f)
	if err != nil {
		slog.Error("Failed to locate tag", "path", inFileName, "error", err)
		os.Exit(1)
	}

	slog.Info("Tag located",
		"version", tag.Version(),
		"offset", offset,
		"declared_size", tag.Header.Size,
		"frames", tag.Frames.Len(),
		"unsync", tag.Header.Flags.Unsync,
		"extended", tag.Header.Flags.Extended)

	for _, frame := range tag.Frames.Frames() {
		if _, ok := frame.(*id3v2.RawFrame); ok && !showRaw {
			fmt.Printf("%-24s <%d bytes, not decoded>\n", frame.Key(), len(frame.(*id3v2.RawFrame).Data))
			continue
		}
		fmt.Printf("%-24s %s\n", frame.Key(), frame)
	}
}
