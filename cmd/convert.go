package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/drgolem/id3tools/pkg/id3v2"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_file>",
	Short: "Rewrite a file's ID3v2 tag at another version",
	Long: `Decode a file's ID3v2 tag, migrate its frames between the ID3v2.3 and
ID3v2.4 representations and write the file back with the new tag spliced
in. Audio data is copied through untouched.

Migration follows the format's own rules: the TYER/TDAT/TIME triple fuses
into TDRC timestamps and back, credit frames are renamed or merged, and
frames with no analogue in the target version are dropped.

Examples:
  # Upgrade an ID3v2.3 tag to ID3v2.4
  id3tools convert song.mp3 --to 2.4 --out song_v24.mp3

  # Downgrade for players that only read ID3v2.3
  id3tools convert song.mp3 --to 2.3 --out song_v23.mp3

  # Read defaults from a TOML config file
  id3tools convert song.mp3 --config id3tools.toml`,
	Args: cobra.ExactArgs(1),
	Run:  runConvert,
}

// convertConfig is the optional TOML file backing the convert flags.
type convertConfig struct {
	TargetVersion string `toml:"target_version"`
	OutSuffix     string `toml:"out_suffix"`
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("to", "2.4", "Target tag version (2.3 or 2.4)")
	convertCmd.Flags().String("out", "", "Output file path (default: <input>_converted)")
	convertCmd.Flags().String("config", "", "TOML config file with convert defaults")
}

func runConvert(cmd *cobra.Command, args []string) {
	inFileName := args[0]

	target, err := cmd.Flags().GetString("to")
	if err != nil {
		slog.Error("Failed to get to flag", "error", err)
		os.Exit(1)
	}
	outFileName, err := cmd.Flags().GetString("out")
	if err != nil {
		slog.Error("Failed to get out flag", "error", err)
		os.Exit(1)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		slog.Error("Failed to get config flag", "error", err)
		os.Exit(1)
	}

	outSuffix := "_converted"
	if configPath != "" {
		var cfg convertConfig
		if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
			slog.Error("Failed to read config file", "path", configPath, "error", err)
			os.Exit(1)
		}
		if cfg.TargetVersion != "" && !cmd.Flags().Changed("to") {
			target = cfg.TargetVersion
		}
		if cfg.OutSuffix != "" {
			outSuffix = cfg.OutSuffix
		}
	}

	var targetVersion id3v2.Version
	switch target {
	case "2.3", "3":
		targetVersion = id3v2.V23
	case "2.4", "4":
		targetVersion = id3v2.V24
	default:
		slog.Error("Invalid target version", "to", target, "valid", "2.3, 2.4")
		os.Exit(1)
	}

	if outFileName == "" {
		outFileName = inFileName + outSuffix
	}

	data, err := os.ReadFile(inFileName)
	if err != nil {
		slog.Error("Failed to read input file", "path", inFileName, "error", err)
		os.Exit(1)
	}

	tag, offset, err := id3v2.SearchTagBytes(data)
	if err != nil {
		slog.Error("Failed to locate tag", "path", inFileName, "error", err)
		os.Exit(1)
	}

	slog.Info("Converting tag",
		"input_file", inFileName,
		"from", tag.Version(),
		"to", targetVersion,
		"frames", tag.Frames.Len(),
		"output_file", outFileName)

	oldWireSize := tag.WireSize()
	switch targetVersion {
	case id3v2.V24:
		tag.Upgrade()
	case id3v2.V23:
		tag.Downgrade()
	}
	rendered := tag.Render()

	if err := spliceTag(outFileName, data, offset, oldWireSize, rendered); err != nil {
		slog.Error("Failed to write output file", "path", outFileName, "error", err)
		os.Exit(1)
	}

	slog.Info("Conversion complete",
		"version", tag.Version(),
		"frames", tag.Frames.Len(),
		"tag_bytes", len(rendered))
}

// spliceTag writes the stream back with the rendered tag replacing the bytes
// the old tag occupied.
func spliceTag(fileName string, data []byte, offset int64, oldWireSize int, rendered []byte) error {
	fOut, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer fOut.Close()

	tail := int(offset) + oldWireSize
	if tail > len(data) {
		tail = len(data)
	}

	if _, err := fOut.Write(data[:offset]); err != nil {
		return fmt.Errorf("failed to write leading data: %w", err)
	}
	if _, err := fOut.Write(rendered); err != nil {
		return fmt.Errorf("failed to write tag: %w", err)
	}
	if _, err := fOut.Write(data[tail:]); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}
