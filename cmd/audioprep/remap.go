// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/audioprep/internal/remap"
)

var remapCmd = &cobra.Command{
	Use:   "remap <input.json> <output.json>",
	Short: "Rewrite a Label Studio export to reference local MP3 files",
	Long: `Remap copies a Label Studio export JSON, replacing each task's hashed
upload name with the clean MP3 filename and pointing data.audio at the
local-files URL for it. The input export is never modified. Mapped files
missing from the audio directory are listed as warnings.`,
	Args: cobra.ExactArgs(2),
	RunE: runRemap,
}

func runRemap(cmd *cobra.Command, args []string) error {
	audioDir, _ := cmd.Flags().GetString("audio-dir")
	template, _ := cmd.Flags().GetString("audio-url-template")

	result, err := remap.File(args[0], args[1], remap.Options{
		AudioDir:    audioDir,
		URLTemplate: template,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d task(s), %d remapped)\n", args[1], result.Tasks, result.Remapped)
	if audioDir == "" {
		audioDir = "the input directory"
	}
	remap.PrintWarnings(os.Stderr, audioDir, result.Missing)
	return nil
}

func init() {
	remapCmd.Flags().String("audio-dir", "", "directory containing the target MP3 files (default: input JSON directory)")
	remapCmd.Flags().String("audio-url-template", remap.DefaultURLTemplate, "template for data.audio; {filename} is replaced per task")

	rootCmd.AddCommand(remapCmd)
}
