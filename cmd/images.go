package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Rorical/glassdash/internal/api"
	"github.com/Rorical/glassdash/ui/components"
)

var outputPath string

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Browse captured images",
}

var listImagesCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured images, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		images, err := newClient(loadConfig()).Images(cmd.Context())
		if err != nil {
			log.Fatalf("%s", api.Describe(err, "Error loading images", "Error loading images"))
		}

		if len(images) == 0 {
			fmt.Println(components.EmptyGalleryText)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, img := range images {
			size := ""
			if img.Size > 0 {
				size = components.FormatSize(img.Size)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", img.Filename, img.Timestamp, size)
		}
		w.Flush()
	},
}

var getImageCmd = &cobra.Command{
	Use:   "get <filename>",
	Short: "Download a captured image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		data, err := newClient(loadConfig()).Image(cmd.Context(), filename)
		if err != nil {
			log.Fatalf("Failed to download %s: %v", filename, err)
		}

		dest := outputPath
		if dest == "" {
			dest = filepath.Base(filename)
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", dest, err)
		}
		fmt.Printf("Saved %s (%s)\n", dest, components.FormatSize(int64(len(data))))
	},
}

func init() {
	getImageCmd.Flags().StringVarP(&outputPath, "output", "o", "", "where to write the image (default: the image's filename)")

	imagesCmd.AddCommand(listImagesCmd)
	imagesCmd.AddCommand(getImageCmd)
	rootCmd.AddCommand(imagesCmd)
}
