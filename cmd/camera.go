package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/glassdash/internal/api"
	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/ui/styles"
)

var cameraCmd = &cobra.Command{
	Use:   "camera",
	Short: "Control the glasses camera",
}

var cameraStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the camera is connected and running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient(loadConfig())

		status, err := client.CameraStatus(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to read camera status: %v", err)
		}

		state := models.CameraState{Running: status.Running, Connected: status.Connected}.Status()
		fmt.Printf("%s %s\n", styles.IndicatorStyle(state, false).Render("●"), state.Label())
	},
}

var cameraStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the camera",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := newClient(loadConfig()).StartCamera(cmd.Context())
		if err != nil {
			log.Fatalf("%s", api.Describe(err, "Camera operation failed", "Error communicating with camera"))
		}
		fmt.Println(resp.Message)
	},
}

var cameraStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the camera",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := newClient(loadConfig()).StopCamera(cmd.Context())
		if err != nil {
			log.Fatalf("%s", api.Describe(err, "Camera operation failed", "Error communicating with camera"))
		}
		fmt.Println(resp.Message)
	},
}

var cameraCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a single image",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := newClient(loadConfig()).Capture(cmd.Context())
		if err != nil {
			log.Fatalf("%s", api.Describe(err, "Capture failed", "Error capturing image"))
		}
		fmt.Println("Image captured successfully!")
		if resp.Path != "" {
			fmt.Println(resp.Path)
		}
	},
}

func init() {
	cameraCmd.AddCommand(cameraStatusCmd)
	cameraCmd.AddCommand(cameraStartCmd)
	cameraCmd.AddCommand(cameraStopCmd)
	cameraCmd.AddCommand(cameraCaptureCmd)
	rootCmd.AddCommand(cameraCmd)
}
