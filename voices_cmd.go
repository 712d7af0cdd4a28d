package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/utter-tts/utter/speech"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the available voice personas",
	Long:  paragraph(fmt.Sprintf("\nList the prebuilt %s available for synthesis. Pick one with --voice or from the in-app picker.", keyword("voice personas"))),
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		nameStyle := lipgloss.NewStyle().Bold(true)
		dimStyle := lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})

		for _, v := range speech.Voices() {
			marker := " "
			if v.ID == speech.DefaultVoice {
				marker = "*"
			}
			fmt.Printf("%s %s %s\n",
				marker,
				nameStyle.Render(fmt.Sprintf("%-12s", v.ID)),
				dimStyle.Render(v.Gender+" · "+v.Description),
			)
		}
		fmt.Println(dimStyle.Render("\n  * default voice"))
		return nil
	},
}
