package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rootsource",
	Short: "AI-powered agricultural advice backend",
	Long: `RootSource is a conversational agricultural-advice backend. It answers
farming questions by combining an LLM with live research sources
(Wikipedia, arXiv, web search) and NASA satellite datasets selected
per query, with automatic language detection and translation.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".rootsource.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
