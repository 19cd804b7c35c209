package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dealrag/src/log"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dealrag",
	Short: "Retrieval-augmented Q&A assistant over local documents",
	Long: `dealrag indexes a local set of CSV and text files into a vector store
and answers questions from the retrieved context. Retrieved chunks that
encode product rows are extracted into structured records with discounted
prices instead of being paraphrased by the model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	settingDefaultConfig()
}

func initConfig() error {
	// .env values become visible to viper's AutomaticEnv
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file is fine, defaults and env cover everything
	}

	return log.Setup(viper.GetString("logging.level"), viper.GetString("logging.file"))
}
