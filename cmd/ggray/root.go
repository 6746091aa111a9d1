package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/ggray"
)

var (
	cfgFile   string
	verbose   bool
	showStats bool
)

var rootCmd = &cobra.Command{
	Use:   "ggray INPUT",
	Short: "GPU grayscale image converter",
	Long: `ggray converts an image to grayscale on the GPU.

The input is decoded (PNG, JPEG, BMP, TIFF), every pixel is replaced by
the average of its color channels in a compute kernel, and the result is
written to GreyScaledImage.jpg in the working directory unless -o says
otherwise.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. On failure it prints one diagnostic line
// to stderr and exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.ggray.yaml)")
	rootCmd.Flags().StringP("output", "o", "GreyScaledImage.jpg", "output file (format follows the extension)")
	rootCmd.Flags().IntP("quality", "q", 90, "JPEG quality (1-100)")
	rootCmd.Flags().Int("max-dim", 0, "downscale inputs whose longest side exceeds this (0 disables)")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "print gray level statistics of the result")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline diagnostics to stderr")

	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("quality", rootCmd.Flags().Lookup("quality"))
	viper.BindPFlag("max-dim", rootCmd.Flags().Lookup("max-dim"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".ggray" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".ggray")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.SetEnvPrefix("GGRAY")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if verbose {
		ggray.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := []ggray.Option{
		ggray.WithJPEGQuality(viper.GetInt("quality")),
	}
	if m := viper.GetInt("max-dim"); m > 0 {
		opts = append(opts, ggray.WithMaxDimension(m))
	}

	conv, err := ggray.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer conv.Close()

	output := viper.GetString("output")
	result, err := conv.ConvertFile(args[0], output)
	if err != nil {
		return err
	}

	if verbose {
		p := message.NewPrinter(language.English)
		p.Fprintf(os.Stderr, "Converted %d pixels (%d x %d) on %s\n",
			result.Width()*result.Height(), result.Width(), result.Height(),
			conv.AdapterName())
	}
	if showStats {
		printStats(os.Stdout, result)
	}

	fmt.Printf("Grayscale conversion has been completed. The output saved as %s\n", output)
	return nil
}
