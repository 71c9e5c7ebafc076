package cmd

import (
	"log"

	"github.com/ashagraev/roast-my-cv/internal/evaluation"
	"github.com/ashagraev/roast-my-cv/internal/extract"
	"github.com/ashagraev/roast-my-cv/internal/logger"
	"github.com/ashagraev/roast-my-cv/internal/resume"
	"github.com/ashagraev/roast-my-cv/internal/taxonomy"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var detectCmd = &cobra.Command{
	Use:   "detect <cv-file>",
	Short: "Detect CV issues and section presence offline, without any API calls",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		detect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func detect(path string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	text, err := extract.New(logger).Extract(path)
	if err != nil {
		logger.Fatal("extracting document text", zap.String("path", path), zap.Error(err))
	}

	doc := resume.New(path, text)
	issues := evaluation.DetectGroundTruthIssues(doc.Text)

	present := make([]string, 0)
	missing := make([]string, 0)
	for _, section := range taxonomy.Sections() {
		if taxonomy.MentionsSection(doc.Text, section) {
			present = append(present, string(section))
		} else {
			missing = append(missing, string(section))
		}
	}

	logger.Info("detected CV issues",
		zap.String("path", path),
		zap.Int("word_count", doc.WordCount()),
		zap.Strings("issues", issueStrings(issues)),
		zap.Strings("sections_present", present),
		zap.Strings("sections_missing", missing),
	)
}
