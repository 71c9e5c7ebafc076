package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ashagraev/roast-my-cv/internal/ai"
	"github.com/ashagraev/roast-my-cv/internal/ai/gemini"
	"github.com/ashagraev/roast-my-cv/internal/critique"
	"github.com/ashagraev/roast-my-cv/internal/dataset"
	"github.com/ashagraev/roast-my-cv/internal/evaluation"
	"github.com/ashagraev/roast-my-cv/internal/extract"
	"github.com/ashagraev/roast-my-cv/internal/logger"
	"github.com/ashagraev/roast-my-cv/internal/report"
	"github.com/ashagraev/roast-my-cv/internal/resume"
	"github.com/ashagraev/roast-my-cv/internal/secrets"
	"github.com/ashagraev/roast-my-cv/internal/taxonomy"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

var prompt = promptui.Select{
	Label: "Generate critiques with Gemini? This calls the paid API three times",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run <cv-file>",
	Short: "Extract a CV, add it to the dataset, critique it in three styles and score the critiques",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before calling the generation API")
	runCmd.Flags().Bool("skip-generation", false, "only extract, persist and detect issues; no API calls")
	runCmd.Flags().String("dataset", "", "CSV file to append the extracted CV to")
	runCmd.Flags().String("results-dir", "", "directory for critique files and metrics")

	viper.BindPFlag("dataset", runCmd.Flags().Lookup("dataset"))
	viper.BindPFlag("results-dir", runCmd.Flags().Lookup("results-dir"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting roast-my-cv", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	groundTruth, err := resolveGroundTruth(config)
	if err != nil {
		logger.Fatal("validating supplied ground truth",
			zap.Error(err),
			zap.Strings("known_issues", issueNames()),
		)
	}

	text, err := extract.New(logger).Extract(path)
	if err != nil {
		// No partial scoring without text.
		logger.Fatal("extracting document text", zap.String("path", path), zap.Error(err))
	}

	doc := resume.New(path, text)
	logger.Info("extracted document",
		zap.String("path", path),
		zap.Int("characters", len(text)),
		zap.Int("words", doc.WordCount()),
	)

	if err := dataset.Append(config.Dataset, doc.Record()); err != nil {
		logger.Fatal("appending to dataset", zap.Error(err))
	}
	logger.Info("added CV to dataset", zap.String("path", config.Dataset))

	if cmd.Flag("skip-generation").Value.String() == "true" {
		reportDetectedIssues(doc, groundTruth, logger)
		return
	}

	critic, err := newCritic(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("critique generation unavailable", zap.Error(err))
		reportDetectedIssues(doc, groundTruth, logger)
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	styles := critique.DefaultStyles()
	logger.Info("generating critiques", zap.Strings("styles", critique.StyleNames(styles)))

	results := critique.Generate(ctx, critic, styles, doc.Text, logger)

	rep, err := evaluation.EvaluateAll(doc.Text, toCritiques(results), groundTruth)
	if err != nil {
		logger.Fatal("evaluating critiques", zap.Error(err))
	}

	fmt.Println(report.Table(rep))

	if err := saveArtifacts(config, path, results, rep, logger); err != nil {
		logger.Fatal("saving artifacts", zap.Error(err))
	}

	logBestModel(rep, logger)
}

// resolveGroundTruth converts the configured issue identifiers, returning nil
// when none are set so that auto-detection kicks in.
func resolveGroundTruth(config *Config) ([]taxonomy.Issue, error) {
	if len(config.GroundTruth) == 0 {
		return nil, nil
	}

	issues := make([]taxonomy.Issue, 0, len(config.GroundTruth))
	for _, name := range config.GroundTruth {
		issues = append(issues, taxonomy.Issue(strings.TrimSpace(name)))
	}

	if err := evaluation.ValidateGroundTruth(issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func issueNames() []string {
	issues := taxonomy.Issues()
	names := make([]string, len(issues))
	for i, issue := range issues {
		names[i] = string(issue)
	}
	return names
}

func toCritiques(results []critique.Result) []evaluation.Critique {
	critiques := make([]evaluation.Critique, 0, len(results))
	for _, result := range results {
		c := evaluation.Critique{Label: result.Style, Text: result.Text}
		if result.Err != nil {
			c.Err = result.Err.Error()
		}
		critiques = append(critiques, c)
	}
	return critiques
}

// reportDetectedIssues covers runs without critique generation: only the
// ground-truth side of the evaluation is shown.
func reportDetectedIssues(doc *resume.Document, groundTruth []taxonomy.Issue, logger *zap.Logger) {
	if groundTruth == nil {
		groundTruth = evaluation.DetectGroundTruthIssues(doc.Text)
	}

	logger.Info("detected CV issues without critique comparison",
		zap.Strings("issues", issueStrings(groundTruth)),
		zap.Int("word_count", doc.WordCount()),
	)
}

func issueStrings(issues []taxonomy.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = string(issue)
	}
	return out
}

func newCritic(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Critic, error) {
	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		Env:   geminiAPIKeyEnv,
		File:  config.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	return gemini.New(ctx, apiKey, config.Gemini.Model, config.Gemini.MaxRetries, config.Gemini.MaxLogLength, logger)
}

func saveArtifacts(config *Config, path string, results []critique.Result, rep *evaluation.Report, logger *zap.Logger) error {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	saved, err := report.WriteCritiques(config.ResultsDir, stem, results)
	if err != nil {
		return err
	}
	logger.Info("saved critiques", zap.Strings("files", saved))

	metricsPath := filepath.Join(config.ResultsDir, stem+"_metrics.json")
	if err := report.WriteMetricsJSON(metricsPath, rep); err != nil {
		return err
	}
	logger.Info("saved metrics", zap.String("file", metricsPath))

	for _, row := range rep.Rows {
		record, err := report.SummaryRecord(row)
		if err != nil {
			return err
		}
		if err := dataset.Append(config.Evaluations, record); err != nil {
			return err
		}
	}
	logger.Info("appended evaluation rows", zap.String("path", config.Evaluations), zap.Int("rows", len(rep.Rows)))

	return nil
}

func logBestModel(rep *evaluation.Report, logger *zap.Logger) {
	best := rep.Best()
	if best == nil {
		logger.Warn("no scorable critiques; best model not selected")
		return
	}

	logger.Info("best model by F1",
		zap.String("model", best.Label),
		zap.Float64("precision", best.Detection.Precision),
		zap.Float64("recall", best.Detection.Recall),
		zap.Float64("f1", best.Detection.F1),
		zap.Float64("coverage_rate", best.Coverage.Rate),
		zap.Strings("ground_truth", issueStrings(best.Detection.GroundTruth)),
		zap.Strings("detected", issueStrings(best.Detection.Detected)),
		zap.Strings("missed", issueStrings(best.Detection.Missed)),
		zap.Strings("extra_mentions", issueStrings(best.Detection.Extra)),
	)
}
