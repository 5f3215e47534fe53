package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bitrise-io/go-steputils/tools"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/pathutil"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-crowdin-reports/downloader"
	"github.com/bitrise-steplib/steps-crowdin-reports/report"
	"github.com/bitrise-steplib/steps-crowdin-reports/report/api"
)

// Config ...
type Config struct {
	APIToken            stepconf.Secret `env:"crowdin_api_token,required"`
	Organization        string          `env:"crowdin_organization"`
	ProjectID           int             `env:"project_id,required"`
	ReportName          string          `env:"report_name,opt[costs-estimation-pe,translation-costs-pe,top-members,contribution-raw-data,pre-translate-accuracy]"`
	Unit                string          `env:"unit,opt[strings,words,chars,chars_with_spaces]"`
	Currency            string          `env:"currency"`
	Format              string          `env:"format,opt[xlsx,csv,json]"`
	LanguageID          string          `env:"language_id"`
	FullTranslationRate float64         `env:"full_translation_rate"`
	ProofreadRate       float64         `env:"proofread_rate"`
	ContributionMode    string          `env:"contribution_mode,opt[translations,approvals,votes]"`
	DateFrom            string          `env:"date_from"`
	DateTo              string          `env:"date_to"`
	PollInterval        int             `env:"poll_interval,range[1..300]"`
	PollAttempts        int             `env:"poll_attempts,range[1..1000]"`
	OutputDir           string          `env:"output_dir,required"`
	DebugMode           bool            `env:"debug_mode,opt[true,false]"`
}

var logger = log.NewLogger()

func fail(format string, v ...interface{}) {
	logger.Errorf(format, v...)
	os.Exit(1)
}

func main() {
	envRepo := env.NewRepository()

	var config Config
	if err := stepconf.NewInputParser(envRepo).Parse(&config); err != nil {
		fail("Issue with input: %s", err)
	}

	stepconf.Print(config)
	logger.Println()
	logger.EnableDebugLog(config.DebugMode)

	request, err := buildReportRequest(config)
	if err != nil {
		fail("Issue with input: %s", err)
	}

	absOutputDir, err := pathutil.AbsPath(config.OutputDir)
	if err != nil {
		fail("Failed to expand path: %s, error: %s", config.OutputDir, err)
	}

	client := api.NewClient(api.BaseURL(config.Organization), string(config.APIToken), logger)
	client.EnableDebugLog(config.DebugMode)
	tracker := downloader.NewTracker(envRepo, logger)
	fileDownloader := downloader.NewFileDownloader(tracker, logger)
	generator := report.NewGenerator(client, fileDownloader, absOutputDir, uint(config.PollAttempts), time.Duration(config.PollInterval)*time.Second, logger)

	logger.Infof("Generating report")

	result, err := generator.Run(int64(config.ProjectID), request)
	tracker.Wait()
	if err != nil {
		fail("%s", err)
	}

	logger.Println()
	logger.Donef("Success")

	if err := exportOutputs(result); err != nil {
		fail("%s", err)
	}
}

func exportOutputs(result report.Result) error {
	outputs := []struct {
		key   string
		value string
	}{
		{key: "CROWDIN_REPORT_ID", value: result.Status.Identifier},
		{key: "CROWDIN_REPORT_PATH", value: result.Path},
		{key: "CROWDIN_REPORT_URL", value: result.DownloadURL},
	}

	for _, output := range outputs {
		if err := tools.ExportEnvironmentWithEnvman(output.key, output.value); err != nil {
			return fmt.Errorf("failed to export %s, error: %s", output.key, err)
		}
		logger.Printf("The report is now available in the Environment Variable: %s (value: %s)", output.key, output.value)
	}

	return nil
}

func buildReportRequest(config Config) (api.ReportRequest, error) {
	dateFrom, err := parseDate(config.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("date_from: %s", err)
	}
	dateTo, err := parseDate(config.DateTo)
	if err != nil {
		return nil, fmt.Errorf("date_to: %s", err)
	}

	unit := api.Unit(config.Unit)
	format := api.Format(config.Format)
	currency := api.Currency(config.Currency)
	filters := api.Filters{LanguageID: config.LanguageID, DateFrom: dateFrom, DateTo: dateTo}
	rates := api.Rates{BaseRates: &api.BaseRates{FullTranslation: config.FullTranslationRate, Proofread: config.ProofreadRate}}

	var request api.ReportRequest
	switch config.ReportName {
	case api.ReportCostEstimationPostEditing:
		request = api.CostEstimationPostEditing{Unit: unit, Currency: currency, Format: format, Rates: rates, Filters: filters}
	case api.ReportTranslationCostsPostEditing:
		request = api.TranslationCostsPostEditing{Unit: unit, Currency: currency, Format: format, Rates: rates, Filters: filters}
	case api.ReportTopMembers:
		request = api.TopMembers{Unit: unit, Format: format, LanguageID: config.LanguageID, DateFrom: dateFrom, DateTo: dateTo}
	case api.ReportContributionRawData:
		request = api.ContributionRawData{Mode: api.ContributionMode(config.ContributionMode), Unit: unit, Format: format, LanguageID: config.LanguageID, DateFrom: dateFrom, DateTo: dateTo}
	case api.ReportPreTranslateAccuracy:
		request = api.PreTranslateAccuracy{Unit: unit, Format: format, LanguageID: config.LanguageID, DateFrom: dateFrom, DateTo: dateTo}
	default:
		return nil, fmt.Errorf("unsupported report: %s", config.ReportName)
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return request, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC3339", value)
}
