package cmd

import (
	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/spf13/viper"

	"github.com/bdsqqq/resource-pack-backporter/pkg/core"
	"github.com/bdsqqq/resource-pack-backporter/pkg/dlogger"
)

func runBackport(inputDir, outputDir string) error {
	logLevel := params.logLevel
	if logLevel == "" {
		logLevel = viper.GetString("log-level")
	}
	if params.verbose {
		logLevel = dlogger.LogLevelDebug
	}
	logger, err := dlogger.GetLogger(logLevel, params.verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	backporter := core.New(inputDir, outputDir,
		core.Logger(logger),
		core.ClearOutput(!params.noClear),
	)
	stats, err := backporter.Run()
	if err != nil {
		return err
	}

	color.Green("backported %d items into %d artifacts (%s)",
		stats.Items, stats.Artifacts, units.HumanSize(float64(stats.BytesWritten)))
	if stats.ModelsRepaired > 0 || stats.TemplatesFixed > 0 {
		color.Cyan("compatibility sweep repaired %d models, fixed %d templates",
			stats.ModelsRepaired, stats.TemplatesFixed)
	}
	if stats.SkippedItems > 0 || stats.FailedRequests > 0 || stats.InvalidTemplate > 0 {
		color.Yellow("skipped %d items, %d failed requests, %d invalid templates",
			stats.SkippedItems, stats.FailedRequests, stats.InvalidTemplate)
	}
	return nil
}
