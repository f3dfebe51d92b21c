package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var indexJobsCmd = &cobra.Command{
	Use:   "index-jobs",
	Short: "Load job postings from a YAML file into the database and the search backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("file")
		return indexJobs(cmd, file)
	},
}

func init() {
	rootCmd.AddCommand(indexJobsCmd)
	indexJobsCmd.Flags().StringP("file", "f", "jobs.yaml", "YAML file with a top-level jobs list")
}

func readJobsFile(path string) (*dto.IndexJobsRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req dto.IndexJobsRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &req, nil
}

func indexJobs(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	req, err := readJobsFile(path)
	if err != nil {
		return err
	}

	c, err := buildComponents(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.indexer.IndexJobs(ctx, req.Jobs)
	if err != nil {
		return err
	}
	for _, job := range result.Jobs {
		log.Info("indexed", zap.String("job_id", job.JobID), zap.Int("chunks", job.Chunks), zap.Int("replaced", job.RemovedChunks))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d jobs (%d chunks)\n", len(result.Jobs), result.TotalChunks)
	return nil
}
