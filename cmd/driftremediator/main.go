package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"driftremediator/internal/decisions"
	"driftremediator/internal/orchestrator"
	"driftremediator/internal/plan"
	"driftremediator/internal/providers/aws"
	"driftremediator/internal/recovery"
	"driftremediator/internal/report"
	"driftremediator/pkg/logging"
)

func main() {
	var stackName string
	var autoAccept bool
	var planOut string
	var planIn string
	var outputFormat string
	var checkpointDir string
	var pollInterval time.Duration
	var detectionTimeout time.Duration
	var updateTimeout time.Duration
	var changeSetTimeout time.Duration

	rootCmd := &cobra.Command{
		Use:   "driftremediator",
		Short: "Detect and remediate CloudFormation stack drift via retain, remove and re-import",
		Run: func(cmd *cobra.Command, args []string) {
			if stackName == "" {
				fmt.Println("The --stack-name flag is required")
				_ = cmd.Help()
				os.Exit(1)
			}
			if planOut != "" && planIn != "" {
				fmt.Println("--plan-out and --plan-in are mutually exclusive")
				os.Exit(1)
			}

			format, err := report.ParseFormat(outputFormat)
			if err != nil {
				log.Fatalf("Error: %v", err)
			}

			attempts := 0
			if pollInterval > 0 && detectionTimeout > 0 {
				attempts = int(detectionTimeout / pollInterval)
			}
			config := orchestrator.Config{
				StackName:         stackName,
				AutoAccept:        autoAccept,
				CheckpointDir:     checkpointDir,
				DetectionAttempts: attempts,
				PollInterval:      pollInterval,
				UpdateTimeout:     updateTimeout,
				ChangeSetTimeout:  changeSetTimeout,
			}

			ctx := context.Background()

			// Plan generation never mutates the stack, so default decisions
			// are safe to record for review.
			if planOut != "" {
				config.AutoAccept = true
				service, err := orchestrator.NewDefaultService(config)
				if err != nil {
					log.Fatalf("Failed to initialize the service: %v", err)
				}
				writePlan(ctx, service, planOut)
				return
			}

			service, err := buildService(config, planIn, stackName)
			if err != nil {
				log.Fatalf("Failed to initialize the service: %v", err)
			}

			result, err := service.Run(ctx)
			if result != nil {
				if printErr := report.PrintResult(result, format); printErr != nil {
					log.Printf("Could not print result: %v", printErr)
				}
			}
			if err != nil {
				log.Fatalf("Error: %v", err)
			}
			if result.HasSkipped() {
				os.Exit(2) // Remediation ran but some resources were skipped
			}
		},
	}

	rootCmd.Flags().StringVar(&stackName, "stack-name", "", "Name of the CloudFormation stack to remediate")
	rootCmd.Flags().BoolVar(&autoAccept, "auto-accept", false, "Accept the default action for every drifted resource")
	rootCmd.Flags().StringVar(&planOut, "plan-out", "", "Write a remediation plan to this file and exit without mutating the stack")
	rootCmd.Flags().StringVar(&planIn, "plan-in", "", "Apply a previously reviewed remediation plan file")
	rootCmd.Flags().StringVar(&outputFormat, "output", "table", "Output format: table or json")
	rootCmd.Flags().StringVar(&checkpointDir, "checkpoint-dir", ".driftremediator", "Directory for pre-mutation recovery checkpoints")
	rootCmd.Flags().DurationVar(&pollInterval, "poll-interval", 5*time.Second, "Delay between status polls")
	rootCmd.Flags().DurationVar(&detectionTimeout, "detection-timeout", 10*time.Minute, "Wall-clock budget for drift detection")
	rootCmd.Flags().DurationVar(&updateTimeout, "update-timeout", 30*time.Minute, "Wall-clock budget per stack update")
	rootCmd.Flags().DurationVar(&changeSetTimeout, "changeset-timeout", 10*time.Minute, "Wall-clock budget for change-set creation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildService wires the orchestrator with either the auto collector or a
// plan-backed collector when --plan-in was given.
func buildService(config orchestrator.Config, planIn, stackName string) (*orchestrator.Service, error) {
	if planIn == "" {
		return orchestrator.NewDefaultService(config)
	}

	data, err := os.ReadFile(planIn)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	p, err := plan.Load(data, stackName)
	if err != nil {
		return nil, err
	}

	svcCfg := aws.Config{
		PollInterval:      config.PollInterval,
		DetectionAttempts: config.DetectionAttempts,
		UpdateTimeout:     config.UpdateTimeout,
		ChangeSetTimeout:  config.ChangeSetTimeout,
	}
	stackService, err := aws.NewStackServiceWithDefaultConfig(context.Background(), svcCfg, logging.NewComponentLogger("aws"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize control-plane client: %w", err)
	}
	collector := decisions.NewPlanCollector(p, logging.NewComponentLogger("decisions"))
	store := recovery.NewFileStore(config.CheckpointDir, logging.NewComponentLogger("recovery"))
	return orchestrator.NewService(config, stackService, collector, store, logging.NewComponentLogger("orchestrator")), nil
}

func writePlan(ctx context.Context, service *orchestrator.Service, path string) {
	p, err := service.CreatePlan(ctx)
	if err != nil {
		if orchestrator.IsNoActionableResources(err) {
			fmt.Println("Stack has no actionable drifted resources; no plan written.")
			return
		}
		log.Fatalf("Error: %v", err)
	}

	data, err := plan.Serialize(p)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Error writing plan file: %v", err)
	}
	fmt.Printf("Wrote remediation plan for %d resources to %s. Review it, then re-run with --plan-in %s\n",
		len(p.Decisions), path, path)
}
