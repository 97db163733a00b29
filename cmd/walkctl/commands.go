package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Chintnn/walkability-pathfinder/internal/domain"
	"github.com/Chintnn/walkability-pathfinder/internal/usecase/dto"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var name string
	var file string
	var wait bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Submit a polygon for walkability analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry, err := readGeometry(file)
			if err != nil {
				return err
			}
			req := dto.CreateAnalysisRequest{Name: name, Geometry: geometry}
			c := ctx.newClient()

			if !wait {
				started, err := c.StartAnalysis(cmd.Context(), req)
				if err != nil {
					return err
				}
				if ctx.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), started)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "area_id: %s\ntask_id: %s\nstatus:  %s\n", started.AreaID, started.TaskID, started.Status)
				return nil
			}

			out := cmd.ErrOrStderr()
			last := -1
			results, err := c.Analyze(cmd.Context(), req, func(task *dto.TaskStatusResponse) {
				if task.Progress != last {
					fmt.Fprintf(out, "task %s: %s %d%%\n", task.ID, task.Status, task.Progress)
					last = task.Progress
				}
			})
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), results, ctx.jsonOutput)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Area name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "GeoJSON Polygon or Feature file (- for stdin)")
	cmd.Flags().BoolVar(&wait, "wait", true, "Poll until the task is terminal and print results")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id>",
		Short: "Show analysis task progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q: %w", args[0], err)
			}
			task, err := ctx.newClient().GetTask(cmd.Context(), taskID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), task)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "task_id:  %s\narea_id:  %s\nstatus:   %s\nprogress: %d%%\n", task.ID, task.AreaID, task.Status, task.Progress)
			if task.ErrorCode != nil {
				fmt.Fprintf(out, "error:    %s", *task.ErrorCode)
				if task.ErrorMessage != nil {
					fmt.Fprintf(out, " (%s)", *task.ErrorMessage)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newResultsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "results <area-id>",
		Short: "Show clusters and recommendations for an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			areaID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid area id %q: %w", args[0], err)
			}
			results, err := ctx.newClient().GetResults(cmd.Context(), areaID)
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), results, ctx.jsonOutput)
		},
	}
}

// readGeometry принимает голый Polygon или Feature с Polygon внутри
func readGeometry(path string) (dto.GeometryInput, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return dto.GeometryInput{}, fmt.Errorf("read geometry: %w", err)
	}

	var probe struct {
		Type     string           `json:"type"`
		Geometry *json.RawMessage `json:"geometry"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return dto.GeometryInput{}, fmt.Errorf("parse geometry: %w", err)
	}
	if probe.Type == "Feature" {
		if probe.Geometry == nil {
			return dto.GeometryInput{}, fmt.Errorf("parse geometry: feature has no geometry")
		}
		data = *probe.Geometry
	}

	var geometry dto.GeometryInput
	if err := json.Unmarshal(data, &geometry); err != nil {
		return dto.GeometryInput{}, fmt.Errorf("parse geometry: %w", err)
	}
	return geometry, nil
}

func printResults(out io.Writer, results *domain.AreaResults, asJSON bool) error {
	if asJSON {
		return writeJSON(out, results)
	}

	fmt.Fprintf(out, "%s (%s): overall walkability %.2f, %d clusters, %d critical\n\n",
		results.Area.Name, results.Area.Status,
		results.Summary.OverallWalkability, results.Summary.TotalClusters, results.Summary.CriticalAreas)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLUSTER\tSCORE\tSEVERITY\tROADS\tSIDEWALK\tAMENITY/ROAD")
	for _, c := range results.Clusters {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%d\t%.0f%%\t%.2f\n",
			c.Label, c.WalkabilityScore, c.Severity,
			c.Metrics.RoadCount, c.Metrics.SidewalkCoverage*100, c.Metrics.AmenityDensity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(results.Recommendations) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tCLUSTER\tACTION\tCOST")
	for _, r := range results.Recommendations {
		label := ""
		if r.Cluster != nil {
			label = r.Cluster.Label
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.Priority, label, r.ActionType, r.CostClass)
	}
	return tw.Flush()
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
