package bench

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ambench/pkg/automl"
	"ambench/pkg/core"
)

const defaultQueueCommand = "qsub"

// Benchmark generates and submits batch-queue job scripts, one per
// (classifier, task) pair.
type Benchmark struct {
	Headers      string
	Program      string
	JobsDir      string
	ConfigFile   string
	QueueCommand string
	Logger       *zap.Logger
}

// JobOptions are the per-job knobs of CreateJob.
type JobOptions struct {
	Preprocessor string
	Log          string
}

// New builds a Benchmark and creates the jobs directory if it is missing.
// Program is the invocation written into every job script, e.g. the path of
// this binary.
func New(headers, program, jobsDir, configFile string, logger *zap.Logger) (*Benchmark, error) {
	if jobsDir == "" {
		jobsDir = "jobs"
	}
	if configFile == "" {
		configFile = "config.json"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(jobsDir, 0755); err != nil {
		return nil, fmt.Errorf("bench: create jobs dir: %w", err)
	}
	return &Benchmark{
		Headers:      headers,
		Program:      program,
		JobsDir:      jobsDir,
		ConfigFile:   configFile,
		QueueCommand: defaultQueueCommand,
		Logger:       logger,
	}, nil
}

// WriteConfigFile writes the three option sets as a single JSON object with
// sorted keys and 4-space indentation, and returns the path.
func WriteConfigFile(path string, tpot automl.TPOTConfig, autosklearn automl.AutoSklearnConfig, wrapper automl.WrapperConfig) (string, error) {
	return automl.WriteConfigFile(path, automl.Config{
		TPOT:        tpot,
		AutoSklearn: autosklearn,
		Wrapper:     wrapper,
	})
}

// TasksForStudy resolves a study identifier into its ordered task list. A
// missing study propagates as an error from the client.
func TasksForStudy(ctx context.Context, client core.TrackingClient, studyID int64) ([]int64, error) {
	study, err := client.GetStudy(ctx, studyID)
	if err != nil {
		return nil, err
	}
	return study.Tasks, nil
}

// CreateJobs writes one job file per (classifier, task) pair in
// classifier-major order. A nil classifier list defaults to every supported
// classifier. Returns the Benchmark for chaining.
func (b *Benchmark) CreateJobs(tasks []int64, classifiers []string, opts JobOptions) (*Benchmark, error) {
	if classifiers == nil {
		classifiers = automl.Classifiers()
	}
	for _, clf := range classifiers {
		for _, taskID := range tasks {
			if err := b.CreateJob(taskID, clf, opts); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// CreateJob writes the job script for one (classifier, task) pair: the
// header block verbatim, then one invocation line. An existing script of the
// same name is silently overwritten; the name is a deterministic function of
// classifier and task, so re-generation replaces the prior script.
func (b *Benchmark) CreateJob(taskID int64, clfName string, opts JobOptions) error {
	if opts.Preprocessor == "" {
		opts.Preprocessor = "default"
	}
	if opts.Log == "" {
		opts.Log = "log.json"
	}

	var sb strings.Builder
	sb.WriteString(b.Headers)
	sb.WriteString("\n")
	sb.WriteString(b.Program)
	sb.WriteString(fmt.Sprintf(" --classifier %s", clfName))
	sb.WriteString(fmt.Sprintf(" --task-id %d", taskID))
	sb.WriteString(fmt.Sprintf(" --config %s", b.ConfigFile))
	sb.WriteString(fmt.Sprintf(" --preprocessor %s", opts.Preprocessor))
	sb.WriteString(fmt.Sprintf(" --log %s", opts.Log))
	sb.WriteString("\n")

	path := b.JobPath(taskID, clfName)
	if err := os.WriteFile(path, []byte(sb.String()), 0755); err != nil {
		return fmt.Errorf("bench: write job %s: %w", path, err)
	}
	b.Logger.Debug("wrote job script", zap.String("path", path))
	return nil
}

// JobPath returns the deterministic script path for a (classifier, task)
// pair.
func (b *Benchmark) JobPath(taskID int64, clfName string) string {
	return filepath.Join(b.JobsDir, fmt.Sprintf("%s_%d.sh", clfName, taskID))
}

// SubmitJobs hands every regular file in the jobs directory to the queue
// command, one invocation per file, in directory-listing order. Submission
// is fire-and-forget per file: a failure is logged and counted but does not
// halt the loop. Returns the number of failed submissions.
func (b *Benchmark) SubmitJobs(ctx context.Context) (int, error) {
	return b.SubmitJobsProgress(ctx, nil)
}

// SubmitJobsProgress is SubmitJobs with a per-file callback for progress
// display.
func (b *Benchmark) SubmitJobsProgress(ctx context.Context, progress func(submitted, total int)) (int, error) {
	entries, err := os.ReadDir(b.JobsDir)
	if err != nil {
		return 0, fmt.Errorf("bench: list jobs dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(b.JobsDir, entry.Name()))
		}
	}

	queueCommand := b.QueueCommand
	if queueCommand == "" {
		queueCommand = defaultQueueCommand
	}

	failed := 0
	for i, file := range files {
		b.Logger.Info("submitting job", zap.String("script", file))
		cmd := exec.CommandContext(ctx, queueCommand, file)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			failed++
			b.Logger.Warn("submission failed",
				zap.String("script", file),
				zap.Error(err))
		}
		if progress != nil {
			progress(i+1, len(files))
		}
	}
	return failed, nil
}
