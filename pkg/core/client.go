package core

import "context"

// Study is an externally defined named collection of tasks.
type Study struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Tasks []int64 `json:"tasks"`
}

// TrackingClient talks to the experiment-tracking service.
type TrackingClient interface {
	GetStudy(ctx context.Context, studyID int64) (Study, error)
	GetTask(ctx context.Context, taskID int64) (Task, error)
	GetDataset(ctx context.Context, datasetID int64) (Dataset, error)
	PublishRun(ctx context.Context, run Run) (int64, error)
	RunURL(runID int64) string
}
